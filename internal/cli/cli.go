// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - argument parsing and command routing for assettrack.
package cli

import (
	"fmt"
	"os"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdLogin
	CmdRegister
	CmdLogout
	CmdStatus
	CmdConfig
	CmdExportLogs
	CmdBarcode
	CmdScan
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	Verbose bool
	JSON    bool

	// Command-specific
	Subcommand string
	ConfigKey  string
	ConfigVal  string
	Payload    string // barcode/scan payload or source path
	Day        string // export-logs day (YYYY-MM-DD)
	Output     string // output directory or file
	AsBarcode  bool   // barcode command: Code 128 instead of QR

	// Raw args remaining after flag parsing
	Raw []string
}

const usageText = `assettrack - terminal client for the asset management service

Usage:
  assettrack                       Start the TUI (default)
  assettrack login                 Sign in and persist the session
  assettrack register              Create an account
  assettrack logout                Clear the stored session
  assettrack status, s             Show connection and session status
  assettrack config [show|set|path]  Inspect or change configuration
  assettrack export-logs [DATE]    Export one day of this invocation's activity
                                   log (default: today); the TUI reports view
                                   covers a full session
    --output DIR                   Write into DIR instead of the export dir
  assettrack barcode PAYLOAD       Render a QR code PNG for an asset id
    --code128                      Render a Code 128 barcode instead
    --output DIR                   Write into DIR
  assettrack scan [SOURCE]         Decode a code from a frame directory or image
  assettrack version, -v           Show version
  assettrack help, -h              Show this help

Config keys:
  api.base_url    Service endpoint URL
  api.timeout     Request timeout in seconds
  ui.theme        dark | light | auto
  export.dir      Directory for exported files
  scan.source     Default frame source for scanning
  scan.max_fps    Decode attempts per second

Environment overrides:
  ASSETTRACK_API_URL, ASSETTRACK_API_TIMEOUT, ASSETTRACK_THEME,
  ASSETTRACK_EXPORT_DIR, ASSETTRACK_SCAN_SOURCE
`

// PrintUsage writes the help text to stdout.
func PrintUsage() {
	fmt.Print(usageText)
}

// Parse reads os.Args and returns the command plus its arguments.
func Parse() (Command, Args) {
	return parseArgs(os.Args[1:])
}

// parseArgs is the testable core of Parse.
func parseArgs(argv []string) (Command, Args) {
	args := Args{}

	// Split global flags from positionals.
	var positional []string
	for i := 0; i < len(argv); i++ {
		a := argv[i]
		switch a {
		case "--quiet", "-q":
			args.Quiet = true
		case "--verbose":
			args.Verbose = true
		case "--json":
			args.JSON = true
		case "--code128":
			args.AsBarcode = true
		case "--output", "-o":
			if i+1 < len(argv) {
				i++
				args.Output = argv[i]
			}
		case "--help", "-h":
			return CmdHelp, args
		case "--version", "-v":
			return CmdVersion, args
		default:
			positional = append(positional, a)
		}
	}

	if len(positional) == 0 {
		return CmdTUI, args
	}

	cmd := positional[0]
	rest := positional[1:]
	args.Raw = rest

	switch cmd {
	case "login":
		return CmdLogin, args
	case "register":
		return CmdRegister, args
	case "logout":
		return CmdLogout, args
	case "status", "s":
		return CmdStatus, args
	case "config":
		if len(rest) > 0 {
			args.Subcommand = rest[0]
		}
		if args.Subcommand == "set" && len(rest) >= 3 {
			args.ConfigKey = rest[1]
			args.ConfigVal = rest[2]
		}
		return CmdConfig, args
	case "export-logs":
		if len(rest) > 0 {
			args.Day = rest[0]
		}
		return CmdExportLogs, args
	case "barcode":
		if len(rest) > 0 {
			args.Payload = rest[0]
		}
		return CmdBarcode, args
	case "scan":
		if len(rest) > 0 {
			args.Payload = rest[0]
		}
		return CmdScan, args
	case "version":
		return CmdVersion, args
	case "help":
		return CmdHelp, args
	default:
		fmt.Fprintf(os.Stderr, "assettrack: unknown command %q\n\n", cmd)
		return CmdHelp, args
	}
}
