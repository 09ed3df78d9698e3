// assettrack - terminal client for the asset management service.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/assettrack-tui/internal/cli"
	"github.com/jeranaias/assettrack-tui/internal/config"
	"github.com/jeranaias/assettrack-tui/internal/report"
	"github.com/jeranaias/assettrack-tui/internal/ui/styles"
	"github.com/jeranaias/assettrack-tui/internal/ui/views"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	var err error
	switch cmd {
	case cli.CmdTUI:
		err = runTUI()
	case cli.CmdLogin:
		err = cli.HandleLogin(args)
	case cli.CmdRegister:
		err = cli.HandleRegister(args)
	case cli.CmdLogout:
		err = cli.HandleLogout(args)
	case cli.CmdStatus:
		err = cli.HandleStatus(args)
	case cli.CmdConfig:
		err = cli.HandleConfig(args)
	case cli.CmdExportLogs:
		err = cli.HandleExportLogs(args)
	case cli.CmdBarcode:
		err = cli.HandleBarcode(args)
	case cli.CmdScan:
		err = cli.HandleScan(args)
	case cli.CmdVersion:
		cli.HandleVersion(args)
	case cli.CmdHelp:
		cli.HandleHelp(args)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "assettrack: %v\n", err)
		os.Exit(1)
	}
}

// runTUI starts the full-screen dashboard.
func runTUI() error {
	env, err := cli.NewEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	// Stray log output from dependencies lands in the activity sink
	// instead of corrupting the alternate screen.
	report.InstallGlobal(env.Sink)

	// Reload configuration live while the TUI runs.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if watcher, err := config.NewWatcher(config.WithWatcherLogger(env.Sink)); err == nil {
		watcher.Start(ctx)
		defer watcher.Close()
	}

	app := views.NewApp(&views.Deps{
		Client:   env.Client,
		Sessions: env.Sessions,
		Sink:     env.Sink,
		Theme:    styles.NewTheme(),
	})

	program := tea.NewProgram(app, tea.WithAltScreen())
	_, err = program.Run()
	return err
}
