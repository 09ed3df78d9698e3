// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"testing"

	"github.com/jeranaias/assettrack-tui/internal/config"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name string
		argv []string
		want Command
	}{
		{"no args starts TUI", nil, CmdTUI},
		{"login", []string{"login"}, CmdLogin},
		{"register", []string{"register"}, CmdRegister},
		{"logout", []string{"logout"}, CmdLogout},
		{"status", []string{"status"}, CmdStatus},
		{"status alias", []string{"s"}, CmdStatus},
		{"config", []string{"config", "show"}, CmdConfig},
		{"config path", []string{"config", "path"}, CmdConfig},
		{"export-logs", []string{"export-logs"}, CmdExportLogs},
		{"barcode", []string{"barcode", "ASSET-1"}, CmdBarcode},
		{"scan", []string{"scan", "/frames"}, CmdScan},
		{"version", []string{"version"}, CmdVersion},
		{"version flag", []string{"-v"}, CmdVersion},
		{"help", []string{"help"}, CmdHelp},
		{"help flag", []string{"--help"}, CmdHelp},
		{"unknown falls back to help", []string{"frobnicate"}, CmdHelp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := parseArgs(tt.argv)
			if got != tt.want {
				t.Errorf("parseArgs(%v) = %v, want %v", tt.argv, got, tt.want)
			}
		})
	}
}

func TestParseConfigSet(t *testing.T) {
	cmd, args := parseArgs([]string{"config", "set", "api.base_url", "https://x.example.com"})
	if cmd != CmdConfig {
		t.Fatalf("cmd = %v", cmd)
	}
	if args.Subcommand != "set" || args.ConfigKey != "api.base_url" ||
		args.ConfigVal != "https://x.example.com" {
		t.Errorf("args = %+v", args)
	}
}

func TestParseBarcodeFlags(t *testing.T) {
	cmd, args := parseArgs([]string{"barcode", "SKU-9", "--code128", "--output", "/tmp"})
	if cmd != CmdBarcode {
		t.Fatalf("cmd = %v", cmd)
	}
	if args.Payload != "SKU-9" || !args.AsBarcode || args.Output != "/tmp" {
		t.Errorf("args = %+v", args)
	}
}

func TestParseExportDay(t *testing.T) {
	_, args := parseArgs([]string{"export-logs", "2026-08-31"})
	if args.Day != "2026-08-31" {
		t.Errorf("day = %q", args.Day)
	}
}

func TestApplyConfigKey(t *testing.T) {
	cfg := config.Default()

	if err := applyConfigKey(cfg, "api.base_url", "https://svc.example.com"); err != nil {
		t.Fatal(err)
	}
	if cfg.API.BaseURL != "https://svc.example.com" {
		t.Errorf("base_url = %q", cfg.API.BaseURL)
	}

	if err := applyConfigKey(cfg, "api.timeout", "42"); err != nil {
		t.Fatal(err)
	}
	if cfg.API.TimeoutSecs != 42 {
		t.Errorf("timeout = %d", cfg.API.TimeoutSecs)
	}

	if err := applyConfigKey(cfg, "api.timeout", "soon"); err == nil {
		t.Error("non-numeric timeout accepted")
	}
	if err := applyConfigKey(cfg, "no.such.key", "x"); err == nil {
		t.Error("unknown key accepted")
	}
}
