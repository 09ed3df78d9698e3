// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli parses command-line arguments and implements the
// non-interactive subcommands: account management, status, config
// inspection, log export, and code generation/scanning. Running with no
// subcommand starts the full-screen TUI.
package cli
