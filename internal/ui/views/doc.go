// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package views implements the assettrack screens: sign-in and
// registration, the role dashboards, inventory management, the request
// lifecycle (request, approve, issue, return), history, code scanning,
// and log export.
//
// Each view is a self-contained Bubble Tea model. The App model owns
// the route, enforces role access, and delegates messages to whichever
// view is active. Remote calls run as tea.Cmd functions that resolve to
// typed result messages; no view ever blocks the update loop.
package views
