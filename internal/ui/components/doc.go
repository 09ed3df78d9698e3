// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the reusable visual components for the
// assettrack terminal UI: the status bar, data tables, toast
// notifications, loading spinners, and the access-denied banner.
package components
