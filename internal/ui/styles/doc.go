// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the assettrack
// terminal UI.
//
// The Theme struct holds every configured Lip Gloss style used by the
// views, built once at startup from the detected terminal capabilities.
// Colors are AdaptiveColor pairs so light and dark terminals both get
// readable contrast, and every status is paired with an ASCII shape
// indicator so state survives monochrome terminals.
package styles
