// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the wire-level data structures shared by the
// gateway and the views: asset requests, inventory items, dashboard
// summaries, and the pure filtering/derivation helpers over them.
//
// The remote system of record owns every entity in this package. Values
// held client-side are transient, re-fetchable copies; nothing here is
// authoritative and nothing here mutates server state.
package model
