// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package report provides the in-memory event log and its day-scoped
// text export.
//
// The sink is an explicit service injected into anything that records
// events (gateway, views, scanner) rather than an interception of a
// global print function. Entries live only as long as the process; the
// one artifact that leaves the process is the logs-YYYY-MM-DD.txt file
// produced by the export.
package report
