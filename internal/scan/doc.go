// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package scan generates and reads the machine-readable codes attached
// to tracked assets.
//
// Generation produces Code 128 barcodes and QR codes as PNG images at
// badge or detail scale. Reading runs a rate-limited decode loop over a
// frame source and delivers at most one successful result.
package scan
