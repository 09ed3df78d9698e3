// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package scan

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/qr"
)

// =============================================================================
// CODE GENERATION
// =============================================================================

// maxPayloadLen bounds the encoded payload. Asset IDs are short; anything
// longer is a caller bug, not data.
const maxPayloadLen = 256

// ErrEmptyPayload is returned when asked to encode an empty string.
var ErrEmptyPayload = errors.New("cannot encode an empty payload")

// ErrPayloadTooLong is returned when the payload exceeds maxPayloadLen.
var ErrPayloadTooLong = errors.New("payload too long to encode")

// Size selects the rendered pixel dimensions.
type Size int

const (
	// SizeBadge is the compact rendering for inline display.
	SizeBadge Size = iota
	// SizeDetail is the enlarged rendering for the detail view.
	SizeDetail
)

// qrPixels returns the square edge length for QR rendering.
func (s Size) qrPixels() int {
	if s == SizeDetail {
		return 384
	}
	return 128
}

// barDimensions returns width and height for Code 128 rendering.
func (s Size) barDimensions() (int, int) {
	if s == SizeDetail {
		return 600, 180
	}
	return 200, 60
}

func checkPayload(payload string) error {
	if payload == "" {
		return ErrEmptyPayload
	}
	if len(payload) > maxPayloadLen {
		return fmt.Errorf("%w: %d bytes", ErrPayloadTooLong, len(payload))
	}
	return nil
}

// QRPNG encodes the payload as a QR code and returns the PNG bytes.
func QRPNG(payload string, size Size) ([]byte, error) {
	if err := checkPayload(payload); err != nil {
		return nil, err
	}

	code, err := qr.Encode(payload, qr.M, qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	edge := size.qrPixels()
	scaled, err := barcode.Scale(code, edge, edge)
	if err != nil {
		return nil, fmt.Errorf("scale qr: %w", err)
	}
	return encodePNG(scaled)
}

// BarcodePNG encodes the payload as a Code 128 barcode and returns the
// PNG bytes.
func BarcodePNG(payload string, size Size) ([]byte, error) {
	if err := checkPayload(payload); err != nil {
		return nil, err
	}

	code, err := code128.Encode(payload)
	if err != nil {
		return nil, fmt.Errorf("encode barcode: %w", err)
	}
	w, h := size.barDimensions()
	scaled, err := barcode.Scale(code, w, h)
	if err != nil {
		return nil, fmt.Errorf("scale barcode: %w", err)
	}
	return encodePNG(scaled)
}

// Rendering holds both sizes produced from one payload: the compact
// badge and the enlarged detail image.
type Rendering struct {
	Badge  []byte
	Detail []byte
}

// QRRendering encodes the payload at both sizes.
func QRRendering(payload string) (Rendering, error) {
	badge, err := QRPNG(payload, SizeBadge)
	if err != nil {
		return Rendering{}, err
	}
	detail, err := QRPNG(payload, SizeDetail)
	if err != nil {
		return Rendering{}, err
	}
	return Rendering{Badge: badge, Detail: detail}, nil
}

// BarcodeRendering encodes the payload at both sizes.
func BarcodeRendering(payload string) (Rendering, error) {
	badge, err := BarcodePNG(payload, SizeBadge)
	if err != nil {
		return Rendering{}, err
	}
	detail, err := BarcodePNG(payload, SizeDetail)
	if err != nil {
		return Rendering{}, err
	}
	return Rendering{Badge: badge, Detail: detail}, nil
}

func encodePNG(img barcode.Barcode) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("render png: %w", err)
	}
	return buf.Bytes(), nil
}
