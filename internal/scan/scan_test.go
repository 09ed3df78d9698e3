// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package scan

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"strings"
	"testing"
	"time"
)

func decodePNG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	return img
}

func TestQRPNGRoundTrip(t *testing.T) {
	payload := "ASSET-7f3b2a"
	data, err := QRPNG(payload, SizeDetail)
	if err != nil {
		t.Fatalf("QRPNG: %v", err)
	}

	got, err := Decode(decodePNG(t, data))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got != payload {
		t.Errorf("decoded %q, want %q", got, payload)
	}
}

func TestBarcodePNGRoundTrip(t *testing.T) {
	payload := "INV-2031"
	data, err := BarcodePNG(payload, SizeDetail)
	if err != nil {
		t.Fatalf("BarcodePNG: %v", err)
	}

	got, err := Decode(decodePNG(t, data))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got != payload {
		t.Errorf("decoded %q, want %q", got, payload)
	}
}

func TestRenderingProducesBothSizes(t *testing.T) {
	payload := "ASSET-dual"
	rendered, err := QRRendering(payload)
	if err != nil {
		t.Fatalf("QRRendering: %v", err)
	}

	badge := decodePNG(t, rendered.Badge)
	detail := decodePNG(t, rendered.Detail)
	if badge.Bounds().Dx() >= detail.Bounds().Dx() {
		t.Errorf("badge %v not smaller than detail %v", badge.Bounds(), detail.Bounds())
	}
	for name, img := range map[string]image.Image{"badge": badge, "detail": detail} {
		got, err := Decode(img)
		if err != nil {
			t.Fatalf("Decode %s: %v", name, err)
		}
		if got != payload {
			t.Errorf("%s decoded %q, want %q", name, got, payload)
		}
	}

	if _, err := BarcodeRendering(""); !errors.Is(err, ErrEmptyPayload) {
		t.Errorf("BarcodeRendering empty: err = %v, want ErrEmptyPayload", err)
	}
}

func TestGenerateRejectsEmptyPayload(t *testing.T) {
	if _, err := QRPNG("", SizeBadge); !errors.Is(err, ErrEmptyPayload) {
		t.Errorf("QRPNG empty: err = %v, want ErrEmptyPayload", err)
	}
	if _, err := BarcodePNG("", SizeBadge); !errors.Is(err, ErrEmptyPayload) {
		t.Errorf("BarcodePNG empty: err = %v, want ErrEmptyPayload", err)
	}
}

func TestGenerateRejectsOversizedPayload(t *testing.T) {
	long := strings.Repeat("x", maxPayloadLen+1)
	if _, err := QRPNG(long, SizeBadge); !errors.Is(err, ErrPayloadTooLong) {
		t.Errorf("QRPNG oversized: err = %v, want ErrPayloadTooLong", err)
	}
}

func TestScannerStopsAtFirstDecode(t *testing.T) {
	blank := image.NewGray(image.Rect(0, 0, 64, 64))
	qrData, err := QRPNG("ASSET-once", SizeDetail)
	if err != nil {
		t.Fatal(err)
	}
	coded := decodePNG(t, qrData)

	frames := make(chan image.Image, 4)
	frames <- blank
	frames <- coded
	frames <- coded // must never be consumed as a second result
	close(frames)

	s := NewScanner(&ChanSource{Frames: frames}, WithMaxFPS(1000))
	got, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got != "ASSET-once" {
		t.Errorf("payload = %q", got)
	}
	// The loop stopped at the first success.
	if len(frames) != 1 {
		t.Errorf("frames remaining = %d, want 1", len(frames))
	}
}

func TestScannerExhaustedSource(t *testing.T) {
	frames := make(chan image.Image, 2)
	frames <- image.NewGray(image.Rect(0, 0, 32, 32))
	frames <- image.NewGray(image.Rect(0, 0, 32, 32))
	close(frames)

	s := NewScanner(&ChanSource{Frames: frames}, WithMaxFPS(1000))
	if _, err := s.Run(context.Background()); !errors.Is(err, ErrNoCode) {
		t.Errorf("err = %v, want ErrNoCode", err)
	}
}

func TestScannerCancel(t *testing.T) {
	frames := make(chan image.Image) // never delivers
	s := NewScanner(&ChanSource{Frames: frames}, WithMaxFPS(1000))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := s.Run(ctx)
		done <- err
	}()
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("err = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestDirSourceMissing(t *testing.T) {
	if _, err := NewDirSource("/nonexistent/frames"); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
