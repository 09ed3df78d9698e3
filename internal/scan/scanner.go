// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package scan

import (
	"context"
	"errors"
	"image"
	"io"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/oned"
	"github.com/makiuchi-d/gozxing/qrcode"
	"golang.org/x/time/rate"

	"github.com/jeranaias/assettrack-tui/internal/report"
)

// =============================================================================
// DECODE LOOP
// =============================================================================

// ErrNoCode is returned when the source is exhausted without any frame
// decoding successfully.
var ErrNoCode = errors.New("no code found in any frame")

// Decode attempts to read a QR code or Code 128 barcode from a single
// frame. Returns the decoded payload.
func Decode(img image.Image) (string, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", err
	}

	if res, err := qrcode.NewQRCodeReader().Decode(bmp, nil); err == nil {
		return res.GetText(), nil
	}
	res, err := oned.NewCode128Reader().Decode(bmp, nil)
	if err != nil {
		return "", err
	}
	return res.GetText(), nil
}

// Scanner runs the decode loop over a frame source. Frames are sampled
// at a bounded rate; the first successful decode ends the loop, so the
// result is delivered at most once.
type Scanner struct {
	source  FrameSource
	limiter *rate.Limiter
	logger  report.Logger
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithMaxFPS caps decode attempts per second.
func WithMaxFPS(fps int) Option {
	return func(s *Scanner) {
		if fps > 0 {
			s.limiter = rate.NewLimiter(rate.Limit(fps), 1)
		}
	}
}

// WithLogger sets the scan event logger.
func WithLogger(l report.Logger) Option {
	return func(s *Scanner) { s.logger = l }
}

// NewScanner creates a scanner over src.
func NewScanner(src FrameSource, opts ...Option) *Scanner {
	s := &Scanner{
		source:  src,
		limiter: rate.NewLimiter(rate.Limit(10), 1),
		logger:  report.Nop,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run consumes frames until one decodes, the source ends, or ctx is
// cancelled. Returns the decoded payload from the first frame that
// yields one.
func (s *Scanner) Run(ctx context.Context) (string, error) {
	frames := 0
	for {
		if err := s.limiter.Wait(ctx); err != nil {
			return "", err
		}

		img, err := s.source.Next(ctx)
		if errors.Is(err, io.EOF) {
			s.logger.Infof("scan ended after %d frames, no code found", frames)
			return "", ErrNoCode
		}
		if err != nil {
			return "", err
		}
		frames++

		payload, err := Decode(img)
		if err != nil {
			// Frames without a readable code are expected; keep going.
			continue
		}
		s.logger.Event("QR code detected")
		return payload, nil
	}
}

// Close releases the underlying frame source.
func (s *Scanner) Close() error {
	return s.source.Close()
}
