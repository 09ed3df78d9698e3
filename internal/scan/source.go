// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package scan

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "image/jpeg"
	_ "image/png"
)

// =============================================================================
// FRAME SOURCES
// =============================================================================

// ErrSourceDenied is returned when the frame source cannot be opened for
// permission reasons.
var ErrSourceDenied = errors.New("frame source access denied")

// FrameSource yields successive frames for the decode loop. Next returns
// io.EOF when the source is exhausted.
type FrameSource interface {
	Next(ctx context.Context) (image.Image, error)
	Close() error
}

// --- directory source ---

// DirSource reads image files from a directory in name order. It stands
// in for a camera on systems where frames are captured out of band.
type DirSource struct {
	paths []string
	pos   int
}

// NewDirSource lists the decodable images under dir.
func NewDirSource(dir string) (*DirSource, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrPermission) {
		return nil, fmt.Errorf("%w: %s", ErrSourceDenied, dir)
	}
	if err != nil {
		return nil, fmt.Errorf("open frame source: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".png", ".jpg", ".jpeg":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return &DirSource{paths: paths}, nil
}

// Next decodes the next frame, skipping files that fail to decode.
func (s *DirSource) Next(ctx context.Context) (image.Image, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if s.pos >= len(s.paths) {
			return nil, io.EOF
		}
		path := s.paths[s.pos]
		s.pos++

		f, err := os.Open(path)
		if errors.Is(err, os.ErrPermission) {
			return nil, fmt.Errorf("%w: %s", ErrSourceDenied, path)
		}
		if err != nil {
			continue
		}
		img, _, err := image.Decode(f)
		f.Close()
		if err != nil {
			continue
		}
		return img, nil
	}
}

// Close implements FrameSource.
func (s *DirSource) Close() error { return nil }

// --- file source ---

// FileSource yields a single image once, then io.EOF.
type FileSource struct {
	path string
	done bool
}

// NewFileSource wraps one image file as a source.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Next(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.done {
		return nil, io.EOF
	}
	s.done = true

	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrPermission) {
		return nil, fmt.Errorf("%w: %s", ErrSourceDenied, s.path)
	}
	if err != nil {
		return nil, fmt.Errorf("open frame: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode frame: %w", err)
	}
	return img, nil
}

func (s *FileSource) Close() error { return nil }

// --- channel source ---

// ChanSource yields frames pushed on a channel. Used in tests and by
// callers that produce frames programmatically. A closed channel ends
// the source.
type ChanSource struct {
	Frames <-chan image.Image
}

func (s *ChanSource) Next(ctx context.Context) (image.Image, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case img, ok := <-s.Frames:
		if !ok {
			return nil, io.EOF
		}
		return img, nil
	}
}

func (s *ChanSource) Close() error { return nil }
