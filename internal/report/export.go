// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package report

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jeranaias/assettrack-tui/internal/util"
)

// ErrNoEntries indicates nothing was logged in the export window. No file
// is produced in that case; the caller shows a notice instead.
var ErrNoEntries = errors.New("no log entries for today")

// Filename returns the export file name for the given day.
func Filename(day time.Time) string {
	return fmt.Sprintf("logs-%s.txt", day.Format("2006-01-02"))
}

// ExportDay writes the entries recorded on the given local calendar day to
// <dir>/logs-YYYY-MM-DD.txt, one formatted line per entry. Returns the
// written path, or ErrNoEntries without touching the filesystem when the
// day is empty.
func ExportDay(s *Sink, dir string, day time.Time) (string, error) {
	entries := s.EntriesOn(day)
	if len(entries) == 0 {
		return "", ErrNoEntries
	}

	var b strings.Builder
	for _, e := range entries {
		b.WriteString(e.Line())
		b.WriteByte('\n')
	}

	path := filepath.Join(dir, Filename(day))
	if err := util.AtomicWriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", fmt.Errorf("write log export: %w", err)
	}
	return path, nil
}

// ExportToday is ExportDay for the current local day.
func ExportToday(s *Sink, dir string) (string, error) {
	return ExportDay(s, dir, time.Now())
}
