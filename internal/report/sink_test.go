// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package report

import (
	"log"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestSink_AppendsInOrder(t *testing.T) {
	s := NewSink()
	s.Event("first")
	s.Infof("second %d", 2)
	s.Errorf("third")

	entries := s.Entries()
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	if entries[0].Message != "first" {
		t.Errorf("entry 0 = %q", entries[0].Message)
	}
	if entries[1].Message != "second 2" {
		t.Errorf("entry 1 = %q", entries[1].Message)
	}
	if !strings.HasPrefix(entries[2].Message, "ERROR: ") {
		t.Errorf("entry 2 = %q, want ERROR prefix", entries[2].Message)
	}
}

func TestSink_EntriesIsSnapshot(t *testing.T) {
	s := NewSink()
	s.Event("one")

	snap := s.Entries()
	s.Event("two")

	if len(snap) != 1 {
		t.Errorf("snapshot grew with the sink: %d entries", len(snap))
	}
}

func TestSink_BoundedCapacity(t *testing.T) {
	s := NewSink()
	for i := 0; i < maxEntries+50; i++ {
		s.Event("entry")
	}
	if got := s.Len(); got != maxEntries {
		t.Errorf("sink holds %d entries, want cap %d", got, maxEntries)
	}
}

func TestSink_ConcurrentAppend(t *testing.T) {
	s := NewSink()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				s.Event("concurrent")
			}
		}()
	}
	wg.Wait()

	if got := s.Len(); got != 1000 {
		t.Errorf("got %d entries, want 1000", got)
	}
}

func TestSink_EntriesOn_DayWindow(t *testing.T) {
	loc := time.UTC
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, loc)
	s := NewSinkWithClock(func() time.Time { return now })

	// Yesterday, just before midnight.
	now = time.Date(2025, 3, 9, 23, 59, 59, 0, loc)
	s.Event("yesterday")

	// Today, midnight exactly (inclusive) and midday.
	now = time.Date(2025, 3, 10, 0, 0, 0, 0, loc)
	s.Event("midnight")
	now = time.Date(2025, 3, 10, 12, 0, 0, 0, loc)
	s.Event("midday")

	// Tomorrow, midnight exactly (exclusive).
	now = time.Date(2025, 3, 11, 0, 0, 0, 0, loc)
	s.Event("tomorrow")

	day := time.Date(2025, 3, 10, 15, 4, 5, 0, loc)
	got := s.EntriesOn(day)
	if len(got) != 2 {
		t.Fatalf("got %d entries in window, want 2: %+v", len(got), got)
	}
	if got[0].Message != "midnight" || got[1].Message != "midday" {
		t.Errorf("window entries = %q, %q", got[0].Message, got[1].Message)
	}
}

func TestInstallGlobal_CapturesStdlibLog(t *testing.T) {
	s := NewSink()
	InstallGlobal(s)
	defer log.SetOutput(log.Writer())

	log.Printf("stray %s call", "log")

	entries := s.Entries()
	if len(entries) != 1 || entries[0].Message != "stray log call" {
		t.Errorf("entries = %+v", entries)
	}
}

func TestEntry_Line(t *testing.T) {
	e := Entry{
		Timestamp: time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC),
		Message:   "item issued",
	}
	want := "[2025-03-10T09:30:00Z] item issued"
	if got := e.Line(); got != want {
		t.Errorf("Line() = %q, want %q", got, want)
	}
}
