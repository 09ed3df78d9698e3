// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package report

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// LOGGER INTERFACE
// =============================================================================

// Logger records interesting events. Components take a Logger instead of
// writing to ambient globals so tests can capture exactly what was logged.
type Logger interface {
	// Infof records a formatted informational event.
	Infof(format string, args ...any)

	// Errorf records a formatted error event.
	Errorf(format string, args ...any)

	// Event records a plain message verbatim.
	Event(message string)
}

// Nop is a Logger that discards everything.
var Nop Logger = nopLogger{}

type nopLogger struct{}

func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}
func (nopLogger) Event(string)          {}

// =============================================================================
// ENTRY
// =============================================================================

// Entry is one recorded event.
type Entry struct {
	ID        string
	Timestamp time.Time
	Message   string
}

// Line renders the entry in the export format.
func (e Entry) Line() string {
	return fmt.Sprintf("[%s] %s", e.Timestamp.Format(time.RFC3339), e.Message)
}

// =============================================================================
// SINK
// =============================================================================

// maxEntries bounds the sink so a long-lived session cannot grow without
// limit. Oldest entries are dropped first.
const maxEntries = 10000

// Sink is an append-only, in-memory event log. Safe for concurrent use.
type Sink struct {
	mu      sync.Mutex
	entries []Entry
	clock   func() time.Time
}

// NewSink creates an empty sink using the wall clock.
func NewSink() *Sink {
	return &Sink{clock: time.Now}
}

// NewSinkWithClock creates a sink with an injectable clock for tests.
func NewSinkWithClock(clock func() time.Time) *Sink {
	return &Sink{clock: clock}
}

// Infof implements Logger.
func (s *Sink) Infof(format string, args ...any) {
	s.Event(fmt.Sprintf(format, args...))
}

// Errorf implements Logger.
func (s *Sink) Errorf(format string, args ...any) {
	s.Event("ERROR: " + fmt.Sprintf(format, args...))
}

// Event implements Logger.
func (s *Sink) Event(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, Entry{
		ID:        uuid.NewString(),
		Timestamp: s.clock(),
		Message:   message,
	})
	if len(s.entries) > maxEntries {
		s.entries = s.entries[len(s.entries)-maxEntries:]
	}
}

// Entries returns a snapshot of all recorded entries in append order.
func (s *Sink) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of recorded entries.
func (s *Sink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// EntriesOn returns the entries whose timestamp falls on the given local
// calendar day, midnight to midnight.
func (s *Sink) EntriesOn(day time.Time) []Entry {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Entry
	for _, e := range s.entries {
		ts := e.Timestamp.In(day.Location())
		if !ts.Before(start) && ts.Before(end) {
			out = append(out, e)
		}
	}
	return out
}

// =============================================================================
// GLOBAL INSTALLATION
// =============================================================================

// InstallGlobal routes the stdlib log default output into the sink, so
// stray log.Printf calls from any package land in the export too. The
// explicit Logger interface remains the front door; this catches the rest.
func InstallGlobal(s *Sink) {
	log.SetFlags(0)
	log.SetOutput(sinkWriter{s})
}

type sinkWriter struct {
	sink *Sink
}

func (w sinkWriter) Write(p []byte) (int, error) {
	msg := string(p)
	if n := len(msg); n > 0 && msg[n-1] == '\n' {
		msg = msg[:n-1]
	}
	if msg != "" {
		w.sink.Event(msg)
	}
	return len(p), nil
}
