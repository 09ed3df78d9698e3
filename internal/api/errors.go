// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jeranaias/assettrack-tui/internal/model"
)

// Sentinel errors for the failure classes the views care about.
var (
	// ErrNetwork indicates the request never produced a response:
	// connection refused, DNS failure, timeout.
	ErrNetwork = errors.New("network unreachable")

	// ErrStale indicates a 404 on a mutation: the record was already
	// gone when the call arrived.
	ErrStale = errors.New("record no longer exists")
)

// Error is a server-rejected operation: either an HTTP error status or a
// well-formed envelope with success=false. Message is the server's text
// and is shown to the user verbatim.
type Error struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("server error (HTTP %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server error: %s", e.Message)
}

// Is lets a 404 *Error match ErrStale through errors.Is.
func (e *Error) Is(target error) bool {
	return target == ErrStale && e.Status == http.StatusNotFound
}

// =============================================================================
// CLASSIFICATION
// =============================================================================

// Category buckets an error into the handling policy the views apply.
type Category int

const (
	// CategoryOK is returned for a nil error.
	CategoryOK Category = iota
	// CategoryValidation is a client-side required-field failure; no
	// network round-trip happened.
	CategoryValidation
	// CategoryServer is a server-rejected operation; show the server's
	// message verbatim.
	CategoryServer
	// CategoryNetwork is a transport failure; show a generic message.
	CategoryNetwork
	// CategoryStale is a 404 on a mutation; refresh silently.
	CategoryStale
	// CategoryUnexpected is everything else; show a generic message
	// with the raw detail appended.
	CategoryUnexpected
)

// Classify buckets err per the gateway's failure taxonomy. Stale is
// checked before the generic server class since a stale *Error is both.
func Classify(err error) Category {
	switch {
	case err == nil:
		return CategoryOK
	case errors.Is(err, model.ErrMissingField), errors.Is(err, model.ErrInvalidItem):
		return CategoryValidation
	case errors.Is(err, ErrStale):
		return CategoryStale
	case errors.Is(err, ErrNetwork):
		return CategoryNetwork
	default:
		var apiErr *Error
		if errors.As(err, &apiErr) {
			return CategoryServer
		}
		return CategoryUnexpected
	}
}

// UserMessage maps err to the text a view should display.
func UserMessage(err error) string {
	switch Classify(err) {
	case CategoryOK:
		return ""
	case CategoryValidation:
		return err.Error()
	case CategoryServer:
		var apiErr *Error
		errors.As(err, &apiErr)
		return apiErr.Message
	case CategoryNetwork:
		return "Network unreachable. Check your connection and try again."
	case CategoryStale:
		return "This record no longer exists."
	default:
		return fmt.Sprintf("Unexpected error: %v", err)
	}
}
