// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"errors"
	"fmt"
	"time"
)

// =============================================================================
// REQUEST STATUS
// =============================================================================

// Status is the lifecycle status of an asset request.
//
// Pending, Approved, Rejected and Completed are stored server-side; Issued
// and Returned are derived from the issue/return dates and never sent on
// the wire.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusApproved  Status = "Approved"
	StatusRejected  Status = "Rejected"
	StatusCompleted Status = "Completed"

	// Derived pseudo-statuses (display only, never stored).
	StatusIssued   Status = "Issued"
	StatusReturned Status = "Returned"
)

// String returns the status as a plain string.
func (s Status) String() string { return string(s) }

// Terminal reports whether no further lifecycle action applies.
func (s Status) Terminal() bool {
	return s == StatusRejected || s == StatusReturned
}

// =============================================================================
// REQUEST
// =============================================================================

// Request represents one asset lifecycle instance as the API serves it.
//
// The timestamp fields are the raw wire strings (RFC3339 or the backend's
// date format); presence, not content, drives the lifecycle:
// IssueDate is set only after approval, ReturnDate only after IssueDate,
// and a request with ReturnDate set is terminal regardless of Status.
type Request struct {
	RequestID   string `json:"requestId"`
	UserID      string `json:"userId"`
	Requester   string `json:"requester,omitempty"`
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	RequestType string `json:"requestType,omitempty"`

	Status    Status `json:"status"`
	Timestamp string `json:"timestamp"`

	// Assigned on issuance.
	AdminID  string `json:"adminId,omitempty"`
	IssuedTo string `json:"issuedTo,omitempty"`

	IssueDate  string `json:"issueDate,omitempty"`
	ReturnDate string `json:"returnDate,omitempty"`
}

// Issued reports whether the asset is currently out with the holder.
func (r Request) Issued() bool {
	return r.IssueDate != "" && r.ReturnDate == ""
}

// Returned reports whether the asset has come back. Returned requests are
// terminal no matter what the raw Status says.
func (r Request) Returned() bool {
	return r.ReturnDate != ""
}

// Issuable reports whether an admin may issue this request: the only legal
// entry point is an approved request that has not been handed out yet.
func (r Request) Issuable() bool {
	return r.Status == StatusApproved && r.IssueDate == ""
}

// DeriveStatus computes the display status for a request.
//
// Returned wins over everything, then Issued, then the raw stored status.
// Every view goes through this one function so the derivation cannot
// drift between screens.
func DeriveStatus(r Request) Status {
	switch {
	case r.ReturnDate != "":
		return StatusReturned
	case r.IssueDate != "":
		return StatusIssued
	default:
		return r.Status
	}
}

// =============================================================================
// REQUEST CREATION
// =============================================================================

// ErrMissingField indicates a mandatory request field was left empty.
// Detected client-side before any network call is made.
var ErrMissingField = errors.New("missing required field")

// NewRequest holds the fields a requester submits to create a request.
type NewRequest struct {
	UserID      string `json:"userId"`
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Status      Status `json:"status"`
	Timestamp   string `json:"timestamp"`
}

// MakeRequest builds a submission for the given user and product, stamped
// with the current time and an initial Pending status.
func MakeRequest(userID, productID, productName string, now time.Time) NewRequest {
	return NewRequest{
		UserID:      userID,
		ProductID:   productID,
		ProductName: productName,
		Status:      StatusPending,
		Timestamp:   now.Format(time.RFC3339),
	}
}

// Validate checks the four mandatory fields. A failure here aborts the
// submission before it reaches the gateway.
func (n NewRequest) Validate() error {
	for _, f := range []struct{ name, val string }{
		{"userId", n.UserID},
		{"productId", n.ProductID},
		{"productName", n.ProductName},
		{"timestamp", n.Timestamp},
	} {
		if f.val == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, f.name)
		}
	}
	return nil
}

// =============================================================================
// DISPLAY HELPERS
// =============================================================================

// wireDateFormats are the timestamp layouts the backend has been observed
// to emit.
var wireDateFormats = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseWhen parses a wire timestamp. The zero time and false are returned
// for empty or unrecognized values.
func ParseWhen(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range wireDateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatWhen renders a wire timestamp as a short local date for tables,
// or "N/A" when the field is unset or unparseable.
func FormatWhen(s string) string {
	t, ok := ParseWhen(s)
	if !ok {
		return "N/A"
	}
	return t.Local().Format("2006-01-02")
}
