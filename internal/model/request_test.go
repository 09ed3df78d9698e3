// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"errors"
	"testing"
	"time"
)

// =============================================================================
// DERIVED STATUS TESTS
// =============================================================================

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want Status
	}{
		{"pending raw", Request{Status: StatusPending}, StatusPending},
		{"approved raw", Request{Status: StatusApproved}, StatusApproved},
		{"rejected raw", Request{Status: StatusRejected}, StatusRejected},
		{"issued", Request{Status: StatusApproved, IssueDate: "2025-03-01"}, StatusIssued},
		{
			"returned",
			Request{Status: StatusApproved, IssueDate: "2025-03-01", ReturnDate: "2025-03-09"},
			StatusReturned,
		},
		{
			// Return date wins even when the stored status never caught up.
			"returned with stale status",
			Request{Status: StatusPending, IssueDate: "2025-03-01", ReturnDate: "2025-03-09"},
			StatusReturned,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveStatus(tt.req); got != tt.want {
				t.Errorf("DeriveStatus() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRequest_Issuable(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want bool
	}{
		{"approved not issued", Request{Status: StatusApproved}, true},
		{"pending", Request{Status: StatusPending}, false},
		{"rejected", Request{Status: StatusRejected}, false},
		{"already issued", Request{Status: StatusApproved, IssueDate: "2025-03-01"}, false},
		{
			"already returned",
			Request{Status: StatusApproved, IssueDate: "2025-03-01", ReturnDate: "2025-03-09"},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.req.Issuable(); got != tt.want {
				t.Errorf("Issuable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRequest_ReturnImpliesIssue(t *testing.T) {
	// The lifecycle invariant: anything Returned was necessarily Issued
	// first. Walk every call order the views can produce.
	r := Request{RequestID: "r1", Status: StatusApproved}

	if r.Returned() {
		t.Fatal("fresh request reported returned")
	}

	r.IssueDate = "2025-03-01T10:00:00Z"
	if !r.Issued() {
		t.Fatal("issued request not reported issued")
	}

	r.ReturnDate = "2025-03-09T10:00:00Z"
	if !r.Returned() {
		t.Fatal("returned request not reported returned")
	}
	if r.IssueDate == "" {
		t.Fatal("return recorded without an issue date")
	}
	if r.Issued() {
		t.Error("returned request still reported as out")
	}
}

// =============================================================================
// SUBMISSION TESTS
// =============================================================================

func TestMakeRequest(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	n := MakeRequest("u1", "p1", "Laptop", now)

	if n.Status != StatusPending {
		t.Errorf("new request status = %q, want Pending", n.Status)
	}
	if n.Timestamp != "2025-03-01T12:00:00Z" {
		t.Errorf("timestamp = %q", n.Timestamp)
	}
	if err := n.Validate(); err != nil {
		t.Errorf("valid submission rejected: %v", err)
	}
}

func TestNewRequest_Validate(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name string
		req  NewRequest
	}{
		{"missing user", MakeRequest("", "p1", "Laptop", now)},
		{"missing product id", MakeRequest("u1", "", "Laptop", now)},
		{"missing product name", MakeRequest("u1", "p1", "", now)},
		{"missing timestamp", NewRequest{UserID: "u1", ProductID: "p1", ProductName: "Laptop"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if !errors.Is(err, ErrMissingField) {
				t.Errorf("Validate() = %v, want ErrMissingField", err)
			}
		})
	}
}

// =============================================================================
// WIRE DATE TESTS
// =============================================================================

func TestParseWhen(t *testing.T) {
	if _, ok := ParseWhen(""); ok {
		t.Error("empty timestamp parsed")
	}
	if _, ok := ParseWhen("not a date"); ok {
		t.Error("garbage timestamp parsed")
	}
	for _, s := range []string{"2025-03-01T10:00:00Z", "2025-03-01 10:00:00", "2025-03-01"} {
		if _, ok := ParseWhen(s); !ok {
			t.Errorf("ParseWhen(%q) failed", s)
		}
	}
}

func TestFormatWhen(t *testing.T) {
	if got := FormatWhen(""); got != "N/A" {
		t.Errorf("FormatWhen(empty) = %q, want N/A", got)
	}
	if got := FormatWhen("2025-03-01"); got != "2025-03-01" {
		t.Errorf("FormatWhen(date) = %q", got)
	}
}
