// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"reflect"
	"testing"
)

func sampleRequests() []Request {
	return []Request{
		{RequestID: "REQ-1", Requester: "Alice", RequestType: "hardware", Status: StatusPending},
		{RequestID: "REQ-2", Requester: "Bob", RequestType: "hardware", Status: StatusApproved},
		{RequestID: "REQ-3", Requester: "Carol", RequestType: "software", Status: StatusApproved, IssueDate: "2025-03-01"},
		{RequestID: "REQ-4", Requester: "alice", RequestType: "software", Status: StatusApproved, IssueDate: "2025-02-01", ReturnDate: "2025-02-20"},
		{RequestID: "REQ-5", Requester: "Dave", RequestType: "hardware", Status: StatusRejected},
	}
}

func ids(reqs []Request) []string {
	out := make([]string, len(reqs))
	for i, r := range reqs {
		out[i] = r.RequestID
	}
	return out
}

// =============================================================================
// REQUEST FILTER TESTS
// =============================================================================

func TestRequestFilter_Apply(t *testing.T) {
	reqs := sampleRequests()

	tests := []struct {
		name   string
		filter RequestFilter
		want   []string
	}{
		{"empty matches all", RequestFilter{}, []string{"REQ-1", "REQ-2", "REQ-3", "REQ-4", "REQ-5"}},
		{"by type", RequestFilter{Type: "software"}, []string{"REQ-3", "REQ-4"}},
		{"by raw status", RequestFilter{Status: StatusPending}, []string{"REQ-1"}},
		{"by derived issued", RequestFilter{Status: StatusIssued}, []string{"REQ-3"}},
		{"by derived returned", RequestFilter{Status: StatusReturned}, []string{"REQ-4"}},
		{"search id", RequestFilter{Search: "req-2"}, []string{"REQ-2"}},
		{"search requester folded", RequestFilter{Search: "ALICE"}, []string{"REQ-1", "REQ-4"}},
		{"all three", RequestFilter{Type: "hardware", Status: StatusApproved, Search: "bob"}, []string{"REQ-2"}},
		{"no match", RequestFilter{Type: "hardware", Status: StatusReturned}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(tt.filter.Apply(reqs))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Apply() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRequestFilter_OrderIndependent(t *testing.T) {
	// Predicates AND together, so narrowing in any order must land on the
	// same set as one combined pass.
	reqs := sampleRequests()
	combined := RequestFilter{Type: "software", Status: StatusIssued, Search: "req"}

	byType := RequestFilter{Type: "software"}
	byStatus := RequestFilter{Status: StatusIssued}
	bySearch := RequestFilter{Search: "req"}

	sequences := [][]RequestFilter{
		{byType, byStatus, bySearch},
		{bySearch, byType, byStatus},
		{byStatus, bySearch, byType},
	}

	want := ids(combined.Apply(reqs))
	for i, seq := range sequences {
		got := reqs
		for _, f := range seq {
			got = f.Apply(got)
		}
		if !reflect.DeepEqual(ids(got), want) {
			t.Errorf("sequence %d: got %v, want %v", i, ids(got), want)
		}
	}
}

func TestRequestFilter_DoesNotMutateInput(t *testing.T) {
	reqs := sampleRequests()
	before := ids(reqs)

	RequestFilter{Status: StatusPending}.Apply(reqs)

	if !reflect.DeepEqual(ids(reqs), before) {
		t.Error("Apply mutated its input slice")
	}
}

// =============================================================================
// HISTORY FILTER TESTS
// =============================================================================

func TestHistoryFilter(t *testing.T) {
	reqs := sampleRequests()

	if got := ids(HistoryAll.Apply(reqs)); len(got) != len(reqs) {
		t.Errorf("All filtered to %v", got)
	}
	if got := ids(HistoryIssued.Apply(reqs)); !reflect.DeepEqual(got, []string{"REQ-3"}) {
		t.Errorf("Issued = %v", got)
	}
	if got := ids(HistoryReturned.Apply(reqs)); !reflect.DeepEqual(got, []string{"REQ-4"}) {
		t.Errorf("Returned = %v", got)
	}
}

// =============================================================================
// ITEM FILTER TESTS
// =============================================================================

func TestItemFilter_Apply(t *testing.T) {
	items := []Item{
		{ID: "1", Name: "ThinkPad X1", SKU: "LT-100", Category: "Laptops", Quantity: 4},
		{ID: "2", Name: "Dell U2720Q", SKU: "MN-200", Category: "Monitors", Quantity: 0},
		{ID: "3", Name: "iPad Air", SKU: "TB-300", Category: "", Quantity: 2},
	}

	got := ItemFilter{Category: "Laptops"}.Apply(items)
	if len(got) != 1 || got[0].ID != "1" {
		t.Errorf("category filter = %+v", got)
	}

	// Inventory management reads an empty shelf as Out of Stock, and the
	// stock filter must agree with what the list renders.
	got = ItemFilter{Status: AvailabilityOutOfStock}.Apply(items)
	if len(got) != 1 || got[0].ID != "2" {
		t.Errorf("out-of-stock filter = %+v", got)
	}

	got = ItemFilter{Status: AvailabilityAvailable}.Apply(items)
	if len(got) != 2 {
		t.Errorf("available filter = %+v", got)
	}

	got = ItemFilter{Search: "thinkpad"}.Apply(items)
	if len(got) != 1 || got[0].ID != "1" {
		t.Errorf("search filter = %+v", got)
	}

	// Blank category falls back to the Uncategorized bucket.
	got = ItemFilter{Category: "Uncategorized"}.Apply(items)
	if len(got) != 1 || got[0].ID != "3" {
		t.Errorf("uncategorized filter = %+v", got)
	}
}

func TestItem_Availability(t *testing.T) {
	in := Item{Quantity: 3}
	out := Item{Quantity: 0}

	if in.Availability() != AvailabilityAvailable || in.StockAvailability() != AvailabilityAvailable {
		t.Error("stocked item not Available")
	}
	if out.Availability() != AvailabilityInUse {
		t.Error("depleted item should read In Use on asset views")
	}
	if out.StockAvailability() != AvailabilityOutOfStock {
		t.Error("depleted item should read Out of Stock on inventory views")
	}
}
