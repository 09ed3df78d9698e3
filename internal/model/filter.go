// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"

	"golang.org/x/text/cases"
)

// searchFolder lowercases with full Unicode case folding so the search
// filter behaves the same for non-ASCII requester names.
var searchFolder = cases.Fold()

// foldContains reports whether substr occurs in s under case folding.
func foldContains(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(searchFolder.String(s), searchFolder.String(substr))
}

// =============================================================================
// REQUEST FILTER
// =============================================================================

// RequestFilter selects requests by three independent predicates combined
// with AND. Zero values mean "match everything" for that predicate.
//
// Status matches the derived status, so the Issued and Returned
// pseudo-statuses are valid filter values. Search is a case-insensitive
// substring match over the request ID and the requester name.
//
// Apply is pure: filters in any order over the same collection yield the
// same set, and applying one never triggers a refetch.
type RequestFilter struct {
	Type   string
	Status Status
	Search string
}

// Match reports whether one request passes every predicate.
func (f RequestFilter) Match(r Request) bool {
	if f.Type != "" && r.RequestType != f.Type {
		return false
	}
	if f.Status != "" && DeriveStatus(r) != f.Status {
		return false
	}
	if f.Search != "" &&
		!foldContains(r.RequestID, f.Search) &&
		!foldContains(r.Requester, f.Search) {
		return false
	}
	return true
}

// Apply returns the requests passing the filter, preserving input order.
// The input slice is never modified.
func (f RequestFilter) Apply(reqs []Request) []Request {
	out := make([]Request, 0, len(reqs))
	for _, r := range reqs {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// =============================================================================
// HISTORY FILTER
// =============================================================================

// HistoryFilter is the All/Issued/Returned toggle on the history views.
type HistoryFilter string

const (
	HistoryAll      HistoryFilter = "All"
	HistoryIssued   HistoryFilter = "Issued"
	HistoryReturned HistoryFilter = "Returned"
)

// Match reports whether a request belongs under the selected toggle.
func (f HistoryFilter) Match(r Request) bool {
	switch f {
	case HistoryIssued:
		return r.Issued()
	case HistoryReturned:
		return r.Returned()
	default:
		return true
	}
}

// Apply returns the requests passing the filter, preserving input order.
func (f HistoryFilter) Apply(reqs []Request) []Request {
	out := make([]Request, 0, len(reqs))
	for _, r := range reqs {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// =============================================================================
// ITEM FILTER
// =============================================================================

// ItemFilter selects inventory items by category, derived availability
// and a name/SKU substring search. Predicates AND together like
// RequestFilter's.
type ItemFilter struct {
	Category string
	Status   Availability
	Search   string
}

// Match reports whether one item passes every predicate.
func (f ItemFilter) Match(i Item) bool {
	if f.Category != "" && i.CategoryOrDefault() != f.Category {
		return false
	}
	if f.Status != "" && i.StockAvailability() != f.Status {
		return false
	}
	if f.Search != "" &&
		!foldContains(i.Name, f.Search) &&
		!foldContains(i.SKU, f.Search) {
		return false
	}
	return true
}

// Apply returns the items passing the filter, preserving input order.
func (f ItemFilter) Apply(items []Item) []Item {
	out := make([]Item, 0, len(items))
	for _, i := range items {
		if f.Match(i) {
			out = append(out, i)
		}
	}
	return out
}
