// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"errors"
	"fmt"
)

// =============================================================================
// INVENTORY ITEM
// =============================================================================

// Availability is the derived stock state of an inventory item.
type Availability string

const (
	AvailabilityAvailable  Availability = "Available"
	AvailabilityInUse      Availability = "In Use"
	AvailabilityOutOfStock Availability = "Out of Stock"
)

// Item is one inventory/asset record as the API serves it.
type Item struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	SKU       string  `json:"sku"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	ImageURL  string  `json:"image_url,omitempty"`
}

// Availability derives the stock state for asset-browsing views: any
// quantity means Available, zero means the asset is out with someone.
func (i Item) Availability() Availability {
	if i.Quantity > 0 {
		return AvailabilityAvailable
	}
	return AvailabilityInUse
}

// StockAvailability derives the stock state for inventory-management
// views, where an empty shelf reads as Out of Stock rather than In Use.
func (i Item) StockAvailability() Availability {
	if i.Quantity > 0 {
		return AvailabilityAvailable
	}
	return AvailabilityOutOfStock
}

// CategoryOrDefault returns the item category, with a fallback for
// records saved before categories were mandatory.
func (i Item) CategoryOrDefault() string {
	if i.Category == "" {
		return "Uncategorized"
	}
	return i.Category
}

// =============================================================================
// ITEM SUBMISSION
// =============================================================================

// NewItem holds the fields an admin submits to create or update an item.
type NewItem struct {
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	SKU       string  `json:"sku"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	ImageURL  string  `json:"image_url,omitempty"`
}

// ErrInvalidItem indicates an item submission failed the basic field checks.
var ErrInvalidItem = errors.New("invalid inventory item")

// Validate applies the required-field and non-negativity checks. Anything
// beyond this is the server's business.
func (n NewItem) Validate() error {
	if n.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidItem)
	}
	if n.SKU == "" {
		return fmt.Errorf("%w: sku is required", ErrInvalidItem)
	}
	if n.Quantity < 0 {
		return fmt.Errorf("%w: quantity must be >= 0", ErrInvalidItem)
	}
	if n.UnitPrice < 0 {
		return fmt.Errorf("%w: unit_price must be >= 0", ErrInvalidItem)
	}
	return nil
}

// =============================================================================
// DASHBOARD SUMMARIES
// =============================================================================

// AdminSummary is the payload of GET /dashboard-data.
type AdminSummary struct {
	TotalItems    int       `json:"total_items"`
	TotalValue    float64   `json:"total_value"`
	LowStockItems []Item    `json:"low_stock_items"`
	TotalOrders   int       `json:"total_orders"`
	PendingOrders int       `json:"pending_orders"`
	RecentOrders  []Request `json:"recent_orders"`
}

// OutOfStockCount counts the low-stock entries that are fully depleted.
func (s AdminSummary) OutOfStockCount() int {
	n := 0
	for _, item := range s.LowStockItems {
		if item.Quantity == 0 {
			n++
		}
	}
	return n
}

// UserSummary is the payload of GET /user-dashboard-data.
type UserSummary struct {
	TotalAssets     int `json:"total_assets"`
	CheckedOut      int `json:"checked_out"`
	Available       int `json:"available"`
	PendingRequests int `json:"pending_requests"`
}
