// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/jeranaias/assettrack-tui/internal/ui/styles"
	"github.com/jeranaias/assettrack-tui/internal/util"
)

// =============================================================================
// TABLE COMPONENT
// =============================================================================

// Column describes one table column.
type Column struct {
	Title string
	Width int
	// Flex columns absorb leftover width; at most one per table matters.
	Flex bool
}

// Table renders tabular data with a highlighted cursor row. It is a
// plain renderer: the owning view holds the data and cursor.
type Table struct {
	Columns []Column
	Rows    [][]string
	Cursor  int
	Width   int
	// Empty is shown when there are no rows.
	Empty string
}

// Render produces the table as a multi-line string.
func (t Table) Render(theme *styles.Theme) string {
	cols := t.fittedColumns()

	var b strings.Builder
	b.WriteString(theme.TableHeader.Render(t.renderRow(headerTitles(cols), cols)))
	b.WriteString("\n")

	if len(t.Rows) == 0 {
		empty := t.Empty
		if empty == "" {
			empty = "Nothing to show."
		}
		b.WriteString(theme.TableEmpty.Render(empty))
		return b.String()
	}

	for i, row := range t.Rows {
		style := theme.TableRow
		if i%2 == 1 {
			style = theme.TableRowAlt
		}
		if i == t.Cursor {
			style = theme.TableSelected
		}
		b.WriteString(style.Render(t.renderRow(row, cols)))
		if i < len(t.Rows)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// fittedColumns resolves flex widths against the table width.
func (t Table) fittedColumns() []Column {
	cols := make([]Column, len(t.Columns))
	copy(cols, t.Columns)
	if t.Width <= 0 {
		return cols
	}

	fixed := 0
	flexIdx := -1
	for i, c := range cols {
		if c.Flex && flexIdx == -1 {
			flexIdx = i
			continue
		}
		fixed += c.Width + 2
	}
	if flexIdx >= 0 {
		remain := t.Width - fixed - 2
		if remain < 8 {
			remain = 8
		}
		cols[flexIdx].Width = remain
	}
	return cols
}

func (t Table) renderRow(cells []string, cols []Column) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		parts[i] = util.PadCell(cell, c.Width)
	}
	return strings.Join(parts, "  ")
}

func headerTitles(cols []Column) []string {
	titles := make([]string, len(cols))
	for i, c := range cols {
		titles[i] = c.Title
	}
	return titles
}
