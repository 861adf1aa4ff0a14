// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package texttab lays out plain-text tables in aligned columns.
package texttab

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Table does layout of text-based tables.
//
// Row and Cell return the Table so callers can chain them to build up
// a row at once.
type Table struct {
	rows []row
}

type row struct {
	cells []cell
	blank bool
}

type cell struct {
	value string
	right bool
}

// margin separates adjacent columns.
const margin = "  "

// A CellOption modifies a cell.
type CellOption func(c *cell)

// Right aligns a cell to the right edge of its column.
var Right CellOption = func(c *cell) { c.right = true }

// Row starts a new row. A row that is still empty is reused.
func (t *Table) Row() *Table {
	if n := len(t.rows); n > 0 && !t.rows[n-1].blank && len(t.rows[n-1].cells) == 0 {
		return t
	}
	t.rows = append(t.rows, row{})
	return t
}

// Cell adds a cell to the current row, starting a row if there is
// none yet.
func (t *Table) Cell(value string, opts ...CellOption) *Table {
	if n := len(t.rows); n == 0 || t.rows[n-1].blank {
		t.rows = append(t.rows, row{})
	}
	c := cell{value: value}
	for _, o := range opts {
		o(&c)
	}
	last := &t.rows[len(t.rows)-1]
	last.cells = append(last.cells, c)
	return t
}

// Blank adds a row that prints as an empty line, separating the rows
// before and after it while keeping their columns aligned.
func (t *Table) Blank() *Table {
	if n := len(t.rows); n > 0 && !t.rows[n-1].blank && len(t.rows[n-1].cells) == 0 {
		t.rows = t.rows[:n-1]
	}
	t.rows = append(t.rows, row{blank: true})
	return t
}

// Format lays out table t and writes it to w.
func (t *Table) Format(w io.Writer) error {
	var widths []int
	for _, r := range t.rows {
		for i, c := range r.cells {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			if n := utf8.RuneCountInString(c.value); n > widths[i] {
				widths[i] = n
			}
		}
	}

	var line strings.Builder
	for _, r := range t.rows {
		if !r.blank && len(r.cells) == 0 {
			continue
		}
		line.Reset()
		for i, c := range r.cells {
			if i > 0 {
				line.WriteString(margin)
			}
			pad := widths[i] - utf8.RuneCountInString(c.value)
			if c.right {
				fmt.Fprintf(&line, "%*s%s", pad, "", c.value)
			} else if i < len(r.cells)-1 {
				fmt.Fprintf(&line, "%s%*s", c.value, pad, "")
			} else {
				// Don't pad the last cell with trailing
				// spaces.
				line.WriteString(c.value)
			}
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(line.String(), " ")); err != nil {
			return err
		}
	}
	return nil
}
