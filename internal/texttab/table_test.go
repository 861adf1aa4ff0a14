// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package texttab

import (
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	check := func(tab *Table, want string) {
		t.Helper()
		var got strings.Builder
		if err := tab.Format(&got); err != nil {
			t.Fatal(err)
		}
		if got.String() != want {
			t.Errorf("got:\n%s\nwant:\n%s", got.String(), want)
		}
	}

	tab := new(Table)
	tab.Row().Cell("name").Cell("n", Right)
	tab.Row().Cell("sample size").Cell("10,924", Right)
	tab.Row().Cell("days").Cell("11", Right)
	check(tab, ""+
		"name              n\n"+
		"sample size  10,924\n"+
		"days             11\n")

	// Short rows and blank lines.
	tab = new(Table)
	tab.Cell("a").Cell("bb").Cell("c")
	tab.Blank()
	tab.Cell("dddd")
	check(tab, ""+
		"a     bb  c\n"+
		"\n"+
		"dddd\n")

	// Multi-byte characters.
	tab = new(Table)
	tab.Row().Cell("α").Cell("x")
	tab.Row().Cell("βγ").Cell("y")
	check(tab, ""+
		"α   x\n"+
		"βγ  y\n")

	// Sections separated by Blank share column widths, and a
	// Row started right after Blank does not add a second empty
	// line.
	tab = new(Table)
	tab.Row().Cell("size").Cell("10,924", Right)
	tab.Row()
	tab.Blank()
	tab.Row().Cell("P(B > A)").Cell("84.6%", Right)
	tab.Row()
	check(tab, ""+
		"size      10,924\n"+
		"\n"+
		"P(B > A)   84.6%\n")
}
