// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build ignore
// +build ignore

// Mkztable prints the literal for StdZTable from the standard normal
// inverse CDF, rounded the way printed z-tables are.
package main

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/stats"
)

func main() {
	fmt.Printf("var StdZTable = ZTable{\n")
	for _, p := range []float64{0.90, 0.95, 0.975, 0.99, 0.995} {
		z := stats.StdNormal.InvCDF(p)
		fmt.Printf("\t{%v, %v},\n", p, math.Round(z*1000)/1000)
	}
	fmt.Printf("}\n")
}
