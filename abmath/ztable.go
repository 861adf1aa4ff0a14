// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package abmath

import (
	"fmt"
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"
)

// A ZEntry is one row of a ZTable: the standard normal quantile Z
// at cumulative probability P.
type ZEntry struct {
	P, Z float64
}

// A ZTable is a lookup table of standard normal quantiles, in
// ascending order of P.
type ZTable []ZEntry

// StdZTable is the textbook table of one-sided critical values.
var StdZTable = ZTable{
	{0.90, 1.282},
	{0.95, 1.645},
	{0.975, 1.96},
	{0.99, 2.326},
	{0.995, 2.576},
}

// NewZTable returns a ZTable for the given cumulative probabilities,
// with quantiles computed from the standard normal distribution and
// rounded to three decimal places, as printed tables do.
func NewZTable(ps ...float64) ZTable {
	t := make(ZTable, 0, len(ps))
	for _, p := range ps {
		z := stats.StdNormal.InvCDF(p)
		t = append(t, ZEntry{p, math.Round(z*1000) / 1000})
	}
	sort.Slice(t, func(i, j int) bool { return t[i].P < t[j].P })
	return t
}

// ZScore returns the quantile for cumulative probability p.
//
// Probabilities that are not in the table round up to the smallest
// tabulated probability >= p, which is the conservative direction
// for critical values. If p is beyond the last entry, ZScore returns
// the last entry's quantile.
func (t ZTable) ZScore(p float64) (float64, error) {
	if !(p > 0 && p < 1) {
		return 0, fmt.Errorf("probability %v not in (0, 1): %w", p, ErrInvalidArgument)
	}
	if len(t) == 0 {
		return 0, fmt.Errorf("empty z-score table: %w", ErrInvalidArgument)
	}
	i := sort.Search(len(t), func(i int) bool { return t[i].P >= p })
	if i == len(t) {
		i--
	}
	return t[i].Z, nil
}
