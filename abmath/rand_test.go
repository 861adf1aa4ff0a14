// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package abmath

import (
	"math"
	"math/rand"
	"testing"

	"github.com/aclements/go-moremath/stats"
)

func TestNormalGenOrder(t *testing.T) {
	// NormalGen hands out both halves of each Box–Muller pair in
	// order.
	pairs := rand.New(rand.NewSource(1))
	gen := NewNormalGen(rand.New(rand.NewSource(1)))
	for i := 0; i < 10; i++ {
		z0, z1 := NormalPair(pairs)
		if got := gen.Next(); got != z0 {
			t.Fatalf("pair %d: first value %v, want %v", i, got, z0)
		}
		if got := gen.Next(); got != z1 {
			t.Fatalf("pair %d: second value %v, want %v", i, got, z1)
		}
	}
}

func TestNormalMoments(t *testing.T) {
	gen := NewNormalGen(rand.New(rand.NewSource(2)))
	xs := make([]float64, 100000)
	for i := range xs {
		xs[i] = gen.Next()
		if math.IsNaN(xs[i]) || math.IsInf(xs[i], 0) {
			t.Fatalf("draw %d is %v", i, xs[i])
		}
	}
	if m := stats.Mean(xs); math.Abs(m) > 0.02 {
		t.Errorf("mean = %v, want ≈ 0", m)
	}
	if sd := stats.StdDev(xs); math.Abs(sd-1) > 0.02 {
		t.Errorf("stddev = %v, want ≈ 1", sd)
	}
}

func TestGammaMoments(t *testing.T) {
	const n = 20000
	for _, shape := range []float64{0.05, 0.3, 1, 2.5, 50, 1000} {
		g := NewGammaSampler(rand.New(rand.NewSource(3)), 100, 1)
		xs := make([]float64, n)
		for i := range xs {
			xs[i] = g.Gamma(shape)
			if math.IsNaN(xs[i]) || math.IsInf(xs[i], 0) || xs[i] < 0 {
				t.Fatalf("Gamma(%v) draw %d is %v", shape, i, xs[i])
			}
		}
		// Gamma(k, 1) has mean and variance k.
		se := math.Sqrt(shape / n)
		if m := stats.Mean(xs); math.Abs(m-shape) > 5*se {
			t.Errorf("Gamma(%v) mean = %v, want %v ± %v", shape, m, shape, 5*se)
		}
		if k := g.Exhausted(); k != 0 {
			t.Errorf("Gamma(%v): %d draws exhausted", shape, k)
		}
	}
}

func TestGammaExhausted(t *testing.T) {
	// With a single attempt per draw, some candidates are
	// rejected and the fallback is used. The loop must still
	// terminate and return finite values.
	const fallback = 1
	g := NewGammaSampler(rand.New(rand.NewSource(4)), 1, fallback)
	fallbacks := 0
	for i := 0; i < 10000; i++ {
		x := g.Gamma(1.5)
		if math.IsNaN(x) || math.IsInf(x, 0) {
			t.Fatalf("draw %d is %v", i, x)
		}
		if x == fallback {
			fallbacks++
		}
	}
	if g.Exhausted() == 0 {
		t.Fatalf("no draws exhausted with one attempt")
	}
	if fallbacks < g.Exhausted() {
		t.Errorf("saw %d fallback values, but %d draws exhausted", fallbacks, g.Exhausted())
	}
}

func TestBetaMoments(t *testing.T) {
	const n = 20000
	check := func(a, b float64) {
		t.Helper()
		g := NewGammaSampler(rand.New(rand.NewSource(5)), 100, 1)
		xs := make([]float64, n)
		for i := range xs {
			xs[i] = g.Beta(a, b)
			if !(xs[i] >= 0 && xs[i] <= 1) {
				t.Fatalf("Beta(%v, %v) draw %d is %v", a, b, i, xs[i])
			}
		}
		p := BetaPosterior{a, b}
		se := math.Sqrt(p.Variance() / n)
		if m := stats.Mean(xs); math.Abs(m-p.Mean()) > 5*se {
			t.Errorf("Beta(%v, %v) mean = %v, want %v ± %v", a, b, m, p.Mean(), 5*se)
		}
	}
	check(1, 1)
	check(0.5, 0.5)
	check(2, 3)
	check(51, 951)
	check(0.01, 0.01)
}
