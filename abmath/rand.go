// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package abmath

import (
	"math"
	"math/rand"
	"time"
)

// newRand returns r, or a freshly seeded source if r is nil.
func newRand(r *rand.Rand) *rand.Rand {
	if r != nil {
		return r
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// unitOpen returns a uniform value in (0, 1].
func unitOpen(r *rand.Rand) float64 {
	return 1 - r.Float64()
}

// NormalPair draws two independent standard normal values from two
// uniform draws using the Box–Muller transform.
func NormalPair(r *rand.Rand) (z0, z1 float64) {
	u, v := unitOpen(r), r.Float64()
	mag := math.Sqrt(-2 * math.Log(u))
	s, c := math.Sincos(2 * math.Pi * v)
	return mag * s, mag * c
}

// A NormalGen yields standard normal values one at a time.
//
// NormalGen is stateful: each Box–Muller transform produces a pair,
// and the second value of the pair is held back and returned by the
// following call to Next. Output therefore depends on call order. A
// NormalGen should be created for a single computation and not be
// shared between independent ones.
type NormalGen struct {
	r        *rand.Rand
	spare    float64
	hasSpare bool
}

// NewNormalGen returns a NormalGen drawing from r.
func NewNormalGen(r *rand.Rand) *NormalGen {
	return &NormalGen{r: newRand(r)}
}

// Next returns the next standard normal value.
func (g *NormalGen) Next() float64 {
	if g.hasSpare {
		g.hasSpare = false
		return g.spare
	}
	z0, z1 := NormalPair(g.r)
	g.spare, g.hasSpare = z1, true
	return z0
}

// A GammaSampler draws Gamma and Beta variates.
//
// Gamma uses the Marsaglia–Tsang squeeze method, which rejects some
// candidates. The rejection loop is bounded; if a draw exhausts its
// attempts the sampler returns a fixed fallback value and counts the
// event. The fallback is not a sample from the target distribution,
// so callers should surface Exhausted to the user. With the default
// limit of 100 attempts and an acceptance rate above 95% for every
// shape, exhaustion does not happen in practice.
type GammaSampler struct {
	r           *rand.Rand
	norm        *NormalGen
	maxAttempts int
	fallback    float64
	exhausted   int
}

// NewGammaSampler returns a sampler drawing from r that makes at most
// maxAttempts attempts per Gamma draw before returning fallback.
func NewGammaSampler(r *rand.Rand, maxAttempts int, fallback float64) *GammaSampler {
	r = newRand(r)
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &GammaSampler{r: r, norm: NewNormalGen(r), maxAttempts: maxAttempts, fallback: fallback}
}

// Exhausted returns the number of Gamma draws that fell back.
func (g *GammaSampler) Exhausted() int {
	return g.exhausted
}

// Gamma draws from the Gamma distribution with the given shape and
// unit scale. shape must be positive and finite.
func (g *GammaSampler) Gamma(shape float64) float64 {
	if shape < 1 {
		// Boost: if X ~ Gamma(a+1) and U ~ Uniform(0,1], then
		// X·U^(1/a) ~ Gamma(a).
		return g.Gamma(shape+1) * math.Pow(unitOpen(g.r), 1/shape)
	}

	d := shape - 1.0/3
	c := 1 / math.Sqrt(9*d)
	for i := 0; i < g.maxAttempts; i++ {
		x := g.norm.Next()
		v := 1 + c*x
		if v <= 0 {
			continue
		}
		v = v * v * v
		u := unitOpen(g.r)
		x2 := x * x
		if u < 1-0.0331*x2*x2 || math.Log(u) < 0.5*x2+d*(1-v+math.Log(v)) {
			return d * v
		}
	}
	g.exhausted++
	return g.fallback
}

// Beta draws from the Beta(a, b) distribution as
// Gamma(a) / (Gamma(a) + Gamma(b)). a and b must be positive and
// finite.
func (g *GammaSampler) Beta(a, b float64) float64 {
	x := g.Gamma(a)
	y := g.Gamma(b)
	if x+y == 0 {
		// Both draws underflowed, which only happens for tiny
		// shapes. Report the mean rather than 0/0.
		return a / (a + b)
	}
	return x / (x + y)
}
