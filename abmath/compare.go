// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package abmath

import (
	"fmt"
	"math"
	"math/rand"
)

// A MonteCarloEstimate compares two posteriors by sampling.
type MonteCarloEstimate struct {
	// ProbBBeatsA is the fraction of simulations in which the
	// draw from B exceeded the draw from A.
	ProbBBeatsA float64

	// StdErr is the Monte Carlo standard error of ProbBBeatsA,
	// √(P(1−P)/N).
	StdErr float64

	// ExpectedUpliftPercent is (mean(B) − mean(A))·100, computed in
	// closed form rather than from the draws.
	ExpectedUpliftPercent float64

	// ExpectedLossPercent is the expected shortfall, in
	// percentage points, of choosing B when A is better:
	// E[max(A − B, 0)]·100.
	ExpectedLossPercent float64

	// Simulations is the number of draws taken from each
	// posterior.
	Simulations int

	// Draws holds each B − A difference, if Config.KeepDraws was
	// set.
	Draws []float64

	// Warnings is a list of warnings about this estimate that
	// should be reported to the user.
	Warnings []error
}

// EstimateComparison estimates Pr[B > A] for rates A ~ a and B ~ b
// using DefaultConfig.
func EstimateComparison(r *rand.Rand, a, b BetaPosterior) (MonteCarloEstimate, error) {
	return DefaultConfig.EstimateComparison(r, a, b)
}

// EstimateComparison estimates Pr[B > A] for rates A ~ a and B ~ b
// by drawing c.Simulations samples from each posterior.
//
// All randomness comes from r, so a seeded r gives reproducible
// results. If r is nil, a time-seeded source is used. Each call uses
// its own sampler state; nothing carries over between calls except
// r's position.
func (c *Config) EstimateComparison(r *rand.Rand, a, b BetaPosterior) (MonteCarloEstimate, error) {
	cfg := c.withDefaults()
	if err := a.Validate(); err != nil {
		return MonteCarloEstimate{}, fmt.Errorf("posterior A: %w", err)
	}
	if err := b.Validate(); err != nil {
		return MonteCarloEstimate{}, fmt.Errorf("posterior B: %w", err)
	}
	n := cfg.Simulations
	if n < 1 {
		return MonteCarloEstimate{}, fmt.Errorf("%d simulations: %w", n, ErrInvalidArgument)
	}

	g := NewGammaSampler(r, cfg.MaxGammaAttempts, cfg.GammaFallback)
	var draws []float64
	if cfg.KeepDraws {
		draws = make([]float64, 0, n)
	}
	wins := 0
	loss := 0.0
	for i := 0; i < n; i++ {
		sa := g.Beta(a.Alpha, a.Beta)
		sb := g.Beta(b.Alpha, b.Beta)
		if sb > sa {
			wins++
		} else {
			loss += sa - sb
		}
		if draws != nil {
			draws = append(draws, sb-sa)
		}
	}

	p := float64(wins) / float64(n)
	est := MonteCarloEstimate{
		ProbBBeatsA:           p,
		StdErr:                math.Sqrt(p * (1 - p) / float64(n)),
		ExpectedUpliftPercent: (b.Mean() - a.Mean()) * 100,
		ExpectedLossPercent:   loss / float64(n) * 100,
		Simulations:           n,
		Draws:                 draws,
	}
	if k := g.Exhausted(); k > 0 {
		est.Warnings = append(est.Warnings, fmt.Errorf("%d of %d gamma draws used fallback value %v: %w", k, 4*n, cfg.GammaFallback, ErrSamplingExhausted))
	}
	if math.IsNaN(est.ExpectedUpliftPercent) || math.IsNaN(est.ExpectedLossPercent) {
		return MonteCarloEstimate{}, fmt.Errorf("comparing %v and %v: %w", a, b, ErrNumericDegenerate)
	}
	return est, nil
}
