// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package abmath provides the statistics behind planning and
// analyzing two-variant conversion experiments (A/B tests).
//
// It has two halves. The frequentist half computes the per-group
// sample size needed by a two-proportion z-test to detect a relative
// lift at a given power and significance level. The Bayesian half
// turns observed conversions into Beta posteriors and estimates the
// probability that variant B beats variant A by Monte Carlo sampling.
//
// All numeric constants that influence results (the z-score table,
// the number of simulations, and so on) live in a Config, so two
// computations with different settings can run side by side.
//
// Results that involve random sampling contain a list of warnings,
// captured as an []error value. These aren't errors that prevent
// analysis, but should be presented to the user along with the
// results.
package abmath

import "errors"

var (
	// ErrInvalidArgument indicates a parameter outside its valid
	// domain, such as a rate not in (0, 1) or more conversions
	// than trials.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNumericDegenerate indicates that otherwise valid input
	// led to a NaN, an infinity, or a value that cannot be
	// represented.
	ErrNumericDegenerate = errors.New("numerically degenerate result")

	// ErrSamplingExhausted indicates that the Gamma sampler hit
	// its attempt limit and substituted its fallback value. It is
	// only ever reported as a warning.
	ErrSamplingExhausted = errors.New("gamma sampling exhausted")
)

// A Config holds the constants used by the calculations in this
// package.
//
// This should be initialized from DefaultConfig because it may be
// extended with other fields in the future. Zero-valued fields are
// replaced by the corresponding DefaultConfig value.
type Config struct {
	// ZTable maps cumulative probabilities to standard normal
	// quantiles for the sample size formula.
	ZTable ZTable

	// DailyVisitorsPerGroup is the traffic each group is assumed
	// to receive per day when estimating experiment duration.
	DailyVisitorsPerGroup int

	// Simulations is the number of draws taken from each
	// posterior by EstimateComparison.
	Simulations int

	// MaxGammaAttempts bounds the rejection loop of the Gamma
	// sampler.
	MaxGammaAttempts int

	// GammaFallback is the value the Gamma sampler returns when
	// it runs out of attempts.
	GammaFallback float64

	// KeepDraws causes EstimateComparison to retain each B−A
	// difference it draws.
	KeepDraws bool
}

// DefaultConfig contains the standard settings.
var DefaultConfig = Config{
	ZTable:                StdZTable,
	DailyVisitorsPerGroup: 1000,
	Simulations:           10000,
	MaxGammaAttempts:      100,
	GammaFallback:         1,
}

// withDefaults returns a copy of c with zero fields filled in from
// DefaultConfig. A nil c yields DefaultConfig.
func (c *Config) withDefaults() Config {
	if c == nil {
		return DefaultConfig
	}
	out := *c
	if len(out.ZTable) == 0 {
		out.ZTable = DefaultConfig.ZTable
	}
	if out.DailyVisitorsPerGroup == 0 {
		out.DailyVisitorsPerGroup = DefaultConfig.DailyVisitorsPerGroup
	}
	if out.Simulations == 0 {
		out.Simulations = DefaultConfig.Simulations
	}
	if out.MaxGammaAttempts == 0 {
		out.MaxGammaAttempts = DefaultConfig.MaxGammaAttempts
	}
	if out.GammaFallback == 0 {
		out.GammaFallback = DefaultConfig.GammaFallback
	}
	return out
}
