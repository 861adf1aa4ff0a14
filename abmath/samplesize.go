// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package abmath

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/stats"
)

// ExperimentParameters describe the experiment being planned. All
// values are fractions, not percentages.
type ExperimentParameters struct {
	// BaselineRate is the conversion rate of the control group.
	BaselineRate float64

	// MinDetectableEffect is the smallest relative lift worth
	// detecting; 0.2 means B converts 20% better than A.
	MinDetectableEffect float64

	// Power is the probability of detecting a true effect of
	// MinDetectableEffect, typically 0.8.
	Power float64

	// Significance is the two-sided false positive rate α,
	// typically 0.05.
	Significance float64
}

// ImprovedRate returns the conversion rate of the treatment group if
// it achieves exactly the minimum detectable effect.
func (p ExperimentParameters) ImprovedRate() float64 {
	return p.BaselineRate * (1 + p.MinDetectableEffect)
}

// Validate reports whether p describes a computable experiment.
func (p ExperimentParameters) Validate() error {
	inUnit := func(x float64) bool { return x > 0 && x < 1 }
	switch {
	case !inUnit(p.BaselineRate):
		return fmt.Errorf("baseline rate %v not in (0, 1): %w", p.BaselineRate, ErrInvalidArgument)
	case !(p.MinDetectableEffect > -1) || math.IsInf(p.MinDetectableEffect, 1):
		return fmt.Errorf("minimum detectable effect %v not in (-1, ∞): %w", p.MinDetectableEffect, ErrInvalidArgument)
	case !inUnit(p.Power):
		return fmt.Errorf("power %v not in (0, 1): %w", p.Power, ErrInvalidArgument)
	case !inUnit(p.Significance):
		return fmt.Errorf("significance level %v not in (0, 1): %w", p.Significance, ErrInvalidArgument)
	}
	p2 := p.ImprovedRate()
	if !inUnit(p2) {
		return fmt.Errorf("improved rate %v not in (0, 1): %w", p2, ErrInvalidArgument)
	}
	if p2 == p.BaselineRate {
		return fmt.Errorf("improved rate equals baseline rate %v (zero effect): %w", p2, ErrInvalidArgument)
	}
	return nil
}

// A SampleSizeResult is the outcome of planning an experiment.
type SampleSizeResult struct {
	// PerGroup is the number of visitors needed in each group.
	PerGroup int

	// DurationDays is how long collecting PerGroup visitors per
	// group takes at the configured daily traffic.
	DurationDays int

	// ConfidencePercent is (1 - α) as a percentage.
	ConfidencePercent float64

	// ImprovementPercent is the minimum detectable effect as a
	// percentage.
	ImprovementPercent float64
}

// SampleSize computes the per-group sample size using DefaultConfig.
func SampleSize(p ExperimentParameters) (SampleSizeResult, error) {
	return DefaultConfig.SampleSize(p)
}

// SampleSize computes the minimum per-group sample size for a
// two-sided two-proportion z-test to detect p's effect:
//
//	n = (zα·√(2p̄(1−p̄)) + zβ·√(p₁(1−p₁) + p₂(1−p₂)))² / (p₂ − p₁)²
//
// where p̄ is the mean of the two rates. Critical values come from
// c.ZTable.
func (c *Config) SampleSize(p ExperimentParameters) (SampleSizeResult, error) {
	cfg := c.withDefaults()
	if err := p.Validate(); err != nil {
		return SampleSizeResult{}, err
	}
	if cfg.DailyVisitorsPerGroup < 0 {
		return SampleSizeResult{}, fmt.Errorf("daily visitors %d is negative: %w", cfg.DailyVisitorsPerGroup, ErrInvalidArgument)
	}

	p1, p2 := p.BaselineRate, p.ImprovedRate()
	zAlpha, err := cfg.ZTable.ZScore(1 - p.Significance/2)
	if err != nil {
		return SampleSizeResult{}, err
	}
	zBeta, err := cfg.ZTable.ZScore(p.Power)
	if err != nil {
		return SampleSizeResult{}, err
	}

	pooled := (p1 + p2) / 2
	pooledVar := 2 * pooled * (1 - pooled)
	altVar := p1*(1-p1) + p2*(1-p2)
	if !(pooledVar > 0) || !(altVar > 0) {
		return SampleSizeResult{}, fmt.Errorf("zero variance at rates %v and %v: %w", p1, p2, ErrNumericDegenerate)
	}
	num := zAlpha*math.Sqrt(pooledVar) + zBeta*math.Sqrt(altVar)
	num *= num
	den := (p2 - p1) * (p2 - p1)
	if den == 0 {
		// Distinct rates can still underflow when squared.
		return SampleSizeResult{}, fmt.Errorf("effect %v too small to square: %w", p2-p1, ErrNumericDegenerate)
	}

	n := math.Ceil(num / den)
	// float64(math.MaxInt) rounds up to a power of two, so anything
	// at or above it does not fit in an int.
	if math.IsNaN(n) || math.IsInf(n, 0) || n >= float64(math.MaxInt) {
		return SampleSizeResult{}, fmt.Errorf("sample size %v out of range: %w", n, ErrNumericDegenerate)
	}
	perGroup := int(n)
	if perGroup < 1 {
		perGroup = 1
	}

	return SampleSizeResult{
		PerGroup:           perGroup,
		DurationDays:       durationDays(perGroup, cfg.DailyVisitorsPerGroup),
		ConfidencePercent:  (1 - p.Significance) * 100,
		ImprovementPercent: p.MinDetectableEffect * 100,
	}, nil
}

// durationDays is ⌈n/perDay⌉, but at least one day.
func durationDays(n, perDay int) int {
	d := n / perDay
	if n%perDay != 0 {
		d++
	}
	if d < 1 {
		d = 1
	}
	return d
}

// Hypotheses returns the sampling distributions of the observed
// difference in conversion rates (B − A) with n visitors per group,
// under the null hypothesis (no effect) and under the alternative
// (an effect of exactly p.MinDetectableEffect).
func (p ExperimentParameters) Hypotheses(n int) (h0, h1 stats.NormalDist, err error) {
	if err := p.Validate(); err != nil {
		return h0, h1, err
	}
	if n < 1 {
		return h0, h1, fmt.Errorf("sample size %d < 1: %w", n, ErrInvalidArgument)
	}
	p1, p2 := p.BaselineRate, p.ImprovedRate()
	se := func(a, b float64) float64 {
		return math.Sqrt((a*(1-a) + b*(1-b)) / float64(n))
	}
	h0 = stats.NormalDist{Mu: 0, Sigma: se(p1, p1)}
	h1 = stats.NormalDist{Mu: p2 - p1, Sigma: se(p1, p2)}
	return h0, h1, nil
}

// AchievedPower returns the power of a two-sided two-proportion
// z-test at significance p.Significance with n visitors per group,
// using exact normal quantiles rather than a table.
func (p ExperimentParameters) AchievedPower(n int) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, fmt.Errorf("sample size %d < 1: %w", n, ErrInvalidArgument)
	}
	p1, p2 := p.BaselineRate, p.ImprovedRate()
	pooled := (p1 + p2) / 2
	se0 := math.Sqrt(2 * pooled * (1 - pooled) / float64(n))
	se1 := math.Sqrt((p1*(1-p1) + p2*(1-p2)) / float64(n))
	z := stats.StdNormal.InvCDF(1 - p.Significance/2)
	d := p2 - p1
	power := stats.StdNormal.CDF((d-z*se0)/se1) + stats.StdNormal.CDF((-d-z*se0)/se1)
	if math.IsNaN(power) {
		return 0, fmt.Errorf("power at n=%d: %w", n, ErrNumericDegenerate)
	}
	return power, nil
}
