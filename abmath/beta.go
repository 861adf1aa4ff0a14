// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package abmath

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/mathx"
	"github.com/aclements/go-moremath/stats"
)

// A Prior is a Beta(Alpha, Beta) prior on a conversion rate.
// Beta(1, 1) is the uniform prior.
type Prior struct {
	Alpha, Beta float64
}

// UniformPrior is Beta(1, 1).
var UniformPrior = Prior{1, 1}

// Observations are the conversion counts of one variant.
type Observations struct {
	Trials, Conversions int
}

func (o Observations) validate() error {
	if o.Trials < 0 || o.Conversions < 0 {
		return fmt.Errorf("negative count in %d/%d: %w", o.Conversions, o.Trials, ErrInvalidArgument)
	}
	if o.Conversions > o.Trials {
		return fmt.Errorf("%d conversions exceed %d trials: %w", o.Conversions, o.Trials, ErrInvalidArgument)
	}
	return nil
}

// A BetaPosterior is the Beta(Alpha, Beta) posterior distribution of
// a variant's conversion rate.
type BetaPosterior struct {
	Alpha, Beta float64
}

// Validate reports whether p's parameters are positive and finite.
func (p BetaPosterior) Validate() error {
	ok := func(x float64) bool { return x > 0 && !math.IsInf(x, 1) }
	if !ok(p.Alpha) || !ok(p.Beta) {
		return fmt.Errorf("Beta(%v, %v) parameters must be positive and finite: %w", p.Alpha, p.Beta, ErrInvalidArgument)
	}
	return nil
}

// Mean returns α/(α+β).
func (p BetaPosterior) Mean() float64 {
	return p.Alpha / (p.Alpha + p.Beta)
}

// Variance returns αβ/((α+β)²(α+β+1)).
func (p BetaPosterior) Variance() float64 {
	s := p.Alpha + p.Beta
	return p.Alpha * p.Beta / (s * s * (s + 1))
}

// Dist returns p as a continuous distribution.
func (p BetaPosterior) Dist() BetaDist {
	return BetaDist(p)
}

func (p BetaPosterior) String() string {
	return fmt.Sprintf("Beta(%g, %g)", p.Alpha, p.Beta)
}

// Posteriors holds the posteriors of both variants.
type Posteriors struct {
	A, B BetaPosterior
}

// ComputePosteriors updates prior with the observations of each
// variant. For each variant, α = prior.α + conversions and
// β = prior.β + trials − conversions.
func ComputePosteriors(prior Prior, a, b Observations) (Posteriors, error) {
	if err := (BetaPosterior{prior.Alpha, prior.Beta}).Validate(); err != nil {
		return Posteriors{}, fmt.Errorf("prior: %w", err)
	}
	if err := a.validate(); err != nil {
		return Posteriors{}, fmt.Errorf("variant A: %w", err)
	}
	if err := b.validate(); err != nil {
		return Posteriors{}, fmt.Errorf("variant B: %w", err)
	}
	update := func(o Observations) BetaPosterior {
		return BetaPosterior{
			Alpha: prior.Alpha + float64(o.Conversions),
			Beta:  prior.Beta + float64(o.Trials-o.Conversions),
		}
	}
	return Posteriors{A: update(a), B: update(b)}, nil
}

// BetaDist is a Beta distribution with shape parameters Alpha and
// Beta. It implements stats.Dist.
type BetaDist struct {
	Alpha, Beta float64
}

var _ stats.Dist = BetaDist{}

// PDF returns the density at x.
func (d BetaDist) PDF(x float64) float64 {
	if x < 0 || x > 1 {
		return 0
	}
	// Work in log space; B(α, β) underflows for the large shapes
	// that posteriors over many trials have.
	lb := lgamma(d.Alpha) + lgamma(d.Beta) - lgamma(d.Alpha+d.Beta)
	term := func(shape, v float64) float64 {
		if shape == 1 {
			return 0
		}
		return (shape - 1) * math.Log(v)
	}
	return math.Exp(term(d.Alpha, x) + term(d.Beta, 1-x) - lb)
}

// CDF returns Pr[X <= x].
func (d BetaDist) CDF(x float64) float64 {
	if x <= 0 {
		return 0
	} else if x >= 1 {
		return 1
	}
	return mathx.BetaInc(x, d.Alpha, d.Beta)
}

// Bounds returns the support [0, 1].
func (d BetaDist) Bounds() (float64, float64) {
	return 0, 1
}

// Quantile returns the x at which CDF(x) = q.
func (d BetaDist) Quantile(q float64) float64 {
	return stats.InvCDF(d)(q)
}

// CredibleInterval returns the equal-tailed interval containing the
// given probability mass, such as 0.95.
func (d BetaDist) CredibleInterval(level float64) (lo, hi float64) {
	tail := (1 - level) / 2
	return d.Quantile(tail), d.Quantile(1 - tail)
}

func lgamma(x float64) float64 {
	y, _ := math.Lgamma(x)
	return y
}
