// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package abmath

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/aclements/go-moremath/vec"
	"github.com/google/go-cmp/cmp"
)

func TestEstimateEqualPosteriors(t *testing.T) {
	p := BetaPosterior{51, 951}
	for seed := int64(0); seed < 5; seed++ {
		est, err := EstimateComparison(rand.New(rand.NewSource(seed)), p, p)
		if err != nil {
			t.Fatal(err)
		}
		// Four standard errors of 10000 Bernoulli(0.5) trials.
		if math.Abs(est.ProbBBeatsA-0.5) > 0.02 {
			t.Errorf("seed %d: P(B>A) = %v, want 0.5 ± 0.02", seed, est.ProbBBeatsA)
		}
		if est.ExpectedUpliftPercent != 0 {
			t.Errorf("seed %d: uplift = %v, want 0", seed, est.ExpectedUpliftPercent)
		}
		if est.Simulations != 10000 {
			t.Errorf("seed %d: %d simulations, want 10000", seed, est.Simulations)
		}
		if len(est.Warnings) != 0 {
			t.Errorf("seed %d: unexpected warnings %v", seed, est.Warnings)
		}
	}
}

func TestEstimateDominant(t *testing.T) {
	a := BetaPosterior{10, 100}
	b := BetaPosterior{100, 10}
	est, err := EstimateComparison(rand.New(rand.NewSource(1)), a, b)
	if err != nil {
		t.Fatal(err)
	}
	if est.ProbBBeatsA <= 0.99 {
		t.Errorf("P(B>A) = %v, want > 0.99", est.ProbBBeatsA)
	}
	want := (100.0/110 - 10.0/110) * 100
	if math.Abs(est.ExpectedUpliftPercent-want) > 1e-9 {
		t.Errorf("uplift = %v, want %v", est.ExpectedUpliftPercent, want)
	}
	if est.ExpectedLossPercent > 0.01 {
		t.Errorf("expected loss = %v%%, want ≈ 0", est.ExpectedLossPercent)
	}

	// And the mirror image.
	est, err = EstimateComparison(rand.New(rand.NewSource(1)), b, a)
	if err != nil {
		t.Fatal(err)
	}
	if est.ProbBBeatsA >= 0.01 {
		t.Errorf("mirrored P(B>A) = %v, want < 0.01", est.ProbBBeatsA)
	}
}

func TestEstimateMatchesIntegral(t *testing.T) {
	// Pr[B > A] = ∫ f_B(x) F_A(x) dx. Compare the simulation
	// against a trapezoid-rule integral.
	a := BetaPosterior{51, 951}.Dist()
	b := BetaPosterior{61, 941}.Dist()
	xs := vec.Linspace(0, 0.2, 20001)
	h := xs[1] - xs[0]
	want := 0.0
	for i, x := range xs {
		w := h
		if i == 0 || i == len(xs)-1 {
			w /= 2
		}
		want += w * b.PDF(x) * a.CDF(x)
	}

	est, err := EstimateComparison(rand.New(rand.NewSource(7)), BetaPosterior(a), BetaPosterior(b))
	if err != nil {
		t.Fatal(err)
	}
	if d := math.Abs(est.ProbBBeatsA - want); d > 4*est.StdErr {
		t.Errorf("P(B>A) = %v ± %v, integral gives %v", est.ProbBBeatsA, est.StdErr, want)
	}
}

func TestEstimateSeeded(t *testing.T) {
	a, b := BetaPosterior{51, 951}, BetaPosterior{61, 941}
	e1, err := EstimateComparison(rand.New(rand.NewSource(42)), a, b)
	if err != nil {
		t.Fatal(err)
	}
	e2, err := EstimateComparison(rand.New(rand.NewSource(42)), a, b)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(e1, e2); diff != "" {
		t.Errorf("same seed, different estimates (-first +second):\n%s", diff)
	}
}

func TestEstimateKeepDraws(t *testing.T) {
	c := DefaultConfig
	c.Simulations = 2000
	c.KeepDraws = true
	est, err := c.EstimateComparison(rand.New(rand.NewSource(3)), BetaPosterior{20, 80}, BetaPosterior{25, 75})
	if err != nil {
		t.Fatal(err)
	}
	if len(est.Draws) != 2000 {
		t.Fatalf("got %d draws, want 2000", len(est.Draws))
	}
	wins := 0
	for _, d := range est.Draws {
		if d > 0 {
			wins++
		}
	}
	if got := float64(wins) / 2000; got != est.ProbBBeatsA {
		t.Errorf("draws give P(B>A) = %v, estimate says %v", got, est.ProbBBeatsA)
	}

	c.KeepDraws = false
	est, _ = c.EstimateComparison(rand.New(rand.NewSource(3)), BetaPosterior{20, 80}, BetaPosterior{25, 75})
	if est.Draws != nil {
		t.Errorf("kept %d draws without KeepDraws", len(est.Draws))
	}
}

func TestEstimateExhaustedWarning(t *testing.T) {
	c := DefaultConfig
	c.MaxGammaAttempts = 1
	est, err := c.EstimateComparison(rand.New(rand.NewSource(1)), BetaPosterior{2, 3}, BetaPosterior{3, 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(est.Warnings) != 1 || !errors.Is(est.Warnings[0], ErrSamplingExhausted) {
		t.Errorf("got warnings %v, want one ErrSamplingExhausted", est.Warnings)
	}
	if math.IsNaN(est.ProbBBeatsA) {
		t.Errorf("P(B>A) is NaN")
	}
}

func TestEstimateInvalid(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	ok := BetaPosterior{1, 1}
	for _, bad := range []BetaPosterior{{0, 1}, {1, -2}, {math.NaN(), 1}, {1, math.Inf(1)}} {
		if _, err := EstimateComparison(r, bad, ok); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("A=%v: got error %v, want ErrInvalidArgument", bad, err)
		}
		if _, err := EstimateComparison(r, ok, bad); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("B=%v: got error %v, want ErrInvalidArgument", bad, err)
		}
	}

	c := DefaultConfig
	c.Simulations = -1
	if _, err := c.EstimateComparison(r, ok, ok); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("negative simulations: got error %v, want ErrInvalidArgument", err)
	}
}

func TestEstimateNilRand(t *testing.T) {
	c := DefaultConfig
	c.Simulations = 100
	if _, err := c.EstimateComparison(nil, BetaPosterior{1, 1}, BetaPosterior{1, 1}); err != nil {
		t.Fatal(err)
	}
}
