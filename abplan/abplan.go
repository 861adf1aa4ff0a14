// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package abplan plans and analyzes A/B tests from user-facing
// settings and renders the results for display.
//
// Settings arrive as an Input in the units people type into a form
// (conversion rates and effects as percentages). A Planner turns an
// Input into Results, which combine the frequentist sample size plan
// with a Bayesian comparison of the two variants. FormatText,
// FormatCSV and FormatHTML render Results.
package abplan

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"

	"gopkg.in/yaml.v3"

	"github.com/portfolio/abcalc/abmath"
)

// An Input holds the settings of one planning request.
type Input struct {
	// BaselineConversionPercent is the control conversion rate,
	// in percent (0–100).
	BaselineConversionPercent float64 `yaml:"baselineConversionPercent" json:"baselineConversionPercent"`

	// MinimumEffectPercent is the relative lift to detect, in
	// percent.
	MinimumEffectPercent float64 `yaml:"minimumEffectPercent" json:"minimumEffectPercent"`

	// StatisticalPower is a fraction, such as 0.8.
	StatisticalPower float64 `yaml:"statisticalPower" json:"statisticalPower"`

	// SignificanceLevel is a fraction, such as 0.05.
	SignificanceLevel float64 `yaml:"significanceLevel" json:"significanceLevel"`

	// PriorAlpha and PriorBeta are the Beta prior parameters.
	// If zero, they default to 1.
	PriorAlpha float64 `yaml:"priorAlpha" json:"priorAlpha"`
	PriorBeta  float64 `yaml:"priorBeta" json:"priorBeta"`
}

// DefaultInput is the starting point of a planning form.
var DefaultInput = Input{
	BaselineConversionPercent: 5,
	MinimumEffectPercent:      20,
	StatisticalPower:          0.8,
	SignificanceLevel:         0.05,
	PriorAlpha:                1,
	PriorBeta:                 1,
}

// Params converts in to fractional experiment parameters.
func (in Input) Params() abmath.ExperimentParameters {
	return abmath.ExperimentParameters{
		BaselineRate:        in.BaselineConversionPercent / 100,
		MinDetectableEffect: in.MinimumEffectPercent / 100,
		Power:               in.StatisticalPower,
		Significance:        in.SignificanceLevel,
	}
}

// Prior returns in's Beta prior, substituting 1 for zero parameters.
func (in Input) Prior() abmath.Prior {
	p := abmath.Prior{Alpha: in.PriorAlpha, Beta: in.PriorBeta}
	if p.Alpha == 0 {
		p.Alpha = 1
	}
	if p.Beta == 0 {
		p.Beta = 1
	}
	return p
}

// LoadInput reads a YAML document of Input fields. Fields missing
// from the document keep their DefaultInput values. Unknown fields
// are an error.
func LoadInput(r io.Reader) (Input, error) {
	in := DefaultInput
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&in); err != nil && !errors.Is(err, io.EOF) {
		return Input{}, fmt.Errorf("parsing input: %w", err)
	}
	return in, nil
}

// Results are the outcome of planning or analyzing an experiment.
type Results struct {
	SampleSizePerGroup    int     `json:"sampleSizePerGroup"`
	EstimatedDurationDays int     `json:"estimatedDurationDays"`
	ConfidencePercent     float64 `json:"confidencePercent"`
	ImprovementPercent    float64 `json:"improvementPercent"`
	ProbabilityBBetter    float64 `json:"probabilityBBetter"`
	ExpectedUpliftPercent float64 `json:"expectedUpliftPercent"`

	// Params are the fractional parameters the plan was made for.
	Params abmath.ExperimentParameters `json:"-"`

	// AchievedPower is the exact power of the test at
	// SampleSizePerGroup.
	AchievedPower float64 `json:"achievedPower"`

	// Simulated reports whether A and B were derived from the
	// planned rates rather than observed.
	Simulated bool                `json:"simulated"`
	A, B      abmath.Observations `json:"-"`

	Posteriors abmath.Posteriors `json:"-"`

	// CredibleA and CredibleB are 95% credible intervals of each
	// variant's conversion rate.
	CredibleA, CredibleB [2]float64 `json:"-"`

	Estimate abmath.MonteCarloEstimate `json:"-"`

	// Warnings is a list of warnings that should be shown with
	// the results.
	Warnings []error `json:"-"`
}

// CredibleLevel is the mass of the credible intervals in Results.
const CredibleLevel = 0.95

// A Planner computes Results.
type Planner struct {
	// Config holds the numeric settings. If nil, it defaults to
	// abmath.DefaultConfig.
	Config *abmath.Config

	// Rand is the source of randomness for Monte Carlo
	// estimates. If nil, a time-seeded source is used.
	Rand *rand.Rand

	// SimulatedTrials is the number of visitors per variant
	// assumed by Plan. If zero, it defaults to 1000.
	SimulatedTrials int
}

func (p *Planner) config() *abmath.Config {
	if p.Config == nil {
		return &abmath.DefaultConfig
	}
	return p.Config
}

// Plan computes the sample size for in and previews the Bayesian
// analysis on simulated data in which each variant converts at
// exactly its planned rate.
func (p *Planner) Plan(in Input) (*Results, error) {
	n := p.SimulatedTrials
	if n == 0 {
		n = 1000
	}
	if n < 0 {
		return nil, fmt.Errorf("%d simulated trials: %w", n, abmath.ErrInvalidArgument)
	}
	params := in.Params()
	if err := params.Validate(); err != nil {
		return nil, err
	}
	a := abmath.Observations{Trials: n, Conversions: int(math.Round(float64(n) * params.BaselineRate))}
	b := abmath.Observations{Trials: n, Conversions: int(math.Round(float64(n) * params.ImprovedRate()))}
	res, err := p.analyze(in, a, b)
	if err != nil {
		return nil, err
	}
	res.Simulated = true
	return res, nil
}

// Analyze computes the sample size for in and compares the observed
// conversions of variants a and b.
func (p *Planner) Analyze(in Input, a, b abmath.Observations) (*Results, error) {
	return p.analyze(in, a, b)
}

func (p *Planner) analyze(in Input, a, b abmath.Observations) (*Results, error) {
	cfg := p.config()
	params := in.Params()
	ss, err := cfg.SampleSize(params)
	if err != nil {
		return nil, err
	}
	power, err := params.AchievedPower(ss.PerGroup)
	if err != nil {
		return nil, err
	}

	post, err := abmath.ComputePosteriors(in.Prior(), a, b)
	if err != nil {
		return nil, err
	}
	est, err := cfg.EstimateComparison(p.Rand, post.A, post.B)
	if err != nil {
		return nil, err
	}

	res := &Results{
		SampleSizePerGroup:    ss.PerGroup,
		EstimatedDurationDays: ss.DurationDays,
		ConfidencePercent:     ss.ConfidencePercent,
		ImprovementPercent:    ss.ImprovementPercent,
		ProbabilityBBetter:    est.ProbBBeatsA,
		ExpectedUpliftPercent: est.ExpectedUpliftPercent,
		Params:                params,
		AchievedPower:         power,
		A:                     a,
		B:                     b,
		Posteriors:            post,
		Estimate:              est,
		Warnings:              est.Warnings,
	}
	res.CredibleA[0], res.CredibleA[1] = post.A.Dist().CredibleInterval(CredibleLevel)
	res.CredibleB[0], res.CredibleB[1] = post.B.Dist().CredibleInterval(CredibleLevel)
	return res, nil
}
