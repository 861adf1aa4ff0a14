// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Abplan plans A/B tests and compares their outcomes.
//
// Usage:
//
//	abplan [flags]
//
// Abplan computes the number of visitors each variant of an A/B test
// needs to detect a given relative improvement in conversion rate, and
// estimates how long the test will take to collect them. It then
// compares the two variants with a Bayesian model, reporting the
// probability that B converts better than A and the expected uplift.
//
// By default, the comparison is a preview run on simulated data in
// which each variant converts at exactly its planned rate. The
// -observed flag supplies real counts instead:
//
//	abplan -baseline 5 -effect 20 -observed 4000,200,4000,252
//
// Settings can also be read from a YAML file with -config. Flags given
// on the command line override the file. For example, plan.yaml might
// contain:
//
//	baselineConversionPercent: 3.5
//	minimumEffectPercent: 10
//	statisticalPower: 0.9
//	significanceLevel: 0.05
//
// The -format flag selects text (the default), csv, or html output.
// With -chart-dir, abplan also draws the hypothesis distributions, the
// posterior distributions, and the distribution of simulated uplift
// into that directory, as PNG or, with -chart-format svg, SVG files.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/portfolio/abcalc/abchart"
	"github.com/portfolio/abcalc/abmath"
	"github.com/portfolio/abcalc/abplan"
)

func main() {
	log.SetPrefix("abplan: ")
	log.SetFlags(0)
	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

func run(stdout, stderr io.Writer, args []string) error {
	fs := flag.NewFlagSet("abplan", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: abplan [flags]\n")
		fmt.Fprintf(fs.Output(), "flags:\n")
		fs.PrintDefaults()
	}

	in := abplan.DefaultInput
	cfg := abmath.DefaultConfig
	flagConfig := fs.String("config", "", "read settings from YAML `file`")
	fs.Float64Var(&in.BaselineConversionPercent, "baseline", in.BaselineConversionPercent, "baseline conversion rate in `percent`")
	fs.Float64Var(&in.MinimumEffectPercent, "effect", in.MinimumEffectPercent, "minimum detectable relative effect in `percent`")
	fs.Float64Var(&in.StatisticalPower, "power", in.StatisticalPower, "statistical `power` (1 - β)")
	fs.Float64Var(&in.SignificanceLevel, "alpha", in.SignificanceLevel, "significance level `α`")
	fs.Float64Var(&in.PriorAlpha, "prior-alpha", in.PriorAlpha, "Beta prior `α`")
	fs.Float64Var(&in.PriorBeta, "prior-beta", in.PriorBeta, "Beta prior `β`")
	fs.IntVar(&cfg.DailyVisitorsPerGroup, "visitors", cfg.DailyVisitorsPerGroup, "daily `visitors` per group")
	fs.IntVar(&cfg.Simulations, "sims", cfg.Simulations, "`number` of Monte Carlo simulations")
	flagTrials := fs.Int("trials", 1000, "simulated visitors per variant when previewing the comparison")
	flagSeed := fs.Int64("seed", 0, "random `seed` for reproducible simulations (default time-based)")
	flagObserved := fs.String("observed", "", "observed counts as `nA,cA,nB,cB` (trials and conversions of each variant)")
	flagFormat := fs.String("format", "text", "print results in `format`:\n  text - plain text\n  csv  - comma-separated values\n  html - HTML document")
	flagChartDir := fs.String("chart-dir", "", "write charts to `dir`")
	flagChartFormat := fs.String("chart-format", "png", "chart `format`: png or svg")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if *flagConfig != "" {
		var err error
		in, err = loadConfig(*flagConfig, in, set)
		if err != nil {
			return err
		}
	}

	switch *flagFormat {
	case "text", "csv", "html":
	default:
		return fmt.Errorf("unknown format %q", *flagFormat)
	}
	chartOpts := abchart.Options{Format: *flagChartFormat}
	switch *flagChartFormat {
	case "png", "svg":
	default:
		return fmt.Errorf("unknown chart format %q", *flagChartFormat)
	}

	cfg.KeepDraws = *flagChartDir != ""
	planner := &abplan.Planner{Config: &cfg, SimulatedTrials: *flagTrials}
	if set["seed"] {
		planner.Rand = rand.New(rand.NewSource(*flagSeed))
	}

	var res *abplan.Results
	var err error
	if *flagObserved != "" {
		a, b, perr := parseObserved(*flagObserved)
		if perr != nil {
			return perr
		}
		res, err = planner.Analyze(in, a, b)
	} else {
		res, err = planner.Plan(in)
	}
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	switch *flagFormat {
	case "text":
		err = abplan.FormatText(&buf, res)
	case "csv":
		err = abplan.FormatCSV(&buf, res)
	case "html":
		buf.WriteString(htmlHeader)
		abplan.FormatHTML(&buf, res)
		buf.WriteString(htmlFooter)
	}
	if err != nil {
		return err
	}
	if _, err := stdout.Write(buf.Bytes()); err != nil {
		return err
	}

	if *flagChartDir != "" {
		return writeCharts(stderr, *flagChartDir, chartOpts, res)
	}
	return nil
}

// loadConfig reads Input settings from the YAML file at path. Fields
// whose flags were set on the command line keep their values from
// flags.
func loadConfig(path string, flags abplan.Input, set map[string]bool) (abplan.Input, error) {
	f, err := os.Open(path)
	if err != nil {
		return abplan.Input{}, err
	}
	defer f.Close()
	in, err := abplan.LoadInput(f)
	if err != nil {
		return abplan.Input{}, fmt.Errorf("%s: %w", path, err)
	}
	override := map[string]func(){
		"baseline":    func() { in.BaselineConversionPercent = flags.BaselineConversionPercent },
		"effect":      func() { in.MinimumEffectPercent = flags.MinimumEffectPercent },
		"power":       func() { in.StatisticalPower = flags.StatisticalPower },
		"alpha":       func() { in.SignificanceLevel = flags.SignificanceLevel },
		"prior-alpha": func() { in.PriorAlpha = flags.PriorAlpha },
		"prior-beta":  func() { in.PriorBeta = flags.PriorBeta },
	}
	for name, f := range override {
		if set[name] {
			f()
		}
	}
	return in, nil
}

// parseObserved parses "nA,cA,nB,cB".
func parseObserved(s string) (a, b abmath.Observations, err error) {
	fields := strings.Split(s, ",")
	if len(fields) != 4 {
		return a, b, fmt.Errorf("-observed %q: want 4 comma-separated counts", s)
	}
	var n [4]int
	for i, f := range fields {
		n[i], err = strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return a, b, fmt.Errorf("-observed %q: %w", s, err)
		}
	}
	a = abmath.Observations{Trials: n[0], Conversions: n[1]}
	b = abmath.Observations{Trials: n[2], Conversions: n[3]}
	return a, b, nil
}

func writeCharts(stderr io.Writer, dir string, opts abchart.Options, res *abplan.Results) error {
	if err := os.MkdirAll(dir, 0777); err != nil {
		return err
	}
	do := func(name string, draw func(io.Writer) error) error {
		file := filepath.Join(dir, name) + opts.Ext()
		f, err := os.Create(file)
		if err != nil {
			return err
		}
		if err := draw(f); err != nil {
			f.Close()
			os.Remove(file)
			return fmt.Errorf("%s: %w", file, err)
		}
		return f.Close()
	}
	if err := do("hypotheses", func(w io.Writer) error {
		return abchart.Hypotheses(w, opts, res.Params, res.SampleSizePerGroup)
	}); err != nil {
		return err
	}
	if err := do("posteriors", func(w io.Writer) error {
		return abchart.Posteriors(w, opts, res.Posteriors.A, res.Posteriors.B)
	}); err != nil {
		return err
	}
	if err := do("uplift", func(w io.Writer) error {
		return abchart.Uplift(w, opts, res.Estimate.Draws)
	}); err != nil {
		// The draws may be degenerate, for example with
		// -sims 1. The other charts are still useful.
		fmt.Fprintf(stderr, "abplan: %v\n", err)
	}
	return nil
}

var htmlHeader = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>A/B Test Plan</title>
<style>
.abplan { border-collapse: collapse; }
.abplan th { text-align: left; padding-right: 1em; }
.abplan td { text-align: right; padding: 0em 1em; }
.abplan tbody { border-top: 1px solid #666; }
.warning { color: #c00; }
</style>
</head>
<body>
`
var htmlFooter = `</body>
</html>
`
