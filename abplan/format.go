// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package abplan

import (
	"encoding/csv"
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/portfolio/abcalc/abmath"
	"github.com/portfolio/abcalc/internal/texttab"
)

// printer groups digits the way an English-locale browser does.
var printer = message.NewPrinter(language.English)

// FormatCount formats n with thousands separators.
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// FormatPercent formats a percentage with one decimal place.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatUplift formats a percentage-point difference with two
// decimal places.
func FormatUplift(pct float64) string {
	return fmt.Sprintf("%.2f%%", pct)
}

func formatInterval(lo, hi float64) string {
	return fmt.Sprintf("[%s, %s]", FormatUplift(lo*100), FormatUplift(hi*100))
}

func formatCounts(o abmath.Observations) (trials, conversions string) {
	return FormatCount(o.Trials), FormatCount(o.Conversions)
}

// FormatText writes a plain-text report of r to w.
func FormatText(w io.Writer, r *Results) error {
	var tab texttab.Table
	tab.Row().Cell("sample size per group").Cell(FormatCount(r.SampleSizePerGroup), texttab.Right)
	tab.Row().Cell("estimated duration").Cell(FormatCount(r.EstimatedDurationDays)+" days", texttab.Right)
	tab.Row().Cell("confidence").Cell(FormatPercent(r.ConfidencePercent), texttab.Right)
	tab.Row().Cell("minimum effect").Cell(FormatPercent(r.ImprovementPercent), texttab.Right)
	tab.Row().Cell("achieved power").Cell(FormatPercent(r.AchievedPower*100), texttab.Right)
	tab.Blank()

	source := "observed"
	if r.Simulated {
		source = "simulated"
	}
	tab.Row().Cell("variant").Cell(source+" trials", texttab.Right).Cell("conversions", texttab.Right).Cell("posterior").Cell("95% credible interval")
	for _, v := range []struct {
		name string
		obs  abmath.Observations
		post abmath.BetaPosterior
		ci   [2]float64
	}{
		{"A", r.A, r.Posteriors.A, r.CredibleA},
		{"B", r.B, r.Posteriors.B, r.CredibleB},
	} {
		trials, conv := formatCounts(v.obs)
		tab.Row().Cell(v.name).Cell(trials, texttab.Right).Cell(conv, texttab.Right).Cell(v.post.String()).Cell(formatInterval(v.ci[0], v.ci[1]))
	}
	tab.Blank()

	tab.Row().Cell("P(B > A)").Cell(fmt.Sprintf("%s ± %s", FormatPercent(r.ProbabilityBBetter*100), FormatPercent(r.Estimate.StdErr*100)), texttab.Right)
	tab.Row().Cell("expected uplift").Cell(FormatUplift(r.ExpectedUpliftPercent), texttab.Right)
	tab.Row().Cell("expected loss").Cell(FormatUplift(r.Estimate.ExpectedLossPercent), texttab.Right)
	tab.Row().Cell("simulations").Cell(FormatCount(r.Estimate.Simulations), texttab.Right)
	if err := tab.Format(w); err != nil {
		return err
	}

	for _, warn := range r.Warnings {
		if _, err := fmt.Fprintf(w, "warning: %s\n", warn); err != nil {
			return err
		}
	}
	return nil
}

// FormatCSV writes r to w as metric,value records. Values are
// unformatted so they can be read back by other tools.
func FormatCSV(w io.Writer, r *Results) error {
	cw := csv.NewWriter(w)
	f := func(x float64) string { return fmt.Sprint(x) }
	d := func(n int) string { return fmt.Sprint(n) }
	records := [][]string{
		{"metric", "value"},
		{"sampleSizePerGroup", d(r.SampleSizePerGroup)},
		{"estimatedDurationDays", d(r.EstimatedDurationDays)},
		{"confidencePercent", f(r.ConfidencePercent)},
		{"improvementPercent", f(r.ImprovementPercent)},
		{"achievedPower", f(r.AchievedPower)},
		{"probabilityBBetter", f(r.ProbabilityBBetter)},
		{"probabilityStdErr", f(r.Estimate.StdErr)},
		{"expectedUpliftPercent", f(r.ExpectedUpliftPercent)},
		{"expectedLossPercent", f(r.Estimate.ExpectedLossPercent)},
		{"trialsA", d(r.A.Trials)},
		{"conversionsA", d(r.A.Conversions)},
		{"trialsB", d(r.B.Trials)},
		{"conversionsB", d(r.B.Conversions)},
		{"posteriorAlphaA", f(r.Posteriors.A.Alpha)},
		{"posteriorBetaA", f(r.Posteriors.A.Beta)},
		{"posteriorAlphaB", f(r.Posteriors.B.Alpha)},
		{"posteriorBetaB", f(r.Posteriors.B.Beta)},
	}
	for _, warn := range r.Warnings {
		records = append(records, []string{"warning", warn.Error()})
	}
	if err := cw.WriteAll(records); err != nil {
		return err
	}
	return cw.Error()
}
