// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package abplan

import (
	"bytes"
	"html/template"
)

var htmlTemplate = template.Must(template.New("").Funcs(template.FuncMap{
	"count":    FormatCount,
	"pct":      FormatPercent,
	"uplift":   FormatUplift,
	"interval": formatInterval,
	"times100": func(x float64) float64 { return x * 100 },
}).Parse(`
<table class='abplan'>
<tbody class='plan'>
<tr><th>sample size per group<td>{{count .SampleSizePerGroup}}
<tr><th>estimated duration<td>{{count .EstimatedDurationDays}} days
<tr><th>confidence<td>{{pct .ConfidencePercent}}
<tr><th>minimum effect<td>{{pct .ImprovementPercent}}
<tr><th>achieved power<td>{{pct (times100 .AchievedPower)}}
</tbody>
<tbody class='variants'>
<tr><th>variant<th>{{if .Simulated}}simulated{{else}}observed{{end}} trials<th>conversions<th>posterior<th>95% credible interval
<tr><td>A<td>{{count .A.Trials}}<td>{{count .A.Conversions}}<td>{{.Posteriors.A}}<td>{{interval (index .CredibleA 0) (index .CredibleA 1)}}
<tr><td>B<td>{{count .B.Trials}}<td>{{count .B.Conversions}}<td>{{.Posteriors.B}}<td>{{interval (index .CredibleB 0) (index .CredibleB 1)}}
</tbody>
<tbody class='bayes'>
<tr><th>P(B &gt; A)<td>{{pct (times100 .ProbabilityBBetter)}}
<tr><th>expected uplift<td>{{uplift .ExpectedUpliftPercent}}
<tr><th>expected loss<td>{{uplift .Estimate.ExpectedLossPercent}}
</tbody>
</table>
{{- range .Warnings}}
<p class='warning'>{{.}}</p>
{{- end}}
`))

// FormatHTML appends an HTML formatting of r to buf.
func FormatHTML(buf *bytes.Buffer, r *Results) {
	err := htmlTemplate.Execute(buf, r)
	if err != nil {
		// Only possible errors here are template not matching data structure.
		// Don't make caller check - it's our fault.
		panic(err)
	}
}
