// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package abchart draws charts of A/B test plans and results.
package abchart

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/aclements/go-gg/ggstat"
	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/portfolio/abcalc/abmath"
)

// Options control the size and encoding of a chart.
type Options struct {
	// Width and Height are the chart dimensions. If zero, they
	// default to 16cm by 9cm.
	Width, Height vg.Length

	// Format is "png" or "svg". If empty, it defaults to "png".
	Format string

	// DPI is the resolution of PNG output. If zero, it defaults
	// to 150.
	DPI int
}

func (o Options) withDefaults() Options {
	if o.Width == 0 {
		o.Width = 16 * vg.Centimeter
	}
	if o.Height == 0 {
		o.Height = 9 * vg.Centimeter
	}
	if o.Format == "" {
		o.Format = "png"
	}
	if o.DPI == 0 {
		o.DPI = 150
	}
	return o
}

// Ext returns the file name extension for o's format.
func (o Options) Ext() string {
	return "." + o.withDefaults().Format
}

// samples is the number of points used to draw each density curve.
const samples = 200

// Hypotheses draws the sampling distributions of the observed
// difference in conversion rates under the null and alternative
// hypotheses with n visitors per group, marking the two-sided
// critical values of the test.
func Hypotheses(w io.Writer, opts Options, params abmath.ExperimentParameters, n int) error {
	h0, h1, err := params.Hypotheses(n)
	if err != nil {
		return err
	}
	lo := math.Min(h0.Mu-4*h0.Sigma, h1.Mu-4*h1.Sigma)
	hi := math.Max(h0.Mu+4*h0.Sigma, h1.Mu+4*h1.Sigma)

	pl := plot.New()
	pl.Title.Text = fmt.Sprintf("H0 vs H1, n = %d per group", n)
	pl.X.Label.Text = "difference in conversion rate (B − A)"
	pl.Y.Label.Text = "probability density"
	pl.Add(plotter.NewGrid())

	ymax := 0.0
	for _, c := range []struct {
		name string
		dist stats.NormalDist
		clr  color.Color
	}{
		{"H0", h0, blue(0xff)},
		{"H1", h1, red(0xff)},
	} {
		l, err := curve(c.dist.PDF, lo, hi)
		if err != nil {
			return err
		}
		l.LineStyle.Color = c.clr
		l.LineStyle.Width = vg.Points(1.5)
		pl.Add(l)
		pl.Legend.Add(c.name, l)
		ymax = math.Max(ymax, c.dist.PDF(c.dist.Mu))
	}

	crit := h0.InvCDF(1 - params.Significance/2)
	for _, x := range []float64{-crit, crit} {
		l, err := vline(x, ymax)
		if err != nil {
			return err
		}
		l.LineStyle.Color = purple(0xff)
		l.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		pl.Add(l)
	}
	return render(w, opts, pl)
}

// Posteriors draws the posterior densities of both variants'
// conversion rates over the range holding nearly all of their mass.
func Posteriors(w io.Writer, opts Options, a, b abmath.BetaPosterior) error {
	if err := a.Validate(); err != nil {
		return fmt.Errorf("variant A: %w", err)
	}
	if err := b.Validate(); err != nil {
		return fmt.Errorf("variant B: %w", err)
	}
	da, db := a.Dist(), b.Dist()
	const tail = 0.0005
	lo := math.Min(da.Quantile(tail), db.Quantile(tail))
	hi := math.Max(da.Quantile(1-tail), db.Quantile(1-tail))
	if !(lo < hi) {
		lo, hi = 0, 1
	}

	pl := plot.New()
	pl.Title.Text = "posterior conversion rates"
	pl.X.Label.Text = "conversion rate"
	pl.Y.Label.Text = "probability density"
	pl.Add(plotter.NewGrid())

	for _, c := range []struct {
		name string
		dist abmath.BetaDist
		clr  color.Color
	}{
		{"A " + a.String(), da, blue(0xff)},
		{"B " + b.String(), db, green(0xff)},
	} {
		l, err := curve(c.dist.PDF, lo, hi)
		if err != nil {
			return err
		}
		l.LineStyle.Color = c.clr
		l.LineStyle.Width = vg.Points(1.5)
		l.FillColor = withAlpha(c.clr, 0x40)
		pl.Add(l)
		pl.Legend.Add(c.name, l)
	}
	return render(w, opts, pl)
}

// Uplift draws a kernel density estimate of Monte Carlo draws of
// B − A, with a line at zero separating the draws in which A wins
// from those in which B wins.
func Uplift(w io.Writer, opts Options, draws []float64) error {
	if len(draws) < 2 {
		return errors.New("uplift chart needs at least two draws")
	}
	if stats.StdDev(draws) == 0 {
		return errors.New("uplift chart needs draws that are not all equal")
	}

	tab := table.NewBuilder(nil).Add("uplift", draws).Done()
	kde := ggstat.Density{X: "uplift", N: samples}.F(tab)
	gids := kde.Tables()
	if len(gids) == 0 {
		return errors.New("empty density estimate")
	}
	t := kde.Table(gids[0])
	xs := t.MustColumn("uplift").([]float64)
	ys := t.MustColumn("probability density").([]float64)

	pts := make(plotter.XYs, len(xs))
	ymax := 0.0
	for i := range xs {
		pts[i].X = xs[i] * 100
		// Rescale so the curve integrates to one over percentage
		// points.
		pts[i].Y = ys[i] / 100
		ymax = math.Max(ymax, pts[i].Y)
	}

	pl := plot.New()
	pl.Title.Text = fmt.Sprintf("B − A, mean %.2f points", stats.Mean(draws)*100)
	pl.X.Label.Text = "uplift (percentage points)"
	pl.Y.Label.Text = "probability density"
	pl.Add(plotter.NewGrid())

	l, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	l.LineStyle.Color = green(0xff)
	l.LineStyle.Width = vg.Points(1.5)
	l.FillColor = green(0x40)
	pl.Add(l)

	zero, err := vline(0, ymax)
	if err != nil {
		return err
	}
	zero.LineStyle.Color = color.Black
	zero.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	pl.Add(zero)
	return render(w, opts, pl)
}

// curve samples f at evenly spaced points in [lo, hi], skipping
// points where f is not finite, such as the poles of a Beta density
// with a shape below 1.
func curve(f func(float64) float64, lo, hi float64) (*plotter.Line, error) {
	xs := vec.Linspace(lo, hi, samples)
	pts := make(plotter.XYs, 0, len(xs))
	for _, x := range xs {
		y := f(x)
		if math.IsNaN(y) || math.IsInf(y, 0) {
			continue
		}
		pts = append(pts, plotter.XY{X: x, Y: y})
	}
	if len(pts) < 2 {
		return nil, fmt.Errorf("density is not finite over [%v, %v]", lo, hi)
	}
	return plotter.NewLine(pts)
}

// vline returns a vertical line at x from 0 to height.
func vline(x, height float64) (*plotter.Line, error) {
	return plotter.NewLine(plotter.XYs{{X: x, Y: 0}, {X: x, Y: height}})
}

// render encodes pl in opts' format and writes it to w.
func render(w io.Writer, opts Options, pl *plot.Plot) error {
	opts = opts.withDefaults()
	pl.Title.TextStyle.Font.Size = 14

	var can vg.CanvasWriterTo
	switch opts.Format {
	case "png":
		can = vgimg.PngCanvas{Canvas: vgimg.NewWith(vgimg.UseWH(opts.Width, opts.Height),
			vgimg.UseDPI(opts.DPI), vgimg.UseBackgroundColor(color.White))}
	case "svg":
		can = vgsvg.New(opts.Width, opts.Height)
	default:
		return fmt.Errorf("unknown chart format %q", opts.Format)
	}
	pl.Draw(draw.New(can))
	_, err := can.WriteTo(w)
	return err
}

func red(alpha uint8) color.Color {
	return color.NRGBA{0xFF, 0, 0, alpha}
}
func green(alpha uint8) color.Color {
	return color.NRGBA{0, 0x99, 0, alpha}
}
func blue(alpha uint8) color.Color {
	return color.NRGBA{0, 0, 0xFF, alpha}
}
func purple(alpha uint8) color.Color {
	return color.NRGBA{0x99, 0, 0xFF, alpha}
}

func withAlpha(c color.Color, alpha uint8) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = alpha
	return n
}
