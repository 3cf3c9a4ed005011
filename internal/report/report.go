// Package report formats simulation results for the terminal: a styled
// summary, ASCII plots of the trajectory, an engine comparison table and a
// JSON encoding.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/springsim/internal/pendulum"
	"github.com/san-kum/springsim/internal/sim"
)

func row(label, value string) string {
	return MetricLabel.Render(label) + MetricValue.Render(value) + "\n"
}

// Summary renders the final state and metrics of a run.
func Summary(title string, r *sim.Result) string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(title) + "\n")

	final := r.Final
	b.WriteString(row("engine", engines(r)))
	b.WriteString(row("steps", fmt.Sprintf("%d", r.StepsTaken)))
	b.WriteString(row("force evals", fmt.Sprintf("%d", r.Evaluations)))
	b.WriteString(row("position", final.Pos.String()))
	b.WriteString(row("velocity", final.Vel.String()))

	spring := "stretched"
	if final.Compressed() {
		spring = "compressed"
	}
	dist := SpringStyle(final.Compressed()).Render(fmt.Sprintf("%.4f (%s)", final.Distance(), spring))
	b.WriteString(MetricLabel.Render("distance") + dist + "\n")
	b.WriteString(row("energy drift", fmt.Sprintf("%.6f", r.EnergyDrift)))

	if len(r.Metrics) > 0 {
		b.WriteString("\n" + Subtle.Render("metrics") + "\n")
		names := make([]string, 0, len(r.Metrics))
		for name := range r.Metrics {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			b.WriteString(row(name, fmt.Sprintf("%.6f", r.Metrics[name])))
		}
	}

	return Panel.Render(strings.TrimRight(b.String(), "\n"))
}

// engines lists the engines used by a run in the order they appeared.
func engines(r *sim.Result) string {
	var names []string
	var last pendulum.Engine = -1
	for _, s := range r.Samples {
		if s.Engine != last {
			names = append(names, s.Engine.String())
			last = s.Engine
		}
	}
	if len(names) == 0 {
		return r.Final.Engine.String()
	}
	return strings.Join(names, " -> ")
}

// PlotDistance charts the distance from the anchor with the rest length as
// a reference line.
func PlotDistance(r *sim.Result, width, height int) string {
	dist := r.Distances()
	if len(dist) < 2 {
		return ""
	}
	rest := make([]float64, len(dist))
	for i := range rest {
		rest[i] = r.Final.L
	}
	return asciigraph.PlotMany([][]float64{dist, rest},
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.SeriesColors(asciigraph.Cyan, asciigraph.DarkGray),
		asciigraph.Caption("distance from anchor (rest length in gray)"),
	)
}

// PlotPosition charts x and y against time.
func PlotPosition(r *sim.Result, width, height int) string {
	if len(r.Samples) < 2 {
		return ""
	}
	xs := make([]float64, len(r.Samples))
	ys := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		xs[i] = s.Pos.X
		ys[i] = s.Pos.Y
	}
	return asciigraph.PlotMany([][]float64{xs, ys},
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.SeriesColors(asciigraph.Red, asciigraph.Green),
		asciigraph.Caption("x (red) and y (green) vs time"),
	)
}

// Comparison writes one row per engine result.
func Comparison(w io.Writer, results []*sim.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ENGINE\tSTEPS\tEVALS\tX\tY\tVX\tVY\tDIST\tDRIFT")
	for _, r := range results {
		f := r.Final
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\t%.6f\n",
			f.Engine, r.StepsTaken, r.Evaluations,
			f.Pos.X, f.Pos.Y, f.Vel.X, f.Vel.Y, f.Distance(), r.EnergyDrift)
	}
	return tw.Flush()
}
