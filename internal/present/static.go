package present

import (
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/gyeh/apptstats/internal/model"
)

// Chart builds a stacked bar plot of l. The last display level sits on the
// axis and the first is stacked on top; the legend lists levels top first.
func Chart(l model.LongTable, s Style) (*plot.Plot, error) {
	ser, err := buildSeries(l, s.measure)
	if err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = s.title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = l.GroupColumn
	p.Y.Label.Text = yLabel(s.measure)
	p.Y.Min = 0

	bars := make([]*plotter.BarChart, len(ser.levels))
	var below *plotter.BarChart
	for lv := len(ser.levels) - 1; lv >= 0; lv-- {
		b, err := plotter.NewBarChart(plotter.Values(ser.values[lv]), vg.Points(28))
		if err != nil {
			return nil, fmt.Errorf("bars for %q: %w", ser.levels[lv], err)
		}
		b.Color = s.Color(ser.levels[lv], lv)
		b.LineStyle.Width = vg.Length(0)
		if below != nil {
			b.StackOn(below)
		}
		p.Add(b)
		bars[lv] = b
		below = b
	}
	for lv, name := range ser.levels {
		p.Legend.Add(name, bars[lv])
	}
	p.Legend.Top = true
	p.NominalX(ser.groups...)
	return p, nil
}

// SaveStatic renders l to path; the format follows the file extension
// (png, svg, pdf, ...).
func SaveStatic(path string, l model.LongTable, s Style) error {
	p, err := Chart(l, s)
	if err != nil {
		return err
	}
	if err := p.Save(s.width, s.height, path); err != nil {
		return fmt.Errorf("save chart: %w", err)
	}
	return nil
}

// WriteStatic renders l to w in the given format.
func WriteStatic(w io.Writer, format string, l model.LongTable, s Style) error {
	p, err := Chart(l, s)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(s.width, s.height, format)
	if err != nil {
		return fmt.Errorf("chart writer: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write chart: %w", err)
	}
	return nil
}
