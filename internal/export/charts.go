package export

import (
	"fmt"
	"image/color"
	"io"

	"fertdash.agstats.org/internal/models"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// seriesPalette colors the trend lines; reused in request order.
var seriesPalette = []color.RGBA{
	{R: 0x4f, G: 0x46, B: 0xe5, A: 0xff},
	{R: 0x10, G: 0xb9, B: 0x81, A: 0xff},
	{R: 0xf5, G: 0x9e, B: 0x0b, A: 0xff},
	{R: 0xef, G: 0x44, B: 0x44, A: 0xff},
	{R: 0x8b, G: 0x5c, B: 0xf6, A: 0xff},
	{R: 0x06, G: 0xb6, B: 0xd4, A: 0xff},
	{R: 0xec, G: 0x48, B: 0x99, A: 0xff},
	{R: 0x84, G: 0xcc, B: 0x16, A: 0xff},
	{R: 0xf9, G: 0x73, B: 0x16, A: 0xff},
	{R: 0x63, G: 0x66, B: 0xf1, A: 0xff},
}

// RenderTrendChart renders one line per country series as a PNG.
func RenderTrendChart(w io.Writer, series []models.TrendSeries, yearStart, yearEnd int64) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Fertilizer Consumption Trends (%d-%d)", yearStart, yearEnd)
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Fertilizer Consumption (kg/ha)"
	p.Add(plotter.NewGrid())
	p.Legend.Top = true

	for i, s := range series {
		if len(s.Points) == 0 {
			continue
		}

		points := make(plotter.XYs, len(s.Points))
		for j, point := range s.Points {
			points[j].X = float64(point.Year)
			points[j].Y = point.KgPerHa
		}

		line, err := plotter.NewLine(points)
		if err != nil {
			return fmt.Errorf("error building line for %s: %w", s.CountryName, err)
		}
		line.LineStyle.Width = vg.Points(2)
		line.LineStyle.Color = seriesPalette[i%len(seriesPalette)]

		p.Add(line)
		p.Legend.Add(s.CountryName, line)
	}

	return writePNG(w, p, 10*vg.Inch, 6*vg.Inch)
}

// maxChangeBars bounds how many bars the change chart draws per direction.
const maxChangeBars = 8

// topChanges keeps the largest movers in each direction. Entries arrive
// ordered by absolute change descending, so increases sit at the front and
// the deepest decreases at the back.
func topChanges(entries []models.ChangeEntry) []models.ChangeEntry {
	var increases, decreases []models.ChangeEntry
	for _, entry := range entries {
		if entry.AbsoluteChange >= 0 && len(increases) < maxChangeBars {
			increases = append(increases, entry)
		}
	}
	for i := len(entries) - 1; i >= 0 && len(decreases) < maxChangeBars; i-- {
		if entries[i].AbsoluteChange < 0 {
			decreases = append(decreases, entries[i])
		}
	}

	top := make([]models.ChangeEntry, 0, len(increases)+len(decreases))
	top = append(top, increases...)
	for i := len(decreases) - 1; i >= 0; i-- {
		top = append(top, decreases[i])
	}
	return top
}

// RenderChangeChart renders the largest consumption changes as a bar chart,
// increases in green and decreases in red. Only the top movers in each
// direction are drawn.
func RenderChangeChart(w io.Writer, entries []models.ChangeEntry, yearStart, yearEnd int64) error {
	entries = topChanges(entries)

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Largest Consumption Changes (%d-%d)", yearStart, yearEnd)
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.Y.Label.Text = "Change (kg/ha)"
	p.Add(plotter.NewGrid())

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.CountryName)
	}

	for i, entry := range entries {
		values := make(plotter.Values, len(entries))
		values[i] = entry.AbsoluteChange

		bars, err := plotter.NewBarChart(values, vg.Points(18))
		if err != nil {
			return fmt.Errorf("error building bars: %w", err)
		}
		bars.LineStyle.Width = vg.Length(0)
		if entry.AbsoluteChange >= 0 {
			bars.Color = color.RGBA{R: 0x10, G: 0xb9, B: 0x81, A: 0xff}
		} else {
			bars.Color = color.RGBA{R: 0xef, G: 0x44, B: 0x44, A: 0xff}
		}
		p.Add(bars)
	}

	p.NominalX(names...)
	p.X.Tick.Label.Rotation = 0.9
	p.X.Tick.Label.XAlign = -0.9

	return writePNG(w, p, 12*vg.Inch, 6*vg.Inch)
}

func writePNG(w io.Writer, p *plot.Plot, width, height vg.Length) error {
	writer, err := p.WriterTo(width, height, "png")
	if err != nil {
		return fmt.Errorf("error preparing PNG writer: %w", err)
	}
	if _, err := writer.WriteTo(w); err != nil {
		return fmt.Errorf("error writing PNG: %w", err)
	}
	return nil
}
