// Package charts renders the page's line, bar and pie charts as SVG.
package charts

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"aging-dashboard/internal/format"
	"aging-dashboard/internal/model"
)

var Palette = []string{"#2563eb", "#10b981", "#f59e0b", "#ef4444", "#8b5cf6", "#ec4899"}

type Pair struct {
	Current   string
	Projected string
}

var (
	DiseaseColors   = Pair{Current: "#2563eb", Projected: "#10b981"}
	GeriatricColors = Pair{Current: "#8b5cf6", Projected: "#ec4899"}

	SeniorsColor = "#2563eb"
	Over85Color  = "#f59e0b"
)

const (
	width       = 960
	height      = 400
	pieWidth    = 640
	plotWidth   = 820
	headroom    = 1.1
	strokeWidth = 3
	dotWidth    = 5

	noData = "Žádná data"
)

var gridStyle = chart.Style{
	StrokeColor:     drawing.ColorFromHex("e5e7eb"),
	StrokeWidth:     1,
	StrokeDashArray: []float64{3, 3},
}

func Line(points []model.TrendPoint) ([]byte, error) {
	if len(points) == 0 {
		return empty(width)
	}

	xs := make([]float64, len(points))
	seniors := make([]float64, len(points))
	over85 := make([]float64, len(points))
	ticks := make([]chart.Tick, len(points))
	var top float64
	for i, p := range points {
		xs[i] = float64(i)
		seniors[i] = float64(p.Seniors65Plus)
		over85[i] = float64(p.Over85)
		ticks[i] = chart.Tick{Value: float64(i), Label: p.Year}
		top = max(top, seniors[i], over85[i])
	}

	ch := chart.Chart{
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20}},
		XAxis: chart.XAxis{
			Ticks: ticks,
			Range: &chart.ContinuousRange{Min: 0, Max: max(1, float64(len(points)-1))},
		},
		YAxis: chart.YAxis{
			ValueFormatter: groupedValue,
			Range:          yRange(top),
			GridMajorStyle: gridStyle,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Senioři 65+",
				XValues: xs,
				YValues: seniors,
				Style:   lineStyle(SeniorsColor),
			},
			chart.ContinuousSeries{
				Name:    "85+ let",
				XValues: xs,
				YValues: over85,
				Style:   lineStyle(Over85Color),
			},
		},
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	return render(ch.Render)
}

func GroupedBar(rows []model.Comparison, colors Pair) ([]byte, error) {
	if len(rows) == 0 {
		return empty(width)
	}

	bars := make([]chart.Value, 0, len(rows)*2)
	var top float64
	for _, r := range rows {
		bars = append(bars,
			chart.Value{Label: r.Name, Value: float64(r.Y2025), Style: fill(colors.Current)},
			chart.Value{Label: "", Value: float64(r.Y2050), Style: fill(colors.Projected)},
		)
		top = max(top, float64(r.Y2025), float64(r.Y2050))
	}

	slot := plotWidth / len(bars)
	bc := chart.BarChart{
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20}},
		BarWidth:   max(4, slot*2/3),
		BarSpacing: max(2, slot/3),
		YAxis: chart.YAxis{
			ValueFormatter: groupedValue,
			Range:          yRange(top),
		},
		Bars: bars,
	}

	return render(bc.Render)
}

func Pie(groups []model.TargetGroup) ([]byte, error) {
	var total float64
	values := make([]chart.Value, 0, len(groups))
	for i, g := range groups {
		total += g.Value
		values = append(values, chart.Value{
			Label: g.Name + ": " + format.Share(g.Percent),
			Value: g.Value,
			Style: fill(Palette[i%len(Palette)]),
		})
	}
	if total <= 0 {
		return empty(pieWidth)
	}

	pc := chart.PieChart{
		Width:  pieWidth,
		Height: height,
		Values: values,
	}

	return render(pc.Render)
}

func render(fn func(chart.RendererProvider, io.Writer) error) ([]byte, error) {
	var buf bytes.Buffer
	if err := fn(chart.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	return buf.Bytes(), nil
}

// empty draws a bare frame with a caption, for series with nothing to plot.
func empty(w int) ([]byte, error) {
	r, err := chart.SVG(w, height)
	if err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}

	r.SetStrokeColor(color("#e5e7eb"))
	r.SetStrokeWidth(1)
	r.MoveTo(20, height-20)
	r.LineTo(w-20, height-20)
	r.Stroke()

	r.SetFont(font)
	r.SetFontSize(14)
	r.SetFontColor(color("#9ca3af"))
	box := r.MeasureText(noData)
	r.Text(noData, (w-box.Width())/2, height/2)

	var buf bytes.Buffer
	if err := r.Save(&buf); err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	return buf.Bytes(), nil
}

func yRange(top float64) *chart.ContinuousRange {
	if top <= 0 {
		top = 1
	}
	return &chart.ContinuousRange{Min: 0, Max: top * headroom}
}

func lineStyle(hex string) chart.Style {
	c := color(hex)
	return chart.Style{
		StrokeColor: c,
		StrokeWidth: strokeWidth,
		DotColor:    c,
		DotWidth:    dotWidth,
	}
}

func fill(hex string) chart.Style {
	c := color(hex)
	return chart.Style{FillColor: c, StrokeColor: c, StrokeWidth: 1}
}

func color(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

func groupedValue(v interface{}) string {
	if f, ok := v.(float64); ok {
		return format.Grouped(format.Round(f))
	}
	return fmt.Sprintf("%v", v)
}
