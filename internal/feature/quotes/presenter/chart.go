package presenter

import (
	"fmt"

	"github.com/guregu/null/v6"

	"stock_dashboard/internal/feature/quotes/domain/entity"
)

// Trace names and axis labels shown on the chart.
const (
	TraceCandlestick = "Candlestick"
	TraceSMA         = "20-Period SMA"
	TraceEMA         = "50-Period EMA"

	AxisPrice  = "Stock Price (USD)"
	AxisTime   = "Date / Time"
	LegendName = "Indicators"
)

// Figure is a Plotly.js figure. It is marshalled to JSON and handed to Plotly.newPlot.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is one chart overlay. Candlestick traces use Open..Close, line traces use Y.
type Trace struct {
	Type  string       `json:"type"`
	Name  string       `json:"name"`
	X     []string     `json:"x"`
	Open  []float64    `json:"open,omitempty"`
	High  []float64    `json:"high,omitempty"`
	Low   []float64    `json:"low,omitempty"`
	Close []float64    `json:"close,omitempty"`
	Y     []null.Float `json:"y,omitempty"`
	Mode  string       `json:"mode,omitempty"`
	Line  *Line        `json:"line,omitempty"`
	// ConnectGaps stays false so an undefined indicator value breaks the line.
	ConnectGaps bool `json:"connectgaps"`
}

// Line styles a scatter trace.
type Line struct {
	Color string  `json:"color"`
	Width float64 `json:"width"`
}

// Text is a Plotly title object.
type Text struct {
	Text string `json:"text"`
}

// Axis is a Plotly axis definition.
type Axis struct {
	Title       Text         `json:"title"`
	RangeSlider *RangeSlider `json:"rangeslider,omitempty"`
	GridColor   string       `json:"gridcolor,omitempty"`
}

// RangeSlider toggles the x-axis range slider.
type RangeSlider struct {
	Visible bool `json:"visible"`
}

// Legend is a Plotly legend definition.
type Legend struct {
	Title Text `json:"title"`
}

// Font is a Plotly font definition.
type Font struct {
	Color string `json:"color"`
}

// Template carries theme defaults applied beneath the explicit layout.
type Template struct {
	Layout TemplateLayout `json:"layout"`
}

// TemplateLayout is the subset of layout defaults the dark theme sets.
type TemplateLayout struct {
	PaperBGColor string `json:"paper_bgcolor"`
	PlotBGColor  string `json:"plot_bgcolor"`
	Font         Font   `json:"font"`
	XAxis        Axis   `json:"xaxis"`
	YAxis        Axis   `json:"yaxis"`
}

// Layout is the Plotly layout of the dashboard chart.
type Layout struct {
	Title    Text     `json:"title"`
	XAxis    Axis     `json:"xaxis"`
	YAxis    Axis     `json:"yaxis"`
	Legend   Legend   `json:"legend"`
	Template Template `json:"template"`
}

// darkTemplate mirrors Plotly's "plotly_dark" colors.
var darkTemplate = Template{
	Layout: TemplateLayout{
		PaperBGColor: "rgb(17,17,17)",
		PlotBGColor:  "rgb(17,17,17)",
		Font:         Font{Color: "#f2f5fa"},
		XAxis:        Axis{GridColor: "#283442"},
		YAxis:        Axis{GridColor: "#283442"},
	},
}

// ChartTitle returns "<symbol> Stock Price (<interval>)".
func ChartTitle(symbol string, interval entity.Interval) string {
	return fmt.Sprintf("%s Stock Price (%s)", symbol, interval)
}

// BuildChart builds the candlestick chart with the SMA and EMA overlays.
// All three traces share the same x values. Undefined indicator values are emitted as null.
func BuildChart(s entity.Series) Figure {
	n := s.Len()
	x := make([]string, n)
	open := make([]float64, n)
	high := make([]float64, n)
	low := make([]float64, n)
	closes := make([]float64, n)
	sma := make([]null.Float, n)
	ema := make([]null.Float, n)

	for i, p := range s.Points {
		x[i] = p.Time.Format(timeLayout)
		open[i] = p.Open
		high[i] = p.High
		low[i] = p.Low
		closes[i] = p.Close
		sma[i] = p.SMA20
		ema[i] = p.EMA50
	}

	return Figure{
		Data: []Trace{
			{Type: "candlestick", Name: TraceCandlestick, X: x, Open: open, High: high, Low: low, Close: closes},
			{Type: "scatter", Name: TraceSMA, X: x, Y: sma, Mode: "lines", Line: &Line{Color: "yellow", Width: 1.5}},
			{Type: "scatter", Name: TraceEMA, X: x, Y: ema, Mode: "lines", Line: &Line{Color: "cyan", Width: 1.5}},
		},
		Layout: Layout{
			Title:    Text{Text: ChartTitle(s.Symbol, s.Interval)},
			XAxis:    Axis{Title: Text{Text: AxisTime}, RangeSlider: &RangeSlider{Visible: false}},
			YAxis:    Axis{Title: Text{Text: AxisPrice}},
			Legend:   Legend{Title: Text{Text: LegendName}},
			Template: darkTemplate,
		},
	}
}
