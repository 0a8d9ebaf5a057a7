// Package chart turns dashboard tables into chart descriptions. Figures are
// shaped like plotly.js figures so the page can hand them straight to
// Plotly.newPlot.
package chart

// Figure is a complete chart description.
type Figure struct {
	Data   []Trace `json:"data" msgpack:"data"`
	Layout Layout  `json:"layout" msgpack:"layout"`
}

// Trace is one plotted series.
type Trace struct {
	Type        string  `json:"type" msgpack:"type"`
	Mode        string  `json:"mode,omitempty" msgpack:"mode,omitempty"`
	Name        string  `json:"name,omitempty" msgpack:"name,omitempty"`
	X           any     `json:"x,omitempty" msgpack:"x,omitempty"`
	Y           any     `json:"y,omitempty" msgpack:"y,omitempty"`
	YAxis       string  `json:"yaxis,omitempty" msgpack:"yaxis,omitempty"`
	Orientation string  `json:"orientation,omitempty" msgpack:"orientation,omitempty"`
	Line        *Line   `json:"line,omitempty" msgpack:"line,omitempty"`
	Marker      *Marker `json:"marker,omitempty" msgpack:"marker,omitempty"`
	BoxPoints   string  `json:"boxpoints,omitempty" msgpack:"boxpoints,omitempty"`
	BoxMean     bool    `json:"boxmean,omitempty" msgpack:"boxmean,omitempty"`
}

// Line styles a line trace.
type Line struct {
	Color string  `json:"color,omitempty" msgpack:"color,omitempty"`
	Width float64 `json:"width,omitempty" msgpack:"width,omitempty"`
}

// Marker styles bars and box markers. Color is either a single color or one
// color per point.
type Marker struct {
	Color any `json:"color,omitempty" msgpack:"color,omitempty"`
}

// Text is a plotly title object.
type Text struct {
	Text string `json:"text" msgpack:"text"`
}

// Axis configures an x or y axis.
type Axis struct {
	Title      *Text  `json:"title,omitempty" msgpack:"title,omitempty"`
	Overlaying string `json:"overlaying,omitempty" msgpack:"overlaying,omitempty"`
	Side       string `json:"side,omitempty" msgpack:"side,omitempty"`
	Type       string `json:"type,omitempty" msgpack:"type,omitempty"`
	AutoMargin bool   `json:"automargin,omitempty" msgpack:"automargin,omitempty"`
	ShowGrid   *bool  `json:"showgrid,omitempty" msgpack:"showgrid,omitempty"`
}

// Legend configures the legend box.
type Legend struct {
	Title *Text `json:"title,omitempty" msgpack:"title,omitempty"`
}

// Layout holds the figure-wide settings.
type Layout struct {
	Title        *Text   `json:"title,omitempty" msgpack:"title,omitempty"`
	XAxis        Axis    `json:"xaxis" msgpack:"xaxis"`
	YAxis        Axis    `json:"yaxis" msgpack:"yaxis"`
	YAxis2       *Axis   `json:"yaxis2,omitempty" msgpack:"yaxis2,omitempty"`
	Legend       *Legend `json:"legend,omitempty" msgpack:"legend,omitempty"`
	ShowLegend   *bool   `json:"showlegend,omitempty" msgpack:"showlegend,omitempty"`
	Height       int     `json:"height,omitempty" msgpack:"height,omitempty"`
	Width        int     `json:"width,omitempty" msgpack:"width,omitempty"`
	PaperBGColor string  `json:"paper_bgcolor,omitempty" msgpack:"paper_bgcolor,omitempty"`
	PlotBGColor  string  `json:"plot_bgcolor,omitempty" msgpack:"plot_bgcolor,omitempty"`
}

func title(s string) *Text {
	if s == "" {
		return nil
	}
	return &Text{Text: s}
}

func boolPtr(b bool) *bool { return &b }

// whiteTemplate applies the plain white look used across the dashboard.
func whiteTemplate(l *Layout) {
	l.PaperBGColor = "white"
	l.PlotBGColor = "white"
	grid := boolPtr(true)
	l.XAxis.ShowGrid = grid
	l.YAxis.ShowGrid = grid
}
