// Package present renders long tables as stacked bar charts.
package present

import (
	"bytes"
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"text/template"

	"gonum.org/v1/plot/vg"
)

// Measure selects which value a chart stacks.
type Measure string

const (
	MeasureCount Measure = "count"
	MeasurePct   Measure = "pct"
)

// StyleConfig is the on-disk form of a Style.
type StyleConfig struct {
	Title   string            `yaml:"title"`
	Measure string            `yaml:"measure"`
	Palette map[string]string `yaml:"palette"` // category -> "#RRGGBB"
	Tooltip string            `yaml:"tooltip"` // text/template over TooltipData
	Width   float64           `yaml:"width"`   // inches
	Height  float64           `yaml:"height"`  // inches
}

// DefaultStyleConfig is the published chart look.
func DefaultStyleConfig() StyleConfig {
	return StyleConfig{
		Measure: string(MeasurePct),
		Palette: map[string]string{
			"Attended":        "#005EB8",
			"Cancelled":       "#ED8B00",
			"Missed":          "#DA291C",
			"Unknown":         "#768692",
			"Male":            "#41B6E6",
			"Female":          "#AE2573",
			"FemaleMaternity": "#E28EC3",
		},
		Tooltip: `{{.Group}} · {{.Category}}: {{printf "%.0f" .Count}} ({{printf "%.1f" .Pct}}%)`,
		Width:   10,
		Height:  6,
	}
}

// fallback colors for categories missing from the palette, used in order.
var fallback = []color.RGBA{
	{R: 0x00, G: 0x30, B: 0x87, A: 0xff},
	{R: 0x00, G: 0x96, B: 0x39, A: 0xff},
	{R: 0xFF, G: 0xB8, B: 0x1C, A: 0xff},
	{R: 0x33, G: 0x0A, B: 0x72, A: 0xff},
	{R: 0x42, G: 0x55, B: 0x63, A: 0xff},
}

// TooltipData is the value the tooltip template is executed with.
type TooltipData struct {
	GroupColumn string
	Group       string
	Category    string
	Count       float64
	Pct         float64
}

// Style is an immutable chart configuration. Build one with NewStyle.
type Style struct {
	title   string
	measure Measure
	palette map[string]color.RGBA
	tooltip *template.Template
	width   vg.Length
	height  vg.Length
}

// NewStyle validates c and builds a Style from it.
func NewStyle(c StyleConfig) (Style, error) {
	s := Style{
		title:   c.Title,
		measure: Measure(c.Measure),
		palette: make(map[string]color.RGBA, len(c.Palette)),
		width:   vg.Length(c.Width) * vg.Inch,
		height:  vg.Length(c.Height) * vg.Inch,
	}
	switch s.measure {
	case MeasureCount, MeasurePct:
	case "":
		s.measure = MeasurePct
	default:
		return Style{}, fmt.Errorf("unknown measure %q", c.Measure)
	}
	if s.width <= 0 || s.height <= 0 {
		return Style{}, fmt.Errorf("chart size must be positive, got %gx%g", c.Width, c.Height)
	}
	for cat, hex := range c.Palette {
		col, err := ParseHex(hex)
		if err != nil {
			return Style{}, fmt.Errorf("palette %q: %w", cat, err)
		}
		s.palette[cat] = col
	}
	tip := c.Tooltip
	if tip == "" {
		tip = DefaultStyleConfig().Tooltip
	}
	t, err := template.New("tooltip").Option("missingkey=error").Parse(tip)
	if err != nil {
		return Style{}, fmt.Errorf("tooltip template: %w", err)
	}
	s.tooltip = t
	return s, nil
}

// WithTitle returns a copy of s with a different title.
func (s Style) WithTitle(title string) Style {
	s.title = title
	return s
}

// Title returns the chart title.
func (s Style) Title() string { return s.title }

// Measure returns the stacked value.
func (s Style) Measure() Measure { return s.measure }

// Color returns the palette color of category; categories without one get
// the i-th fallback color.
func (s Style) Color(category string, i int) color.RGBA {
	if c, ok := s.palette[category]; ok {
		return c
	}
	return fallback[i%len(fallback)]
}

// Tooltip renders the tooltip text for one bar segment.
func (s Style) Tooltip(d TooltipData) (string, error) {
	var buf bytes.Buffer
	if err := s.tooltip.Execute(&buf, d); err != nil {
		return "", fmt.Errorf("tooltip: %w", err)
	}
	return buf.String(), nil
}

// ParseHex parses "#RRGGBB" or "RRGGBB".
func ParseHex(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return color.RGBA{}, fmt.Errorf("bad color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("bad color %q", s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

func hexOf(c color.RGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}
