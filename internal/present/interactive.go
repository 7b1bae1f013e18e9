package present

import (
	"fmt"
	"html/template"
	"io"
	"math"
	"os"

	"github.com/gyeh/apptstats/internal/model"
)

const (
	pageWidth    = 960.0
	pageHeight   = 540.0
	marginLeft   = 80.0
	marginRight  = 200.0
	marginTop    = 50.0
	marginBottom = 60.0
	yTicks       = 5
)

type rect struct {
	X, Y, W, H float64
	Fill       string
	Category   string
	Tip        string
}

type tick struct {
	Y     float64
	Label string
}

type xLabel struct {
	X     float64
	Label string
}

type legendItem struct {
	Y    float64
	Fill string
	Name string
}

type page struct {
	Title       string
	YLabel      string
	GroupColumn string
	Width       float64
	Height      float64
	PlotLeft    float64
	PlotRight   float64
	PlotBottom  float64
	LegendX     float64
	Rects       []rect
	Ticks       []tick
	XLabels     []xLabel
	Legend      []legendItem
}

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: Arial, Helvetica, sans-serif; margin: 24px; }
#tip { position: absolute; display: none; padding: 6px 8px; background: #231f20; color: #fff; font-size: 13px; border-radius: 3px; pointer-events: none; }
rect.seg:hover { opacity: 0.8; }
</style>
</head>
<body>
<svg xmlns="http://www.w3.org/2000/svg" width="{{.Width}}" height="{{.Height}}" role="img" aria-label="{{.Title}}">
<text x="{{.PlotLeft}}" y="28" font-size="18" font-weight="bold">{{.Title}}</text>
{{range .Ticks}}<line x1="{{$.PlotLeft}}" x2="{{$.PlotRight}}" y1="{{.Y}}" y2="{{.Y}}" stroke="#e8edee"/>
<text x="{{$.PlotLeft}}" dx="-8" y="{{.Y}}" dy="4" font-size="12" text-anchor="end">{{.Label}}</text>
{{end}}{{range .Rects}}<rect class="seg" x="{{.X}}" y="{{.Y}}" width="{{.W}}" height="{{.H}}" fill="{{.Fill}}" data-category="{{.Category}}" data-tip="{{.Tip}}"><title>{{.Tip}}</title></rect>
{{end}}{{range .XLabels}}<text x="{{.X}}" y="{{$.PlotBottom}}" dy="20" font-size="12" text-anchor="middle">{{.Label}}</text>
{{end}}<text x="{{.PlotLeft}}" y="{{.PlotBottom}}" dy="44" font-size="13">{{.GroupColumn}}</text>
<text transform="rotate(-90)" x="-{{.PlotBottom}}" y="20" font-size="13">{{.YLabel}}</text>
{{range .Legend}}<rect x="{{$.LegendX}}" y="{{.Y}}" width="14" height="14" fill="{{.Fill}}"/>
<text x="{{$.LegendX}}" y="{{.Y}}" dx="22" dy="11" font-size="13">{{.Name}}</text>
{{end}}</svg>
<div id="tip"></div>
<script>
(function () {
  var tip = document.getElementById("tip");
  document.querySelectorAll("rect.seg").forEach(function (r) {
    r.addEventListener("mousemove", function (e) {
      tip.textContent = r.getAttribute("data-tip");
      tip.style.display = "block";
      tip.style.left = (e.pageX + 12) + "px";
      tip.style.top = (e.pageY + 12) + "px";
    });
    r.addEventListener("mouseleave", function () { tip.style.display = "none"; });
  });
})();
</script>
</body>
</html>
`))

// WriteInteractive renders l as a self-contained HTML page with an SVG
// stacked bar chart and hover tooltips. Stacking follows Chart.
func WriteInteractive(w io.Writer, l model.LongTable, s Style) error {
	ser, err := buildSeries(l, s.measure)
	if err != nil {
		return err
	}

	pg := page{
		Title:       s.title,
		YLabel:      yLabel(s.measure),
		GroupColumn: l.GroupColumn,
		Width:       pageWidth,
		Height:      pageHeight,
		PlotLeft:    marginLeft,
		PlotRight:   pageWidth - marginRight,
		PlotBottom:  pageHeight - marginBottom,
		LegendX:     pageWidth - marginRight + 16,
	}

	top := niceCeil(ser.peak())
	plotH := pg.PlotBottom - marginTop
	scale := plotH / top
	for i := 0; i <= yTicks; i++ {
		v := top * float64(i) / yTicks
		pg.Ticks = append(pg.Ticks, tick{Y: round2(pg.PlotBottom - v*scale), Label: fmt.Sprintf("%g", round2(v))})
	}

	slot := (pg.PlotRight - pg.PlotLeft) / float64(len(ser.groups))
	barW := slot * 0.6
	for g, name := range ser.groups {
		x := pg.PlotLeft + float64(g)*slot + (slot-barW)/2
		pg.XLabels = append(pg.XLabels, xLabel{X: round2(x + barW/2), Label: name})

		y := pg.PlotBottom
		for lv := len(ser.levels) - 1; lv >= 0; lv-- {
			h := ser.values[lv][g] * scale
			y -= h
			rec := ser.recs[lv][g]
			tip, err := s.Tooltip(TooltipData{
				GroupColumn: l.GroupColumn,
				Group:       name,
				Category:    ser.levels[lv],
				Count:       rec.Count,
				Pct:         rec.Pct,
			})
			if err != nil {
				return err
			}
			pg.Rects = append(pg.Rects, rect{
				X: round2(x), Y: round2(y), W: round2(barW), H: round2(h),
				Fill:     hexOf(s.Color(ser.levels[lv], lv)),
				Category: ser.levels[lv],
				Tip:      tip,
			})
		}
	}

	for lv, name := range ser.levels {
		pg.Legend = append(pg.Legend, legendItem{
			Y:    marginTop + float64(lv)*22,
			Fill: hexOf(s.Color(name, lv)),
			Name: name,
		})
	}

	if err := pageTmpl.Execute(w, pg); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}

// SaveInteractive writes the interactive page to path.
func SaveInteractive(path string, l model.LongTable, s Style) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create page: %w", err)
	}
	if err := WriteInteractive(f, l, s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// niceCeil rounds v up to 1, 2, 2.5 or 5 times a power of ten. Values a
// rounding error above a nice number stay on it, so percentage stacks top
// out at 100.
func niceCeil(v float64) float64 {
	if v <= 0 {
		return 1
	}
	exp := math.Pow(10, math.Floor(math.Log10(v)))
	for _, m := range []float64{1, 2, 2.5, 5, 10} {
		if m*exp >= v*(1-1e-9) {
			return m * exp
		}
	}
	return 10 * exp
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
