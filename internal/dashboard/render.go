package dashboard

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"time"

	"github.com/fogleman/gg"

	"github.com/openclimb/cragcast/internal/conditions"
	"github.com/openclimb/cragcast/internal/config"
	"github.com/openclimb/cragcast/internal/forecast"
	"github.com/openclimb/cragcast/pkg/logger"
)

// ErrNoData is returned when no configured location produced any samples;
// the caller should surface a "no data" page instead of a blank image.
var ErrNoData = errors.New("no forecast data to draw")

// mmPerInch converts provider precipitation (millimeters) to the inches
// shown on the rain annotation.
const mmPerInch = 25.4

// Band is one location's slice of the dashboard
type Band struct {
	Title       string
	Samples     []forecast.Sample
	Assessments []conditions.Assessment
}

// Renderer draws the composite dashboard chart
type Renderer struct {
	geom   Geometry
	fonts  fontSet
	logger *logger.Logger
}

// NewRenderer creates a renderer with the configured geometry. Font faces
// are parsed once here, not per request.
func NewRenderer(cfg config.DashboardConfig, log *logger.Logger) (*Renderer, error) {
	fonts, err := loadFonts()
	if err != nil {
		return nil, fmt.Errorf("failed to load fonts: %w", err)
	}
	return &Renderer{
		geom:   NewGeometry(cfg.WidthPx, cfg.BandHeightPx),
		fonts:  fonts,
		logger: log.Named("dashboard-renderer"),
	}, nil
}

// Render draws one band per location, stacked vertically on a shared time
// axis, and returns the finished image. Bands without samples render as
// empty titled bands. Returns ErrNoData when every band is empty.
func (r *Renderer) Render(bands []Band) (image.Image, error) {
	series := make([][]forecast.Sample, len(bands))
	for i, b := range bands {
		series[i] = b.Samples
	}

	xMin, xMax, ok := AxisBounds(series)
	if !ok {
		return nil, ErrNoData
	}
	ceiling := TempCeiling(series)

	start := time.Now()
	dc := gg.NewContext(r.geom.Width, r.geom.TotalHeight(len(bands)))
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	for i, band := range bands {
		r.drawBand(dc, i, band, xMin, xMax, ceiling, i == len(bands)-1)
	}

	r.logger.Debug("Dashboard rendered",
		logger.Int("bands", len(bands)),
		logger.Int("width", r.geom.Width),
		logger.Int("height", r.geom.TotalHeight(len(bands))),
		logger.Duration("duration", time.Since(start)))

	return dc.Image(), nil
}

// RenderPNG renders the dashboard and encodes it as PNG bytes
func (r *Renderer) RenderPNG(bands []Band) ([]byte, error) {
	img, err := r.Render(bands)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) drawBand(dc *gg.Context, idx int, band Band, xMin, xMax time.Time, ceiling float64, lastBand bool) {
	g := r.geom
	top := g.BandTop(idx)
	bottom := g.BandBottom(idx)
	left := g.PlotLeft()
	right := g.PlotRight()
	height := bottom - top

	// Band title
	dc.SetFontFace(r.fonts.title)
	dc.SetRGB(0.1, 0.1, 0.1)
	dc.DrawStringAnchored(band.Title, (left+right)/2, top-g.MarginTop/2, 0.5, 0.5)

	// Plot frame
	dc.SetRGBA(0.75, 0.75, 0.75, 1)
	dc.SetLineWidth(1)
	dc.DrawRectangle(left, top, right-left, height)
	dc.Stroke()

	// A location whose fetch failed still gets its titled band, just empty.
	if len(band.Samples) == 0 {
		return
	}

	ts := TimeScale{Min: xMin, Max: xMax, X0: left, X1: right}
	tempScale := ValueScale{Min: 0, Max: ceiling, YTop: top, YBottom: bottom}
	humScale := ValueScale{Min: 0, Max: humidityAxisMax, YTop: top, YBottom: bottom}

	r.drawDays(dc, band.Assessments, ts, top, bottom)
	r.drawSeries(dc, band.Samples, ts, tempScale, humScale)
	r.drawAxes(dc, idx, ceiling)

	if lastBand {
		r.drawDateTicks(dc, band.Assessments, ts, bottom)
	}
}

// drawDays draws the per-day decorations: midnight separators, favorability
// shading, weekday and stats labels, and rain annotations. The first day in
// range is skipped entirely; its left edge coincides with the axis start.
func (r *Renderer) drawDays(dc *gg.Context, assessments []conditions.Assessment, ts TimeScale, top, bottom float64) {
	if len(assessments) == 0 {
		return
	}
	height := bottom - top

	for j, a := range assessments {
		if j == 0 {
			continue
		}

		dayStart := a.Day
		dayEnd := a.Day.Add(24 * time.Hour)
		x0 := ts.X(dayStart)
		x1 := ts.X(dayEnd)
		center := (x0 + x1) / 2

		// Midnight separator
		dc.SetRGBA(0.83, 0.83, 0.83, 1)
		dc.SetLineWidth(0.7)
		dc.DrawLine(x0, top, x0, bottom)
		dc.Stroke()

		// Favorability shading: opacity is the score itself
		if a.Favorability > 0 {
			dc.SetRGBA(0, 0.5, 0, a.Favorability)
			dc.DrawRectangle(x0, top, x1-x0, height)
			dc.Fill()
		}

		yLabel := bottom - 0.15*height
		yStats := bottom - 0.07*height

		dc.SetFontFace(r.fonts.weekday)
		dc.SetRGBA(0, 0, 0, 0.7)
		dc.DrawStringAnchored(a.Day.Format("Mon"), center, yLabel, 0.5, 1)

		statsText := "T: TBD, H: TBD"
		if a.Complete {
			statsText = fmt.Sprintf("T: %.0f°F, H: %.0f%%", a.MaxTempF, a.MaxHumidity)
		}
		dc.SetFontFace(r.fonts.small)
		dc.DrawStringAnchored(statsText, center, yStats, 0.5, 1)

		// Rain annotation, independent of favorability
		if a.MaxPrecipMM > 0 {
			inches := a.MaxPrecipMM / mmPerInch
			yRain := bottom - 0.28*height
			r.drawRainGlyph(dc, center-6, yRain)
			dc.SetFontFace(r.fonts.small)
			dc.SetRGBA(0, 0, 0.5, 0.8)
			dc.DrawStringAnchored(fmt.Sprintf("%.2f in", inches), center+2, yRain, 0, 1)
		}
	}

	// Trailing separator at the end of the last day
	last := assessments[len(assessments)-1]
	x := ts.X(last.Day.Add(24 * time.Hour))
	dc.SetRGBA(0.83, 0.83, 0.83, 1)
	dc.SetLineWidth(0.7)
	dc.DrawLine(x, top, x, bottom)
	dc.Stroke()
}

// drawRainGlyph draws a small raindrop: a filled circle with a triangular
// cap pointing up.
func (r *Renderer) drawRainGlyph(dc *gg.Context, x, y float64) {
	dc.SetRGBA(0, 0, 0.5, 0.8)
	dc.DrawCircle(x, y-4, 4)
	dc.Fill()
	dc.MoveTo(x, y-14)
	dc.LineTo(x-4, y-6)
	dc.LineTo(x+4, y-6)
	dc.ClosePath()
	dc.Fill()
}

// drawSeries draws the temperature and humidity polylines
func (r *Renderer) drawSeries(dc *gg.Context, samples []forecast.Sample, ts TimeScale, tempScale, humScale ValueScale) {
	// Temperature, left axis, dark red
	dc.SetRGBA(0.545, 0, 0, 0.5)
	dc.SetLineWidth(1.5)
	for k, s := range samples {
		if k == 0 {
			dc.MoveTo(ts.X(s.Time), tempScale.Y(s.TempF))
			continue
		}
		dc.LineTo(ts.X(s.Time), tempScale.Y(s.TempF))
	}
	dc.Stroke()

	// Humidity, right axis, blue
	dc.SetRGBA(0, 0, 1, 0.5)
	dc.SetLineWidth(1.5)
	for k, s := range samples {
		if k == 0 {
			dc.MoveTo(ts.X(s.Time), humScale.Y(s.Humidity))
			continue
		}
		dc.LineTo(ts.X(s.Time), humScale.Y(s.Humidity))
	}
	dc.Stroke()
}

// drawAxes draws the tick labels and rotated axis titles for one band
func (r *Renderer) drawAxes(dc *gg.Context, idx int, ceiling float64) {
	g := r.geom
	top := g.BandTop(idx)
	bottom := g.BandBottom(idx)
	left := g.PlotLeft()
	right := g.PlotRight()

	tempScale := ValueScale{Min: 0, Max: ceiling, YTop: top, YBottom: bottom}
	humScale := ValueScale{Min: 0, Max: humidityAxisMax, YTop: top, YBottom: bottom}

	dc.SetFontFace(r.fonts.small)

	// Left axis: temperature ticks in dark red
	dc.SetRGBA(0.545, 0, 0, 1)
	for _, v := range []float64{0, ceiling / 2, ceiling} {
		dc.DrawStringAnchored(fmt.Sprintf("%.0f", v), left-6, tempScale.Y(v), 1, 0.5)
	}
	dc.Push()
	dc.RotateAbout(-gg.Radians(90), 16, (top+bottom)/2)
	dc.DrawStringAnchored("Temp (°F)", 16, (top+bottom)/2, 0.5, 0.5)
	dc.Pop()

	// Right axis: humidity ticks in blue
	dc.SetRGBA(0, 0, 1, 1)
	for _, v := range []float64{0, 50, 100} {
		dc.DrawStringAnchored(fmt.Sprintf("%.0f", v), right+6, humScale.Y(v), 0, 0.5)
	}
	dc.Push()
	dc.RotateAbout(gg.Radians(90), float64(g.Width)-16, (top+bottom)/2)
	dc.DrawStringAnchored("Humidity (%)", float64(g.Width)-16, (top+bottom)/2, 0.5, 0.5)
	dc.Pop()
}

// drawDateTicks draws the shared date labels under the bottom band, one per
// day at its local midnight.
func (r *Renderer) drawDateTicks(dc *gg.Context, assessments []conditions.Assessment, ts TimeScale, bottom float64) {
	dc.SetFontFace(r.fonts.small)
	dc.SetRGBA(0.2, 0.2, 0.2, 1)
	for _, a := range assessments {
		dc.DrawStringAnchored(a.Day.Format("Mon 01/02"), ts.X(a.Day), bottom+6, 0, 1)
	}
}
