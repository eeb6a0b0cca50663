package charts

import (
	"bytes"
	"fmt"

	bowlingtypes "github.com/Black-And-White-Club/tenpin/app/modules/bowling/domain/types"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Palette holds the colors of a rendered score card.
type Palette struct {
	Background  drawing.Color
	PrimaryLine drawing.Color
	AccentLine  drawing.Color
	TextColor   drawing.Color
}

// DefaultPalette is a dark lane theme.
var DefaultPalette = Palette{
	Background:  drawing.ColorFromHex("1b1f24"),
	PrimaryLine: drawing.ColorFromHex("4fa3e0"),
	AccentLine:  drawing.ColorFromHex("f2c14e"),
	TextColor:   drawing.ColorFromHex("e6e6e6"),
}

// RenderScoreCard produces a PNG line chart of the cumulative score after
// every frame. A card without frames renders a placeholder.
func RenderScoreCard(card bowlingtypes.ScoreCard, palette Palette) ([]byte, error) {
	if len(card.Frames) == 0 {
		return renderNoDataPlaceholder(palette)
	}

	xValues := make([]float64, len(card.Frames))
	yValues := make([]float64, len(card.Frames))
	ticks := make([]chart.Tick, len(card.Frames))
	for i, frame := range card.Frames {
		xValues[i] = float64(frame.Number)
		yValues[i] = float64(frame.Cumulative)
		ticks[i] = chart.Tick{Value: float64(frame.Number), Label: fmt.Sprintf("%d %s", frame.Number, frame.Marks)}
	}

	mainSeries := chart.ContinuousSeries{
		Name:    "Cumulative score",
		XValues: xValues,
		YValues: yValues,
		Style: chart.Style{
			StrokeColor: palette.PrimaryLine,
			StrokeWidth: 2,
			DotWidth:    4,
			DotColor:    palette.AccentLine,
		},
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("%d (%s)", card.Score, card.Strategy),
		Width:  800,
		Height: 400,
		TitleStyle: chart.Style{
			FontColor: palette.TextColor,
		},
		Background: chart.Style{
			FillColor: palette.Background,
		},
		Canvas: chart.Style{
			FillColor: palette.Background,
		},
		XAxis: chart.XAxis{
			Name:  "Frame",
			Ticks: ticks,
			Style: chart.Style{
				FontColor: palette.TextColor,
			},
		},
		YAxis: chart.YAxis{
			Name: "Score",
			Style: chart.Style{
				FontColor: palette.TextColor,
			},
			Range: &chart.ContinuousRange{
				Min: 0,
				Max: maxAxis(card.Score),
			},
		},
		Series: []chart.Series{mainSeries},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render score card: %w", err)
	}
	return buffer.Bytes(), nil
}

// maxAxis rounds the score up to the next multiple of 30 so the line never
// touches the top of the canvas.
func maxAxis(score int) float64 {
	return float64((score/30 + 1) * 30)
}

func renderNoDataPlaceholder(palette Palette) ([]byte, error) {
	const (
		width  = 400
		height = 200
		msg    = "No frames to chart"
	)

	graph := chart.Chart{
		Width:  width,
		Height: height,
		Background: chart.Style{
			FillColor: palette.Background,
		},
		Canvas: chart.Style{
			FillColor: palette.Background,
		},
		XAxis: chart.XAxis{Style: chart.Style{Hidden: true}},
		YAxis: chart.YAxis{Style: chart.Style{Hidden: true}},
		// go-chart refuses to render without a series.
		Series: []chart.Series{chart.ContinuousSeries{
			XValues: []float64{0, 1},
			YValues: []float64{0, 1},
			Style:   chart.Style{StrokeColor: drawing.ColorTransparent},
		}},
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, chartDefaults chart.Style) {
				r.SetFontColor(palette.TextColor)
				r.SetFontSize(12.0)
				tb := r.MeasureText(msg)
				x := (cb.Width() - tb.Width()) / 2
				y := (cb.Height() + tb.Height()) / 2
				r.Text(msg, x, y)
			},
		},
	}
	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
