package charts

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"github.com/spacesedan/subreddit-insights/internal/models"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var seriesColors = []drawing.Color{drawing.ColorBlue, drawing.ColorRed}

func renderEngagement(series []models.LabeledProfile) ([]byte, error) {
	if len(series) == 0 {
		return nil, errors.New("no series to plot")
	}

	ticks := make([]chart.Tick, 24)
	for h := range ticks {
		ticks[h] = chart.Tick{Value: float64(h), Label: strconv.Itoa(h)}
	}

	graph := chart.Chart{
		Title:  "Best posting time",
		Width:  1200,
		Height: 500,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:  "Hour of the day",
			Ticks: ticks,
			Range: &chart.ContinuousRange{Min: 0, Max: 23},
		},
		YAxis: chart.YAxis{
			Name: "Score",
		},
	}

	var minY, maxY float64
	first := true
	for i, s := range series {
		hours := s.Profile.Hours()
		if len(hours) == 0 {
			return nil, fmt.Errorf("series %q has no data", s.Label)
		}

		xs := make([]float64, len(hours))
		ys := make([]float64, len(hours))
		for j, h := range hours {
			xs[j] = float64(h)
			ys[j] = s.Profile[h]
			if first || ys[j] < minY {
				minY = ys[j]
			}
			if first || ys[j] > maxY {
				maxY = ys[j]
			}
			first = false
		}

		color := seriesColors[i%len(seriesColors)]
		graph.Series = append(graph.Series, chart.ContinuousSeries{
			Name:    s.Label,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: color,
				StrokeWidth: 2,
				DotColor:    color,
				DotWidth:    4,
			},
		})
	}

	// go-chart rejects a zero-height range, which a single hour or flat scores would give
	pad := (maxY - minY) * 0.05
	if pad == 0 {
		pad = 1
	}
	graph.YAxis.Range = &chart.ContinuousRange{Min: minY - pad, Max: maxY + pad}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
