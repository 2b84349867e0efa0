package charts

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"

	"github.com/spacesedan/subreddit-insights/internal/models"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const pieSize = 500

var polarityColors = map[string]drawing.Color{
	"positive": drawing.ColorFromHex("1f77b4"),
	"negative": drawing.ColorFromHex("ff7f0e"),
	"neutral":  drawing.ColorFromHex("2ca02c"),
}

// renderPolarity draws one pie per distribution and lays them out left to right.
func renderPolarity(dists []models.LabeledDistribution) ([]byte, error) {
	if len(dists) == 0 {
		return nil, errors.New("no distributions to plot")
	}

	pies := make([]image.Image, 0, len(dists))
	for _, d := range dists {
		img, err := renderPie(d)
		if err != nil {
			return nil, err
		}
		pies = append(pies, img)
	}

	canvas := image.NewRGBA(image.Rect(0, 0, pieSize*len(pies), pieSize))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)
	for i, pie := range pies {
		offset := image.Pt(i*pieSize, 0)
		draw.Draw(canvas, pie.Bounds().Add(offset), pie, pie.Bounds().Min, draw.Over)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderPie(d models.LabeledDistribution) (image.Image, error) {
	slices := []struct {
		label string
		value float64
	}{
		{"positive", d.Distribution.PercentPositive},
		{"negative", d.Distribution.PercentNegative},
		{"neutral", d.Distribution.PercentNeutral},
	}

	var values []chart.Value
	for _, s := range slices {
		if s.value <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Value: s.value,
			Label: fmt.Sprintf("%s %.1f%%", s.label, s.value),
			Style: chart.Style{FillColor: polarityColors[s.label], FontColor: drawing.ColorWhite},
		})
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("distribution for %q is empty", d.Label)
	}

	pie := chart.PieChart{
		Title:  d.Label,
		Width:  pieSize,
		Height: pieSize,
		Values: values,
	}

	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return png.Decode(&buf)
}
