package charts

import (
	"bytes"
	"image"
	"image/color"
	"log/slog"
	"math"
	"math/rand"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/spacesedan/subreddit-insights/internal/models"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	cloudWidth   = 400
	cloudHeight  = 600
	maxFontSize  = 72.0
	minFontSize  = 8.0
	fontStep     = 2.0
	spiralStep   = 0.1
	spiralTurns  = 2000
	cloudPadding = 2.0
)

var (
	fontOnce   sync.Once
	cloudFont  *truetype.Font
	fontErr    error
	wordColors = []color.RGBA{
		{68, 1, 84, 255},
		{59, 82, 139, 255},
		{33, 145, 140, 255},
		{94, 201, 98, 255},
		{49, 104, 142, 255},
		{72, 40, 120, 255},
		{53, 183, 121, 255},
	}
)

func loadFont() (*truetype.Font, error) {
	fontOnce.Do(func() {
		cloudFont, fontErr = truetype.Parse(goregular.TTF)
	})
	return cloudFont, fontErr
}

// renderWordCloud places words largest first on an archimedean spiral out from the
// center, shrinking a word until it fits and dropping it once it no longer does.
// The seed fixes colors and spiral orientation so reruns draw the same image.
func renderWordCloud(weights []models.WeightedWord, seed int64) ([]byte, error) {
	f, err := loadFont()
	if err != nil {
		return nil, err
	}

	dc := gg.NewContext(cloudWidth, cloudHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	rng := rand.New(rand.NewSource(seed))
	var placed []rectangle
	skipped := 0

	for _, w := range weights {
		size := minFontSize + (maxFontSize-minFontSize)*w.Weight
		ok := false

		for ; size >= minFontSize; size -= fontStep {
			dc.SetFontFace(truetype.NewFace(f, &truetype.Options{Size: size}))
			tw, th := dc.MeasureString(w.Word)

			cx, cy, found := findSlot(placed, tw+cloudPadding*2, th+cloudPadding*2, rng.Float64()*2*math.Pi)
			if !found {
				continue
			}

			dc.SetColor(wordColors[rng.Intn(len(wordColors))])
			dc.DrawStringAnchored(w.Word, cx, cy, 0.5, 0.35)
			placed = append(placed, newRectangle(cx, cy, tw+cloudPadding*2, th+cloudPadding*2))
			ok = true
			break
		}

		if !ok {
			skipped++
		}
	}

	if skipped > 0 {
		slog.Debug("[Charts] Word cloud ran out of space",
			slog.Int("placed", len(placed)),
			slog.Int("skipped", skipped))
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type rectangle struct {
	minX, minY, maxX, maxY float64
}

func newRectangle(cx, cy, w, h float64) rectangle {
	return rectangle{minX: cx - w/2, minY: cy - h/2, maxX: cx + w/2, maxY: cy + h/2}
}

func (r rectangle) overlaps(o rectangle) bool {
	return r.minX < o.maxX && o.minX < r.maxX && r.minY < o.maxY && o.minY < r.maxY
}

func (r rectangle) inside(bounds image.Rectangle) bool {
	return r.minX >= float64(bounds.Min.X) && r.minY >= float64(bounds.Min.Y) &&
		r.maxX <= float64(bounds.Max.X) && r.maxY <= float64(bounds.Max.Y)
}

func findSlot(placed []rectangle, w, h, phase float64) (float64, float64, bool) {
	bounds := image.Rect(0, 0, cloudWidth, cloudHeight)
	centerX, centerY := cloudWidth/2.0, cloudHeight/2.0

	for i := 0; i < spiralTurns; i++ {
		t := float64(i) * spiralStep
		x := centerX + 2*t*math.Cos(t+phase)
		y := centerY + 3*t*math.Sin(t+phase)

		candidate := newRectangle(x, y, w, h)
		if !candidate.inside(bounds) {
			continue
		}

		free := true
		for _, p := range placed {
			if candidate.overlaps(p) {
				free = false
				break
			}
		}
		if free {
			return x, y, true
		}
	}

	return 0, 0, false
}
