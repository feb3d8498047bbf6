package glyphrun

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/fixed"
)

func shapeLine(t *testing.T, text string) []Run {
	t.Helper()
	face := testFace(t)
	s := NewShaper(24)
	runs, err := s.Render(text, []font.Face{face}, DirectionLTR)
	require.NoError(t, err)
	return runs
}

func countInk(img *image.RGBA, background color.RGBA) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) != background {
				n++
			}
		}
	}
	return n
}

func TestDrawRunsPaintsPixels(t *testing.T) {
	runs := shapeLine(t, "Hi")

	white := color.RGBA{255, 255, 255, 255}
	dst := image.NewRGBA(image.Rect(0, 0, 200, 80))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(white), image.Point{}, draw.Src)

	rn := &Renderer{}
	advance := rn.DrawRuns(dst, runs, fixed.P(10, 50), di.DirectionLTR)

	assert.Greater(t, int(advance), 0)
	assert.Greater(t, countInk(dst, white), 0, "glyph outlines should leave ink")
}

func TestDrawRunsEmpty(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 10, 10))
	rn := &Renderer{}
	assert.Equal(t, fixed.Int26_6(0), rn.DrawRuns(dst, nil, fixed.P(0, 0), di.DirectionLTR))
}

func TestRTLParagraphOpeningWithLTRRun(t *testing.T) {
	// an RTL paragraph starting with a Latin word: the first logical run is
	// LTR, so laying out by the first run's direction would flip the line
	primary := testFace(t)
	const text = "abc שלום"
	s := fakeShaper(t, map[font.Face]string{primary: text})

	runs, err := s.Render(text, []font.Face{primary}, DirectionRTL)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(runs), 2)
	assert.Equal(t, di.DirectionLTR, runs[0].Direction)

	dominant := s.ResolveDirection(text, DirectionRTL)
	require.Equal(t, di.DirectionRTL, dominant)

	order := visualOrder(runs, dominant)
	first := runs[order[0]]
	last := runs[order[len(order)-1]]
	assert.Equal(t, di.DirectionRTL, first.Direction, "the Hebrew tail goes leftmost")
	assert.Equal(t, di.DirectionLTR, last.Direction, "the Latin opening goes rightmost")
}

func TestMetrics(t *testing.T) {
	runs := shapeLine(t, "Hello")
	ascent, descent, advance := Metrics(runs)
	assert.Greater(t, int(ascent), 0)
	assert.GreaterOrEqual(t, int(descent), 0)

	var sum fixed.Int26_6
	for _, run := range runs {
		sum += run.Advance
	}
	assert.Equal(t, sum, advance)
}

func TestVisualOrder(t *testing.T) {
	mk := func(dirs ...di.Direction) []Run {
		runs := make([]Run, len(dirs))
		for i, d := range dirs {
			runs[i].Direction = d
		}
		return runs
	}
	ltr, rtl := di.DirectionLTR, di.DirectionRTL

	for _, tc := range []struct {
		name     string
		runs     []Run
		dominant di.Direction
		want     []int
	}{
		{"all ltr", mk(ltr, ltr, ltr), ltr, []int{0, 1, 2}},
		{"all rtl", mk(rtl, rtl, rtl), rtl, []int{2, 1, 0}},
		{"rtl group in ltr line", mk(ltr, rtl, rtl, ltr), ltr, []int{0, 2, 1, 3}},
		{"ltr group in rtl line", mk(rtl, ltr, ltr, rtl), rtl, []int{3, 1, 2, 0}},
		{"single", mk(rtl), rtl, []int{0}},
	} {
		assert.Equal(t, tc.want, visualOrder(tc.runs, tc.dominant), tc.name)
	}
}
