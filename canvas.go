package glyphrun

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

var (
	BACKGROUND = color.RGBA{23, 23, 23, 255}
	FOREGROUND = color.RGBA{255, 230, 238, 255}
)

// ImageOptions configures the output canvas. Zero values pick the defaults.
type ImageOptions struct {
	Width, Height int
	Background    color.Color
	Foreground    color.Color
	// LineSpacing is the extra space between lines as a fraction of the
	// font size.
	LineSpacing float64
	PaddingLeft int
	PaddingTop  int
	Direction   Direction
}

func (opts *ImageOptions) fillDefaults() {
	if opts.Width == 0 {
		opts.Width = 700
	}
	if opts.Height == 0 {
		opts.Height = 525
	}
	if opts.Background == nil {
		opts.Background = BACKGROUND
	}
	if opts.Foreground == nil {
		opts.Foreground = FOREGROUND
	}
	if opts.LineSpacing == 0 {
		opts.LineSpacing = 0.3
	}
	if opts.PaddingLeft == 0 {
		opts.PaddingLeft = 20
	}
	if opts.PaddingTop == 0 {
		opts.PaddingTop = 20
	}
}

// DrawText shapes each line against the registry's font chain (with
// fallback) and rasterizes the result onto a fresh canvas.
func DrawText(lines []string, reg *Registry, shaper *Shaper, opts ImageOptions) (image.Image, error) {
	opts.fillDefaults()

	img := gg.NewContext(opts.Width, opts.Height)
	img.SetColor(opts.Background)
	img.Clear()
	dst, ok := img.Image().(draw.Image)
	if !ok {
		return nil, fmt.Errorf("canvas image is not drawable")
	}

	rn := &Renderer{Color: opts.Foreground}
	size := float64(shaper.Size()) / 64
	lineHeight := size + size*opts.LineSpacing

	for i, line := range lines {
		runs, err := shaper.Render(line, reg.Faces(), opts.Direction)
		if err != nil {
			return nil, err
		}
		ascent, _, _ := Metrics(runs)
		dot := fixed.Point26_6{
			X: fixed.I(opts.PaddingLeft),
			Y: fixed.I(opts.PaddingTop) + fixed.Int26_6(float64(i)*lineHeight*64) + ascent,
		}
		rn.DrawRuns(dst, runs, dot, shaper.ResolveDirection(line, opts.Direction))
	}

	return img.Image(), nil
}

// DrawPlain draws lines with gg's own text path using a truetype face. No
// shaping and no fallback: use it for text the primary font fully covers.
func DrawPlain(lines []string, ttf *truetype.Font, size float64, opts ImageOptions) (image.Image, error) {
	opts.fillDefaults()

	img := gg.NewContext(opts.Width, opts.Height)
	img.SetColor(opts.Background)
	img.Clear()
	img.SetColor(opts.Foreground)
	img.SetFontFace(truetype.NewFace(ttf, &truetype.Options{
		Size:    size,
		Hinting: font.HintingFull,
	}))

	lineHeight := size + size*opts.LineSpacing
	for i, line := range lines {
		y := float64(opts.PaddingTop) + float64(i+1)*lineHeight
		img.DrawString(line, float64(opts.PaddingLeft), y)
	}

	return img.Image(), nil
}

// WritePNG writes the image to path.
func WritePNG(path string, img image.Image) error {
	return gg.SavePNG(path, img)
}
