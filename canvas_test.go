package glyphrun

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/freetype/truetype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func TestDrawText(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.LoadBytes("goregular.ttf", goregular.TTF))
	shaper := NewShaper(24)

	img, err := DrawText([]string{"hello", "world"}, reg, shaper, ImageOptions{
		Width:  300,
		Height: 200,
	})
	require.NoError(t, err)

	b := img.Bounds()
	assert.Equal(t, 300, b.Dx())
	assert.Equal(t, 200, b.Dy())

	bg := color.RGBAModel.Convert(BACKGROUND)
	ink := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if color.RGBAModel.Convert(img.At(x, y)) != bg {
				ink++
			}
		}
	}
	assert.Greater(t, ink, 0, "the text should leave ink on the canvas")
}

func TestDrawTextDefaults(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.LoadBytes("goregular.ttf", goregular.TTF))
	shaper := NewShaper(24)

	img, err := DrawText([]string{"hi"}, reg, shaper, ImageOptions{})
	require.NoError(t, err)
	assert.Equal(t, 700, img.Bounds().Dx())
	assert.Equal(t, 525, img.Bounds().Dy())
}

func TestDrawTextParagraphDirection(t *testing.T) {
	// mixed-direction text lays out differently under LTR and RTL paragraph
	// direction even though the run directions themselves are identical
	reg := NewRegistry()
	require.NoError(t, reg.LoadBytes("goregular.ttf", goregular.TTF))
	shaper := NewShaper(24)

	const text = "abc שלום"
	ltr, err := DrawText([]string{text}, reg, shaper, ImageOptions{
		Width: 300, Height: 80, Direction: DirectionLTR,
	})
	require.NoError(t, err)
	rtl, err := DrawText([]string{text}, reg, shaper, ImageOptions{
		Width: 300, Height: 80, Direction: DirectionRTL,
	})
	require.NoError(t, err)

	ltrPix, ok := ltr.(*image.RGBA)
	require.True(t, ok)
	rtlPix, ok := rtl.(*image.RGBA)
	require.True(t, ok)
	assert.NotEqual(t, ltrPix.Pix, rtlPix.Pix)
}

func TestDrawTextEmptyRegistry(t *testing.T) {
	reg := NewRegistry()
	shaper := NewShaper(24)

	_, err := DrawText([]string{"hi"}, reg, shaper, ImageOptions{})
	assert.ErrorIs(t, err, ErrFontLoad)
}

func TestDrawPlain(t *testing.T) {
	ttf, err := truetype.Parse(goregular.TTF)
	require.NoError(t, err)

	img, err := DrawPlain([]string{"hello, world"}, ttf, 24, ImageOptions{
		Width:  300,
		Height: 100,
	})
	require.NoError(t, err)

	b := img.Bounds()
	bg := color.RGBAModel.Convert(BACKGROUND)
	ink := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if color.RGBAModel.Convert(img.At(x, y)) != bg {
				ink++
			}
		}
	}
	assert.Greater(t, ink, 0)
}

func TestWritePNG(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.LoadBytes("goregular.ttf", goregular.TTF))
	shaper := NewShaper(24)

	img, err := DrawText([]string{"hi"}, reg, shaper, ImageOptions{Width: 100, Height: 50})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, WritePNG(path, img))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	decoded, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())
}
