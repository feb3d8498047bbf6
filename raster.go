package glyphrun

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/tiff"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/opentype/api"
	"github.com/go-text/typesetting/shaping"
	"github.com/nfnt/resize"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// Renderer rasterizes glyph runs onto an image. The zero value draws in
// black; it is stateless and safe to reuse across lines.
type Renderer struct {
	Color color.Color
}

// DrawRuns draws a logical-order run list at the given baseline dot and
// returns the total advance. dominant is the paragraph direction the text was
// shaped under, not the first run's: an RTL paragraph can open with an LTR
// run. Runs are placed in visual order: groups of runs whose direction
// opposes dominant are reversed, while their source ranges stay logical.
func (rn *Renderer) DrawRuns(dst draw.Image, runs []Run, dot fixed.Point26_6, dominant di.Direction) fixed.Int26_6 {
	if len(runs) == 0 {
		return 0
	}
	x := dot.X
	for _, idx := range visualOrder(runs, dominant) {
		rn.drawRun(dst, runs[idx], fixed.Point26_6{X: x, Y: dot.Y})
		x += runs[idx].Advance
	}
	return x - dot.X
}

// Metrics accumulates line metrics over a run list: max ascent, max
// descent+gap (both positive, in pixels 26.6) and the summed advance.
func Metrics(runs []Run) (ascent, descent, advance fixed.Int26_6) {
	for _, run := range runs {
		if run.LineBounds.Ascent > ascent {
			ascent = run.LineBounds.Ascent
		}
		if d := -run.LineBounds.Descent + run.LineBounds.Gap; d > descent {
			descent = d
		}
		advance += run.Advance
	}
	return ascent, descent, advance
}

func (rn *Renderer) drawRun(dst draw.Image, run Run, dot fixed.Point26_6) {
	if run.Face == nil || len(run.Glyphs) == 0 {
		return
	}
	bounds := dst.Bounds()
	scanner := rasterx.NewScannerGV(bounds.Dx(), bounds.Dy(), dst, bounds)
	filler := rasterx.NewFiller(bounds.Dx(), bounds.Dy(), scanner)
	c := rn.Color
	if c == nil {
		c = color.Black
	}
	filler.SetColor(c)

	// outline coordinates are font units; advances and offsets are already
	// scaled 26.6 pixels
	scale := float32(run.Size) / float32(run.Face.Upem())

	pen := dot.X
	filled := false
	for _, g := range run.Glyphs {
		ox := pen + g.XOffset
		oy := dot.Y - g.YOffset
		switch data := run.Face.GlyphData(api.GID(g.GlyphID)).(type) {
		case api.GlyphOutline:
			if addOutline(filler, data, scale, ox, oy) {
				filled = true
			}
		case api.GlyphBitmap:
			drawBitmap(dst, g, data, ox, oy)
		}
		pen += g.XAdvance
	}
	if filled {
		filler.Draw()
	}
}

// addOutline adds one glyph outline to the filler, scaled from font units
// and flipped to image coordinates (y grows down).
func addOutline(filler *rasterx.Filler, outline api.GlyphOutline, scale float32, ox, oy fixed.Int26_6) bool {
	pt := func(i int, seg api.Segment) fixed.Point26_6 {
		return fixed.Point26_6{
			X: ox + fixed.Int26_6(seg.Args[i].X*scale),
			Y: oy - fixed.Int26_6(seg.Args[i].Y*scale),
		}
	}
	started := false
	for _, seg := range outline.Segments {
		switch seg.Op {
		case api.SegmentOpMoveTo:
			if started {
				filler.Stop(true)
			}
			filler.Start(pt(0, seg))
			started = true
		case api.SegmentOpLineTo:
			filler.Line(pt(0, seg))
		case api.SegmentOpQuadTo:
			filler.QuadBezier(pt(0, seg), pt(1, seg))
		case api.SegmentOpCubeTo:
			filler.CubeBezier(pt(0, seg), pt(1, seg), pt(2, seg))
		}
	}
	if started {
		filler.Stop(true)
	}
	return started
}

// drawBitmap draws a bitmap glyph (color emoji fonts) scaled into the glyph
// box reported by the shaper.
func drawBitmap(dst draw.Image, g shaping.Glyph, data api.GlyphBitmap, ox, oy fixed.Int26_6) {
	switch data.Format {
	case api.PNG, api.JPG, api.TIFF:
	default:
		return
	}
	img, _, err := image.Decode(bytes.NewReader(data.Data))
	if err != nil {
		log.Debug().Err(err).Msg("undecodable bitmap glyph")
		return
	}
	// Height is negative (bearing at the top, box extends down)
	w := g.Width.Ceil()
	h := (-g.Height).Ceil()
	if w <= 0 || h <= 0 {
		return
	}
	scaled := resize.Resize(uint(w), uint(h), img, resize.Bilinear)
	left := (ox + g.XBearing).Floor()
	top := (oy - g.YBearing).Floor()
	draw.Draw(dst, image.Rect(left, top, left+w, top+h), scaled, image.Point{}, draw.Over)
}

// visualOrder returns run indices in left-to-right visual order. dominant
// decides the overall progression; consecutive runs opposing it form a group
// that is laid out reversed.
func visualOrder(runs []Run, dominant di.Direction) []int {
	order := make([]int, len(runs))
	rtl := dominant == di.DirectionRTL
	visPos := func(logical int) int {
		if rtl {
			return len(runs) - 1 - logical
		}
		return logical
	}
	const none = -1
	groupStart := none
	resolve := func(start, end int) {
		firstVisual := end - 1
		for i := start; i < end; i++ {
			order[visPos(firstVisual)] = i
			firstVisual--
		}
	}
	for i, run := range runs {
		if run.Direction != dominant {
			if groupStart == none {
				groupStart = i
			}
			continue
		}
		if groupStart != none {
			resolve(groupStart, i)
			groupStart = none
		}
		order[visPos(i)] = i
	}
	if groupStart != none {
		resolve(groupStart, len(runs))
	}
	return order
}
