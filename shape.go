package glyphrun

import (
	"fmt"
	"sort"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"
)

// Direction selects the paragraph direction for a render call. Auto infers
// the direction from the dominant script of the text.
type Direction uint8

const (
	DirectionAuto Direction = iota
	DirectionLTR
	DirectionRTL
)

// Run is a contiguous piece of the input text shaped against a single face.
// A rendered line is a sequence of Runs in logical order; consecutive Runes
// ranges tile the input exactly, with no rune dropped or duplicated.
type Run struct {
	// Face is the font the glyph IDs in this run refer to.
	Face font.Face

	// Glyphs in the order the shaping engine produced them, which for RTL
	// runs is visual order within the run.
	Glyphs []shaping.Glyph

	// Runes is the range of input runes this run was shaped from.
	Runes shaping.Range

	Direction di.Direction

	// Advance is the sum of the glyph advances.
	Advance fixed.Int26_6

	// LineBounds carries the face's ascent/descent/gap at the shaped size.
	LineBounds shaping.Bounds

	// Size is the pixel size the run was shaped at, 26.6 fixed point.
	Size fixed.Int26_6
}

// engine is the part of shaping.HarfbuzzShaper the fallback logic needs.
// Tests substitute a scripted implementation.
type engine interface {
	Shape(shaping.Input) shaping.Output
}

// Shaper turns strings into fallback-resolved glyph runs. It holds scratch
// state and is not safe for concurrent use; create one per goroutine. Render
// calls are pure functions of their inputs, so distinct Shapers may run in
// parallel over the same faces.
type Shaper struct {
	// Detector, when set, provides script/direction/language detection for
	// DirectionAuto and for tagging shaping inputs. When nil a cheap
	// script-table scan is used instead and the language is left unset.
	Detector *Detector

	size fixed.Int26_6
	hb   shaping.HarfbuzzShaper
	eng  engine
	para bidi.Paragraph
}

// NewShaper returns a Shaper that shapes at the given pixel size.
func NewShaper(sizePx float64) *Shaper {
	s := &Shaper{size: fixed.Int26_6(sizePx * 64)}
	s.eng = &s.hb
	return s
}

// Size returns the shaping pixel size in 26.6 fixed point.
func (s *Shaper) Size() fixed.Int26_6 {
	return s.size
}

// Render shapes text against faces[0], substituting later faces for the
// maximal sub-ranges faces[0] has no glyph for, recursively. Sub-ranges no
// face covers are shaped with faces[0] so its notdef boxes are drawn; that
// is a valid outcome, not an error. The returned runs are in logical order.
func (s *Shaper) Render(text string, faces []font.Face, dir Direction) ([]Run, error) {
	if len(faces) == 0 {
		return nil, fmt.Errorf("%w: empty font chain", ErrFontLoad)
	}
	for i, f := range faces {
		if f == nil {
			return nil, fmt.Errorf("%w: face %d in chain is nil", ErrFontLoad, i)
		}
	}
	runes := []rune(text)
	if len(runes) == 0 {
		return nil, nil
	}

	var runs []Run
	for _, seg := range s.segment(runes, dir) {
		segRuns, err := s.shapeSpan(runes, seg.start, seg.end, seg.dir, faces, 0)
		if err != nil {
			return nil, err
		}
		runs = append(runs, segRuns...)
	}
	return runs, nil
}

// span is a bidi segment of the input in logical order.
type span struct {
	start, end int
	dir        di.Direction
}

// ResolveDirection returns the paragraph direction Render uses for text:
// dir itself when explicit, the detected dominant direction for Auto. Layout
// code needs it because the first run of a mixed-direction paragraph may
// oppose the paragraph direction.
func (s *Shaper) ResolveDirection(text string, dir Direction) di.Direction {
	return s.base([]rune(text), dir)
}

func (s *Shaper) base(runes []rune, dir Direction) di.Direction {
	switch dir {
	case DirectionLTR:
		return di.DirectionLTR
	case DirectionRTL:
		return di.DirectionRTL
	}
	if s.Detector != nil {
		return s.Detector.Direction(s.Detector.Script(runes))
	}
	return scanDirection(runes)
}

// segment resolves the paragraph direction and splits the text into
// single-direction bidi segments.
func (s *Shaper) segment(runes []rune, dir Direction) []span {
	base := s.base(runes, dir)

	def := bidi.LeftToRight
	if base == di.DirectionRTL {
		def = bidi.RightToLeft
	}
	s.para.SetString(string(runes), bidi.DefaultDirection(def))
	out, err := s.para.Order()
	if err != nil || out.NumRuns() <= 1 {
		return []span{{start: 0, end: len(runes), dir: base}}
	}

	spans := make([]span, 0, out.NumRuns())
	start := 0
	for i := 0; i < out.NumRuns(); i++ {
		run := out.Run(i)
		_, endRune := run.Pos()
		seg := span{start: start, end: endRune + 1, dir: di.DirectionLTR}
		if run.Direction() == bidi.RightToLeft {
			seg.dir = di.DirectionRTL
		}
		spans = append(spans, seg)
		start = seg.end
	}
	return spans
}

// scanDirection picks RTL when the first strong script in the text is an RTL
// one. Used when no Detector is configured.
func scanDirection(runes []rune) di.Direction {
	for _, r := range runes {
		switch language.LookupScript(r) {
		case language.Arabic, language.Hebrew:
			return di.DirectionRTL
		case language.Common, language.Unknown:
			continue
		default:
			return di.DirectionLTR
		}
	}
	return di.DirectionLTR
}

// shapeSpan shapes runes[start:end) with faces[idx]. Sub-ranges the face has
// no glyph for are re-shaped against faces[idx+1:], first match wins; when
// the chain is exhausted the sub-range is shaped with faces[0] so the
// primary's notdef glyph is what gets drawn.
func (s *Shaper) shapeSpan(runes []rune, start, end int, dir di.Direction, faces []font.Face, idx int) ([]Run, error) {
	out, err := s.shape(runes, start, end, dir, faces[idx])
	if err != nil {
		return nil, err
	}
	missing := missingSpans(out.Glyphs, start, end)
	if len(missing) == 0 {
		return []Run{makeRun(out, faces[idx], start, end)}, nil
	}

	// Substitution operates on logical (input) ranges, never on output glyph
	// positions, so bidi reordering inside the engine stays intact.
	runs := make([]Run, 0, 2*len(missing)+1)
	cursor := start
	for _, m := range missing {
		if cursor < m.start {
			covered, err := s.shape(runes, cursor, m.start, dir, faces[idx])
			if err != nil {
				return nil, err
			}
			runs = append(runs, makeRun(covered, faces[idx], cursor, m.start))
		}
		if idx+1 < len(faces) {
			sub, err := s.shapeSpan(runes, m.start, m.end, dir, faces, idx+1)
			if err != nil {
				return nil, err
			}
			runs = append(runs, sub...)
		} else {
			// Chain exhausted: degrade to the primary's notdef boxes.
			boxes, err := s.shape(runes, m.start, m.end, dir, faces[0])
			if err != nil {
				return nil, err
			}
			runs = append(runs, makeRun(boxes, faces[0], m.start, m.end))
		}
		cursor = m.end
	}
	if cursor < end {
		covered, err := s.shape(runes, cursor, end, dir, faces[idx])
		if err != nil {
			return nil, err
		}
		runs = append(runs, makeRun(covered, faces[idx], cursor, end))
	}
	return runs, nil
}

// shape runs the engine over one input range. Engine panics (malformed font
// tables and the like) surface as ErrShaping for this call only.
func (s *Shaper) shape(runes []rune, start, end int, dir di.Direction, face font.Face) (out shaping.Output, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("%w: %v", ErrShaping, recovered)
		}
	}()

	in := shaping.Input{
		Text:      runes,
		RunStart:  start,
		RunEnd:    end,
		Direction: dir,
		Face:      face,
		Size:      s.size,
		Script:    scriptOf(runes[start:end]),
	}
	if s.Detector != nil {
		in.Language = s.Detector.Language(runes[start:end])
	}
	out = s.eng.Shape(in)
	return out, nil
}

// scriptOf returns the script of the first non-common rune, the way the text
// would be itemized for shaping.
func scriptOf(runes []rune) language.Script {
	for _, r := range runes {
		if sc := language.LookupScript(r); sc != language.Common && sc != language.Unknown {
			return sc
		}
	}
	return language.Latin
}

// runeSpan is a half-open range of input runes.
type runeSpan struct {
	start, end int
}

// missingSpans maps the notdef glyphs of a shaped output back to maximal
// input rune ranges. Glyph ID 0 is the engine's missing-glyph sentinel;
// zero-advance combining glyphs with real IDs are not missing. Ranges come
// from cluster indices, so reordered (RTL) outputs still yield ranges in
// logical order.
func missingSpans(glyphs []shaping.Glyph, start, end int) []runeSpan {
	var spans []runeSpan
	for _, g := range glyphs {
		if g.GlyphID != 0 {
			continue
		}
		cs := g.ClusterIndex
		ce := cs + g.RuneCount
		if cs < start {
			cs = start
		}
		if ce > end {
			ce = end
		}
		if cs < ce {
			spans = append(spans, runeSpan{start: cs, end: ce})
		}
	}
	if len(spans) == 0 {
		return nil
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	merged := spans[:1]
	for _, sp := range spans[1:] {
		last := &merged[len(merged)-1]
		if sp.start <= last.end {
			if sp.end > last.end {
				last.end = sp.end
			}
			continue
		}
		merged = append(merged, sp)
	}
	return merged
}

func makeRun(out shaping.Output, face font.Face, start, end int) Run {
	return Run{
		Face:       face,
		Glyphs:     out.Glyphs,
		Runes:      shaping.Range{Offset: start, Count: end - start},
		Direction:  out.Direction,
		Advance:    out.Advance,
		LineBounds: out.LineBounds,
		Size:       out.Size,
	}
}
