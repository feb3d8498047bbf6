package glyphrun

import (
	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/language"
	"github.com/pemistahl/lingua-go"
)

const nSupportedScripts = 12

// scripts with a dedicated entry in the detector ranking; position 0 is the
// unknown/default bucket
var supportedScripts = [nSupportedScripts]language.Script{
	language.Unknown,
	language.Latin,
	language.Hiragana,
	language.Katakana,
	language.Hebrew,
	language.Thai,
	language.Arabic,
	language.Devanagari,
	language.Bengali,
	language.Javanese,
	language.Han,
	language.Hangul,
}

type scriptRange struct {
	start  rune
	end    rune
	pos    int
	script language.Script
}

// Detector infers script, direction and language for a piece of text.
// Construct once and share; it is read-only after NewDetector.
type Detector struct {
	langs  lingua.LanguageDetector
	ranges []scriptRange
}

func NewDetector() *Detector {
	d := &Detector{}

	d.langs = lingua.NewLanguageDetectorBuilder().FromLanguages(
		lingua.English,
		lingua.Japanese,
		lingua.Persian,
		lingua.Chinese,
		lingua.Thai,
		lingua.Hebrew,
		lingua.Arabic,
		lingua.Bengali,
		lingua.Korean,
	).WithLowAccuracyMode().Build()

	for _, srange := range language.ScriptRanges {
		for ssi, script := range supportedScripts {
			if srange.Script == script {
				d.ranges = append(d.ranges, scriptRange{
					start:  srange.Start,
					end:    srange.End,
					script: srange.Script,
					pos:    ssi,
				})
			}
		}
	}

	return d
}

// Script returns the dominant script of the paragraph: the first script to
// account for more than half the runes, or the most frequent one otherwise.
func (d *Detector) Script(paragraph []rune) language.Script {
	var ranking [nSupportedScripts]int
	nLetters := len(paragraph)
	threshold := nLetters / 2
	for l := 0; l < nLetters; l++ {
		idx := d.lookup(paragraph[l])
		ranking[idx]++
		if idx > 0 && l > threshold && ranking[idx] > threshold {
			return supportedScripts[idx]
		}
	}
	return supportedScripts[maxIndex(ranking[:])]
}

// Direction maps a script to its writing direction.
func (d *Detector) Direction(script language.Script) di.Direction {
	if script == language.Arabic || script == language.Hebrew {
		return di.DirectionRTL
	}
	return di.DirectionLTR
}

// Language guesses the language of the paragraph for shaping purposes,
// defaulting to English when detection fails.
func (d *Detector) Language(paragraph []rune) language.Language {
	lng := language.Language("en-us")
	lang, ok := d.langs.DetectLanguageOf(string(paragraph))
	if ok {
		lng = language.Language(lang.IsoCode639_1().String())
	}
	return lng
}

// lookup returns the position in supportedScripts for r, 0 when unknown.
func (d *Detector) lookup(r rune) int {
	// binary search
	for i, j := 0, len(d.ranges); i < j; {
		h := i + (j-i)/2
		entry := d.ranges[h]
		if r < entry.start {
			j = h
		} else if entry.end < r {
			i = h + 1
		} else {
			return entry.pos
		}
	}
	return 0
}

func maxIndex(counts []int) int {
	idx := 0
	for i, c := range counts {
		if c > counts[idx] {
			idx = i
		}
	}
	return idx
}
