package glyphrun

import (
	"strings"

	"github.com/apatters/go-wordwrap"
)

const (
	// defaults for NormalizeText when zero values are passed
	MAX_LINES          = 20
	MAX_CHARS_PER_LINE = 52
)

// NormalizeText turns raw text blocks into a capped series of lines ready to
// be drawn: lines are word-wrapped to maxChars, and when breakWords is set
// (scripts without word separators, like Japanese) over-long wrapped lines
// are further split at rune boundaries. A word too big to ever fit is cut
// with an ellipsis.
func NormalizeText(blocks []string, maxLines, maxChars int, breakWords bool) []string {
	if maxLines <= 0 {
		maxLines = MAX_LINES
	}
	if maxChars <= 0 {
		maxChars = MAX_CHARS_PER_LINE
	}

	lines := make([]string, 0, maxLines)
	l := 0 // global line counter

	for _, block := range blocks {
		for _, line := range strings.Split(block, "\n") {
			if l == maxLines {
				// escape and return here if we're over max lines
				return lines
			}

			// turn a single line into multiple if it is long enough -- carefully splitting on word ends
			wrappedLines := strings.Split(wordwrap.Wrap(maxChars, strings.TrimSpace(line)), "\n")

			// now we go over all these lines and further split them if necessary
			// in japanese, for example, we must break the words otherwise nothing works
			var sublines []string
			if breakWords {
				sublines = make([]string, 0, len(wrappedLines))
				for _, wline := range wrappedLines {
					// split until we have a bunch of lines all under maxChars
					for {
						if len(wline) > maxChars {
							// we can't split exactly at maxChars because that would break utf-8 runes
							// so we do this range mess to try to grab where the last rune in the line ends
							subline := make([]rune, 0, maxChars)
							var i int
							var r rune
							for i, r = range wline {
								if i > maxChars {
									break
								}
								subline = append(subline, r)
							}
							sublines = append(sublines, string(subline))
							wline = wline[i:]
						} else {
							sublines = append(sublines, wline)
							break
						}
					}
				}
			} else {
				sublines = wrappedLines
			}

			for _, subline := range sublines {
				if l == maxLines {
					return lines
				}

				// if a line has a word so big that it would overflow, hide it with an ellipsis
				if len([]rune(subline)) > maxChars {
					subline = string([]rune(subline)[0:maxChars-1]) + "…"
				}

				lines = append(lines, subline)
				l++
			}
		}
	}
	return lines
}
