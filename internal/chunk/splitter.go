// Package chunk splits normalized documents into overlapping retrievable
// segments along semantic boundaries, preserving page and table provenance.
package chunk

import (
	"strings"
	"unicode/utf8"
)

// separators in boundary-preference order: paragraph break, line break,
// sentence end, word boundary. A hard rune cut is the last resort.
var separators = [...]string{"\n\n", "\n", ". ", " "}

// Split divides text into segments of at most size bytes. Each cut lands
// on the highest-priority boundary available inside the window, and every
// segment after the first repeats the trailing overlap bytes of its
// predecessor so context loss at split points stays bounded.
//
// Every cut falls on a rune boundary, so multi-byte text never yields
// invalid UTF-8 segments. Segments are verbatim slices of the input; no
// whitespace trimming is applied, which keeps the overlap between
// consecutive segments an exact substring match.
func Split(text string, size, overlap int) []string {
	if text == "" {
		return nil
	}
	if size <= 0 || len(text) <= size {
		return []string{text}
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= size {
		overlap = size - 1
	}

	var segments []string
	start := 0
	for {
		if len(text)-start <= size {
			segments = append(segments, text[start:])
			return segments
		}

		cut := cutPoint(text[start : start+size])
		// A hard cut may land inside a multi-byte rune; back it up to the
		// rune start.
		for cut > 0 && !utf8.RuneStart(text[start+cut]) {
			cut--
		}
		if cut == 0 {
			cut = size
		}
		segments = append(segments, text[start:start+cut])

		next := start + cut - overlap
		// Snap the overlap start forward to a word boundary so segments do
		// not begin mid-word.
		if overlap > 0 {
			if idx := strings.IndexAny(text[next:start+cut], " \n"); idx >= 0 && next+idx+1 < start+cut {
				next += idx + 1
			}
		}
		for next < len(text) && !utf8.RuneStart(text[next]) {
			next++
		}
		if next <= start {
			next = start + cut
		}
		start = next
	}
}

// cutPoint returns the end offset of the next segment within window: the
// position just after the last occurrence of the highest-priority separator,
// or the full window when no boundary exists (hard cut).
func cutPoint(window string) int {
	for _, sep := range separators {
		if idx := strings.LastIndex(window, sep); idx > 0 {
			return idx + len(sep)
		}
	}
	return len(window)
}
