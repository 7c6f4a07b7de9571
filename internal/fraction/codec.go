// Package fraction converts between the mixed fraction notation tailors
// type ("9 1/2", "9½") and the canonical decimal strings measurements are
// stored as ("9.5"). Parsing is permissive: anything that is not a complete
// fraction token passes through untouched, so a half-typed value never
// blocks data entry.
package fraction

import (
	"regexp"
	"strings"
)

var fractionToDecimal = map[string]string{
	"¼":   ".25",
	"½":   ".5",
	"¾":   ".75",
	"1/4": ".25",
	"1/2": ".5",
	"3/4": ".75",
}

var decimalToGlyph = map[string]string{
	"25": "¼",
	"5":  "½",
	"50": "½",
	"75": "¾",
}

// Unicode glyph optionally preceded by an integer: "9½", "½".
var glyphPattern = regexp.MustCompile(`([0-9]*)\s*([¼½¾])`)

// ASCII slash notation optionally preceded by an integer and a space:
// "9 1/2", "1/2". Global, so "25 1/2 26 1/2" converts both occurrences.
var slashPattern = regexp.MustCompile(`(?:(\d+)\s+)?(1/4|1/2|3/4)`)

// Decimal run eligible for glyph display. Go's regexp has no lookahead, so
// the trailing digit guard of the reference pattern (\d*)\.(25|50|5|75)(?!\d)
// is expressed by capturing any following digits and bailing out when present.
var displayPattern = regexp.MustCompile(`(\d*)\.(25|50|5|75)(\d*)`)

// Parse converts user-facing mixed notation to canonical decimal text.
// "9 1/2" and "9½" become "9.5"; a bare "½" becomes "0.5"; substrings with
// no recognized fraction token are left as typed.
func Parse(input string) string {
	if input == "" {
		return ""
	}

	out := glyphPattern.ReplaceAllStringFunc(input, func(m string) string {
		sub := glyphPattern.FindStringSubmatch(m)
		number, glyph := sub[1], sub[2]
		if number == "" {
			number = "0"
		}
		return number + fractionToDecimal[glyph]
	})

	out = slashPattern.ReplaceAllStringFunc(out, func(m string) string {
		sub := slashPattern.FindStringSubmatch(m)
		number, frac := sub[1], sub[2]
		if number == "" {
			number = "0"
		}
		return number + fractionToDecimal[frac]
	})

	return out
}

// Format renders a stored decimal string with Unicode fraction glyphs.
// "9.5" becomes "9½"; "25.5 26.5" becomes "25½ 26½". A decimal followed by
// another digit ("0.55") is not a fraction and passes through unchanged.
func Format(value string) string {
	if value == "" {
		return ""
	}

	return displayPattern.ReplaceAllStringFunc(value, func(m string) string {
		sub := displayPattern.FindStringSubmatch(m)
		number, decimal, trailing := sub[1], sub[2], sub[3]
		if trailing != "" {
			// ".5" greedily matched out of a longer run like ".55";
			// not a recognized fraction suffix.
			return m
		}
		glyph, ok := decimalToGlyph[decimal]
		if !ok {
			return m
		}
		return number + glyph
	})
}

// HasGlyph reports whether the value contains any fraction glyph. Used by
// renderers to pick a numeric font stack that covers the glyph range.
func HasGlyph(value string) bool {
	return strings.ContainsAny(value, "¼½¾")
}
