// Package format splits recipe prose into display segments: quantity phrases
// to be emphasized and parenthesized durations to be shown as time hints.
package format

import (
	"regexp"
	"strings"
)

type Kind int

const (
	Plain Kind = iota
	Emphasis
	Time
)

func (k Kind) String() string {
	switch k {
	case Emphasis:
		return "emphasis"
	case Time:
		return "time"
	}
	return "plain"
}

// Segment is a contiguous run of text with a display kind.
type Segment struct {
	Text string
	Kind Kind
}

var (
	// a leading number (1, 1/2, 0.5) followed by words, e.g. "1/2 cup chopped onion".
	// Units are not checked against a vocabulary.
	quantityRe = regexp.MustCompile(`(?i)\d+(?:/\d+|\.\d+)?\s+(?:[a-z]+\s+)*[a-z-]+`)

	// "(3 minutes)", "(3–4 minutes)"; the range separator is an en dash
	durationRe = regexp.MustCompile(`(?i)\(\d+(?:–\d+)? minutes?\)`)
)

// Emphasize marks every quantity phrase in text. The result always starts
// and ends with a plain segment, either of which may be empty, and kinds
// alternate in between.
func Emphasize(text string) []Segment {
	return split(text, quantityRe, Emphasis)
}

// Annotate marks parenthesized durations as Time segments and runs the rest
// through Emphasize.
func Annotate(text string) []Segment {
	var out []Segment
	for _, s := range split(text, durationRe, Time) {
		if s.Kind == Time {
			out = append(out, s)
			continue
		}
		out = append(out, Emphasize(s.Text)...)
	}
	return out
}

// Join concatenates the text of segs. Join(Emphasize(s)) == s and
// Join(Annotate(s)) == s for every s.
func Join(segs []Segment) string {
	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.Text)
	}
	return b.String()
}

func split(text string, re *regexp.Regexp, kind Kind) []Segment {
	locs := re.FindAllStringIndex(text, -1)
	segs := make([]Segment, 0, 2*len(locs)+1)
	prev := 0
	for _, loc := range locs {
		segs = append(segs,
			Segment{Text: text[prev:loc[0]], Kind: Plain},
			Segment{Text: text[loc[0]:loc[1]], Kind: kind},
		)
		prev = loc[1]
	}
	return append(segs, Segment{Text: text[prev:], Kind: Plain})
}
