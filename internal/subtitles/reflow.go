package subtitles

import (
	"strings"
	"unicode/utf8"
)

// Metrics summarizes the shape of a piece of subtitle text.
type Metrics struct {
	WordCount int `json:"word_count"`
	CharCount int `json:"char_count"`
	LineCount int `json:"line_count"`
}

// Measure computes Metrics for text. Lines are newline separated; words are
// whitespace separated with empty tokens discarded.
func Measure(text string) Metrics {
	return Metrics{
		WordCount: len(strings.Fields(text)),
		CharCount: utf8.RuneCountInString(text),
		LineCount: strings.Count(text, "\n") + 1,
	}
}

// Reflow redistributes translated text over the line count recorded in
// original, keeping word order and never splitting inside a word.
// Single-line originals are returned untouched.
func Reflow(translated string, original Metrics) string {
	if original.LineCount <= 1 {
		return translated
	}

	perLine := (original.WordCount + original.LineCount - 1) / original.LineCount
	if perLine < 1 {
		perLine = 1
	}

	lines := fillLines(strings.Fields(translated), perLine)

	for len(lines) > original.LineCount {
		last := lines[len(lines)-1]
		prev := lines[len(lines)-2]
		lines = lines[:len(lines)-2]
		lines = append(lines, strings.TrimSpace(prev+" "+last))
	}

	if len(lines) == 0 {
		lines = []string{""}
	}
	for len(lines) < original.LineCount {
		lines = splitLongest(lines)
	}

	return strings.Join(lines, "\n")
}

func fillLines(words []string, perLine int) []string {
	lines := make([]string, 0, len(words)/perLine+1)
	current := make([]string, 0, perLine)
	for _, word := range words {
		current = append(current, word)
		if len(current) >= perLine {
			lines = append(lines, strings.Join(current, " "))
			current = current[:0]
		}
	}
	if len(current) > 0 {
		lines = append(lines, strings.Join(current, " "))
	}
	return lines
}

// splitLongest halves the longest line (first one on ties) at the word
// boundary nearest its midpoint, rounding the first half up.
func splitLongest(lines []string) []string {
	longest := 0
	for i := 1; i < len(lines); i++ {
		if utf8.RuneCountInString(lines[i]) > utf8.RuneCountInString(lines[longest]) {
			longest = i
		}
	}

	words := strings.Split(lines[longest], " ")
	mid := (len(words) + 1) / 2
	first := strings.Join(words[:mid], " ")
	second := strings.Join(words[mid:], " ")

	out := make([]string, 0, len(lines)+1)
	out = append(out, lines[:longest]...)
	out = append(out, first, second)
	out = append(out, lines[longest+1:]...)
	return out
}
