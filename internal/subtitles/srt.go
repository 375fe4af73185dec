package subtitles

import (
	"regexp"
	"strings"
)

// Block is one subtitle cue. Index and Timestamps are carried verbatim from
// the source; Text is the payload rewritten by enhancement and translation.
type Block struct {
	Index      string `json:"index"`
	Timestamps string `json:"timestamps"`
	Text       string `json:"text"`
}

// Document is a parsed subtitle file. Layouts[i] measures the raw text lines
// of Blocks[i] as they appeared before being joined into one line.
type Document struct {
	Blocks    []Block
	Layouts   []Metrics
	Discarded int
}

var (
	// A blank line is one or more newlines, possibly holding whitespace-only
	// lines. The class mirrors strings.TrimSpace so a whitespace-only text
	// line can never survive as an empty block.
	blockSeparator = regexp.MustCompile(`\n[\s\v\x{85}\p{Z}]*\n`)
	lineBreak      = regexp.MustCompile(`\r?\n`)
)

// Parse splits content into blocks. Chunks with fewer than three lines are
// dropped silently.
func Parse(content string) []Block {
	return ParseDocument(content).Blocks
}

// ParseDocument parses content and keeps each block's source line layout
// along with the number of chunks that were too short to be blocks.
func ParseDocument(content string) Document {
	var doc Document
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return doc
	}
	for _, raw := range blockSeparator.Split(trimmed, -1) {
		lines := lineBreak.Split(raw, -1)
		if len(lines) < 3 {
			doc.Discarded++
			continue
		}
		textLines := make([]string, 0, len(lines)-2)
		for _, line := range lines[2:] {
			textLines = append(textLines, strings.TrimRight(line, "\r"))
		}
		doc.Blocks = append(doc.Blocks, Block{
			Index:      strings.TrimSpace(lines[0]),
			Timestamps: strings.TrimSpace(lines[1]),
			Text:       strings.TrimSpace(strings.Join(textLines, " ")),
		})
		doc.Layouts = append(doc.Layouts, Measure(strings.Join(textLines, "\n")))
	}
	return doc
}

// Format serializes blocks back into subtitle text. Blocks are separated by a
// single blank line and the output carries no trailing newline.
func Format(blocks []Block) string {
	if len(blocks) == 0 {
		return ""
	}
	var b strings.Builder
	for i, block := range blocks {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(block.Index)
		b.WriteByte('\n')
		b.WriteString(block.Timestamps)
		b.WriteByte('\n')
		b.WriteString(block.Text)
	}
	return b.String()
}
