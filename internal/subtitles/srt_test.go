package subtitles

import (
	"reflect"
	"testing"
)

const sampleSRT = "1\n00:00:01,000 --> 00:00:02,000\nHello world\nhow are you\n\n2\n00:00:03,000 --> 00:00:04,000\nGoodbye"

func TestParseSample(t *testing.T) {
	doc := ParseDocument(sampleSRT)
	if len(doc.Blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(doc.Blocks))
	}
	first := doc.Blocks[0]
	if first.Index != "1" || first.Timestamps != "00:00:01,000 --> 00:00:02,000" {
		t.Fatalf("unexpected header fields: %+v", first)
	}
	if first.Text != "Hello world how are you" {
		t.Fatalf("unexpected joined text %q", first.Text)
	}
	want := Metrics{WordCount: 5, CharCount: 23, LineCount: 2}
	if doc.Layouts[0] != want {
		t.Fatalf("layout = %+v, want %+v", doc.Layouts[0], want)
	}
	if doc.Layouts[1].LineCount != 1 {
		t.Fatalf("expected single-line layout for block 2, got %+v", doc.Layouts[1])
	}
	if doc.Discarded != 0 {
		t.Fatalf("expected no discarded chunks, got %d", doc.Discarded)
	}
}

func TestParseEmpty(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\n\r\n\t"} {
		blocks := Parse(input)
		if len(blocks) != 0 {
			t.Fatalf("Parse(%q) returned %d blocks", input, len(blocks))
		}
		if got := Format(blocks); got != "" {
			t.Fatalf("Format of empty parse = %q", got)
		}
	}
}

func TestParseDropsShortChunks(t *testing.T) {
	input := "1\n00:00:01,000 --> 00:00:02,000\n\n2\n00:00:03,000 --> 00:00:04,000\nKept"
	doc := ParseDocument(input)
	if len(doc.Blocks) != 1 {
		t.Fatalf("expected 1 block, got %d: %+v", len(doc.Blocks), doc.Blocks)
	}
	if doc.Blocks[0].Index != "2" || doc.Blocks[0].Text != "Kept" {
		t.Fatalf("unexpected surviving block %+v", doc.Blocks[0])
	}
	if doc.Discarded != 1 {
		t.Fatalf("expected 1 discarded chunk, got %d", doc.Discarded)
	}
}

func TestParseCRLFAndPaddedSeparators(t *testing.T) {
	input := "\r\n 1 \r\n00:00:01,000 --> 00:00:02,000  \r\nLine one\r\nLine two\r\n \t \r\n\r\n2\r\n00:00:03,000 --> 00:00:04,000\r\nLast\r\n\r\n"
	doc := ParseDocument(input)
	if len(doc.Blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(doc.Blocks))
	}
	if doc.Blocks[0].Index != "1" || doc.Blocks[0].Timestamps != "00:00:01,000 --> 00:00:02,000" {
		t.Fatalf("header fields not trimmed: %+v", doc.Blocks[0])
	}
	if doc.Blocks[0].Text != "Line one Line two" {
		t.Fatalf("unexpected text %q", doc.Blocks[0].Text)
	}
	if doc.Layouts[0].LineCount != 2 || doc.Layouts[0].CharCount != len("Line one\nLine two") {
		t.Fatalf("unexpected layout %+v", doc.Layouts[0])
	}
}

func TestFormat(t *testing.T) {
	blocks := []Block{
		{Index: "1", Timestamps: "a --> b", Text: "Hola\nmundo"},
		{Index: "2", Timestamps: "c --> d", Text: "Adiós"},
	}
	want := "1\na --> b\nHola\nmundo\n\n2\nc --> d\nAdiós"
	if got := Format(blocks); got != want {
		t.Fatalf("Format = %q, want %q", got, want)
	}
}

func TestParseIdempotentThroughFormat(t *testing.T) {
	inputs := []string{
		sampleSRT,
		"1\nts\n  spaced   out  \n\n\n\n2\nts2\nx\ny\nz",
		"7\r\n00:01:00,000 --> 00:01:02,000\r\n<i>tagged</i>\r\n\r\nstray\r\n\r\n8\r\nts\r\nend",
		"1\nts\n\u00a0\n2\nts\ntext",
	}
	for _, input := range inputs {
		first := Parse(input)
		second := Parse(Format(first))
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("parse not idempotent for %q:\nfirst:  %+v\nsecond: %+v", input, first, second)
		}
	}
}

func TestMeasure(t *testing.T) {
	got := Measure("  uno  dos\ntrés ")
	want := Metrics{WordCount: 3, CharCount: 16, LineCount: 2}
	if got != want {
		t.Fatalf("Measure = %+v, want %+v", got, want)
	}
	if empty := Measure(""); empty != (Metrics{LineCount: 1}) {
		t.Fatalf("Measure(\"\") = %+v", empty)
	}
}
