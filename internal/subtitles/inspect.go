package subtitles

import (
	"fmt"
	"strings"
	"time"

	"github.com/asticode/go-astisub"
)

// Report describes a subtitle file as seen by both the block codec and an
// independent SRT reader.
type Report struct {
	Blocks      int           `json:"blocks"`
	Discarded   int           `json:"discarded"`
	MultiLine   int           `json:"multi_line_blocks"`
	Words       int           `json:"words"`
	Cues        int           `json:"cues"`
	FirstCue    time.Duration `json:"first_cue"`
	LastCue     time.Duration `json:"last_cue"`
	Mismatch    bool          `json:"mismatch"`
	SampleLines []string      `json:"sample_lines,omitempty"`
}

const reportSampleSize = 3

// Inspect reports what content holds. Timing data comes only from the SRT
// reader; when the reader rejects the file the codec counts are still
// returned alongside the error.
func Inspect(content string) (Report, error) {
	doc := ParseDocument(content)
	report := Report{
		Blocks:    len(doc.Blocks),
		Discarded: doc.Discarded,
	}
	for i, block := range doc.Blocks {
		report.Words += len(strings.Fields(block.Text))
		if doc.Layouts[i].LineCount > 1 {
			report.MultiLine++
		}
		if i < reportSampleSize {
			report.SampleLines = append(report.SampleLines, block.Text)
		}
	}

	if strings.TrimSpace(content) == "" {
		return report, nil
	}

	subs, err := astisub.ReadFromSRT(strings.NewReader(content))
	if err != nil {
		return report, fmt.Errorf("read srt cues: %w", err)
	}
	report.Cues = len(subs.Items)
	if report.Cues > 0 {
		report.FirstCue = subs.Items[0].StartAt
		report.LastCue = subs.Items[report.Cues-1].EndAt
	}
	report.Mismatch = report.Cues != report.Blocks
	return report, nil
}
