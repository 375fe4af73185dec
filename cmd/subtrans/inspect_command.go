package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"subtrans/internal/services"
	"subtrans/internal/subtitles"
)

type inspectOutput struct {
	File  string `json:"file"`
	Error string `json:"error,omitempty"`
	subtitles.Report
}

func newInspectCommand() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:         "inspect <file.srt>",
		Short:       "Report block, cue, and layout statistics for a subtitle file",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[0])
			if err != nil {
				return services.Wrap(services.ErrInput, "inspect", "read input", args[0], err)
			}
			report, readErr := subtitles.Inspect(string(content))
			out := inspectOutput{File: args[0], Report: report}
			if readErr != nil {
				out.Error = readErr.Error()
			}

			if jsonOutput {
				return writeJSON(cmd, out)
			}

			w := cmd.OutOrStdout()
			pairs := [][2]string{
				{"File", out.File},
				{"Blocks", strconv.Itoa(report.Blocks)},
				{"Discarded chunks", strconv.Itoa(report.Discarded)},
				{"Multi-line blocks", strconv.Itoa(report.MultiLine)},
				{"Words", strconv.Itoa(report.Words)},
				{"Cues", strconv.Itoa(report.Cues)},
				{"Span", formatCue(report.FirstCue) + " - " + formatCue(report.LastCue)},
				{"Counts agree", yesNo(!report.Mismatch && readErr == nil)},
			}
			if out.Error != "" {
				pairs = append(pairs, [2]string{"Reader error", out.Error})
			}
			if _, err := fmt.Fprintln(w, renderKeyValues(pairs, shouldColorize(w))); err != nil {
				return err
			}
			for _, line := range report.SampleLines {
				fmt.Fprintf(w, "  %s\n", strings.TrimSpace(line))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the report as JSON")
	return cmd
}

func formatCue(d time.Duration) string {
	d = d.Round(time.Millisecond)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	d -= s * time.Second
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, d/time.Millisecond)
}
