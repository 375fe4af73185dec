package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"subtrans/internal/api"
	"subtrans/internal/fileutil"
	"subtrans/internal/language"
	"subtrans/internal/services"
	"subtrans/internal/textutil"
	"subtrans/internal/workflow"
)

func newTranslateCommand(ctx *commandContext) *cobra.Command {
	var from, to, output string
	var noEnhance, jsonOutput bool

	cmd := &cobra.Command{
		Use:   "translate <file.srt>",
		Short: "Translate a subtitle file",
		Long: "Translate every block of an SRT file, keeping indices, timestamps, and the\n" +
			"original line layout. Blocks that fail to translate carry an inline\n" +
			"[Processing Error: ...] marker. The result is written next to the input\n" +
			"as translated_<name> unless --output is given (use - for stdout).",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			source, target, err := language.ResolvePair(
				defaultValue(from, cfg.Translation.DefaultSource),
				defaultValue(to, cfg.Translation.DefaultTarget),
			)
			if err != nil {
				return services.Wrap(services.ErrValidation, "translate", "languages", "", err)
			}

			inputPath := args[0]
			content, err := os.ReadFile(inputPath)
			if err != nil {
				return services.Wrap(services.ErrInput, "translate", "read input", inputPath, err)
			}

			translator, err := workflow.NewTranslator(cfg)
			if err != nil {
				return err
			}
			var enhancer workflow.Enhancer
			if !noEnhance {
				enhancer = workflow.NewEnhancer(cfg, logger)
			}
			runner := workflow.NewRunner(translator, enhancer, logger)

			runCtx, stop := signal.NotifyContext(runContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()
			translated, result := runner.RunContent(runCtx, filepath.Base(inputPath), string(content), source, target)

			destination := resolveOutputPath(inputPath, output)
			if destination == "-" {
				if _, err := io.WriteString(cmd.OutOrStdout(), translated+"\n"); err != nil {
					return err
				}
			} else if err := fileutil.WriteFileAtomic(destination, []byte(translated), 0o644); err != nil {
				return services.Wrap(services.ErrInput, "translate", "write output", destination, err)
			}
			if err := runCtx.Err(); err != nil {
				return err
			}

			summary := api.FromSummary(result.Summary)
			summary.File = inputPath
			summary.Output = destination
			summary.TargetLanguage = language.Label(target)

			switch {
			case destination == "-":
				// stdout carries the subtitles; keep the summary off it.
				err = printSummary(cmd.ErrOrStderr(), summary)
			case jsonOutput:
				err = writeJSON(cmd, summary)
			default:
				err = printSummary(cmd.OutOrStdout(), summary)
			}
			if err != nil {
				return err
			}
			if summary.Failed > 0 && summary.Translated == 0 {
				return errors.New("every block failed to translate; check the translation provider settings")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&from, "from", "f", "", "Source language code (auto detects; default translation.default_source)")
	cmd.Flags().StringVarP(&to, "to", "t", "", "Target language code (default translation.default_target)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output path, or - for stdout")
	cmd.Flags().BoolVar(&noEnhance, "no-enhance", false, "Skip the enhancement pass")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the summary as JSON")
	return cmd
}

func resolveOutputPath(input, output string) string {
	if output = strings.TrimSpace(output); output != "" {
		return output
	}
	return filepath.Join(filepath.Dir(input), textutil.TranslatedFileName(filepath.Base(input)))
}

func printSummary(w io.Writer, summary api.RunSummary) error {
	source := summary.SourceLanguage
	if source == "" {
		source = "-"
	}
	pairs := [][2]string{
		{"File", summary.File},
		{"Output", summary.Output},
		{"Languages", source + " -> " + summary.TargetLanguage},
		{"Blocks", strconv.Itoa(summary.Total)},
		{"Translated", strconv.Itoa(summary.Translated)},
		{"Skipped", strconv.Itoa(summary.Skipped)},
		{"Failed", strconv.Itoa(summary.Failed)},
		{"Enhanced", yesNo(summary.Enhanced)},
		{"Duration", fmt.Sprintf("%dms", summary.DurationMillis)},
	}
	if summary.Discarded > 0 {
		pairs = append(pairs, [2]string{"Discarded chunks", strconv.Itoa(summary.Discarded)})
	}
	_, err := fmt.Fprintln(w, renderKeyValues(pairs, shouldColorize(w)))
	return err
}

func defaultValue(value, fallback string) string {
	if value = strings.TrimSpace(value); value != "" {
		return value
	}
	return fallback
}
