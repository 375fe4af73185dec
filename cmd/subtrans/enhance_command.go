package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"subtrans/internal/enhance"
	"subtrans/internal/services"
	"subtrans/internal/subtitles"
)

func newEnhanceCommand(ctx *commandContext) *cobra.Command {
	var minConfidence float64

	cmd := &cobra.Command{
		Use:   "enhance <file.srt>",
		Short: "Preview the enhancement pass without translating",
		Long: "Normalize each block and add the disambiguation hints the translator\n" +
			"would receive, then print the resulting subtitle file to stdout.",
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
			content, err := os.ReadFile(args[0])
			if err != nil {
				return services.Wrap(services.ErrInput, "enhance", "read input", args[0], err)
			}

			threshold := cfg.Enhance.MinConfidence
			if cmd.Flags().Changed("min-confidence") {
				threshold = minConfidence
			}
			pass := enhance.New(enhance.Options{MinConfidence: threshold, Logger: logger})
			blocks := pass.Enhance(runContext(cmd), subtitles.Parse(string(content)))

			_, err = fmt.Fprintln(cmd.OutOrStdout(), subtitles.Format(blocks))
			return err
		},
	}

	cmd.Flags().Float64Var(&minConfidence, "min-confidence", enhance.DefaultMinConfidence, "Classifier score a block must exceed before hints are added")
	return cmd
}
