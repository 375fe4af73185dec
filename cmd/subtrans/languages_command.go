package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"subtrans/internal/api"
)

func newLanguagesCommand() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:         "languages",
		Short:       "List supported language codes",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := api.Languages()
			if jsonOutput {
				return writeJSON(cmd, payload)
			}
			rows := make([][]string, 0, len(payload.Languages))
			for _, lang := range payload.Languages {
				rows = append(rows, []string{lang.Code, lang.Label})
			}
			w := cmd.OutOrStdout()
			_, err := fmt.Fprintln(w, renderTable([]string{"Code", "Language"}, rows, nil, shouldColorize(w)))
			return err
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the table as JSON")
	return cmd
}
