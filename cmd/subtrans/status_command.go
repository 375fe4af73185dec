package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"subtrans/internal/apiclient"
)

const statusTimeout = 5 * time.Second

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var bind string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Query a running subtrans server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			target := strings.TrimSpace(bind)
			if target == "" {
				target = cfg.Server.Bind
			}
			client, err := apiclient.NewClient(target, cfg.Server.APIToken, statusTimeout)
			if err != nil {
				return fmt.Errorf("invalid server address %q: %w", target, err)
			}

			status, err := client.Status(cmd.Context())
			if err != nil {
				return fmt.Errorf("server at %s not reachable: %w", target, err)
			}
			if jsonOutput {
				return writeJSON(cmd, status)
			}
			w := cmd.OutOrStdout()
			pairs := [][2]string{
				{"Running", yesNo(status.Running)},
				{"PID", strconv.Itoa(status.PID)},
				{"Bind", status.Bind},
				{"Provider", status.Provider},
				{"Enhancement", yesNo(status.Enhancement)},
				{"Classifier ready", yesNo(status.ClassifierReady)},
				{"Started", defaultValue(status.StartedAt, "-")},
				{"Requests", strconv.FormatInt(status.Requests, 10)},
				{"Lock file", status.LockFilePath},
			}
			_, err = fmt.Fprintln(w, renderKeyValues(pairs, shouldColorize(w)))
			return err
		},
	}

	cmd.Flags().StringVar(&bind, "bind", "", "Server address to query (defaults to server.bind)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the status as JSON")
	return cmd
}
