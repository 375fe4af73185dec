package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"subtrans/internal/daemon"
	"subtrans/internal/logging"
	"subtrans/internal/workflow"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var bind string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP translation API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if bind = strings.TrimSpace(bind); bind != "" {
				cfg.Server.Bind = bind
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			translator, err := workflow.NewTranslator(cfg)
			if err != nil {
				return err
			}
			d, err := daemon.New(cfg, translator, workflow.NewEnhancer(cfg, logger), logger)
			if err != nil {
				return fmt.Errorf("create daemon: %w", err)
			}

			signalCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := d.Run(signalCtx); err != nil {
				logging.ErrorWithContext(logger, "server stopped with error", "serve_failed",
					logging.Error(err),
					logging.String(logging.FieldErrorHint, "check server.bind and that no other instance holds the lock"),
				)
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&bind, "bind", "", "Override server.bind (host:port)")
	return cmd
}
