package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"inkwell/internal/api"
	"inkwell/internal/config"
	"inkwell/internal/logging"
	"inkwell/internal/server"
	"inkwell/internal/services/llm"
	"inkwell/internal/store"
	"inkwell/internal/summarize"
)

func newServeCommand(cmdCtx *commandContext) *cobra.Command {
	var bind string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the archive over a local HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			if bind != "" {
				cfg.Paths.APIBind = bind
			}
			if cfg.Paths.APIBind == "" {
				return errors.New("no bind address configured (set paths.api_bind or pass --bind)")
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("initialize logging: %w", err)
			}

			st, err := store.Open(cfg, logger)
			if err != nil {
				if errors.Is(err, store.ErrLocked) {
					return fmt.Errorf("archive at %s is in use by another inkwell process", cfg.Paths.DataDir)
				}
				return err
			}
			defer st.Close()

			svc := api.NewArticleService(st, newGateway(cfg, logger))
			srv, err := server.New(cfg, svc, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := srv.Start(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Serving archive API on %s (Ctrl-C to stop)\n", srv.Addr())

			<-ctx.Done()
			srv.Stop()
			return nil
		},
	}

	cmd.Flags().StringVar(&bind, "bind", "", "Override the configured bind address")
	return cmd
}

func newLLMClient(cfg *config.Config) *llm.Client {
	return llm.NewClient(llm.Config{
		APIKey:         cfg.LLM.APIKey,
		BaseURL:        cfg.LLM.BaseURL,
		Model:          cfg.LLM.Model,
		Referer:        cfg.LLM.Referer,
		Title:          cfg.LLM.Title,
		TimeoutSeconds: cfg.LLM.TimeoutSeconds,
	})
}

func newGateway(cfg *config.Config, logger *slog.Logger) *summarize.Gateway {
	return summarize.NewGateway(newLLMClient(cfg), logger)
}
