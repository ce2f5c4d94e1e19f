package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"AINewsAgent/internal/app"
	"AINewsAgent/internal/config"
	"AINewsAgent/internal/usecase"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		date      string
		sinkName  string
		outputDir string
	)

	root := &cobra.Command{
		Use:          "newsagent",
		Short:        "Collect, summarize, and publish a daily AI news digest",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			if outputDir != "" {
				cfg.Output.Dir = outputDir
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			err := app.New(cfg).RunOnce(ctx, date, sinkName)
			if errors.Is(err, usecase.ErrNoArticles) {
				return nil
			}
			return err
		},
	}

	root.Flags().StringVar(&date, "date", "", "digest date as YYYY-MM-DD (default: today)")
	root.Flags().StringVar(&sinkName, "sink", "", "deliver to a single sink (markdown, notion, email)")
	root.Flags().StringVar(&outputDir, "output", "", "directory for the markdown digest file")

	root.AddCommand(newScheduleCmd())
	return root
}

func newScheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Run continuously, producing one digest per day at the configured time",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			err := app.New(cfg).RunScheduled(ctx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}
