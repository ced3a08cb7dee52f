package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/eringen/stagepage"
	"github.com/eringen/stagepage/content"
	"github.com/eringen/stagepage/logging"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the site",
		Long: `Serve the site. Settings come from the config file, then STAGEPAGE_*
environment variables, then flags.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
	cmd.Flags().String("config", "stagepage.yaml", "config file path")
	cmd.Flags().String("addr", "", "listen address (overrides config)")
	cmd.Flags().String("content", "", "content YAML file (overrides config)")
	cmd.Flags().String("theme", "", "classic or noir (overrides content)")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := stagepage.LoadConfig(path)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("addr") {
		cfg.Addr, _ = cmd.Flags().GetString("addr")
	}
	if cmd.Flags().Changed("content") {
		cfg.ContentPath, _ = cmd.Flags().GetString("content")
	}
	if cmd.Flags().Changed("theme") {
		cfg.Theme, _ = cmd.Flags().GetString("theme")
	}

	logging.Init(cfg.LogLevel, cfg.LogPretty)

	var c *content.Content
	if cfg.ContentPath != "" {
		c, err = content.Load(cfg.ContentPath)
		if err != nil {
			return err
		}
		log.Info().Str("path", cfg.ContentPath).Str("artist", c.Artist).Msg("loaded content")
	}

	app := stagepage.New(cfg, c)
	defer app.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := app.Start(ctx); err != nil {
		return err
	}
	log.Info().Msg("shut down")
	return nil
}
