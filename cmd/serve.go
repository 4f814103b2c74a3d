package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/amish-gaur/DataPriv/config"
	"github.com/amish-gaur/DataPriv/internal/api"
	"github.com/amish-gaur/DataPriv/internal/slack"
)

// serveCmd is the cobra command that starts the radar API server
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "start the radar api server",
	Run: func(cmd *cobra.Command, _ []string) {
		err := serve(cmd.Context())
		cobra.CheckErr(err)
	},
}

// init registers the serve command on the root command
func init() {
	rootCmd.AddCommand(serveCmd)
}

// serve initializes dependencies and starts the radar API server
func serve(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	svc, cleanup, err := setupAnalyzer(ctx, cfg)
	if err != nil {
		return err
	}

	defer cleanup()

	routerCfg := api.RouterConfig{
		Analyzer:       svc,
		MaxBodySize:    cfg.Server.MaxBodySize,
		AnalyzeTimeout: cfg.Analyzer.Timeout,
		CORSOrigin:     cfg.Server.CORSOrigin,
	}

	if slackClient := setupSlack(cfg); slackClient != nil {
		routerCfg.Notifier = slackClient
	}

	srv := &http.Server{
		Addr:         cfg.Server.Listen,
		Handler:      api.NewRouter(routerCfg),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		<-ctx.Done()
		log.Info().Dur("grace_period", cfg.Server.ShutdownGracePeriod).Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownGracePeriod)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown error")
		}
	}()

	log.Info().Str("listen", cfg.Server.Listen).Msg("starting radar service")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}

	return nil
}

// loadConfig reads the config file named by the --config flag and applies the logging flags
func loadConfig() (*config.Config, error) {
	cfgPath := k.String("config")

	cfg, err := config.Load(&cfgPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	cfg.Server.Debug = k.Bool("debug")
	cfg.Server.Pretty = k.Bool("pretty")

	return cfg, nil
}

// setupSlack initializes the Slack webhook client from config, returning nil when unconfigured
func setupSlack(cfg *config.Config) *slack.Client {
	if cfg.Slack.WebhookURL == "" {
		log.Info().Msg("slack notifications not configured, skipping")
		return nil
	}

	client, err := slack.New(
		cfg.Slack.WebhookURL,
		slack.WithHTTPClient(&http.Client{Timeout: cfg.Slack.RequestTimeout}),
		slack.WithRiskThreshold(cfg.Slack.RiskThreshold),
	)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize slack client")
		return nil
	}

	log.Info().Float64("risk_threshold", cfg.Slack.RiskThreshold).Msg("slack notifications configured")

	return client
}
