// Package main provides the video-research CLI entry point.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"video-research/internal/app/service"
	"video-research/internal/config"
	"video-research/internal/infra/provider"
	"video-research/internal/infra/provider/youtube"
	"video-research/internal/logger"
	"video-research/internal/validator"
)

var version = "0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	apiKey     string
}

// application is the wired dependency graph of one invocation.
type application struct {
	cfg       *config.Config
	log       *logger.Logger
	client    *youtube.Client
	research  *service.ResearchService
	validator *validator.Validator
}

// newRootCmd creates the root command for the video-research CLI.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "video-research",
		Short:         "Research videos through the YouTube Data API",
		Long:          "video-research runs keyword, trending and competitor research against the YouTube Data API and exports flat CSV reports.",
		Version:       version,
		SilenceUsage:  true,
	}

	rootCmd.SetVersionTemplate("video-research version {{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to a config file (default ./config/config.yaml or ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&opts.apiKey, "api-key", "", "YouTube Data API v3 key (overrides APP_YOUTUBE_API_KEY)")

	rootCmd.AddCommand(newSearchCmd(opts))
	rootCmd.AddCommand(newTrendingCmd(opts))
	rootCmd.AddCommand(newCompetitorCmd(opts))
	rootCmd.AddCommand(newServeCmd(opts))

	return rootCmd
}

// newApplication loads configuration and wires the client, logger and services.
func newApplication(opts *rootOptions) (*application, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if opts.apiKey != "" {
		cfg.YouTube.APIKey = opts.apiKey
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, err := logger.New(
		logger.Config{
			Service: cfg.App.Name,
			Level:   cfg.Logger.Level,
			Format:  cfg.Logger.Format,
			Output:  cfg.Logger.Output,
		},
		logger.SentryConfig{
			Enabled:     cfg.Sentry.Enabled,
			DSN:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
			SampleRate:  cfg.Sentry.SampleRate,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}

	client := youtube.New(
		provider.ClientConfig{
			BaseURL:   cfg.YouTube.BaseURL,
			APIKey:    cfg.YouTube.APIKey,
			UserAgent: "video-research/" + version,
			Timeout:   cfg.YouTube.Timeout,
			Retry: provider.RetryConfig{
				MaxAttempts: cfg.YouTube.Retry.MaxAttempts,
				WaitTime:    cfg.YouTube.Retry.WaitTime,
				MaxWaitTime: cfg.YouTube.Retry.MaxWaitTime,
			},
			CB: provider.CBConfig{
				MaxRequests:  cfg.YouTube.CB.MaxRequests,
				Interval:     cfg.YouTube.CB.Interval,
				Timeout:      cfg.YouTube.CB.Timeout,
				FailureRatio: cfg.YouTube.CB.FailureRatio,
			},
		},
		log.Logger,
	)

	research := service.NewResearchService(client, service.Config{BatchDelay: cfg.YouTube.BatchDelay}, log.Logger)

	log.Debug("application initialized",
		zap.String("env", cfg.App.Env),
		zap.String("base_url", cfg.YouTube.BaseURL),
		zap.Duration("batch_delay", cfg.YouTube.BatchDelay),
	)

	return &application{
		cfg:       cfg,
		log:       log,
		client:    client,
		research:  research,
		validator: validator.New(),
	}, nil
}

// close flushes the logger.
func (a *application) close() {
	_ = a.log.Sync()
}
