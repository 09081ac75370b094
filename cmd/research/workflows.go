package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"video-research/internal/display"
	"video-research/internal/domain"
	"video-research/internal/export"
	"video-research/internal/transport/httpserver/dto"
)

// workflowFunc runs one research workflow on a wired application.
type workflowFunc func(ctx context.Context, app *application) *domain.ResultSet

// runWorkflow validates req, runs the workflow, writes the CSV when out is set and prints the preview.
func runWorkflow(cmd *cobra.Command, opts *rootOptions, req interface{}, out string, run workflowFunc) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	defer app.close()

	if err := app.validator.Validate(req); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}

	rs := run(cmd.Context(), app)

	path := ""
	if out != "" {
		path, err = export.WriteFile(out, rs)
		if err != nil {
			return err
		}
	}

	if err := display.NewTable(app.cfg.Export.PreviewRows).Render(cmd.OutOrStdout(), rs); err != nil {
		return err
	}

	if path != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "\nSaved to: %s\n", path)
	}

	return nil
}

// newSearchCmd creates the search subcommand.
func newSearchCmd(opts *rootOptions) *cobra.Command {
	var req dto.SearchRequest
	var out string

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Keyword-based research",
		Long:  "Search videos by keyword and report their statistics, duration, tags and age.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorkflow(cmd, opts, &req, out, func(ctx context.Context, app *application) *domain.ResultSet {
				return app.research.Search(ctx, req.ToParams())
			})
		},
	}

	cmd.Flags().StringVar(&req.Query, "q", "", "Search query/keyword")
	cmd.Flags().IntVar(&req.MaxResults, "max", domain.DefaultSearchMax, "Max results")
	cmd.Flags().StringVar(&req.Order, "order", string(domain.SearchOrderViewCount), "Search order (date, rating, relevance, title, viewCount, videoCount)")
	cmd.Flags().StringVar(&out, "out", "", "CSV output path")
	_ = cmd.MarkFlagRequired("q")

	return cmd
}

// newTrendingCmd creates the trending subcommand.
func newTrendingCmd(opts *rootOptions) *cobra.Command {
	var req dto.TrendingRequest
	var out string

	cmd := &cobra.Command{
		Use:   "trending",
		Short: "Trending/most popular by region and category",
		Long:  "List the most popular videos of a region, optionally within a video category.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorkflow(cmd, opts, &req, out, func(ctx context.Context, app *application) *domain.ResultSet {
				return app.research.Trending(ctx, req.ToParams())
			})
		},
	}

	cmd.Flags().StringVar(&req.Region, "region", domain.DefaultRegion, "Region code, e.g. US, PK, IN, GB")
	cmd.Flags().StringVar(&req.Category, "category", "", "Optional videoCategoryId, e.g. 10 (Music), 20 (Gaming)")
	cmd.Flags().IntVar(&req.MaxResults, "max", domain.DefaultTrendingMax, "Max results")
	cmd.Flags().StringVar(&out, "out", "", "CSV output path")

	return cmd
}

// newCompetitorCmd creates the competitor subcommand.
func newCompetitorCmd(opts *rootOptions) *cobra.Command {
	var req dto.CompetitorRequest
	var out string

	cmd := &cobra.Command{
		Use:   "competitor",
		Short: "Competitor analysis by channel ID",
		Long:  "Analyse the most recent uploads of a channel.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorkflow(cmd, opts, &req, out, func(ctx context.Context, app *application) *domain.ResultSet {
				return app.research.Competitor(ctx, req.ToParams())
			})
		},
	}

	cmd.Flags().StringVar(&req.ChannelID, "channel-id", "", "Channel ID like UC_x5XG1OV2P6uZZ5FSM9Ttw")
	cmd.Flags().IntVar(&req.MaxResults, "max", domain.DefaultCompetitorMax, "Max recent uploads to analyze")
	cmd.Flags().StringVar(&out, "out", "", "CSV output path")
	_ = cmd.MarkFlagRequired("channel-id")

	return cmd
}
