package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/searchview/internal/config"
	"github.com/kailas-cloud/searchview/internal/domain/search/request"
	logpkg "github.com/kailas-cloud/searchview/internal/logger"
	"github.com/kailas-cloud/searchview/internal/transport/discovery"
	"github.com/kailas-cloud/searchview/internal/usecase/normalize"
	searchuc "github.com/kailas-cloud/searchview/internal/usecase/search"
)

func newQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query <text>",
		Short: "Run a live search against the configured backend",
		Long: `Query sends one search to the backend from config/<ENV>.yaml (or --config)
and prints the normalized result.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runQuery,
	}
	cmd.Flags().String("config", "", "config file (default: config/$ENV.yaml)")
	cmd.Flags().String("format", formatText, "output format: json, text or html")
	cmd.Flags().Bool("no-color", false, "disable colored text output")
	cmd.Flags().Bool("raw", false, "print the raw backend response instead")
	cmd.Flags().Int("page-size", request.DefaultPageSize, "number of results")
	cmd.Flags().Int("summary-result-count", request.DefaultSummaryResultCount, "results used for the summary")
	cmd.Flags().Bool("include-citations", true, "add citation markers to the summary")
	cmd.Flags().Bool("return-snippet", true, "request snippets")
	cmd.Flags().Int("max-extractive-answers", request.DefaultMaxExtractiveAnswers, "extractive answers per document")
	cmd.Flags().Int("max-extractive-segments", request.DefaultMaxExtractiveSegments, "extractive segments per document")
	return cmd
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := logpkg.NewLogger(config.GetEnv(), cfg.Logging.Level, nil)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	req, err := requestFromFlags(cmd, strings.Join(args, " "))
	if err != nil {
		return err
	}

	backend, err := discovery.New(&discovery.Config{
		Endpoint:      cfg.Backend.Endpoint,
		RawEndpoint:   cfg.Backend.RawEndpoint,
		Project:       cfg.Backend.Project,
		Location:      cfg.Backend.Location,
		Collection:    cfg.Backend.Collection,
		Engine:        cfg.Backend.Engine,
		ServingConfig: cfg.Backend.ServingConfig,
		Timeout:       cfg.Backend.Timeout(),
		RateLimit:     cfg.Backend.RateLimit,
		UserAgent:     cfg.Backend.UserAgent,
		Logger:        logger,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	ctx = logpkg.ContextWithLogger(ctx, logger)

	if raw, _ := cmd.Flags().GetBool("raw"); raw {
		return printRaw(ctx, cmd, backend, &req)
	}

	policy, err := normalize.PolicyByName(cfg.References.Policy)
	if err != nil {
		return err
	}
	svc := searchuc.New(backend, normalize.New(policy).WithSummaryPlaceholder(cfg.Summary.Placeholder))

	page, err := svc.Search(ctx, &req)
	if err != nil {
		logger.Debug("search failed", zap.Error(err))
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	noColor, _ := cmd.Flags().GetBool("no-color")
	return writePage(cmd.OutOrStdout(), &page, format, cfg.UI.Title, noColor)
}

func printRaw(ctx context.Context, cmd *cobra.Command, backend *discovery.Client, req *request.Request) error {
	payload, err := backend.Search(ctx, req)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(payload)
	return err
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return config.LoadFile(path)
	}
	cfg, err := config.Load(config.GetEnv())
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func requestFromFlags(cmd *cobra.Command, query string) (request.Request, error) {
	f := cmd.Flags()
	pageSize, _ := f.GetInt("page-size")
	summaryCount, _ := f.GetInt("summary-result-count")
	citations, _ := f.GetBool("include-citations")
	snippets, _ := f.GetBool("return-snippet")
	answers, _ := f.GetInt("max-extractive-answers")
	segments, _ := f.GetInt("max-extractive-segments")

	return request.New(query, request.Params{
		PageSize:              pageSize,
		SummaryResultCount:    summaryCount,
		IncludeCitations:      &citations,
		ReturnSnippet:         &snippets,
		MaxExtractiveAnswers:  &answers,
		MaxExtractiveSegments: &segments,
	})
}
