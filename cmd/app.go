package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"newspulse/internal/analysis"
	"newspulse/internal/budget"
	"newspulse/internal/config"
	"newspulse/internal/fetch"
	"newspulse/internal/newsapi"
	"newspulse/internal/scoring"
)

// app bundles everything a command needs, built once per invocation.
type app struct {
	cfg      *config.Config
	pipeline *analysis.Pipeline
	governor *budget.Governor
	store    *fetch.Store
	log      zerolog.Logger
}

func (a *app) Close() {
	if a.store != nil {
		a.store.Close()
	}
}

// newApp loads config and wires the governor, rate counter, resolver,
// orchestrator and pipeline together. Logs go to stderr: stdout belongs to
// command output and, under serve, to the MCP transport.
func newApp() (*app, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	level := zerolog.InfoLevel
	if flagVerbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	apiKey := cfg.APIKey()
	if apiKey == "" {
		return nil, fmt.Errorf("no API credential: set provider.api_key in config or the NEWSPULSE_API_KEY environment variable")
	}

	api := newsapi.NewHTTPClient(cfg.Provider.BaseURL, apiKey)

	// The source cache is best-effort: if it cannot be opened we resolve
	// without it rather than failing the command.
	store, err := fetch.OpenStore(config.CachePath())
	if err != nil {
		log.Warn().Err(err).Msg("source cache unavailable, resolving without it")
		store = nil
	}

	resolver := fetch.NewCachedResolver(api, store, log)
	orchestrator := fetch.NewOrchestrator(api, resolver, log)

	governor := budget.NewGovernor(cfg.Budget, nil, log)
	rates := budget.NewRateCounter(cfg.Rate, nil)

	pipeline := analysis.New(governor, rates, orchestrator, scoring.VaderComparative(), analysis.Settings{
		Sources:      cfg.Sources,
		PageCap:      cfg.Provider.PageCap,
		Language:     cfg.Provider.Language,
		MaxHeadlines: cfg.Analysis.MaxHeadlines,
	}, log)

	return &app{cfg: cfg, pipeline: pipeline, governor: governor, store: store, log: log}, nil
}
