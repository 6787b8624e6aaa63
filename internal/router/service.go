// Package router composes config discovery, alias resolution, and provider
// matching into a single per-request resolution service used by the CLI and
// the daemon.
package router

import (
	"context"

	"go.uber.org/zap"

	"github.com/bolt-foundry/gambit/internal/config"
	"github.com/bolt-foundry/gambit/internal/model"
	"github.com/bolt-foundry/gambit/internal/observability"
)

// Service resolves model identifiers against the nearest project config.
type Service struct {
	store    *config.Store
	fallback model.ProviderKey
	metrics  *observability.Metrics
	logger   *zap.Logger
}

// Result is the outcome of one resolution request.
type Result struct {
	// ConfigRoot/ConfigPath identify the project config used; empty when no
	// gambit.toml exists on the ancestor chain.
	ConfigRoot string
	ConfigPath string
	// Resolution carries the alias-resolved model and params.
	Resolution model.Resolution
	// Provider is the classified provider key; Resolved is false when the
	// model matched nothing given the effective fallback.
	Provider model.ProviderKey
	Resolved bool
	// Skipped lists alias entries dropped while building the table.
	Skipped []model.SkippedAlias
}

// New constructs a resolution service. metrics and logger may be nil.
func New(store *config.Store, fallback model.ProviderKey, metrics *observability.Metrics, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, fallback: fallback, metrics: metrics, logger: logger}
}

// Resolve runs the full pipeline for one model identifier. startPath selects
// the config walk origin ("" means the working directory); fallbackOverride,
// when non-empty, replaces the service default for this request only.
//
// A missing project config is not an error: resolution proceeds with an empty
// alias table. A malformed config fails the request.
func (s *Service) Resolve(ctx context.Context, startPath, modelStr string, fallbackOverride model.ProviderKey) (Result, error) {
	pc, err := s.store.Load(ctx, startPath)
	if err != nil {
		return Result{}, err
	}

	table, skipped := model.BuildAliasTable(pc)
	s.metrics.RecordSkippedAliases(len(skipped))

	res := table.Resolve(modelStr)
	switch {
	case res.Applied:
		s.metrics.RecordAliasOutcome("applied")
	case res.MissingAlias:
		s.metrics.RecordAliasOutcome("missing_alias")
		s.logger.Warn("model looks like a misspelled alias",
			zap.String("model", modelStr),
			zap.Int("aliases", table.Len()))
	default:
		s.metrics.RecordAliasOutcome("passthrough")
	}

	fallback := s.fallback
	if fallbackOverride != "" {
		fallback = fallbackOverride
	}

	out := Result{Resolution: res, Skipped: skipped}
	if pc != nil {
		out.ConfigRoot = pc.Root
		out.ConfigPath = pc.Path
	}

	matchers := model.NewMatchers(fallback)
	if key, ok := matchers.Classify(res.Model); ok {
		out.Provider = key
		out.Resolved = true
		s.metrics.RecordResolution(string(key))
	} else {
		s.metrics.RecordUnresolved()
	}

	s.logger.Debug("resolved model",
		zap.String("input", modelStr),
		zap.String("model", res.Model),
		zap.Bool("alias_applied", res.Applied),
		zap.String("provider", string(out.Provider)),
		zap.Bool("resolved", out.Resolved))

	return out, nil
}
