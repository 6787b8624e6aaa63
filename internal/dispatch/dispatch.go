// Package dispatch binds provider keys to provider implementations and routes
// classified models to them. This is the caller-side layer that turns an
// unresolved classification into an error; the matchers themselves never do.
package dispatch

import (
	"fmt"

	"github.com/bolt-foundry/gambit/internal/model"
	"github.com/bolt-foundry/gambit/internal/provider"
)

// Registry maps provider keys to implementations.
type Registry struct {
	providers map[model.ProviderKey]provider.Provider
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[model.ProviderKey]provider.Provider)}
}

// Register adds (or replaces) the implementation for a provider key.
func (r *Registry) Register(key model.ProviderKey, p provider.Provider) {
	r.providers[key] = p
}

// Route classifies a canonical model string with the given matchers and
// returns the provider implementation it maps to. An unprefixed model with no
// fallback, or a classified provider with no registered implementation, is an
// error.
func (r *Registry) Route(matchers model.Matchers, canonical string) (provider.Provider, model.ProviderKey, error) {
	key, ok := matchers.Classify(canonical)
	if !ok {
		return nil, "", fmt.Errorf("model %q matches no provider and no fallback provider is configured", canonical)
	}

	p, ok := r.providers[key]
	if !ok {
		return nil, "", fmt.Errorf("provider %q not registered for model %q", key, canonical)
	}
	return p, key, nil
}
