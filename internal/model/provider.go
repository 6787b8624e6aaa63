package model

import "strings"

// ProviderKey identifies one of the supported backend providers.
type ProviderKey string

const (
	ProviderOpenAI ProviderKey = "openai"
	ProviderGoogle ProviderKey = "google"
	ProviderOllama ProviderKey = "ollama"
	ProviderCodex  ProviderKey = "codex"
)

// Providers lists every supported provider key.
var Providers = []ProviderKey{ProviderOpenAI, ProviderGoogle, ProviderOllama, ProviderCodex}

const (
	prefixOpenAI = "openai/"
	prefixGoogle = "google/"
	prefixOllama = "ollama/"
	prefixCodex  = "codex/"

	// Deprecated prefix still accepted for codex models.
	legacyCodexPrefix = "codex-cli/"
	// Bare token meaning "codex with its default model, no explicit suffix".
	codexAliasToken = "codex-cli"
)

var providerPrefixes = []string{prefixOpenAI, prefixGoogle, prefixOllama, prefixCodex, legacyCodexPrefix}

// ParseProviderKey validates a provider name. Empty input is valid and means
// "no fallback provider".
func ParseProviderKey(s string) (ProviderKey, bool) {
	if s == "" {
		return "", true
	}
	for _, p := range Providers {
		if string(p) == s {
			return p, true
		}
	}
	return "", false
}

// Matchers classifies canonical model strings into provider buckets. Bound to
// a fixed fallback provider at construction; every method is a pure function
// of the model string and safe for concurrent use.
//
// Prefixes are disjoint and the fallback branch is gated on
// IsUnprefixedModel, so for any (model, fallback) pair at most one Matches
// predicate is true. When the fallback is empty and the model is unprefixed,
// all predicates are false; detecting that unresolved state is the caller's
// job.
type Matchers struct {
	fallback ProviderKey
}

// NewMatchers binds a matcher bundle to a fallback provider. An empty key
// means no fallback.
func NewMatchers(fallback ProviderKey) Matchers {
	return Matchers{fallback: fallback}
}

// IsUnprefixedModel reports whether the caller named no provider explicitly:
// the trimmed model is not the codex bare token and starts with no current or
// legacy provider prefix.
func (m Matchers) IsUnprefixedModel(model string) bool {
	trimmed := strings.TrimSpace(model)
	if trimmed == codexAliasToken {
		return false
	}
	for _, prefix := range providerPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return false
		}
	}
	return true
}

// MatchesOpenAI reports whether the model routes to OpenAI.
func (m Matchers) MatchesOpenAI(model string) bool {
	return strings.HasPrefix(model, prefixOpenAI) || m.fallsBackTo(ProviderOpenAI, model)
}

// MatchesGoogle reports whether the model routes to Google.
func (m Matchers) MatchesGoogle(model string) bool {
	return strings.HasPrefix(model, prefixGoogle) || m.fallsBackTo(ProviderGoogle, model)
}

// MatchesOllama reports whether the model routes to Ollama.
func (m Matchers) MatchesOllama(model string) bool {
	return strings.HasPrefix(model, prefixOllama) || m.fallsBackTo(ProviderOllama, model)
}

// MatchesCodex reports whether the model routes to Codex, via the current
// prefix, the legacy prefix, the bare alias token, or fallback.
func (m Matchers) MatchesCodex(model string) bool {
	if strings.HasPrefix(model, prefixCodex) || strings.HasPrefix(model, legacyCodexPrefix) {
		return true
	}
	if strings.TrimSpace(model) == codexAliasToken {
		return true
	}
	return m.fallsBackTo(ProviderCodex, model)
}

// Classify returns the single provider the model routes to, or false when the
// classification is unresolved (unprefixed model, no fallback bound).
func (m Matchers) Classify(model string) (ProviderKey, bool) {
	switch {
	case m.MatchesOpenAI(model):
		return ProviderOpenAI, true
	case m.MatchesGoogle(model):
		return ProviderGoogle, true
	case m.MatchesOllama(model):
		return ProviderOllama, true
	case m.MatchesCodex(model):
		return ProviderCodex, true
	default:
		return "", false
	}
}

func (m Matchers) fallsBackTo(p ProviderKey, model string) bool {
	return m.fallback == p && m.IsUnprefixedModel(model)
}
