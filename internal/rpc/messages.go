// Package rpc declares the wire types for the daemon's resolve surface.
package rpc

// ResolveModelRequest asks the daemon to resolve one model identifier.
type ResolveModelRequest struct {
	// RequestID correlates logs and responses; generated when empty.
	RequestID string `json:"request_id,omitempty"`
	// StartPath selects where the config walk starts; empty means the
	// daemon's working directory.
	StartPath string `json:"start_path,omitempty"`
	// Model is the raw identifier to resolve (alias name or provider-prefixed
	// string).
	Model string `json:"model"`
	// FallbackProvider overrides the daemon's configured fallback for this
	// request when non-empty.
	FallbackProvider string `json:"fallback_provider,omitempty"`
}

// SkippedAlias reports one alias entry dropped during table construction.
type SkippedAlias struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// ResolveModelResponse carries the resolution and classification outcome.
type ResolveModelResponse struct {
	RequestID    string         `json:"request_id"`
	ConfigRoot   string         `json:"config_root,omitempty"`
	ConfigPath   string         `json:"config_path,omitempty"`
	Model        string         `json:"model,omitempty"`
	Alias        string         `json:"alias,omitempty"`
	Applied      bool           `json:"applied"`
	MissingAlias bool           `json:"missing_alias,omitempty"`
	Params       map[string]any `json:"params,omitempty"`
	Provider     string         `json:"provider,omitempty"`
	Resolved     bool           `json:"resolved"`
	Skipped      []SkippedAlias `json:"skipped_aliases,omitempty"`
}
