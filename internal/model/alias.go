// Package model resolves caller-supplied model identifiers: first through the
// project's user-defined alias table, then into a provider bucket via prefix
// matching.
package model

import (
	"sort"
	"strings"

	"github.com/bolt-foundry/gambit/internal/config"
)

type aliasEntry struct {
	model       string
	description string
	params      map[string]any
}

// AliasTable maps alias names to canonical model strings and parameters.
// Immutable once built; safe for concurrent use.
type AliasTable struct {
	entries map[string]aliasEntry
}

// SkippedAlias describes an alias entry dropped during table construction.
// Reported to the caller so it can decide whether to log.
type SkippedAlias struct {
	Name   string
	Reason string
}

// Resolution is the outcome of resolving one model identifier.
type Resolution struct {
	// Model is the canonical model string, or the input unchanged when no
	// alias matched. Empty when the input was empty.
	Model string
	// Params is a fresh deep clone of the alias params; callers may mutate it
	// freely without affecting the table or other resolutions.
	Params map[string]any
	// Alias is the input name that matched, when Applied.
	Alias string
	// Applied reports whether an alias entry was substituted.
	Applied bool
	// MissingAlias flags an unqualified input that looks like a typo of an
	// alias name: aliases exist but the input matched none and carries no
	// provider prefix.
	MissingAlias bool
}

// BuildAliasTable scans cfg's models.aliases section. Entries must be tables
// with a non-empty model string; anything else is skipped and reported in the
// diagnostics slice. A nil snapshot yields an empty table.
func BuildAliasTable(pc *config.ProjectConfig) (*AliasTable, []SkippedAlias) {
	t := &AliasTable{entries: make(map[string]aliasEntry)}
	var skipped []SkippedAlias

	if pc == nil || pc.Config == nil || pc.Config.Models == nil {
		return t, nil
	}

	for name, raw := range pc.Config.Models.Aliases {
		obj, ok := raw.(map[string]any)
		if !ok {
			skipped = append(skipped, SkippedAlias{Name: name, Reason: "entry is not a table"})
			continue
		}

		modelStr, _ := obj["model"].(string)
		if strings.TrimSpace(modelStr) == "" {
			skipped = append(skipped, SkippedAlias{Name: name, Reason: "missing or empty model"})
			continue
		}

		entry := aliasEntry{model: modelStr}
		if desc, ok := obj["description"].(string); ok {
			entry.description = desc
		}
		if params, ok := obj["params"].(map[string]any); ok {
			entry.params = cloneParams(params)
		}
		t.entries[name] = entry
	}

	return t, skipped
}

// Len reports the number of usable alias entries.
func (t *AliasTable) Len() int {
	return len(t.entries)
}

// Names returns the usable alias names in sorted order.
func (t *AliasTable) Names() []string {
	names := make([]string, 0, len(t.entries))
	for name := range t.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describe returns the description recorded for an alias, if any.
func (t *AliasTable) Describe(name string) string {
	return t.entries[name].description
}

// Resolve maps a raw model identifier through the table. Identical inputs
// always yield value-equal results; params are cloned anew on every call.
func (t *AliasTable) Resolve(model string) Resolution {
	if model == "" {
		return Resolution{}
	}

	if entry, ok := t.entries[model]; ok {
		res := Resolution{Model: entry.model, Alias: model, Applied: true}
		if entry.params != nil {
			res.Params = cloneParams(entry.params)
		}
		return res
	}

	return Resolution{
		Model:        model,
		MissingAlias: len(t.entries) > 0 && !strings.Contains(model, "/"),
	}
}

// cloneParams deep-copies a params tree. TOML decoding only produces maps,
// slices, and scalars, so those are the only shapes handled.
func cloneParams(params map[string]any) map[string]any {
	out := make(map[string]any, len(params))
	for k, v := range params {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return cloneParams(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return val
	}
}
