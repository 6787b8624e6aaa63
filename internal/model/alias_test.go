package model

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bolt-foundry/gambit/internal/config"
)

func snapshotWithAliases(aliases map[string]any) *config.ProjectConfig {
	return &config.ProjectConfig{
		Root:   "/project",
		Path:   "/project/" + config.ConfigFileName,
		Config: &config.Config{Models: &config.ModelsConfig{Aliases: aliases}},
	}
}

func TestBuildAliasTableSkipsInvalidEntries(t *testing.T) {
	table, skipped := BuildAliasTable(snapshotWithAliases(map[string]any{
		"fast":     map[string]any{"model": "openai/gpt-4o-mini"},
		"scalar":   "not-a-table",
		"empty":    map[string]any{"model": "   "},
		"modeless": map[string]any{"description": "no model field"},
	}))

	require.Equal(t, 1, table.Len())
	require.Len(t, skipped, 3)
	names := make(map[string]string, len(skipped))
	for _, s := range skipped {
		names[s.Name] = s.Reason
	}
	require.Contains(t, names, "scalar")
	require.Contains(t, names, "empty")
	require.Contains(t, names, "modeless")
}

func TestBuildAliasTableFromNilSnapshot(t *testing.T) {
	table, skipped := BuildAliasTable(nil)
	require.Equal(t, 0, table.Len())
	require.Empty(t, skipped)
}

func TestResolveKnownAlias(t *testing.T) {
	table, _ := BuildAliasTable(snapshotWithAliases(map[string]any{
		"fast": map[string]any{"model": "openai/gpt-4o-mini"},
	}))

	res := table.Resolve("fast")
	require.True(t, res.Applied)
	require.Equal(t, "openai/gpt-4o-mini", res.Model)
	require.Equal(t, "fast", res.Alias)
	require.False(t, res.MissingAlias)
}

func TestResolveEmptyInput(t *testing.T) {
	table, _ := BuildAliasTable(snapshotWithAliases(map[string]any{
		"fast": map[string]any{"model": "openai/gpt-4o-mini"},
	}))

	res := table.Resolve("")
	require.False(t, res.Applied)
	require.Empty(t, res.Model)
	require.False(t, res.MissingAlias)
}

func TestResolveMissingAliasHeuristic(t *testing.T) {
	table, _ := BuildAliasTable(snapshotWithAliases(map[string]any{
		"fast": map[string]any{"model": "openai/gpt-4o-mini"},
	}))

	// Unqualified non-alias input while aliases exist: likely a typo.
	res := table.Resolve("fsat")
	require.False(t, res.Applied)
	require.Equal(t, "fsat", res.Model)
	require.True(t, res.MissingAlias)

	// A slash marks an intentional bare model id.
	res = table.Resolve("ollama/llama3")
	require.False(t, res.Applied)
	require.False(t, res.MissingAlias)
}

func TestResolveMissingAliasNotFlaggedOnEmptyTable(t *testing.T) {
	table, _ := BuildAliasTable(nil)

	res := table.Resolve("my-custom-model")
	require.False(t, res.Applied)
	require.False(t, res.MissingAlias)
}

func TestResolveClonesParamsPerCall(t *testing.T) {
	table, _ := BuildAliasTable(snapshotWithAliases(map[string]any{
		"tuned": map[string]any{
			"model": "google/gemini-2.0-flash",
			"params": map[string]any{
				"temperature": 0.7,
				"stop":        []any{"###"},
				"nested":      map[string]any{"top_p": 0.9},
			},
		},
	}))

	first := table.Resolve("tuned")
	first.Params["temperature"] = 1.9
	first.Params["nested"].(map[string]any)["top_p"] = 0.1
	first.Params["stop"].([]any)[0] = "!!!"

	second := table.Resolve("tuned")
	require.Equal(t, 0.7, second.Params["temperature"])
	require.Equal(t, 0.9, second.Params["nested"].(map[string]any)["top_p"])
	require.Equal(t, "###", second.Params["stop"].([]any)[0])
}

func TestResolveDeterministic(t *testing.T) {
	table, _ := BuildAliasTable(snapshotWithAliases(map[string]any{
		"fast": map[string]any{"model": "openai/gpt-4o-mini", "params": map[string]any{"temperature": 0.2}},
	}))

	a := table.Resolve("fast")
	b := table.Resolve("fast")
	require.Equal(t, a, b)
}
