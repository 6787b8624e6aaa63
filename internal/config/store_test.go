package config

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

const projectTOML = `
[workspace]
decks = "decks"
graders = "graders"

[models.aliases.fast]
model = "openai/gpt-4o-mini"
description = "cheap default"

[models.aliases.fast.params]
temperature = 0.2
`

type countingObserver struct {
	hits   int
	misses int
}

func (o *countingObserver) ObserveConfigLoad(path string, hit bool) {
	if hit {
		o.hits++
	} else {
		o.misses++
	}
}

func writeProject(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0o644))
	return dir
}

func TestLoadParsesProjectConfig(t *testing.T) {
	dir := writeProject(t, projectTOML)

	pc, err := NewStore().Load(context.Background(), dir)
	require.NoError(t, err)
	require.NotNil(t, pc)
	require.Equal(t, dir, pc.Root)
	require.Equal(t, filepath.Join(dir, ConfigFileName), pc.Path)
	require.Equal(t, "decks", pc.Config.Workspace.Decks)
	require.Contains(t, pc.Config.Models.Aliases, "fast")
}

func TestLoadReturnsNilWhenNoConfigOnChain(t *testing.T) {
	dir := t.TempDir()

	pc, err := NewStore().Load(context.Background(), dir)
	require.NoError(t, err)
	require.Nil(t, pc)
}

func TestLoadFromNestedStartPath(t *testing.T) {
	dir := writeProject(t, projectTOML)
	nested := filepath.Join(dir, "decks", "examples")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	pc, err := NewStore().Load(context.Background(), nested)
	require.NoError(t, err)
	require.NotNil(t, pc)
	require.Equal(t, dir, pc.Root)
}

func TestLoadCachesByConfigPath(t *testing.T) {
	dir := writeProject(t, projectTOML)
	obs := &countingObserver{}
	store := NewStore()
	store.Observer = obs

	first, err := store.Load(context.Background(), dir)
	require.NoError(t, err)

	// Rewrite the file on disk; the cached parse must be returned untouched.
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("[workspace]\ndecks = \"other\"\n"), 0o644))

	second, err := store.Load(context.Background(), dir)
	require.NoError(t, err)
	require.Same(t, first, second)
	require.Equal(t, 1, obs.misses)
	require.Equal(t, 1, obs.hits)
}

func TestLoadCacheSharedAcrossStartPaths(t *testing.T) {
	dir := writeProject(t, projectTOML)
	nested := filepath.Join(dir, "decks")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	store := NewStore()

	first, err := store.Load(context.Background(), dir)
	require.NoError(t, err)
	second, err := store.Load(context.Background(), nested)
	require.NoError(t, err)

	// Different walks, same resolved path, one parse.
	require.Same(t, first, second)
}

func TestInvalidateForcesReread(t *testing.T) {
	dir := writeProject(t, projectTOML)
	store := NewStore()

	first, err := store.Load(context.Background(), dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("[workspace]\ndecks = \"fresh\"\n"), 0o644))
	store.Invalidate(first.Path)

	second, err := store.Load(context.Background(), dir)
	require.NoError(t, err)
	require.Equal(t, "fresh", second.Config.Workspace.Decks)
}

func TestConcurrentFirstLoadsShareResult(t *testing.T) {
	dir := writeProject(t, projectTOML)
	store := NewStore()

	const callers = 8
	results := make([]*ProjectConfig, callers)
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = store.Load(context.Background(), dir)
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		require.NotNil(t, results[i])
		require.Equal(t, results[0].Config, results[i].Config)
	}
}

func TestLoadPropagatesParseError(t *testing.T) {
	dir := writeProject(t, "models = {{{ not toml")

	_, err := NewStore().Load(context.Background(), dir)
	require.Error(t, err)
}

func TestLoadEmptyFileYieldsEmptyConfig(t *testing.T) {
	dir := writeProject(t, "")

	pc, err := NewStore().Load(context.Background(), dir)
	require.NoError(t, err)
	require.NotNil(t, pc)
	require.NotNil(t, pc.Config)
	require.Nil(t, pc.Config.Workspace)
	require.Nil(t, pc.Config.Models)
}
