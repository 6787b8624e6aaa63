package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/singleflight"
)

// CacheObserver receives cache outcomes for each load that resolved to a
// config path. Wired to the metrics registry by the daemon; nil is fine.
type CacheObserver interface {
	ObserveConfigLoad(path string, hit bool)
}

// Store loads and caches parsed project configs keyed by absolute config
// path. The cache lives as long as the Store and never observes external
// edits to the file; callers that need a re-read use Invalidate.
type Store struct {
	mu    sync.Mutex
	cache map[string]*ProjectConfig
	group singleflight.Group

	Observer CacheObserver
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{cache: make(map[string]*ProjectConfig)}
}

// Load walks upward from startPath (or the working directory when empty) and
// returns the nearest project config. A missing config anywhere on the
// ancestor chain is not an error: the result is (nil, nil). Malformed config
// text is returned as an error.
//
// Concurrent first loads of the same path share one read/parse via a per-key
// singleflight group; later loads are served from the cache without I/O.
func (s *Store) Load(ctx context.Context, startPath string) (*ProjectConfig, error) {
	startDir, err := ResolveStartDir(startPath)
	if err != nil {
		return nil, err
	}

	path, ok := FindConfigPath(startDir)
	if !ok {
		return nil, nil
	}

	s.mu.Lock()
	if pc, ok := s.cache[path]; ok {
		s.mu.Unlock()
		s.observe(path, true)
		return pc, nil
	}
	s.mu.Unlock()
	s.observe(path, false)

	v, err, _ := s.group.Do(path, func() (any, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}

		cfg, err := Parse(data)
		if err != nil {
			return nil, err
		}

		pc := &ProjectConfig{Root: filepath.Dir(path), Path: path, Config: cfg}
		s.mu.Lock()
		s.cache[path] = pc
		s.mu.Unlock()
		return pc, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*ProjectConfig), nil
}

// Invalidate drops the cached entry for a config path so the next Load
// re-reads the file.
func (s *Store) Invalidate(path string) {
	s.mu.Lock()
	delete(s.cache, path)
	s.mu.Unlock()
}

func (s *Store) observe(path string, hit bool) {
	if s.Observer != nil {
		s.Observer.ObserveConfigLoad(path, hit)
	}
}
