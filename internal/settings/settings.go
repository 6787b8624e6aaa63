// Package settings holds runtime settings for the daemon and CLI: server
// address, logging, and the default fallback provider. Distinct from the
// per-project gambit.toml handled by internal/config.
package settings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/bolt-foundry/gambit/internal/model"
)

// Settings is the top-level runtime configuration loaded from YAML and ENV.
type Settings struct {
	Logging LoggingSettings `mapstructure:"logging"`
	Server  ServerSettings  `mapstructure:"server"`
	Router  RouterSettings  `mapstructure:"router"`
}

// LoggingSettings controls logger behaviour.
type LoggingSettings struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // console or json
}

// ServerSettings describes daemon settings.
type ServerSettings struct {
	Addr           string `mapstructure:"addr"`
	MetricsEnabled bool   `mapstructure:"metrics_enabled"`
	Transport      string `mapstructure:"transport"` // connect or http
}

// RouterSettings controls resolution defaults.
type RouterSettings struct {
	// FallbackProvider classifies unprefixed models; empty leaves them
	// unresolved.
	FallbackProvider string `mapstructure:"fallback_provider"`
}

// Load reads settings from the provided path or searches for gambitd.yaml in
// . and configs/. A missing file is fine when no path was given; defaults and
// GAMBIT_* environment variables apply either way.
func Load(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("GAMBIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		v.SetConfigName("gambitd")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("configs")
	} else {
		v.SetConfigFile(path)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || path != "" {
			return nil, fmt.Errorf("read settings: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return &s, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("server.addr", ":8484")
	v.SetDefault("server.metrics_enabled", true)
	v.SetDefault("server.transport", "connect")

	v.SetDefault("router.fallback_provider", "")
}

// Validate performs basic sanity checks on settings values.
func (s *Settings) Validate() error {
	switch strings.ToLower(strings.TrimSpace(s.Server.Transport)) {
	case "", "connect", "http":
	default:
		return fmt.Errorf("server.transport must be one of connect or http, got %q", s.Server.Transport)
	}

	if _, ok := model.ParseProviderKey(s.Router.FallbackProvider); !ok {
		return fmt.Errorf("router.fallback_provider must be one of %v or empty, got %q", model.Providers, s.Router.FallbackProvider)
	}

	return nil
}

// Fallback returns the validated fallback provider key.
func (s *Settings) Fallback() model.ProviderKey {
	key, _ := model.ParseProviderKey(s.Router.FallbackProvider)
	return key
}
