// Package config loads memoize and logging settings through viper.
//
// Keys are dotted (see configkeys) and can come from a config file, from
// environment variables (prefix plus the key with dots turned into
// underscores, e.g. MEMOCALC_MEMOIZE_MAX_SIZE) or from bound flags.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/on-the-ground/memoize_ive_go/config/configkeys"
	"github.com/on-the-ground/memoize_ive_go/memoize"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Settings is the decoded configuration.
type Settings struct {
	MaxSize        int
	Strategy       memoize.Strategy
	TTL            time.Duration
	LogLevel       zapcore.Level
	LogDevelopment bool
}

// New returns a viper instance with defaults and environment lookup wired.
func New(envPrefix string) *viper.Viper {
	v := viper.New()
	if envPrefix != "" {
		v.SetEnvPrefix(envPrefix)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault(configkeys.MemoizeMaxSize, memoize.Unbounded)
	v.SetDefault(configkeys.MemoizeStrategy, memoize.Recency.String())
	v.SetDefault(configkeys.MemoizeTTL, time.Duration(0))
	v.SetDefault(configkeys.LogLevel, zapcore.InfoLevel.String())
	v.SetDefault(configkeys.LogDevelopment, false)
}

// ReadFile merges the config file at path into v. An empty path is a no-op.
func ReadFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return nil
}

// Load decodes and validates the settings held by v.
func Load(v *viper.Viper) (Settings, error) {
	var errs error

	strategy, err := memoize.ParseStrategy(v.GetString(configkeys.MemoizeStrategy))
	errs = multierr.Append(errs, err)

	level, err := zapcore.ParseLevel(v.GetString(configkeys.LogLevel))
	if err != nil {
		errs = multierr.Append(errs, fmt.Errorf("%s: %w", configkeys.LogLevel, err))
	}

	s := Settings{
		MaxSize:        v.GetInt(configkeys.MemoizeMaxSize),
		Strategy:       strategy,
		TTL:            v.GetDuration(configkeys.MemoizeTTL),
		LogLevel:       level,
		LogDevelopment: v.GetBool(configkeys.LogDevelopment),
	}
	if errs == nil && s.Strategy == memoize.Custom {
		errs = fmt.Errorf("%w: %w: hooks cannot be configured from %s",
			memoize.ErrConfiguration, memoize.ErrMissingEvictionHook, configkeys.MemoizeStrategy)
	}
	if errs == nil {
		errs = memoize.NewConfig(Options[any](s)...).Validate()
	}
	if errs != nil {
		return Settings{}, errs
	}
	return s, nil
}

// Options turns the settings into memoize options.
func Options[V any](s Settings) []memoize.Option[V] {
	return []memoize.Option[V]{
		memoize.WithMaxSize[V](s.MaxSize),
		memoize.WithStrategy[V](s.Strategy),
		memoize.WithTTL[V](s.TTL),
	}
}

// Logger builds the zap logger described by the settings.
func (s Settings) Logger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if s.LogDevelopment {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(s.LogLevel)
	return cfg.Build()
}
