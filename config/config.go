package config

import (
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Search depth is a fixed ply count, not adaptive. The worst case is roughly
// branchingFactor^depth leaf evaluations (~35^d in the middlegame), so the
// depth is clamped rather than trusted.
const (
	MinSearchDepth = 1
	MaxSearchDepth = 6
)

type Config struct {
	// Strategy selects one of the movers in the strategy package.
	Strategy string
	// SearchDepth is the number of plies below the root.
	SearchDepth int
	// CacheCapacity is the maximum number of evaluation cache entries.
	// Zero means "derive from system memory".
	CacheCapacity int
	LogLevel      string
}

func DefaultConfig() Config {
	return Config{
		Strategy:      "adaptive",
		SearchDepth:   3,
		CacheCapacity: 1 << 16,
		LogLevel:      "info",
	}
}

// Load reads configuration from an optional bertha.yml in the working
// directory and from BERTHA_* environment variables, falling back to the
// defaults above.
func (c *Config) Load() error {
	v := viper.New()
	v.SetConfigName("bertha")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("bertha")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	d := DefaultConfig()
	v.SetDefault("strategy", d.Strategy)
	v.SetDefault("search-depth", d.SearchDepth)
	v.SetDefault("cache-capacity", d.CacheCapacity)
	v.SetDefault("log-level", d.LogLevel)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
		log.Debug().Msg("no config file found, using defaults and environment")
	}

	c.Strategy = v.GetString("strategy")
	c.SearchDepth = v.GetInt("search-depth")
	c.CacheCapacity = v.GetInt("cache-capacity")
	c.LogLevel = v.GetString("log-level")
	c.clampSearchDepth()
	return nil
}

func (c *Config) clampSearchDepth() {
	clamped := c.SearchDepth
	if clamped < MinSearchDepth {
		clamped = MinSearchDepth
	}
	if clamped > MaxSearchDepth {
		clamped = MaxSearchDepth
	}
	if clamped != c.SearchDepth {
		log.Warn().Int("requested", c.SearchDepth).Int("using", clamped).
			Msg("search depth out of range")
		c.SearchDepth = clamped
	}
}

// AdjustLogLevel sets the global zerolog level from the config, defaulting
// to info on a bad value.
func (c *Config) AdjustLogLevel() {
	level, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		log.Err(err).Str("level", c.LogLevel).Msg("could not parse log level")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
}
