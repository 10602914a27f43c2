package config

import (
	"testing"

	"github.com/matryer/is"
)

func TestDefaults(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	is.Equal(cfg.Strategy, "adaptive")
	is.Equal(cfg.SearchDepth, 3)
	is.Equal(cfg.CacheCapacity, 1<<16)
}

func TestLoadReadsEnvironment(t *testing.T) {
	is := is.New(t)
	t.Setenv("BERTHA_STRATEGY", "random")
	t.Setenv("BERTHA_SEARCH_DEPTH", "2")

	cfg := Config{}
	is.NoErr(cfg.Load())
	is.Equal(cfg.Strategy, "random")
	is.Equal(cfg.SearchDepth, 2)
}

func TestLoadClampsSearchDepth(t *testing.T) {
	is := is.New(t)
	t.Setenv("BERTHA_SEARCH_DEPTH", "99")

	cfg := Config{}
	is.NoErr(cfg.Load())
	is.Equal(cfg.SearchDepth, MaxSearchDepth)

	t.Setenv("BERTHA_SEARCH_DEPTH", "0")
	is.NoErr(cfg.Load())
	is.Equal(cfg.SearchDepth, MinSearchDepth)
}
