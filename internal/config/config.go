// Package config defines service configuration structures and loading hooks.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text, json or pretty.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// DataDir is prepended to relative dataset file names.
	DataDir string `koanf:"data_dir"`

	// Dataset files.
	PlayersFile string `koanf:"players_file"`
	RatingsFile string `koanf:"ratings_file"`
	TagsFile    string `koanf:"tags_file"`

	// Bucket counts of the fixed-size hash tables. They never grow, so
	// they should be sized near the expected record counts.
	PlayerBuckets int `koanf:"player_buckets"`
	RatingBuckets int `koanf:"rating_buckets"`
	UserBuckets   int `koanf:"user_buckets"`
	TrieBuckets   int `koanf:"trie_buckets"`

	// TopMinRatings is the rating count a player needs to enter a top list.
	TopMinRatings uint32 `koanf:"top_min_ratings"`

	// UserResultLimit caps the rows returned for a user query.
	UserResultLimit int `koanf:"user_result_limit"`

	// PersonalWeight multiplies a user's own mean in the blended score.
	PersonalWeight float64 `koanf:"personal_weight"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		LogFormat:       "text",
		Addr:            ":9080",
		DataDir:         "data",
		PlayersFile:     "players.csv",
		RatingsFile:     "rating.csv",
		TagsFile:        "tags.csv",
		PlayerBuckets:   3000,
		RatingBuckets:   3000,
		UserBuckets:     20000,
		TrieBuckets:     26,
		TopMinRatings:   1000,
		UserResultLimit: 20,
		PersonalWeight:  10,
	}
}

// PlayersPath resolves the players file against DataDir.
func (c *Config) PlayersPath() string { return c.resolve(c.PlayersFile) }

// RatingsPath resolves the ratings file against DataDir.
func (c *Config) RatingsPath() string { return c.resolve(c.RatingsFile) }

// TagsPath resolves the tags file against DataDir.
func (c *Config) TagsPath() string { return c.resolve(c.TagsFile) }

func (c *Config) resolve(name string) string {
	if filepath.IsAbs(name) || c.DataDir == "" {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

// Validate reports the first invalid field, wrapped with ErrInvalidConfig.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.PlayersFile == "" || c.RatingsFile == "" || c.TagsFile == "":
		return fmt.Errorf("%w: dataset file names must not be empty", ErrInvalidConfig)
	case c.PlayerBuckets < 1 || c.RatingBuckets < 1 || c.UserBuckets < 1 || c.TrieBuckets < 1:
		return fmt.Errorf("%w: bucket counts must be positive", ErrInvalidConfig)
	case c.UserResultLimit < 1:
		return fmt.Errorf("%w: user_result_limit must be positive", ErrInvalidConfig)
	case c.PersonalWeight <= 0:
		return fmt.Errorf("%w: personal_weight must be positive", ErrInvalidConfig)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json", "pretty":
	default:
		return fmt.Errorf("%w: unknown log_format %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}
