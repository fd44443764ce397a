// Package sample writes synthetic players, ratings and tags datasets in
// the same CSV layout the index ingests.
package sample

import "time"

// Dataset file names written by Generate.
const (
	PlayersFile = "players.csv"
	RatingsFile = "rating.csv"
	TagsFile    = "tags.csv"
)

// Config holds generator settings.
type Config struct {
	Dir            string // output directory, created if missing
	Players        int    // number of player rows
	Users          int    // number of distinct raters
	RatingsPerUser int    // ratings each user gives, capped at Players
	TagsPerUser    int    // tags each user applies
	Seed           uint64 // same seed, same files
	Workers        int    // goroutines generating user rows
}

// DefaultConfig returns a small dataset that still lets some players pass
// the default top-list rating threshold.
func DefaultConfig() Config {
	return Config{
		Dir:            "data",
		Players:        500,
		Users:          5000,
		RatingsPerUser: 40,
		TagsPerUser:    2,
		Seed:           1,
		Workers:        4,
	}
}

// Stats holds generation statistics.
type Stats struct {
	PlayersWritten int
	RatingsWritten int
	TagsWritten    int
	Duration       time.Duration
}
