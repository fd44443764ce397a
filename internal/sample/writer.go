package sample

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/sofirank/pkg/logger"
)

// File permission constants.
const (
	dirPermission  = 0o755
	filePermission = 0o644
)

// ErrInvalidConfig reports generator settings that cannot produce a dataset.
var ErrInvalidConfig = errors.New("invalid sample config")

var (
	playerHeader = []string{"sofifa_id", "short_name", "long_name", "player_positions", "nationality", "club_name", "league_name"}
	ratingHeader = []string{"user_id", "sofifa_id", "rating"}
	tagHeader    = []string{"user_id", "sofifa_id", "tag"}
)

// Generate writes players.csv, rating.csv and tags.csv into cfg.Dir.
func Generate(ctx context.Context, cfg Config) (Stats, error) {
	start := time.Now()
	if cfg.Players < 1 || cfg.Users < 0 || cfg.RatingsPerUser < 0 || cfg.TagsPerUser < 0 {
		return Stats{}, fmt.Errorf("%w: players must be positive and counts non-negative", ErrInvalidConfig)
	}
	if err := os.MkdirAll(cfg.Dir, dirPermission); err != nil {
		return Stats{}, fmt.Errorf("create %s: %w", cfg.Dir, err)
	}

	players := playerRows(cfg)
	ratings, tagged, err := generateUsers(ctx, cfg)
	if err != nil {
		return Stats{}, err
	}

	files := []struct {
		name   string
		header []string
		rows   [][]string
	}{
		{PlayersFile, playerHeader, players},
		{RatingsFile, ratingHeader, ratings},
		{TagsFile, tagHeader, tagged},
	}
	for _, f := range files {
		if err := writeCSV(filepath.Join(cfg.Dir, f.name), f.header, f.rows); err != nil {
			return Stats{}, err
		}
	}

	stats := Stats{
		PlayersWritten: len(players),
		RatingsWritten: len(ratings),
		TagsWritten:    len(tagged),
		Duration:       time.Since(start),
	}
	logger.Get().Info(ctx, "sample dataset written",
		logger.String("dir", cfg.Dir),
		logger.Int("players", stats.PlayersWritten),
		logger.Int("ratings", stats.RatingsWritten),
		logger.Int("tags", stats.TagsWritten),
		logger.Duration("elapsed", stats.Duration),
	)
	return stats, nil
}

func writeCSV(path string, header []string, rows [][]string) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermission)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
