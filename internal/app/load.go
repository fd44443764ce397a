package service

import (
	"context"
	"errors"

	"github.com/okian/sofirank/internal/adapters/ingest"
	"github.com/okian/sofirank/internal/adapters/repository"
	"github.com/okian/sofirank/internal/domain/model"
	"github.com/okian/sofirank/pkg/logger"
)

func ingestPlayers(ctx context.Context, path string, w repository.Writer) (int, error) {
	return ingest.Stream(ctx, path, ingest.DecodePlayer, w.AddPlayer)
}

// ingestRatings skips ratings for unknown players instead of failing.
func ingestRatings(ctx context.Context, path string, w repository.Writer, log logger.Logger) (int, error) {
	return ingest.Stream(ctx, path, ingest.DecodeRating, func(ev model.RatingEvent) error {
		err := w.AddRating(ev)
		if errors.Is(err, repository.ErrOrphanRating) {
			log.Debug(ctx, "skipping rating", logger.Error(err))
			return nil
		}
		return err
	})
}

func ingestTags(ctx context.Context, path string, w repository.Writer) (int, error) {
	return ingest.Stream(ctx, path, ingest.DecodeTag, w.AddTag)
}
