// Package repository holds the in-memory catalog: the player, rating and
// user tables plus the name, tag and position indices.
package repository

import (
	"github.com/okian/sofirank/internal/domain/model"
	"github.com/okian/sofirank/internal/domain/types"
)

// Store is the read side of the catalog used by query resolution. It is
// safe for concurrent readers once loading has finished.
type Store interface {
	// Player returns the record for id.
	Player(id uint32) (model.Player, bool)
	// Global returns the global rating accumulator for a player.
	Global(id uint32) (model.Accumulator, bool)
	// Ratings returns a copy of a user's accumulators in first-rated order.
	Ratings(userID uint32) ([]model.Accumulator, bool)

	// NamesWithPrefix lists the lower-cased long names starting with prefix.
	NamesWithPrefix(prefix string) []string
	// NameIDs returns the player ids stored for an exact long name.
	NameIDs(name string) ([]uint32, bool)
	// TagIDs returns the player ids tagged with tag.
	TagIDs(tag string) ([]uint32, bool)
	// PositionIDs returns the player ids listed under position.
	PositionIDs(position string) ([]uint32, bool)

	// Stats describes table and index shape.
	Stats() types.Stats
}

// Writer is the ingestion side of the catalog.
type Writer interface {
	AddPlayer(p model.Player) error
	AddRating(ev model.RatingEvent) error
	AddTag(ev model.TagEvent) error
}
