// Package types contains common types used across the application
package types

import "github.com/okian/sofirank/internal/domain/model"

// Entry is one joined result row: a player, its global rating and, for
// personalized queries, the user's own rating.
type Entry struct {
	Rank        int     `json:"rank"`
	SofifaID    uint32  `json:"sofifa_id"`
	ShortName   string  `json:"short_name"`
	LongName    string  `json:"long_name"`
	Positions   string  `json:"player_positions"`
	Nationality string  `json:"nationality"`
	ClubName    string  `json:"club_name"`
	LeagueName  string  `json:"league_name"`
	Rating      float64 `json:"rating"`
	Personal    float64 `json:"personal_rating,omitempty"`
	Count       uint32  `json:"count"`
}

// NewEntry joins a player with its global accumulator.
func NewEntry(rank int, p model.Player, global model.Accumulator) Entry {
	return Entry{
		Rank:        rank,
		SofifaID:    p.SofifaID,
		ShortName:   p.ShortName,
		LongName:    p.LongName,
		Positions:   p.Positions,
		Nationality: p.Nationality,
		ClubName:    p.ClubName,
		LeagueName:  p.LeagueName,
		Rating:      global.Mean(),
		Count:       global.Count,
	}
}

// TableStats describes one hash table after ingestion.
type TableStats struct {
	Name               string  `json:"name"`
	Records            int     `json:"records"`
	Buckets            int     `json:"buckets"`
	Occupancy          int     `json:"occupancy"`
	AverageChainLength float64 `json:"average_chain_length"`
}

// IndexStats describes one prefix index after ingestion.
type IndexStats struct {
	Name  string `json:"name"`
	Words int    `json:"words"`
}

// Stats summarizes the loaded catalog.
type Stats struct {
	Tables  []TableStats `json:"tables"`
	Indexes []IndexStats `json:"indexes"`
}
