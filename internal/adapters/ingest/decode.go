package ingest

import (
	"github.com/okian/sofirank/internal/domain/model"
)

// DecodePlayer reads a players.csv row.
func DecodePlayer(r Row) (model.Player, error) {
	var (
		p   model.Player
		err error
	)
	if p.SofifaID, err = r.Uint32("sofifa_id"); err != nil {
		return p, err
	}
	cols := []struct {
		name string
		dst  *string
	}{
		{"short_name", &p.ShortName},
		{"long_name", &p.LongName},
		{"player_positions", &p.Positions},
		{"nationality", &p.Nationality},
		{"club_name", &p.ClubName},
		{"league_name", &p.LeagueName},
	}
	for _, c := range cols {
		if *c.dst, err = r.String(c.name); err != nil {
			return p, err
		}
	}
	return p, nil
}

// DecodeRating reads a rating.csv row.
func DecodeRating(r Row) (model.RatingEvent, error) {
	var (
		ev  model.RatingEvent
		err error
	)
	if ev.UserID, err = r.Uint32("user_id"); err != nil {
		return ev, err
	}
	if ev.PlayerID, err = r.Uint32("sofifa_id"); err != nil {
		return ev, err
	}
	if ev.Rating, err = r.Float64("rating"); err != nil {
		return ev, err
	}
	return ev, nil
}

// DecodeTag reads a tags.csv row.
func DecodeTag(r Row) (model.TagEvent, error) {
	var (
		ev  model.TagEvent
		err error
	)
	if ev.UserID, err = r.Uint32("user_id"); err != nil {
		return ev, err
	}
	if ev.PlayerID, err = r.Uint32("sofifa_id"); err != nil {
		return ev, err
	}
	if ev.Tag, err = r.String("tag"); err != nil {
		return ev, err
	}
	return ev, nil
}
