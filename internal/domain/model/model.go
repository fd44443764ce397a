// Package model contains domain models passed between layers.
package model

// Player is one row of the players dataset. It is immutable after ingestion.
type Player struct {
	SofifaID    uint32 // dataset primary key
	ShortName   string
	LongName    string
	Positions   string // raw comma-separated list, e.g. "ST, LW"
	Nationality string
	ClubName    string
	LeagueName  string
}

// Accumulator keeps a running rating sum and count for one player.
// The global table holds one per player; each UserProfile holds its own.
type Accumulator struct {
	PlayerID uint32
	Sum      float64
	Count    uint32
}

// Add folds one rating into the accumulator.
func (a *Accumulator) Add(rating float64) {
	a.Sum += rating
	a.Count++
}

// Mean returns Sum/Count, or 0 when nothing was rated.
func (a Accumulator) Mean() float64 {
	if a.Count == 0 {
		return 0
	}
	return a.Sum / float64(a.Count)
}

// UserProfile lists the accumulators of every player a user rated, in the
// order the user first rated them.
type UserProfile struct {
	UserID  uint32
	Ratings []Accumulator

	index map[uint32]int // player id -> position in Ratings
}

// NewUserProfile creates an empty profile.
func NewUserProfile(userID uint32) *UserProfile {
	return &UserProfile{UserID: userID, index: make(map[uint32]int)}
}

// AddRating records rating for playerID. The first rating of a player
// appends a new accumulator; later ones fold into it.
func (u *UserProfile) AddRating(playerID uint32, rating float64) {
	if u.index == nil {
		u.index = make(map[uint32]int, len(u.Ratings))
		for i, acc := range u.Ratings {
			u.index[acc.PlayerID] = i
		}
	}
	if i, ok := u.index[playerID]; ok {
		u.Ratings[i].Add(rating)
		return
	}
	u.index[playerID] = len(u.Ratings)
	u.Ratings = append(u.Ratings, Accumulator{PlayerID: playerID, Sum: rating, Count: 1})
}

// RatingEvent is one row of the ratings dataset.
type RatingEvent struct {
	UserID   uint32
	PlayerID uint32
	Rating   float64
}

// TagEvent is one row of the tags dataset.
type TagEvent struct {
	UserID   uint32
	PlayerID uint32
	Tag      string
}
