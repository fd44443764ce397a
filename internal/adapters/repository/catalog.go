package repository

import (
	"fmt"
	"strings"

	"github.com/okian/sofirank/internal/domain/hashtable"
	"github.com/okian/sofirank/internal/domain/model"
	"github.com/okian/sofirank/internal/domain/prefix"
	"github.com/okian/sofirank/internal/domain/types"
	"github.com/okian/sofirank/pkg/metrics"
)

// Table and index names used in stats and metrics labels.
const (
	TablePlayers   = "players"
	TableRatings   = "ratings"
	TableUsers     = "users"
	IndexNames     = "names"
	IndexTags      = "tags"
	IndexPositions = "positions"
)

// Catalog owns every table and index built during ingestion. Writes must
// finish before the first read; after that it is read-only.
type Catalog struct {
	playerBuckets int
	ratingBuckets int
	userBuckets   int
	trieBuckets   int

	players *hashtable.Map[hashtable.Uint32, model.Player]
	ratings *hashtable.Map[hashtable.Uint32, model.Accumulator]
	users   *hashtable.Map[hashtable.Uint32, *model.UserProfile]

	names     *prefix.Index
	tags      *prefix.Index
	positions *prefix.Index

	orphans int
}

var (
	_ Store  = (*Catalog)(nil)
	_ Writer = (*Catalog)(nil)
)

// NewCatalog creates an empty catalog.
func NewCatalog(opts ...Option) *Catalog {
	c := &Catalog{
		playerBuckets: defaultPlayerBuckets,
		ratingBuckets: defaultRatingBuckets,
		userBuckets:   defaultUserBuckets,
		trieBuckets:   defaultTrieBuckets,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.players = hashtable.New[hashtable.Uint32, model.Player](c.playerBuckets)
	c.ratings = hashtable.New[hashtable.Uint32, model.Accumulator](c.ratingBuckets)
	c.users = hashtable.New[hashtable.Uint32, *model.UserProfile](c.userBuckets)

	trie := prefix.WithChildBuckets(c.trieBuckets)
	c.names = prefix.New(trie)
	c.tags = prefix.New(trie)
	c.positions = prefix.New(trie)
	return c
}

// AddPlayer stores p, seeds its global accumulator and indexes its long
// name and positions.
func (c *Catalog) AddPlayer(p model.Player) error {
	key := hashtable.Uint32(p.SofifaID)
	if _, ok := c.players.Get(key); ok {
		return fmt.Errorf("%w: %d", ErrDuplicatePlayer, p.SofifaID)
	}

	c.players.Insert(key, p)
	c.ratings.Insert(key, model.Accumulator{PlayerID: p.SofifaID})
	c.names.InsertWithID(p.LongName, p.SofifaID)
	for _, pos := range SplitPositions(p.Positions) {
		c.positions.InsertWithID(pos, p.SofifaID)
	}
	return nil
}

// AddRating folds ev into the user's profile and the player's global
// accumulator. A rating for an unknown player changes nothing and returns
// ErrOrphanRating.
func (c *Catalog) AddRating(ev model.RatingEvent) error {
	global, ok := c.ratings.Ref(hashtable.Uint32(ev.PlayerID))
	if !ok {
		c.orphans++
		metrics.RecordOrphanRating()
		return fmt.Errorf("%w: user %d player %d", ErrOrphanRating, ev.UserID, ev.PlayerID)
	}
	global.Add(ev.Rating)

	userKey := hashtable.Uint32(ev.UserID)
	profile, ok := c.users.Get(userKey)
	if !ok {
		profile = model.NewUserProfile(ev.UserID)
		c.users.Insert(userKey, profile)
	}
	profile.AddRating(ev.PlayerID, ev.Rating)
	return nil
}

// AddTag indexes ev's tag text against the tagged player. Blank tags are
// ignored.
func (c *Catalog) AddTag(ev model.TagEvent) error {
	tag := strings.TrimSpace(ev.Tag)
	if tag == "" {
		return nil
	}
	c.tags.InsertWithID(tag, ev.PlayerID)
	return nil
}

// SplitPositions splits a raw position list such as "ST, LW" into its
// entries with all spaces removed.
func SplitPositions(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ReplaceAll(strings.TrimSpace(p), " ", "")
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c *Catalog) Player(id uint32) (model.Player, bool) {
	return c.players.Get(hashtable.Uint32(id))
}

func (c *Catalog) Global(id uint32) (model.Accumulator, bool) {
	return c.ratings.Get(hashtable.Uint32(id))
}

func (c *Catalog) Ratings(userID uint32) ([]model.Accumulator, bool) {
	profile, ok := c.users.Get(hashtable.Uint32(userID))
	if !ok {
		return nil, false
	}
	out := make([]model.Accumulator, len(profile.Ratings))
	copy(out, profile.Ratings)
	return out, true
}

func (c *Catalog) NamesWithPrefix(p string) []string { return c.names.WordsWithPrefix(p) }

func (c *Catalog) NameIDs(name string) ([]uint32, bool) { return c.names.IDs(name) }

func (c *Catalog) TagIDs(tag string) ([]uint32, bool) { return c.tags.IDs(tag) }

func (c *Catalog) PositionIDs(position string) ([]uint32, bool) { return c.positions.IDs(position) }

// Orphans returns how many ratings were dropped for unknown players.
func (c *Catalog) Orphans() int { return c.orphans }

// Stats describes table and index shape.
func (c *Catalog) Stats() types.Stats {
	return types.Stats{
		Tables: []types.TableStats{
			tableStats(TablePlayers, c.players),
			tableStats(TableRatings, c.ratings),
			tableStats(TableUsers, c.users),
		},
		Indexes: []types.IndexStats{
			{Name: IndexNames, Words: c.names.Len()},
			{Name: IndexTags, Words: c.tags.Len()},
			{Name: IndexPositions, Words: c.positions.Len()},
		},
	}
}

// PublishMetrics pushes the current table and index shape to Prometheus.
func (c *Catalog) PublishMetrics() {
	s := c.Stats()
	for _, t := range s.Tables {
		metrics.UpdateTableStats(t.Name, t.Records, t.Occupancy, t.AverageChainLength)
	}
	for _, x := range s.Indexes {
		metrics.UpdateIndexWords(x.Name, x.Words)
	}
}

type shaped interface {
	Len() int
	Buckets() int
	Occupancy() int
	AverageChainLength() float64
}

func tableStats(name string, m shaped) types.TableStats {
	return types.TableStats{
		Name:               name,
		Records:            m.Len(),
		Buckets:            m.Buckets(),
		Occupancy:          m.Occupancy(),
		AverageChainLength: m.AverageChainLength(),
	}
}
