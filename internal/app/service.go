// Package service loads the catalog and resolves the four query verbs on
// top of it. It backs both the REPL and the HTTP API.
package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/okian/sofirank/internal/adapters/repository"
	"github.com/okian/sofirank/internal/domain/model"
	"github.com/okian/sofirank/internal/domain/ranking"
	"github.com/okian/sofirank/internal/domain/types"
	"github.com/okian/sofirank/pkg/logger"
	"github.com/okian/sofirank/pkg/metrics"
)

// Verb names used in logs and metrics.
const (
	VerbPlayer = "player"
	VerbUser   = "user"
	VerbTags   = "tags"
	VerbTop    = "top"
)

const defaultUserResultLimit = 20

// Notice receives informational messages produced while resolving a query,
// such as an indexed name that carries no player ids.
type Notice func(ctx context.Context, msg string)

// Service resolves queries against a loaded catalog.
type Service struct {
	mu    sync.RWMutex
	store repository.Store

	catalogOpts []repository.Option
	ranker      *ranking.Ranker
	userLimit   int
	notice      Notice

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCatalogOptions sets the options used to build the catalog on Load.
func WithCatalogOptions(opts ...repository.Option) Option {
	return func(s *Service) {
		s.catalogOpts = append(s.catalogOpts, opts...)
	}
}

// WithRankerOptions configures the ranking engine.
func WithRankerOptions(opts ...ranking.Option) Option {
	return func(s *Service) {
		s.ranker = ranking.New(opts...)
	}
}

// WithUserResultLimit caps the rows returned for a user query.
func WithUserResultLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.userLimit = n
		}
	}
}

// WithNotice sets the receiver of informational query messages.
func WithNotice(fn Notice) Option {
	return func(s *Service) {
		if fn != nil {
			s.notice = fn
		}
	}
}

// WithStore serves queries from an already built store instead of Load.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		s.store = store
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		ranker:    ranking.New(),
		userLimit: defaultUserResultLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.notice == nil {
		s.notice = func(ctx context.Context, msg string) {
			s.logger.Info(ctx, msg)
		}
	}
	return s
}

// Load ingests the three dataset files into a fresh catalog and swaps it
// in. Any ingestion failure aborts the load and leaves the previous
// catalog in place.
func (s *Service) Load(ctx context.Context, playersPath, ratingsPath, tagsPath string) error {
	start := time.Now()
	catalog := repository.NewCatalog(s.catalogOpts...)

	players, err := ingestPlayers(ctx, playersPath, catalog)
	if err != nil {
		return err
	}
	ratings, err := ingestRatings(ctx, ratingsPath, catalog, s.logger)
	if err != nil {
		return err
	}
	tags, err := ingestTags(ctx, tagsPath, catalog)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)
	metrics.RecordIngestDuration(float64(elapsed.Milliseconds()))
	catalog.PublishMetrics()

	s.mu.Lock()
	s.store = catalog
	s.mu.Unlock()

	s.logger.Info(ctx, "catalog loaded",
		logger.Duration("elapsed", elapsed),
		logger.Int("player_rows", players),
		logger.Int("rating_rows", ratings),
		logger.Int("tag_rows", tags),
		logger.Int("orphan_ratings", catalog.Orphans()),
	)
	s.logTables(ctx, catalog)
	return nil
}

func (s *Service) logTables(ctx context.Context, catalog *repository.Catalog) {
	stats := catalog.Stats()
	for _, t := range stats.Tables {
		s.logger.Info(ctx, "table",
			logger.String("name", t.Name),
			logger.Int("records", t.Records),
			logger.Int("buckets", t.Buckets),
			logger.Int("occupancy", t.Occupancy),
			logger.Float64("avg_chain_length", t.AverageChainLength),
		)
	}
	for _, x := range stats.Indexes {
		s.logger.Debug(ctx, "index", logger.String("name", x.Name), logger.Int("words", x.Words))
	}
}

func (s *Service) current() (repository.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.store == nil {
		return nil, ErrNotLoaded
	}
	return s.store, nil
}

// Players returns every player whose long name starts with prefix,
// ordered by global mean rating.
func (s *Service) Players(ctx context.Context, prefix string) (entries []types.Entry, err error) {
	defer s.observe(ctx, VerbPlayer, time.Now(), &err)

	store, err := s.current()
	if err != nil {
		return nil, err
	}

	var accs []model.Accumulator
	for _, name := range store.NamesWithPrefix(prefix) {
		ids, ok := store.NameIDs(name)
		if !ok {
			s.notice(ctx, "No match found for "+name)
			continue
		}
		for _, id := range ids {
			if g, ok := store.Global(id); ok {
				accs = append(accs, g)
			}
		}
	}
	s.ranker.ByGlobalMean(accs)
	return join(store, accs, len(accs)), nil
}

// User returns the players a user rated, ordered by blended score and
// capped at the configured limit.
func (s *Service) User(ctx context.Context, rawID string) (entries []types.Entry, err error) {
	defer s.observe(ctx, VerbUser, time.Now(), &err)

	store, err := s.current()
	if err != nil {
		return nil, err
	}

	id, err := strconv.ParseUint(strings.TrimSpace(rawID), 10, 32)
	if err != nil {
		return nil, ErrInvalidUserID
	}
	accs, ok := store.Ratings(uint32(id))
	if !ok {
		return nil, ErrUserNotFound
	}

	s.ranker.ByBlendedScore(accs, store.Global)
	if len(accs) > s.userLimit {
		accs = accs[:s.userLimit]
	}

	entries = make([]types.Entry, 0, len(accs))
	for _, acc := range accs {
		p, ok := store.Player(acc.PlayerID)
		if !ok {
			continue
		}
		g, _ := store.Global(acc.PlayerID)
		e := types.NewEntry(len(entries)+1, p, g)
		e.Personal = acc.Mean()
		entries = append(entries, e)
	}
	return entries, nil
}

// Tags returns the players carrying every given tag, ordered by global
// mean rating. A tag after the first that matches nothing is ignored.
func (s *Service) Tags(ctx context.Context, tags ...string) (entries []types.Entry, err error) {
	defer s.observe(ctx, VerbTags, time.Now(), &err)

	store, err := s.current()
	if err != nil {
		return nil, err
	}
	if len(tags) == 0 {
		return nil, ErrNoMatch
	}

	candidates, _ := store.TagIDs(tags[0])
	for _, tag := range tags[1:] {
		ids, ok := store.TagIDs(tag)
		if !ok {
			continue
		}
		candidates = retain(candidates, ids)
	}

	var accs []model.Accumulator
	for _, id := range unique(candidates) {
		if g, ok := store.Global(id); ok {
			accs = append(accs, g)
		}
	}
	if len(accs) == 0 {
		return nil, ErrNoMatch
	}

	s.ranker.ByGlobalMean(accs)
	return join(store, accs, len(accs)), nil
}

// Top returns the best rated players at position among those with enough
// ratings. rawN is the number following the "top" verb.
func (s *Service) Top(ctx context.Context, rawN, position string) (entries []types.Entry, err error) {
	defer s.observe(ctx, VerbTop, time.Now(), &err)

	store, err := s.current()
	if err != nil {
		return nil, err
	}

	n, err := strconv.ParseUint(strings.TrimSpace(rawN), 10, 32)
	if err != nil {
		return nil, ErrInvalidTopNumber
	}
	ids, ok := store.PositionIDs(position)
	if !ok {
		return nil, ErrNoPlayersInPosition
	}

	var accs []model.Accumulator
	for _, id := range unique(ids) {
		if g, ok := store.Global(id); ok && s.ranker.Qualifies(g) {
			accs = append(accs, g)
		}
	}
	s.ranker.ByGlobalMean(accs)
	return join(store, accs, int(min(n, uint64(len(accs))))), nil
}

// Stats describes the loaded catalog.
func (s *Service) Stats(_ context.Context) (types.Stats, error) {
	store, err := s.current()
	if err != nil {
		return types.Stats{}, err
	}
	return store.Stats(), nil
}

func (s *Service) observe(ctx context.Context, verb string, start time.Time, err *error) {
	ms := float64(time.Since(start).Microseconds()) / 1000
	metrics.RecordQueryLatency(verb, ms)

	outcome := "ok"
	switch {
	case *err == nil:
	case errors.Is(*err, ErrInvalidUserID), errors.Is(*err, ErrInvalidTopNumber):
		outcome = "invalid"
	case errors.Is(*err, ErrNotLoaded):
		outcome = "unavailable"
	default:
		outcome = "not_found"
	}
	metrics.RecordQuery(verb, outcome)

	s.logger.Debug(ctx, "query resolved",
		logger.String("verb", verb),
		logger.String("outcome", outcome),
		logger.Float64("latency_ms", ms),
	)
}

// join pairs the first limit accumulators with their player records.
func join(store repository.Store, accs []model.Accumulator, limit int) []types.Entry {
	entries := make([]types.Entry, 0, limit)
	for _, acc := range accs[:limit] {
		p, ok := store.Player(acc.PlayerID)
		if !ok {
			continue
		}
		entries = append(entries, types.NewEntry(len(entries)+1, p, acc))
	}
	return entries
}

// retain keeps the entries of ids that also appear in keep, in order.
func retain(ids, keep []uint32) []uint32 {
	set := make(map[uint32]struct{}, len(keep))
	for _, id := range keep {
		set[id] = struct{}{}
	}
	out := ids[:0]
	for _, id := range ids {
		if _, ok := set[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// unique drops repeated ids, keeping first-seen order.
func unique(ids []uint32) []uint32 {
	seen := make(map[uint32]struct{}, len(ids))
	out := make([]uint32, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
