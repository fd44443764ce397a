package sample

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/okian/sofirank/pkg/logger"
)

// Rating scale of the dataset: half stars from 0.5 to 5.
const (
	ratingStep = 0.5
	ratingMin  = 0.5
	ratingMax  = 5.0
)

// playerIDBase and playerIDStride spread ids like the real dataset does.
const (
	playerIDBase   = 100_000
	playerIDStride = 7
)

// maxDrawAttempts bounds retries when drawing distinct players for a user.
const maxDrawAttempts = 8

// playerID returns the id of the i-th generated player.
func playerID(i int) uint32 {
	return uint32(playerIDBase + i*playerIDStride)
}

// newRand returns a generator for stream, derived from seed.
func newRand(seed, stream uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, stream))
}

// playerRows builds the players.csv body.
func playerRows(cfg Config) [][]string {
	r := newRand(cfg.Seed, 0)
	rows := make([][]string, cfg.Players)
	for i := range rows {
		first := firstNames[r.IntN(len(firstNames))]
		middle := lastNames[r.IntN(len(lastNames))]
		last := lastNames[r.IntN(len(lastNames))]
		club := clubs[r.IntN(len(clubs))]

		rows[i] = []string{
			strconv.FormatUint(uint64(playerID(i)), 10),
			first[:1] + ". " + last,
			first + " " + middle + " " + last,
			pickPositions(r),
			nations[r.IntN(len(nations))],
			club.club,
			club.league,
		}
	}
	return rows
}

// pickPositions returns one to three distinct positions, e.g. "ST, LW".
func pickPositions(r *rand.Rand) string {
	n := 1 + r.IntN(3)
	perm := r.Perm(len(positions))[:n]
	out := make([]string, n)
	for i, p := range perm {
		out[i] = positions[p]
	}
	return strings.Join(out, ", ")
}

// pickPlayer skews toward low indices so a few players collect most of
// the ratings, as popular players do.
func pickPlayer(r *rand.Rand, players int) int {
	f := r.Float64()
	return int(f * f * float64(players))
}

// rating draws a half-star rating. Player quality shifts the mean so
// rankings are stable across users.
func rating(r *rand.Rand, playerIndex, players int) float64 {
	quality := 1 - float64(playerIndex)/float64(players)
	v := 1.5 + 2.5*quality + r.NormFloat64()*0.8
	v = math.Round(v/ratingStep) * ratingStep
	return min(max(v, ratingMin), ratingMax)
}

// userRows builds the rating and tag rows of users [from, to).
func userRows(cfg Config, from, to int) (ratings, tagged [][]string) {
	r := newRand(cfg.Seed, uint64(from)+1)
	perUser := min(cfg.RatingsPerUser, cfg.Players)

	for u := from; u < to; u++ {
		userID := strconv.Itoa(u + 1)
		seen := make(map[int]struct{}, perUser)
		for len(seen) < perUser {
			idx := pickPlayer(r, cfg.Players)
			for a := 0; a < maxDrawAttempts; a++ {
				if _, dup := seen[idx]; !dup {
					break
				}
				idx = r.IntN(cfg.Players)
			}
			if _, dup := seen[idx]; dup {
				continue
			}
			seen[idx] = struct{}{}
			ratings = append(ratings, []string{
				userID,
				strconv.FormatUint(uint64(playerID(idx)), 10),
				strconv.FormatFloat(rating(r, idx, cfg.Players), 'f', 1, 64),
			})
		}
		for t := 0; t < cfg.TagsPerUser; t++ {
			tagged = append(tagged, []string{
				userID,
				strconv.FormatUint(uint64(playerID(pickPlayer(r, cfg.Players))), 10),
				tags[r.IntN(len(tags))],
			})
		}
	}
	return ratings, tagged
}

type chunk struct {
	index   int
	ratings [][]string
	tags    [][]string
}

// generateUsers fans user ranges out to workers and reassembles them in
// user order.
func generateUsers(ctx context.Context, cfg Config) (ratings, tagged [][]string, err error) {
	if cfg.Users == 0 {
		return nil, nil, nil
	}
	workers := max(1, min(cfg.Workers, cfg.Users))
	per := (cfg.Users + workers - 1) / workers
	chunks := (cfg.Users + per - 1) / per

	logger.Get().Debug(ctx, "generating users",
		logger.Int("users", cfg.Users),
		logger.Int("workers", workers),
	)

	results := make(chan chunk, chunks)
	for c := 0; c < chunks; c++ {
		from, to := c*per, min((c+1)*per, cfg.Users)
		go func(index, from, to int) {
			rs, ts := userRows(cfg, from, to)
			results <- chunk{index: index, ratings: rs, tags: ts}
		}(c, from, to)
	}

	ordered := make([]chunk, chunks)
	for i := 0; i < chunks; i++ {
		select {
		case <-ctx.Done():
			return nil, nil, fmt.Errorf("context cancelled during generation: %w", ctx.Err())
		case res := <-results:
			ordered[res.index] = res
		}
	}
	for _, c := range ordered {
		ratings = append(ratings, c.ratings...)
		tagged = append(tagged, c.tags...)
	}
	return ratings, tagged, nil
}
