package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/sofirank/internal/adapters/ingest"
	"github.com/okian/sofirank/internal/adapters/repository"
	service "github.com/okian/sofirank/internal/app"
	"github.com/okian/sofirank/internal/domain/model"
	"github.com/okian/sofirank/internal/domain/ranking"
	"github.com/okian/sofirank/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func ids(entries []types.Entry) []uint32 {
	out := make([]uint32, len(entries))
	for i, e := range entries {
		out[i] = e.SofifaID
	}
	return out
}

func loaded(t *testing.T, opts ...service.Option) *service.Service {
	d := writeDataset(t)
	svc := service.New(opts...)
	So(svc.Load(context.Background(), d.players, d.ratings, d.tags), ShouldBeNil)
	return svc
}

func TestService_NotLoaded(t *testing.T) {
	Convey("Given a service without a catalog", t, func() {
		svc := service.New()
		ctx := context.Background()

		Convey("Then every verb reports it", func() {
			_, err := svc.Players(ctx, "a")
			So(errors.Is(err, service.ErrNotLoaded), ShouldBeTrue)
			_, err = svc.User(ctx, "1")
			So(errors.Is(err, service.ErrNotLoaded), ShouldBeTrue)
			_, err = svc.Tags(ctx, "x")
			So(errors.Is(err, service.ErrNotLoaded), ShouldBeTrue)
			_, err = svc.Top(ctx, "1", "ST")
			So(errors.Is(err, service.ErrNotLoaded), ShouldBeTrue)
			_, err = svc.Stats(ctx)
			So(errors.Is(err, service.ErrNotLoaded), ShouldBeTrue)
		})
	})
}

func TestService_Load(t *testing.T) {
	Convey("Given a dataset on disk", t, func() {
		ctx := context.Background()
		d := writeDataset(t)
		svc := service.New(service.WithCatalogOptions(repository.WithPlayerBuckets(3)))

		Convey("When it is loaded", func() {
			So(svc.Load(ctx, d.players, d.ratings, d.tags), ShouldBeNil)

			Convey("Then stats describe every table and index", func() {
				stats, err := svc.Stats(ctx)
				So(err, ShouldBeNil)
				So(stats.Tables, ShouldHaveLength, 3)
				So(stats.Tables[0].Records, ShouldEqual, 4)
				So(stats.Tables[0].Buckets, ShouldEqual, 3)
				So(stats.Tables[2].Records, ShouldEqual, 3) // user 13 only rated an unknown player
				So(stats.Indexes[1].Words, ShouldEqual, 3)  // fast strong tall
			})
		})

		Convey("When a file is missing", func() {
			err := svc.Load(ctx, d.players, filepath.Join(t.TempDir(), "none.csv"), d.tags)

			Convey("Then loading fails and nothing is served", func() {
				So(errors.Is(err, ingest.ErrMissingFile), ShouldBeTrue)
				_, err = svc.Stats(ctx)
				So(errors.Is(err, service.ErrNotLoaded), ShouldBeTrue)
			})
		})

		Convey("When a row is malformed", func() {
			So(os.WriteFile(d.tags, []byte("user_id,sofifa_id,tag\n1,abc,fast\n"), 0o600), ShouldBeNil)
			err := svc.Load(ctx, d.players, d.ratings, d.tags)

			Convey("Then loading fails with the row error", func() {
				So(errors.Is(err, ingest.ErrMalformedRow), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "tags.csv:2")
			})
		})

		Convey("When a player id repeats", func() {
			So(os.WriteFile(d.players, []byte(
				"sofifa_id,short_name,long_name,player_positions,nationality,club_name,league_name\n"+
					"1,A,A,ST,x,y,z\n1,B,B,ST,x,y,z\n"), 0o600), ShouldBeNil)
			err := svc.Load(ctx, d.players, d.ratings, d.tags)

			Convey("Then loading fails", func() {
				So(errors.Is(err, repository.ErrDuplicatePlayer), ShouldBeTrue)
			})
		})
	})
}

func TestService_Players(t *testing.T) {
	Convey("Given a loaded service", t, func() {
		ctx := context.Background()
		svc := loaded(t)

		Convey("When searching a shared name prefix", func() {
			entries, err := svc.Players(ctx, "AN")

			Convey("Then Ann and Anna are listed by global mean", func() {
				So(err, ShouldBeNil)
				So(ids(entries), ShouldResemble, []uint32{2, 1})
				So(entries[0].Rank, ShouldEqual, 1)
				So(entries[0].Rating, ShouldEqual, 4.0)
				So(entries[0].Count, ShouldEqual, uint32(3))
				So(entries[1].Positions, ShouldEqual, "ST, LW")
			})
		})

		Convey("When the prefix matches nothing", func() {
			entries, err := svc.Players(ctx, "zed")

			Convey("Then the result is empty", func() {
				So(err, ShouldBeNil)
				So(entries, ShouldBeEmpty)
			})
		})
	})
}

func TestService_User(t *testing.T) {
	Convey("Given a loaded service", t, func() {
		ctx := context.Background()

		Convey("When user 10 asks for their ranking", func() {
			svc := loaded(t)
			entries, err := svc.User(ctx, "10")

			Convey("Then personal opinion drives the blended order", func() {
				// 1: 3+10*5, 3: 4+10*4, 2: 4+10*3
				So(err, ShouldBeNil)
				So(ids(entries), ShouldResemble, []uint32{1, 3, 2})
				So(entries[0].Personal, ShouldEqual, 5.0)
				So(entries[0].Rating, ShouldEqual, 3.0)
				So(entries[0].Count, ShouldEqual, uint32(2))
			})

			Convey("And the stored profile is not reordered", func() {
				again, _ := svc.User(ctx, "10")
				So(ids(again), ShouldResemble, []uint32{1, 3, 2})
			})
		})

		Convey("When the result limit is lower than the profile", func() {
			svc := loaded(t, service.WithUserResultLimit(2))
			entries, err := svc.User(ctx, "10")

			Convey("Then only the best rows are returned", func() {
				So(err, ShouldBeNil)
				So(ids(entries), ShouldResemble, []uint32{1, 3})
			})
		})

		Convey("When the id is not a number", func() {
			svc := loaded(t)
			_, err := svc.User(ctx, "abc")

			Convey("Then it is rejected", func() {
				So(errors.Is(err, service.ErrInvalidUserID), ShouldBeTrue)
			})
		})

		Convey("When the user never rated anyone", func() {
			svc := loaded(t)
			_, err := svc.User(ctx, "99")
			_, orphanErr := svc.User(ctx, "13")

			Convey("Then the user does not exist", func() {
				So(errors.Is(err, service.ErrUserNotFound), ShouldBeTrue)
				So(errors.Is(orphanErr, service.ErrUserNotFound), ShouldBeTrue)
			})
		})
	})
}

func TestService_Tags(t *testing.T) {
	Convey("Given a loaded service", t, func() {
		ctx := context.Background()
		svc := loaded(t)

		Convey("When every tag matches", func() {
			entries, err := svc.Tags(ctx, "fast", "STRONG")

			Convey("Then only players carrying all tags remain", func() {
				So(err, ShouldBeNil)
				So(ids(entries), ShouldResemble, []uint32{2, 1})
			})
		})

		Convey("When a later tag matches nothing", func() {
			entries, err := svc.Tags(ctx, "fast", "unknown")

			Convey("Then that tag is ignored and ties keep tag order", func() {
				So(err, ShouldBeNil)
				So(ids(entries), ShouldResemble, []uint32{2, 1, 4})
			})
		})

		Convey("When the first tag matches nothing", func() {
			_, err := svc.Tags(ctx, "unknown", "fast")

			Convey("Then there is no match", func() {
				So(errors.Is(err, service.ErrNoMatch), ShouldBeTrue)
			})
		})

		Convey("When tags share no player", func() {
			_, err := svc.Tags(ctx, "tall", "fast")

			Convey("Then there is no match", func() {
				So(errors.Is(err, service.ErrNoMatch), ShouldBeTrue)
			})
		})
	})
}

func TestService_Top(t *testing.T) {
	Convey("Given a loaded service with a low rating threshold", t, func() {
		ctx := context.Background()
		svc := loaded(t, service.WithRankerOptions(ranking.WithMinRatings(2)))

		Convey("When asking for the top 2 strikers", func() {
			entries, err := svc.Top(ctx, "2", "st")

			Convey("Then the best two by global mean are returned", func() {
				So(err, ShouldBeNil)
				So(ids(entries), ShouldResemble, []uint32{2, 1})
				So(entries[0].ClubName, ShouldEqual, "Sevilla")
			})
		})

		Convey("When asking for more players than qualify", func() {
			entries, err := svc.Top(ctx, "10", "ST")

			Convey("Then the result is bounded by the candidates", func() {
				So(err, ShouldBeNil)
				So(ids(entries), ShouldResemble, []uint32{2, 1, 4})
			})
		})

		Convey("When the position is unknown", func() {
			_, err := svc.Top(ctx, "3", "GK")

			Convey("Then no players are reported", func() {
				So(errors.Is(err, service.ErrNoPlayersInPosition), ShouldBeTrue)
			})
		})

		Convey("When the number is invalid", func() {
			_, err := svc.Top(ctx, "x", "ST")

			Convey("Then it is rejected", func() {
				So(errors.Is(err, service.ErrInvalidTopNumber), ShouldBeTrue)
			})
		})
	})

	Convey("Given the default threshold of 1000 ratings", t, func() {
		svc := loaded(t)

		Convey("Then nobody in the small dataset qualifies", func() {
			entries, err := svc.Top(context.Background(), "5", "ST")
			So(err, ShouldBeNil)
			So(entries, ShouldBeEmpty)
		})
	})
}

func TestService_WithStore(t *testing.T) {
	Convey("Given a catalog built in memory", t, func() {
		c := repository.NewCatalog()
		So(c.AddPlayer(model.Player{SofifaID: 7, ShortName: "G", LongName: "Gil"}), ShouldBeNil)
		So(c.AddRating(model.RatingEvent{UserID: 1, PlayerID: 7, Rating: 3}), ShouldBeNil)
		So(c.AddRating(model.RatingEvent{UserID: 1, PlayerID: 7, Rating: 5}), ShouldBeNil)

		var notices []string
		svc := service.New(
			service.WithStore(c),
			service.WithNotice(func(_ context.Context, msg string) { notices = append(notices, msg) }),
		)

		Convey("Then a repeated rating folds into one row", func() {
			entries, err := svc.User(context.Background(), "1")
			So(err, ShouldBeNil)
			So(entries, ShouldHaveLength, 1)
			So(entries[0].Personal, ShouldEqual, 4.0)
			So(entries[0].Count, ShouldEqual, uint32(2))
			So(notices, ShouldBeEmpty)
		})
	})
}
