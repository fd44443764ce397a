package ranking_test

import (
	"math/rand"
	"testing"

	"github.com/okian/sofirank/internal/domain/model"
	"github.com/okian/sofirank/internal/domain/ranking"
	. "github.com/smartystreets/goconvey/convey"
)

func acc(id uint32, sum float64, count uint32) model.Accumulator {
	return model.Accumulator{PlayerID: id, Sum: sum, Count: count}
}

func ids(accs []model.Accumulator) []uint32 {
	out := make([]uint32, len(accs))
	for i, a := range accs {
		out[i] = a.PlayerID
	}
	return out
}

func TestMean(t *testing.T) {
	Convey("Given accumulators", t, func() {
		Convey("When nothing was rated", func() {
			So(ranking.Mean(acc(1, 0, 0)), ShouldEqual, 0.0)
		})

		Convey("When ratings exist", func() {
			So(ranking.Mean(acc(1, 6, 2)), ShouldEqual, 3.0)
			So(ranking.Mean(acc(1, 7, 4)), ShouldEqual, 1.75)
		})
	})
}

func TestRanker_ByGlobalMean(t *testing.T) {
	Convey("Given a default ranker", t, func() {
		r := ranking.New()

		Convey("When sorting distinct means", func() {
			accs := []model.Accumulator{acc(1, 8, 2), acc(2, 45, 5), acc(3, 0, 0), acc(4, 15, 3)}
			r.ByGlobalMean(accs)

			Convey("Then the highest mean comes first", func() {
				So(ids(accs), ShouldResemble, []uint32{2, 4, 1, 3})
			})
		})

		Convey("When means tie", func() {
			accs := []model.Accumulator{acc(5, 4, 1), acc(6, 9, 1), acc(7, 8, 2), acc(8, 12, 3)}
			r.ByGlobalMean(accs)

			Convey("Then tied entries keep their first-encountered order", func() {
				So(ids(accs), ShouldResemble, []uint32{6, 5, 7, 8})
			})
		})

		Convey("When sorting random input", func() {
			rng := rand.New(rand.NewSource(7))
			accs := make([]model.Accumulator, 200)
			for i := range accs {
				count := uint32(rng.Intn(5))
				accs[i] = acc(uint32(i), rng.Float64()*5*float64(count), count)
			}
			r.ByGlobalMean(accs)

			Convey("Then means never increase along the sequence", func() {
				for i := 1; i < len(accs); i++ {
					So(ranking.Mean(accs[i]), ShouldBeLessThanOrEqualTo, ranking.Mean(accs[i-1]))
				}
			})
		})
	})
}

func TestRanker_ByBlendedScore(t *testing.T) {
	Convey("Given a user's personal ratings and the global table", t, func() {
		global := map[uint32]model.Accumulator{
			1: acc(1, 3, 1),
			2: acc(2, 9, 1),
			3: acc(3, 1, 1),
			4: acc(4, 5, 1),
		}
		lookup := func(id uint32) (model.Accumulator, bool) {
			a, ok := global[id]
			return a, ok
		}

		Convey("When blending with the default weight", func() {
			r := ranking.New()
			personal := []model.Accumulator{acc(2, 4, 1), acc(1, 5, 1), acc(3, 5, 1)}
			r.ByBlendedScore(personal, lookup)

			Convey("Then personal opinion dominates the global mean", func() {
				// 1: 3+50, 3: 1+50, 2: 9+40
				So(ids(personal), ShouldResemble, []uint32{1, 3, 2})
			})
		})

		Convey("When blended scores tie", func() {
			r := ranking.New()
			// 4: 5+10*4 = 45, 9: 0+10*4.5 = 45 (no global entry)
			personal := []model.Accumulator{acc(4, 4, 1), acc(9, 9, 2)}
			r.ByBlendedScore(personal, lookup)

			Convey("Then the personal-mean pass decides the order", func() {
				So(ids(personal), ShouldResemble, []uint32{9, 4})
			})
		})

		Convey("When the personal weight is lowered", func() {
			r := ranking.New(ranking.WithPersonalWeight(1))
			personal := []model.Accumulator{acc(1, 5, 1), acc(2, 4, 1)}
			r.ByBlendedScore(personal, lookup)

			Convey("Then global popularity can win", func() {
				// 1: 3+5 = 8, 2: 9+4 = 13
				So(ids(personal), ShouldResemble, []uint32{2, 1})
				So(r.BlendedScore(global[2], personal[0]), ShouldEqual, 13.0)
			})
		})
	})
}

func TestRanker_Popular(t *testing.T) {
	Convey("Given three strikers with 1500, 900 and 2000 ratings", t, func() {
		accs := []model.Accumulator{acc(1, 8.0*1500, 1500), acc(2, 9.0*900, 900), acc(3, 7.5*2000, 2000)}

		Convey("When filtering with the default threshold and ranking", func() {
			r := ranking.New()
			popular := r.Popular(accs)
			r.ByGlobalMean(popular)

			Convey("Then the under-rated player is excluded and means decide", func() {
				So(ids(popular), ShouldResemble, []uint32{1, 3})
			})
		})

		Convey("When the threshold is lowered", func() {
			r := ranking.New(ranking.WithMinRatings(0))
			So(r.Popular(accs), ShouldHaveLength, 3)
			So(r.Qualifies(acc(9, 0, 0)), ShouldBeTrue)
		})
	})
}

func TestSelectionSort(t *testing.T) {
	Convey("Given distinct keys", t, func() {
		less := func(a, b int) bool { return a > b }
		a := []int{3, 9, 1, 7, 5, 2}
		b := append([]int(nil), a...)

		Convey("Then selection sort and the stable sort agree", func() {
			ranking.SelectionSort(a, less)
			ranking.Sort(b, less)
			So(a, ShouldResemble, []int{9, 7, 5, 3, 2, 1})
			So(b, ShouldResemble, a)
		})

		Convey("And empty input is left alone", func() {
			var empty []int
			ranking.SelectionSort(empty, less)
			ranking.Sort(empty, less)
			So(empty, ShouldBeEmpty)
		})
	})
}
