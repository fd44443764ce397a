package hashtable_test

import (
	"testing"

	"github.com/okian/sofirank/internal/domain/hashtable"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMap_InsertAndGet(t *testing.T) {
	Convey("Given a table with 10 buckets", t, func() {
		m := hashtable.New[hashtable.Uint32, string](10)

		Convey("When keys are inserted", func() {
			m.Insert(1, "one")
			m.Insert(2, "two")
			m.Insert(10, "ten")

			Convey("Then every inserted key is found", func() {
				v, ok := m.Get(1)
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, "one")

				v, ok = m.Get(2)
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, "two")

				v, ok = m.Get(10)
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, "ten")
			})

			Convey("And keys never inserted are not found", func() {
				v, ok := m.Get(3)
				So(ok, ShouldBeFalse)
				So(v, ShouldEqual, "")

				_, ok = m.Get(20)
				So(ok, ShouldBeFalse)
			})

			Convey("And colliding keys share a bucket", func() {
				So(m.Len(), ShouldEqual, 3)
				So(m.Occupancy(), ShouldEqual, 2)
				So(m.AverageChainLength(), ShouldEqual, 1.5)
			})
		})

		Convey("When the same key is inserted twice", func() {
			m.Insert(7, "first")
			m.Insert(7, "second")

			Convey("Then the first value wins and both entries are kept", func() {
				v, ok := m.Get(7)
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, "first")
				So(m.Len(), ShouldEqual, 2)
			})
		})
	})
}

func TestMap_Ref(t *testing.T) {
	Convey("Given a table holding counters", t, func() {
		m := hashtable.New[hashtable.Uint32, int](2)
		m.Insert(4, 0)

		Convey("When a value is updated through Ref", func() {
			ref, ok := m.Ref(4)
			So(ok, ShouldBeTrue)
			*ref += 5

			Convey("Then the update is visible to Get", func() {
				v, _ := m.Get(4)
				So(v, ShouldEqual, 5)
			})

			Convey("And the reference survives growth of the same chain", func() {
				for i := 0; i < 64; i++ {
					m.Insert(hashtable.Uint32(6+2*i), i)
				}
				*ref += 1
				v, _ := m.Get(4)
				So(v, ShouldEqual, 6)
			})
		})

		Convey("When Ref misses", func() {
			ref, ok := m.Ref(5)

			Convey("Then it reports not found", func() {
				So(ok, ShouldBeFalse)
				So(ref, ShouldBeNil)
			})
		})
	})
}

func TestMap_Range(t *testing.T) {
	Convey("Given a table with colliding rune keys", t, func() {
		m := hashtable.New[hashtable.Rune, int](26)
		// 'a' (97) and '{' (123) share bucket 19.
		m.Insert('a', 1)
		m.Insert('{', 2)
		m.Insert('b', 3)

		Convey("When ranging over all entries", func() {
			var keys []rune
			m.Range(func(k hashtable.Rune, _ int) bool {
				keys = append(keys, rune(k))
				return true
			})

			Convey("Then colliding entries are all visited in chain order", func() {
				So(keys, ShouldResemble, []rune{'a', '{', 'b'})
			})
		})

		Convey("When the callback stops early", func() {
			count := 0
			m.Range(func(hashtable.Rune, int) bool {
				count++
				return false
			})

			Convey("Then iteration ends after the first entry", func() {
				So(count, ShouldEqual, 1)
			})
		})
	})
}

func TestMap_Diagnostics(t *testing.T) {
	Convey("Given an empty table", t, func() {
		m := hashtable.New[hashtable.Uint32, struct{}](0)

		Convey("Then the bucket count is clamped and diagnostics are zero", func() {
			So(m.Buckets(), ShouldEqual, 1)
			So(m.Occupancy(), ShouldEqual, 0)
			So(m.AverageChainLength(), ShouldEqual, 0)
		})
	})
}
