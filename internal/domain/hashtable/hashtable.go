// Package hashtable implements a separate-chaining hash table whose bucket
// count is fixed at construction.
//
// Table invariant: Insert always appends to the target chain and never
// replaces an existing entry. When the same key is inserted more than once,
// every lookup returns the value that was inserted first.
package hashtable

// Identifiable is implemented by key types that can be reduced to an unsigned
// integer. The integer selects the bucket; equality is plain value equality.
type Identifiable interface {
	comparable
	ID() uint64
}

// entry is heap allocated so references handed out by Ref survive chain growth.
type entry[K Identifiable, V any] struct {
	key   K
	value V
}

// Map is a fixed-bucket hash table. It never resizes or rehashes.
type Map[K Identifiable, V any] struct {
	buckets [][]*entry[K, V]
	size    int
}

// New creates a table with the given number of buckets (at least one).
func New[K Identifiable, V any](buckets int) *Map[K, V] {
	if buckets < 1 {
		buckets = 1
	}
	return &Map[K, V]{buckets: make([][]*entry[K, V], buckets)}
}

func (m *Map[K, V]) index(key K) int {
	return int(key.ID() % uint64(len(m.buckets)))
}

// Insert appends (key, value) to the key's chain in O(1) amortized time.
// It does not look for an existing equal key.
func (m *Map[K, V]) Insert(key K, value V) {
	i := m.index(key)
	m.buckets[i] = append(m.buckets[i], &entry[K, V]{key: key, value: value})
	m.size++
}

// Get returns the first value stored under key.
func (m *Map[K, V]) Get(key K) (V, bool) {
	if e := m.find(key); e != nil {
		return e.value, true
	}
	var zero V
	return zero, false
}

// Ref returns a pointer to the first value stored under key so callers can
// update it in place. The pointer stays valid for the lifetime of the table.
func (m *Map[K, V]) Ref(key K) (*V, bool) {
	if e := m.find(key); e != nil {
		return &e.value, true
	}
	return nil, false
}

func (m *Map[K, V]) find(key K) *entry[K, V] {
	for _, e := range m.buckets[m.index(key)] {
		if e.key == key {
			return e
		}
	}
	return nil
}

// Range calls fn for every entry in bucket order, then chain order,
// stopping early when fn returns false.
func (m *Map[K, V]) Range(fn func(key K, value V) bool) {
	for _, chain := range m.buckets {
		for _, e := range chain {
			if !fn(e.key, e.value) {
				return
			}
		}
	}
}

// Len returns the number of stored entries, duplicates included.
func (m *Map[K, V]) Len() int { return m.size }

// Buckets returns the fixed bucket count.
func (m *Map[K, V]) Buckets() int { return len(m.buckets) }

// Occupancy returns the number of non-empty buckets.
func (m *Map[K, V]) Occupancy() int {
	n := 0
	for _, chain := range m.buckets {
		if len(chain) > 0 {
			n++
		}
	}
	return n
}

// AverageChainLength returns the mean chain length over non-empty buckets.
func (m *Map[K, V]) AverageChainLength() float64 {
	occupied := m.Occupancy()
	if occupied == 0 {
		return 0
	}
	return float64(m.size) / float64(occupied)
}
