// Package prefix provides a case-insensitive character trie that maps words
// to lists of numeric ids.
//
// Each node keeps its children in a fixed-bucket hash table keyed by
// character. Words are lower-cased before any traversal.
package prefix

import (
	"strings"

	"github.com/okian/sofirank/internal/domain/hashtable"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// defaultChildBuckets sizes each node's child table for a Latin alphabet.
const defaultChildBuckets = 26

// Option applies a configuration option to an Index.
type Option func(*Index)

// WithChildBuckets sets the bucket count of every node's child table.
func WithChildBuckets(n int) Option {
	return func(x *Index) {
		if n > 0 {
			x.childBuckets = n
		}
	}
}

type node struct {
	children *hashtable.Map[hashtable.Rune, *node]
	terminal bool
	ids      []uint32
}

// Index is a trie-backed prefix index.
type Index struct {
	root         *node
	childBuckets int
	words        int
}

// New creates an empty index.
func New(opts ...Option) *Index {
	x := &Index{childBuckets: defaultChildBuckets}
	for _, opt := range opts {
		opt(x)
	}
	x.root = x.newNode()
	return x
}

func (x *Index) newNode() *node {
	return &node{children: hashtable.New[hashtable.Rune, *node](x.childBuckets)}
}

// lower folds s to lower case. A Caser is stateful, so one is built per call
// to keep the index safe for concurrent readers.
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// Insert adds word without associating an id.
func (x *Index) Insert(word string) {
	x.insert(word)
}

// InsertWithID adds word and appends id to its id list. Ids are not
// deduplicated: inserting the same pair twice stores the id twice.
func (x *Index) InsertWithID(word string, id uint32) {
	n := x.insert(word)
	n.ids = append(n.ids, id)
}

func (x *Index) insert(word string) *node {
	n := x.root
	for _, r := range lower(word) {
		child, ok := n.children.Get(hashtable.Rune(r))
		if !ok {
			child = x.newNode()
			n.children.Insert(hashtable.Rune(r), child)
		}
		n = child
	}
	if !n.terminal {
		n.terminal = true
		x.words++
	}
	return n
}

// walk follows the lower-cased path and returns the node it ends on.
func (x *Index) walk(path string) (*node, bool) {
	n := x.root
	for _, r := range lower(path) {
		child, ok := n.children.Get(hashtable.Rune(r))
		if !ok {
			return nil, false
		}
		n = child
	}
	return n, true
}

// Search reports whether word was inserted.
func (x *Index) Search(word string) bool {
	n, ok := x.walk(word)
	return ok && n.terminal
}

// StartsWith reports whether any path for prefix exists, terminal or not.
func (x *Index) StartsWith(prefix string) bool {
	_, ok := x.walk(prefix)
	return ok
}

// IDs returns a copy of the ids stored for word. It reports false when the
// word was never inserted or carries no ids.
func (x *Index) IDs(word string) ([]uint32, bool) {
	n, ok := x.walk(word)
	if !ok || !n.terminal || len(n.ids) == 0 {
		return nil, false
	}
	out := make([]uint32, len(n.ids))
	copy(out, n.ids)
	return out, true
}

// WordsWithPrefix returns every inserted word that starts with prefix,
// lower-cased, each exactly once. Words come out in pre-order: a word
// precedes its extensions, and siblings follow child bucket order then
// chain order, so characters sharing a bucket are all visited.
func (x *Index) WordsWithPrefix(prefix string) []string {
	lp := lower(prefix)
	n, ok := x.walk(lp)
	if !ok {
		return nil
	}
	var out []string
	var b strings.Builder
	b.WriteString(lp)
	collect(n, &b, &out)
	return out
}

func collect(n *node, b *strings.Builder, out *[]string) {
	if n.terminal {
		*out = append(*out, b.String())
	}
	base := b.String()
	n.children.Range(func(r hashtable.Rune, child *node) bool {
		b.Reset()
		b.WriteString(base)
		b.WriteRune(rune(r))
		collect(child, b, out)
		return true
	})
}

// Len returns the number of distinct words in the index.
func (x *Index) Len() int { return x.words }
