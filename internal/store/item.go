package store

import (
	"slices"

	"github.com/ASHISH26940/mdsdb/internal/money"
)

// tagSet holds an item's description tags; duplicates collapse.
type tagSet map[int64]struct{}

func newTagSet(tags []int64) tagSet {
	s := make(tagSet, len(tags))
	for _, t := range tags {
		s[t] = struct{}{}
	}
	return s
}

func (s tagSet) sorted() []int64 {
	out := make([]int64, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}

// record is the Primary Store's private view of an item. Its id is the
// tree key and never changes after creation.
type record struct {
	id    int64
	price money.Money
	tags  tagSet
}

func lessRecord(a, b *record) bool { return a.id < b.id }

// Item is a read-only snapshot of a stored item.
type Item struct {
	ID    int64
	Price money.Money
	Tags  []int64 // ascending
}

func (r *record) snapshot() Item {
	return Item{ID: r.id, Price: r.price, Tags: r.tags.sorted()}
}
