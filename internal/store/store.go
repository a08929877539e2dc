// Package store contains the core logic for the in-memory item index.
// It keeps a primary map of items ordered by id and a secondary tag index
// derived from it, and is safe for concurrent access.
package store

import (
	"fmt"
	"sync"

	"github.com/ASHISH26940/mdsdb/internal/money"
	"github.com/google/btree"
	"github.com/shopspring/decimal"
)

// Store is a thread-safe index of priced, tagged items.
// One lock covers both the primary map and the tag index, so readers never
// see an item's tag contribution half removed.
type Store struct {
	mu    sync.RWMutex
	items *btree.BTreeG[*record]
	index *tagIndex
}

// NewStore initializes and returns a new empty Store.
func NewStore() *Store {
	return &Store{
		items: btree.NewG(btreeDegree, lessRecord),
		index: newTagIndex(),
	}
}

func (s *Store) lookup(id int64) (*record, bool) {
	return s.items.Get(&record{id: id})
}

// change is the only way an existing record is mutated: the record's tag
// contribution is withdrawn, mutate runs, and the new contribution is added.
// The caller must hold the write lock.
func (s *Store) change(r *record, mutate func(r *record)) {
	s.index.remove(r.price, r.tags)
	mutate(r)
	s.index.add(r.price, r.tags)
}

// Insert creates the item or, if id exists, replaces its price and, when
// tags is non-empty, its tags. It reports whether a new item was created.
func (s *Store) Insert(id int64, price money.Money, tags []int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r, ok := s.lookup(id); ok {
		s.change(r, func(r *record) {
			r.price = price
			if len(tags) > 0 {
				r.tags = newTagSet(tags)
			}
		})
		return false
	}

	r := &record{id: id, price: price, tags: newTagSet(tags)}
	s.items.ReplaceOrInsert(r)
	s.index.add(r.price, r.tags)
	return true
}

// Find returns the price of id, or zero money if there is no such item.
func (s *Store) Find(id int64) money.Money {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r, ok := s.lookup(id); ok {
		return r.price
	}
	return money.Zero
}

// Get returns a snapshot of the item with the given id.
func (s *Store) Get(id int64) (Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.lookup(id)
	if !ok {
		return Item{}, false
	}
	return r.snapshot(), true
}

// Delete removes the item and returns the sum of its tags, or 0 if id did
// not exist.
func (s *Store) Delete(id int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.items.Delete(&record{id: id})
	if !ok {
		return 0
	}
	return s.index.remove(r.price, r.tags)
}

// RemoveTags drops from id's tags those values of tags it actually holds and
// returns their sum. Values the item does not hold are ignored.
func (s *Store) RemoveTags(id int64, tags []int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.lookup(id)
	if !ok {
		return 0
	}

	dropped := make(tagSet)
	for _, t := range tags {
		if _, held := r.tags[t]; held {
			dropped[t] = struct{}{}
		}
	}
	if len(dropped) == 0 {
		return 0
	}

	sum := s.index.indexedSum(dropped)
	s.change(r, func(r *record) {
		for t := range dropped {
			delete(r.tags, t)
		}
	})
	return sum
}

// PriceHike raises by percent the price of every item whose id lies in
// [low, high] and returns the total net increase, floored to whole cents.
// An inverted range is empty.
func (s *Store) PriceHike(low, high int64, percent decimal.Decimal) money.Money {
	if low > high {
		return money.Zero
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	s.items.AscendGreaterOrEqual(&record{id: low}, func(r *record) bool {
		if r.id > high {
			return false
		}
		s.change(r, func(r *record) {
			total = total.Add(r.price.HikeBy(percent))
		})
		return true
	})
	return money.FromMinorUnits(total.Shift(2).Floor().IntPart())
}

// FindMinPrice returns the lowest price among items tagged tag, or zero.
func (s *Store) FindMinPrice(tag int64) money.Money {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.min(tag)
}

// FindMaxPrice returns the highest price among items tagged tag, or zero.
func (s *Store) FindMaxPrice(tag int64) money.Money {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.max(tag)
}

// FindPriceRange counts items tagged tag priced within [low, high].
func (s *Store) FindPriceRange(tag int64, low, high money.Money) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.countBetween(tag, low, high)
}

// Len returns the number of stored items.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.items.Len()
}

// TagCount returns the number of distinct tags in the index.
func (s *Store) TagCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.index.tags)
}

// Ascend calls fn for each item in id order until fn returns false.
// fn must not call back into the Store.
func (s *Store) Ascend(fn func(Item) bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.items.Ascend(func(r *record) bool {
		return fn(r.snapshot())
	})
}

// CheckConsistency rebuilds the tag index from the primary map and reports
// the first difference from the live index.
func (s *Store) CheckConsistency() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	want := newTagIndex()
	s.items.Ascend(func(r *record) bool {
		want.add(r.price, r.tags)
		return true
	})

	got := s.index.counts()
	expected := want.counts()
	if len(got) != len(expected) {
		return fmt.Errorf("tag index holds %d tags, items carry %d", len(got), len(expected))
	}
	for tag, prices := range expected {
		live, ok := got[tag]
		if !ok {
			return fmt.Errorf("tag %d missing from index", tag)
		}
		if len(live) != len(prices) {
			return fmt.Errorf("tag %d: index holds %d prices, items carry %d", tag, len(live), len(prices))
		}
		for price, n := range prices {
			if live[price] != n {
				return fmt.Errorf("tag %d price %s: index count %d, want %d", tag, price, live[price], n)
			}
		}
	}
	return nil
}
