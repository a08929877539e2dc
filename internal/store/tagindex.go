package store

import (
	"github.com/ASHISH26940/mdsdb/internal/money"
	"github.com/google/btree"
)

const btreeDegree = 16

// priceCount is one entry of a tag's price map: how many items holding the
// tag currently cost exactly price.
type priceCount struct {
	price money.Money
	count int
}

func lessPriceCount(a, b priceCount) bool { return a.price.Less(b.price) }

// tagIndex maps each tag to an ordered price -> count map. A tag is present
// only while at least one price entry for it has a positive count.
type tagIndex struct {
	tags map[int64]*btree.BTreeG[priceCount]
}

func newTagIndex() *tagIndex {
	return &tagIndex{tags: make(map[int64]*btree.BTreeG[priceCount])}
}

// add records one item holding every tag in tags at price.
func (ix *tagIndex) add(price money.Money, tags tagSet) {
	for tag := range tags {
		prices, ok := ix.tags[tag]
		if !ok {
			prices = btree.NewG(btreeDegree, lessPriceCount)
			ix.tags[tag] = prices
		}
		entry, _ := prices.Get(priceCount{price: price})
		prices.ReplaceOrInsert(priceCount{price: price, count: entry.count + 1})
	}
}

// remove undoes add and prunes emptied entries. The returned sum counts a
// tag whenever the tag had any entry in the index, even if the exact price
// was not found there.
func (ix *tagIndex) remove(price money.Money, tags tagSet) int64 {
	var sum int64
	for tag := range tags {
		prices, ok := ix.tags[tag]
		if !ok {
			continue
		}
		sum += tag

		entry, found := prices.Get(priceCount{price: price})
		if !found {
			continue
		}
		if entry.count > 1 {
			entry.count--
			prices.ReplaceOrInsert(entry)
			continue
		}
		prices.Delete(entry)
		if prices.Len() == 0 {
			delete(ix.tags, tag)
		}
	}
	return sum
}

// indexedSum adds up the tags that currently have an entry in the index,
// the same rule remove applies to its return value.
func (ix *tagIndex) indexedSum(tags tagSet) int64 {
	var sum int64
	for tag := range tags {
		if _, ok := ix.tags[tag]; ok {
			sum += tag
		}
	}
	return sum
}

func (ix *tagIndex) min(tag int64) money.Money {
	prices, ok := ix.tags[tag]
	if !ok {
		return money.Zero
	}
	entry, _ := prices.Min()
	return entry.price
}

func (ix *tagIndex) max(tag int64) money.Money {
	prices, ok := ix.tags[tag]
	if !ok {
		return money.Zero
	}
	entry, _ := prices.Max()
	return entry.price
}

// countBetween sums the counts of tag's entries priced in [low, high].
func (ix *tagIndex) countBetween(tag int64, low, high money.Money) int {
	if low.Compare(high) > 0 {
		return 0
	}
	prices, ok := ix.tags[tag]
	if !ok {
		return 0
	}
	total := 0
	prices.AscendGreaterOrEqual(priceCount{price: low}, func(e priceCount) bool {
		if e.price.Compare(high) > 0 {
			return false
		}
		total += e.count
		return true
	})
	return total
}

// counts flattens the index into tag -> price -> count.
func (ix *tagIndex) counts() map[int64]map[money.Money]int {
	out := make(map[int64]map[money.Money]int, len(ix.tags))
	for tag, prices := range ix.tags {
		m := make(map[money.Money]int, prices.Len())
		prices.Ascend(func(e priceCount) bool {
			m[e.price] = e.count
			return true
		})
		out[tag] = m
	}
	return out
}
