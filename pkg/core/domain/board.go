package domain

import "sort"

// BucketID names a bucket of links: a collection id, or Ungrouped.
type BucketID string

const (
	Ungrouped BucketID = ""

	// UngroupedSentinel is the drop target id of the ungrouped area.
	UngroupedSentinel = "ungrouped"
)

// CollectionID returns the value stored in links.collection_id for the bucket.
func (b BucketID) CollectionID() *string {
	if b == Ungrouped {
		return nil
	}
	id := string(b)
	return &id
}

// ParseBucketID maps a request value to a bucket; "" and "ungrouped" both mean Ungrouped.
func ParseBucketID(s string) BucketID {
	if s == UngroupedSentinel {
		return Ungrouped
	}
	return BucketID(s)
}

// ArrayMove removes the element at from and reinserts it at index to of the
// shortened slice. The input is not modified. Out of range indexes return a copy.
func ArrayMove[T any](items []T, from, to int) []T {
	out := make([]T, 0, len(items))
	if from < 0 || from >= len(items) || to < 0 || to >= len(items) || from == to {
		return append(out, items...)
	}
	rest := make([]T, 0, len(items)-1)
	rest = append(rest, items[:from]...)
	rest = append(rest, items[from+1:]...)

	out = append(out, rest[:to]...)
	out = append(out, items[from])
	out = append(out, rest[to:]...)
	return out
}

// Board is one user's links and collections as loaded from the store.
type Board struct {
	Links       []Link       `json:"links"`
	Collections []Collection `json:"collections"`
}

func NewBoard(links []Link, collections []Collection) *Board {
	return &Board{Links: links, Collections: collections}
}

func (b *Board) Link(id string) (*Link, bool) {
	for i := range b.Links {
		if b.Links[i].ID == id {
			return &b.Links[i], true
		}
	}
	return nil, false
}

func (b *Board) Collection(id string) (*Collection, bool) {
	for i := range b.Collections {
		if b.Collections[i].ID == id {
			return &b.Collections[i], true
		}
	}
	return nil, false
}

// BucketLinks returns the links of a bucket ordered by position. Duplicate
// positions keep creation order.
func (b *Board) BucketLinks(bucket BucketID) []Link {
	var links []Link
	for _, l := range b.Links {
		if l.Bucket() == bucket {
			links = append(links, l)
		}
	}
	sort.SliceStable(links, func(i, j int) bool {
		if links[i].Position != links[j].Position {
			return links[i].Position < links[j].Position
		}
		return links[i].CreatedAt.Before(links[j].CreatedAt)
	})
	return links
}

// OrphanLinks returns links whose collection is not on the board, ordered by
// their old bucket and then position.
func (b *Board) OrphanLinks() []Link {
	var orphans []Link
	for _, l := range b.Links {
		if l.CollectionID == nil {
			continue
		}
		if _, ok := b.Collection(*l.CollectionID); !ok {
			orphans = append(orphans, l)
		}
	}
	sort.SliceStable(orphans, func(i, j int) bool {
		if *orphans[i].CollectionID != *orphans[j].CollectionID {
			return *orphans[i].CollectionID < *orphans[j].CollectionID
		}
		if orphans[i].Position != orphans[j].Position {
			return orphans[i].Position < orphans[j].Position
		}
		return orphans[i].CreatedAt.Before(orphans[j].CreatedAt)
	})
	return orphans
}

// SortedCollections returns the collections ordered by position.
func (b *Board) SortedCollections() []Collection {
	collections := append([]Collection(nil), b.Collections...)
	sort.SliceStable(collections, func(i, j int) bool {
		if collections[i].Position != collections[j].Position {
			return collections[i].Position < collections[j].Position
		}
		return collections[i].CreatedAt.Before(collections[j].CreatedAt)
	})
	return collections
}

// Groups returns each collection in order with its bucket's links.
func (b *Board) Groups() []CollectionGroup {
	var groups []CollectionGroup
	for _, c := range b.SortedCollections() {
		groups = append(groups, CollectionGroup{Collection: c, Links: b.BucketLinks(BucketID(c.ID))})
	}
	return groups
}

// ApplyLinkOrder sets each listed link's position to its index.
func (b *Board) ApplyLinkOrder(ordered []Link) {
	for i, l := range ordered {
		if link, ok := b.Link(l.ID); ok {
			link.Position = i
		}
	}
}

// ApplyCollectionOrder sets each listed collection's position to its index.
func (b *Board) ApplyCollectionOrder(ordered []Collection) {
	for i, c := range ordered {
		if collection, ok := b.Collection(c.ID); ok {
			collection.Position = i
		}
	}
}

// Ungroup moves every link of the collection to the ungrouped bucket.
func (b *Board) Ungroup(collectionID string) {
	for i := range b.Links {
		if b.Links[i].Bucket() == BucketID(collectionID) {
			b.Links[i].CollectionID = nil
		}
	}
}

// RemoveCollection ungroups the collection's links and drops it from the board.
func (b *Board) RemoveCollection(collectionID string) {
	b.Ungroup(collectionID)
	kept := b.Collections[:0]
	for _, c := range b.Collections {
		if c.ID != collectionID {
			kept = append(kept, c)
		}
	}
	b.Collections = kept
}
