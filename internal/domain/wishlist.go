package domain

import "slices"

// RecentlyViewedLimit caps the recently viewed list.
const RecentlyViewedLimit = 10

// Wishlist holds product ids in insertion order without duplicates.
type Wishlist struct {
	IDs []string `json:"ids"`
}

// Contains reports membership of id.
func (w *Wishlist) Contains(id string) bool {
	return slices.Contains(w.IDs, id)
}

// Toggle removes id when present and appends it otherwise. It returns the
// membership after the change.
func (w *Wishlist) Toggle(id string) bool {
	if idx := slices.Index(w.IDs, id); idx >= 0 {
		w.IDs = slices.Delete(w.IDs, idx, idx+1)
		return false
	}
	w.IDs = append(w.IDs, id)
	return true
}

// RecentlyViewed is a most-recent-first list of product snapshots with
// unique ids.
type RecentlyViewed struct {
	Products []Product `json:"products"`
}

// Push moves p to the front, dropping any earlier entry for the same id and
// truncating to RecentlyViewedLimit.
func (r *RecentlyViewed) Push(p Product) {
	rest := slices.DeleteFunc(r.Products, func(existing Product) bool {
		return existing.ID == p.ID
	})
	list := make([]Product, 0, min(len(rest)+1, RecentlyViewedLimit))
	list = append(list, p)
	list = append(list, rest...)
	if len(list) > RecentlyViewedLimit {
		list = list[:RecentlyViewedLimit]
	}
	r.Products = list
}

// Clear empties the list.
func (r *RecentlyViewed) Clear() {
	r.Products = nil
}
