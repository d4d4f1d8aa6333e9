// Package catalog serves the fixed storefront collection and the browsing
// queries built on it.
package catalog

import (
	"cmp"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"

	"github.com/nobih83-prog/Nashwa01/internal/domain"
)

// Sort orders accepted by Shop.
const (
	SortFeatured  = "featured"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortNewest    = "newest"
	SortOldest    = "oldest"
)

const (
	// CategoryAll disables the category filter.
	CategoryAll = "All"
	// DefaultMaxPrice is the upper bound of the shop price slider.
	DefaultMaxPrice int64 = 10000

	featuredCount    = 4
	relatedCount     = 4
	quickSearchLimit = 12
	skuPrefix        = "NSW-"
	skuLength        = 6
	minSeedStock     = 5
	seedStockSpread  = 50
)

// Catalog is a read-only product collection.
type Catalog struct {
	products []domain.Product
	byID     map[string]int
}

// New returns the storefront collection.
func New() *Catalog {
	return NewFrom(defaultProducts())
}

// NewFrom builds a catalog over products, keeping their order.
func NewFrom(products []domain.Product) *Catalog {
	c := &Catalog{
		products: products,
		byID:     make(map[string]int, len(products)),
	}
	for i, p := range products {
		c.byID[p.ID] = i
	}
	return c
}

// All returns every product in catalog order.
func (c *Catalog) All() []domain.Product {
	return slices.Clone(c.products)
}

// Get looks up a product by id.
func (c *Catalog) Get(id string) (domain.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Product{}, false
	}
	return c.products[i], true
}

// Featured returns the first products of the collection, as shown on the
// home page.
func (c *Catalog) Featured() []domain.Product {
	return slices.Clone(c.products[:min(featuredCount, len(c.products))])
}

// Filter narrows and orders a Shop listing. Zero values mean no filter.
type Filter struct {
	Category string
	Query    string
	MaxPrice int64
	Sort     string
}

// Shop applies the category, text and price filters, then sorts.
func (c *Catalog) Shop(f Filter) []domain.Product {
	maxPrice := f.MaxPrice
	if maxPrice <= 0 {
		maxPrice = DefaultMaxPrice
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))

	result := make([]domain.Product, 0, len(c.products))
	for _, p := range c.products {
		if f.Category != "" && f.Category != CategoryAll && p.Category != f.Category {
			continue
		}
		if q != "" && !containsFold(q, p.Name, p.Category, p.Description) {
			continue
		}
		if p.Price > maxPrice {
			continue
		}
		result = append(result, p)
	}
	sortProducts(result, f.Sort)
	return result
}

// QuickSearch is the header search: queries of two or more characters match
// name or category, capped at twelve results.
func (c *Catalog) QuickSearch(query string) []domain.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	if len(q) <= 1 {
		return []domain.Product{}
	}
	result := make([]domain.Product, 0, quickSearchLimit)
	for _, p := range c.products {
		if containsFold(q, p.Name, p.Category) {
			result = append(result, p)
			if len(result) == quickSearchLimit {
				break
			}
		}
	}
	return result
}

// Related returns up to four other products from the same category.
func (c *Catalog) Related(id string) []domain.Product {
	p, ok := c.Get(id)
	if !ok {
		return []domain.Product{}
	}
	result := make([]domain.Product, 0, relatedCount)
	for _, other := range c.products {
		if other.Category == p.Category && other.ID != p.ID {
			result = append(result, other)
			if len(result) == relatedCount {
				break
			}
		}
	}
	return result
}

// ResolveWishlist maps wishlist ids to products, dropping unknown ids, and
// orders them. The default order is most recently added first.
func (c *Catalog) ResolveWishlist(ids []string, sortBy string) []domain.Product {
	result := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := c.Get(id); ok {
			result = append(result, p)
		}
	}
	switch sortBy {
	case SortPriceAsc, SortPriceDesc:
		sortProducts(result, sortBy)
	case SortOldest:
	default:
		slices.Reverse(result)
	}
	return result
}

// SeedInventory returns a copy of products with a random stock in [5, 55)
// and a random NSW- SKU. r may be nil to use the global source.
func SeedInventory(products []domain.Product, r *rand.Rand) []domain.Product {
	intN := rand.IntN
	if r != nil {
		intN = r.IntN
	}
	out := make([]domain.Product, len(products))
	for i, p := range products {
		p.Stock = domain.IntPtr(intN(seedStockSpread) + minSeedStock)
		p.SKU = skuPrefix + randomCode(intN, skuLength)
		out[i] = p
	}
	return out
}

const base36 = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

func randomCode(intN func(int) int, n int) string {
	var b strings.Builder
	b.Grow(n)
	for range n {
		b.WriteByte(base36[intN(len(base36))])
	}
	return b.String()
}

func containsFold(lowerQuery string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), lowerQuery) {
			return true
		}
	}
	return false
}

func sortProducts(products []domain.Product, sortBy string) {
	switch sortBy {
	case SortPriceAsc:
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return cmp.Compare(a.Price, b.Price)
		})
	case SortPriceDesc:
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return cmp.Compare(b.Price, a.Price)
		})
	case SortNewest:
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return cmp.Compare(numericID(b.ID), numericID(a.ID))
		})
	}
}

func numericID(id string) int {
	n, err := strconv.Atoi(id)
	if err != nil {
		return 0
	}
	return n
}

// IsValidSort reports whether s is a known Shop sort order. Empty is allowed.
func IsValidSort(s string) bool {
	switch s {
	case "", SortFeatured, SortPriceAsc, SortPriceDesc, SortNewest:
		return true
	}
	return false
}

// IsValidWishlistSort reports whether s is a known wishlist order.
func IsValidWishlistSort(s string) bool {
	switch s {
	case "", SortNewest, SortOldest, SortPriceAsc, SortPriceDesc:
		return true
	}
	return false
}
