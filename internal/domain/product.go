package domain

import "maps"

// Product categories.
const (
	CategoryClothing    = "Clothing"
	CategoryAccessories = "Accessories"
	CategoryJewelry     = "Jewelry"
	CategoryShoes       = "Shoes"
)

// Variation types.
const (
	VariationText  = "text"
	VariationColor = "color"
)

// Product is a catalog entry. Prices are whole taka.
type Product struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Price        int64       `json:"price"`
	Category     string      `json:"category"`
	Image        string      `json:"image"`
	Images       []string    `json:"images,omitempty"`
	Description  string      `json:"description"`
	Variations   []Variation `json:"variations,omitempty"`
	IsNew        bool        `json:"is_new,omitempty"`
	IsBestSeller bool        `json:"is_bestseller,omitempty"`
	Stock        *int        `json:"stock,omitempty"`
	SKU          string      `json:"sku,omitempty"`
}

// Variation is a named axis of choice such as Size or Color.
type Variation struct {
	Name    string            `json:"name"`
	Type    string            `json:"type"`
	Options []VariationOption `json:"options"`
}

// VariationOption is one choice within a Variation. For color variations the
// label is a hex color.
type VariationOption struct {
	Label         string `json:"label"`
	PriceModifier int64  `json:"price_modifier,omitempty"`
	Image         string `json:"image,omitempty"`
}

// SelectedOptions maps a variation name to the chosen option label.
type SelectedOptions map[string]string

// Equal reports whether both selections hold the same pairs. A nil selection
// equals an empty one.
func (s SelectedOptions) Equal(other SelectedOptions) bool {
	return maps.Equal(s, other)
}

// Clone returns an independent copy, or nil for an empty selection.
func (s SelectedOptions) Clone() SelectedOptions {
	if len(s) == 0 {
		return nil
	}
	return maps.Clone(s)
}

// EffectivePrice returns the base price plus the modifier of each selected
// option. Labels that match no option contribute nothing.
func (p *Product) EffectivePrice(selected SelectedOptions) int64 {
	price := p.Price
	for _, v := range p.Variations {
		label, ok := selected[v.Name]
		if !ok {
			continue
		}
		for _, opt := range v.Options {
			if opt.Label == label {
				price += opt.PriceModifier
				break
			}
		}
	}
	return price
}

// StockLevel returns the tracked stock, or -1 when none is recorded.
func (p *Product) StockLevel() int {
	if p.Stock == nil {
		return -1
	}
	return *p.Stock
}

// IsValidCategory reports whether c is one of the storefront categories.
func IsValidCategory(c string) bool {
	switch c {
	case CategoryClothing, CategoryAccessories, CategoryJewelry, CategoryShoes:
		return true
	}
	return false
}

// Categories returns the storefront categories in menu order.
func Categories() []string {
	return []string{CategoryClothing, CategoryAccessories, CategoryJewelry, CategoryShoes}
}

// IntPtr returns a pointer to n.
func IntPtr(n int) *int {
	return &n
}
