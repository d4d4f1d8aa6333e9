package domain

const (
	// FreeShippingThreshold is the subtotal above which delivery is free.
	FreeShippingThreshold int64 = 5000
	// StandardDeliveryFee is charged when the subtotal does not exceed the
	// free shipping threshold.
	StandardDeliveryFee int64 = 120
)

// CartItem is a product snapshot with its price already adjusted for the
// selected options.
type CartItem struct {
	Product
	Quantity        int             `json:"quantity"`
	SelectedOptions SelectedOptions `json:"selected_options,omitempty"`
}

// LineTotal returns price times quantity.
func (i *CartItem) LineTotal() int64 {
	return i.Price * int64(i.Quantity)
}

// Cart is an ordered list of lines. A line is identified by product id and
// selected options together.
type Cart struct {
	Items []CartItem `json:"items"`
}

// FindItemIndex returns the index of the line matching productID and
// selected, or -1.
func (c *Cart) FindItemIndex(productID string, selected SelectedOptions) int {
	for i := range c.Items {
		if c.Items[i].ID == productID && c.Items[i].SelectedOptions.Equal(selected) {
			return i
		}
	}
	return -1
}

// Add merges quantity into an existing matching line or appends a new one
// priced with the selected option modifiers.
func (c *Cart) Add(p Product, quantity int, selected SelectedOptions) {
	if idx := c.FindItemIndex(p.ID, selected); idx >= 0 {
		c.Items[idx].Quantity += quantity
		return
	}
	snapshot := p
	snapshot.Price = p.EffectivePrice(selected)
	c.Items = append(c.Items, CartItem{
		Product:         snapshot,
		Quantity:        quantity,
		SelectedOptions: selected.Clone(),
	})
}

// Remove deletes the matching line. It reports whether a line was removed.
func (c *Cart) Remove(productID string, selected SelectedOptions) bool {
	idx := c.FindItemIndex(productID, selected)
	if idx < 0 {
		return false
	}
	c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
	return true
}

// UpdateQuantity shifts the matching line's quantity by delta, never below 1.
func (c *Cart) UpdateQuantity(productID string, delta int, selected SelectedOptions) bool {
	idx := c.FindItemIndex(productID, selected)
	if idx < 0 {
		return false
	}
	c.Items[idx].Quantity = max(1, c.Items[idx].Quantity+delta)
	return true
}

// Deduct takes the quantities of ordered out of the matching lines and drops
// lines that reach zero. Lines not in ordered are kept.
func (c *Cart) Deduct(ordered []CartItem) {
	for _, o := range ordered {
		idx := c.FindItemIndex(o.ID, o.SelectedOptions)
		if idx < 0 {
			continue
		}
		c.Items[idx].Quantity -= o.Quantity
		if c.Items[idx].Quantity <= 0 {
			c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
		}
	}
	if len(c.Items) == 0 {
		c.Items = nil
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = nil
}

// Subtotal is the sum of all line totals.
func (c *Cart) Subtotal() int64 {
	var total int64
	for i := range c.Items {
		total += c.Items[i].LineTotal()
	}
	return total
}

// ItemCount is the total number of units across lines.
func (c *Cart) ItemCount() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// DeliveryFee returns the fee for the current subtotal.
func (c *Cart) DeliveryFee() int64 {
	return DeliveryFeeFor(c.Subtotal())
}

// Total is subtotal plus delivery fee.
func (c *Cart) Total() int64 {
	sub := c.Subtotal()
	return sub + DeliveryFeeFor(sub)
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Snapshot returns a deep copy of the lines, suitable for freezing into an
// order.
func (c *Cart) Snapshot() []CartItem {
	out := make([]CartItem, len(c.Items))
	for i, item := range c.Items {
		item.SelectedOptions = item.SelectedOptions.Clone()
		out[i] = item
	}
	return out
}

// DeliveryFeeFor returns 0 when subtotal exceeds FreeShippingThreshold and
// StandardDeliveryFee otherwise.
func DeliveryFeeFor(subtotal int64) int64 {
	if subtotal > FreeShippingThreshold {
		return 0
	}
	return StandardDeliveryFee
}

// Totals is the derived money view of a cart.
type Totals struct {
	Subtotal    int64 `json:"subtotal"`
	DeliveryFee int64 `json:"delivery_fee"`
	Total       int64 `json:"total"`
	ItemCount   int   `json:"item_count"`
}

// Totals computes all derived values at once.
func (c *Cart) Totals() Totals {
	sub := c.Subtotal()
	fee := DeliveryFeeFor(sub)
	return Totals{
		Subtotal:    sub,
		DeliveryFee: fee,
		Total:       sub + fee,
		ItemCount:   c.ItemCount(),
	}
}
