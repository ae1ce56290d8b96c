// Package cart implements the shopping cart: an ordered list of
// product/quantity entries with at most one entry per product, mirrored to a
// per-user persistent slot after every mutation.
package cart

import "encoding/json"

// Entry is one product-quantity pair. Quantity is always >= 1 while the
// entry exists; dropping to zero removes the entry.
type Entry struct {
	ProductID uint `json:"productId"`
	Quantity  int  `json:"quantity"`
}

type Cart struct {
	entries []Entry
}

func New() *Cart {
	return &Cart{}
}

// FromJSON rehydrates a cart from its persisted form. Absent or malformed
// data parses as an empty cart.
func FromJSON(raw []byte) *Cart {
	c := &Cart{}
	if len(raw) == 0 {
		return c
	}
	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return c
	}
	for _, e := range entries {
		if e.Quantity > 0 {
			c.entries = append(c.entries, e)
		}
	}
	return c
}

// Add merges quantity into an existing entry for the product, or appends a
// new entry. A non-positive quantity counts as 1.
func (c *Cart) Add(productID uint, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	for i := range c.entries {
		if c.entries[i].ProductID == productID {
			c.entries[i].Quantity += quantity
			return
		}
	}
	c.entries = append(c.entries, Entry{ProductID: productID, Quantity: quantity})
}

// Remove deletes the entry for the product, if present.
func (c *Cart) Remove(productID uint) {
	kept := c.entries[:0]
	for _, e := range c.entries {
		if e.ProductID != productID {
			kept = append(kept, e)
		}
	}
	c.entries = kept
}

// SetQuantity overwrites the quantity for an existing entry; a quantity of
// zero or less removes the entry. Products not in the cart are ignored.
func (c *Cart) SetQuantity(productID uint, quantity int) {
	for i := range c.entries {
		if c.entries[i].ProductID == productID {
			if quantity <= 0 {
				c.Remove(productID)
			} else {
				c.entries[i].Quantity = quantity
			}
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.entries = nil
}

// Count is the sum of quantities across all entries, i.e. the badge number.
// A zero count means the badge is hidden.
func (c *Cart) Count() int {
	total := 0
	for _, e := range c.entries {
		total += e.Quantity
	}
	return total
}

// Entries returns a copy of the cart lines in insertion order.
func (c *Cart) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

func (c *Cart) Empty() bool {
	return len(c.entries) == 0
}

// JSON encodes the full entry list for persistence. An empty cart encodes
// as an empty list, not null.
func (c *Cart) JSON() ([]byte, error) {
	if c.entries == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.entries)
}
