package sales

import (
	"github.com/shopspring/decimal"
)

// CartEntry is one product line of a cart. UnitPrice is the price captured
// when the product was first added.
type CartEntry struct {
	ProductID uint            `json:"product_id"`
	Name      string          `json:"name,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Subtotal returns quantity times unit price.
func (e CartEntry) Subtotal() decimal.Decimal {
	return e.UnitPrice.Mul(decimal.NewFromInt(int64(e.Quantity)))
}

// Cart is the caller-owned list of entries waiting to be committed.
// Entries keep insertion order and hold at most one line per product.
// The zero value is an empty cart ready to use.
type Cart struct {
	entries []CartEntry
}

// NewCart returns a cart holding entries, merged by product.
func NewCart(entries ...CartEntry) (*Cart, error) {
	c := &Cart{}
	for _, e := range entries {
		if err := c.AddQuantity(e); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Cart) index(productID uint) int {
	for i := range c.entries {
		if c.entries[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// Add puts one unit of a product in the cart. A product already present
// gains one unit and keeps its captured price.
func (c *Cart) Add(productID uint, name string, unitPrice decimal.Decimal) {
	if i := c.index(productID); i >= 0 {
		c.entries[i].Quantity++
		return
	}
	c.entries = append(c.entries, CartEntry{
		ProductID: productID,
		Name:      name,
		Quantity:  1,
		UnitPrice: unitPrice,
	})
}

// AddQuantity merges e into the cart. Quantities of the same product add
// up; the first captured price wins.
func (c *Cart) AddQuantity(e CartEntry) error {
	if e.ProductID == 0 {
		return ErrProductRequired
	}
	if e.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if e.UnitPrice.IsNegative() {
		return ErrInvalidPrice
	}

	if i := c.index(e.ProductID); i >= 0 {
		c.entries[i].Quantity += e.Quantity
		return nil
	}
	c.entries = append(c.entries, e)
	return nil
}

// Remove strips a product from the cart and reports whether it was there.
func (c *Cart) Remove(productID uint) bool {
	i := c.index(productID)
	if i < 0 {
		return false
	}
	c.entries = append(c.entries[:i], c.entries[i+1:]...)
	return true
}

// Entries returns a copy of the cart lines in insertion order.
func (c *Cart) Entries() []CartEntry {
	out := make([]CartEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Len returns the number of distinct products in the cart.
func (c *Cart) Len() int {
	return len(c.entries)
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.entries) == 0
}

// Total returns the sum of quantity times captured price over every line.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, e := range c.entries {
		total = total.Add(e.Subtotal())
	}
	return total
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.entries = nil
}
