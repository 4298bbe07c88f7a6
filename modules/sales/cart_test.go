package sales

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCart_AddIncrementsExisting(t *testing.T) {
	var c Cart
	c.Add(1, "Cabo", price("10"))
	c.Add(2, "Capa", price("5"))
	c.Add(1, "Cabo", price("12"))

	entries := c.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, uint(1), entries[0].ProductID)
	assert.Equal(t, 2, entries[0].Quantity)
	assert.True(t, entries[0].UnitPrice.Equal(price("10")), "first captured price is kept")
	assert.Equal(t, 1, entries[1].Quantity)
	assert.True(t, c.Total().Equal(price("25")))
}

func TestCart_AddQuantity(t *testing.T) {
	var c Cart
	require.NoError(t, c.AddQuantity(CartEntry{ProductID: 3, Quantity: 2, UnitPrice: price("1.50")}))
	require.NoError(t, c.AddQuantity(CartEntry{ProductID: 3, Quantity: 3, UnitPrice: price("9")}))

	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 5, c.Entries()[0].Quantity)
	assert.True(t, c.Total().Equal(price("7.5")))

	assert.ErrorIs(t, c.AddQuantity(CartEntry{ProductID: 4, Quantity: 0, UnitPrice: price("1")}), ErrInvalidQuantity)
	assert.ErrorIs(t, c.AddQuantity(CartEntry{ProductID: 4, Quantity: -1, UnitPrice: price("1")}), ErrInvalidQuantity)
	assert.ErrorIs(t, c.AddQuantity(CartEntry{ProductID: 4, Quantity: 1, UnitPrice: price("-1")}), ErrInvalidPrice)
	assert.ErrorIs(t, c.AddQuantity(CartEntry{Quantity: 1, UnitPrice: price("1")}), ErrProductRequired)
	assert.Equal(t, 1, c.Len())
}

func TestCart_RemoveAndClear(t *testing.T) {
	var c Cart
	assert.True(t, c.IsEmpty())
	assert.True(t, c.Total().IsZero())

	c.Add(1, "A", price("1"))
	c.Add(1, "A", price("1"))
	c.Add(2, "B", price("2"))
	c.Add(3, "C", price("3"))

	assert.True(t, c.Remove(1), "remove strips every unit")
	assert.False(t, c.Remove(1))
	assert.Equal(t, []uint{2, 3}, productIDs(c.Entries()))

	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.Zero(t, c.Len())
}

func TestCart_EntriesIsACopy(t *testing.T) {
	var c Cart
	c.Add(1, "A", price("1"))

	entries := c.Entries()
	entries[0].Quantity = 99
	assert.Equal(t, 1, c.Entries()[0].Quantity)
}

func TestNewCart_MergesEntries(t *testing.T) {
	c, err := NewCart(
		CartEntry{ProductID: 1, Quantity: 1, UnitPrice: price("2")},
		CartEntry{ProductID: 1, Quantity: 2, UnitPrice: price("2")},
	)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 3, c.Entries()[0].Quantity)

	_, err = NewCart(CartEntry{ProductID: 1, Quantity: 0, UnitPrice: price("2")})
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func productIDs(entries []CartEntry) []uint {
	ids := make([]uint, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ProductID)
	}
	return ids
}
