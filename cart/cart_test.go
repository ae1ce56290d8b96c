package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddMergesByProduct(t *testing.T) {
	c := New()
	c.Add(7, 2)
	c.Add(7, 3)

	entries := c.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, uint(7), entries[0].ProductID)
	assert.Equal(t, 5, entries[0].Quantity)
}

func TestAddDefaultsQuantityToOne(t *testing.T) {
	c := New()
	c.Add(1, 0)
	c.Add(2, -4)

	entries := c.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, 1, entries[0].Quantity)
	assert.Equal(t, 1, entries[1].Quantity)
}

func TestAddPreservesInsertionOrder(t *testing.T) {
	c := New()
	c.Add(3, 1)
	c.Add(1, 1)
	c.Add(2, 1)
	c.Add(1, 1)

	entries := c.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, uint(3), entries[0].ProductID)
	assert.Equal(t, uint(1), entries[1].ProductID)
	assert.Equal(t, uint(2), entries[2].ProductID)
}

func TestSetQuantity(t *testing.T) {
	t.Run("overwrites existing quantity", func(t *testing.T) {
		c := New()
		c.Add(5, 2)
		c.SetQuantity(5, 9)
		assert.Equal(t, 9, c.Entries()[0].Quantity)
	})

	t.Run("zero removes the entry", func(t *testing.T) {
		c := New()
		c.Add(5, 2)
		c.SetQuantity(5, 0)
		assert.Empty(t, c.Entries())
	})

	t.Run("negative removes the entry", func(t *testing.T) {
		c := New()
		c.Add(5, 2)
		c.SetQuantity(5, -1)
		assert.Empty(t, c.Entries())
	})

	t.Run("unknown product is a no-op", func(t *testing.T) {
		c := New()
		c.Add(5, 2)
		c.SetQuantity(99, 3)
		require.Len(t, c.Entries(), 1)
		assert.Equal(t, 2, c.Entries()[0].Quantity)
	})
}

func TestRemove(t *testing.T) {
	c := New()
	c.Add(1, 1)
	c.Add(2, 2)
	c.Remove(1)

	entries := c.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, uint(2), entries[0].ProductID)

	c.Remove(42) // absent, no-op
	assert.Len(t, c.Entries(), 1)
}

func TestCountAndClear(t *testing.T) {
	c := New()
	assert.Equal(t, 0, c.Count())
	assert.True(t, c.Empty())

	c.Add(1, 2)
	c.Add(2, 3)
	assert.Equal(t, 5, c.Count())

	c.Clear()
	assert.Equal(t, 0, c.Count())
	assert.True(t, c.Empty())
}

func TestFromJSON(t *testing.T) {
	t.Run("empty input is an empty cart", func(t *testing.T) {
		assert.True(t, FromJSON(nil).Empty())
		assert.True(t, FromJSON([]byte("")).Empty())
	})

	t.Run("malformed input is an empty cart", func(t *testing.T) {
		assert.True(t, FromJSON([]byte("{not json")).Empty())
	})

	t.Run("round trip preserves entries", func(t *testing.T) {
		c := New()
		c.Add(1, 2)
		c.Add(9, 1)

		raw, err := c.JSON()
		require.NoError(t, err)

		restored := FromJSON(raw)
		assert.Equal(t, c.Entries(), restored.Entries())
	})

	t.Run("non-positive quantities are dropped on load", func(t *testing.T) {
		c := FromJSON([]byte(`[{"productId":1,"quantity":0},{"productId":2,"quantity":3}]`))
		require.Len(t, c.Entries(), 1)
		assert.Equal(t, uint(2), c.Entries()[0].ProductID)
	})
}

func TestJSONEmptyCartEncodesAsList(t *testing.T) {
	raw, err := New().JSON()
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}
