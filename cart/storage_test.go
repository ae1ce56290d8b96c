package cart

import (
	"testing"

	"studio-akira-api/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.CartSlot{}))
	return NewStore(db)
}

func TestLoadMissingSlotIsEmptyCart(t *testing.T) {
	store := newTestStore(t)
	c, err := store.Load("nobody")
	require.NoError(t, err)
	assert.True(t, c.Empty())
	assert.Equal(t, 0, c.Count())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)

	c := New()
	c.Add(1, 2)
	c.Add(4, 1)
	require.NoError(t, store.Save("user-1", c))

	restored, err := store.Load("user-1")
	require.NoError(t, err)
	assert.Equal(t, c.Entries(), restored.Entries())
	assert.Equal(t, 3, restored.Count())
}

func TestSaveOverwritesSlot(t *testing.T) {
	store := newTestStore(t)

	c := New()
	c.Add(1, 2)
	require.NoError(t, store.Save("user-1", c))

	c.Clear()
	require.NoError(t, store.Save("user-1", c))

	restored, err := store.Load("user-1")
	require.NoError(t, err)
	assert.True(t, restored.Empty())
}

func TestSlotsAreIsolatedPerUser(t *testing.T) {
	store := newTestStore(t)

	a := New()
	a.Add(1, 1)
	require.NoError(t, store.Save("user-a", a))

	b, err := store.Load("user-b")
	require.NoError(t, err)
	assert.True(t, b.Empty())
}

func TestWishlistRoundTrip(t *testing.T) {
	store := newTestStore(t)

	ids, err := store.LoadWishlist("user-1")
	require.NoError(t, err)
	assert.Empty(t, ids)

	require.NoError(t, store.SaveWishlist("user-1", []uint{3, 8}))
	ids, err = store.LoadWishlist("user-1")
	require.NoError(t, err)
	assert.Equal(t, []uint{3, 8}, ids)

	require.NoError(t, store.SaveWishlist("user-1", nil))
	ids, err = store.LoadWishlist("user-1")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestCartAndWishlistShareOneSlot(t *testing.T) {
	store := newTestStore(t)

	c := New()
	c.Add(2, 1)
	require.NoError(t, store.Save("user-1", c))
	require.NoError(t, store.SaveWishlist("user-1", []uint{5}))

	restored, err := store.Load("user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, restored.Count())

	ids, err := store.LoadWishlist("user-1")
	require.NoError(t, err)
	assert.Equal(t, []uint{5}, ids)
}
