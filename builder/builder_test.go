package builder

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizzeria-go/cart"
	"pizzeria-go/models"
	"pizzeria-go/storage"
)

var pepperoni = models.Ingredient{
	ID:          "pepperoni",
	DisplayName: "Pepperoni",
	Category:    models.CategoryProtein,
	Price:       3000,
}

func TestAddIngredientPricing(t *testing.T) {
	b := New(storage.NewMemory())
	assert.Equal(t, BasePrice, b.Total())

	require.NoError(t, b.AddIngredient(pepperoni))
	assert.Equal(t, int64(18000), b.Total())

	// duplicates are rejected per pizza, total unchanged
	assert.ErrorIs(t, b.AddIngredient(pepperoni), ErrDuplicateIngredient)
	assert.Equal(t, int64(18000), b.Total())
}

func TestRemoveIngredient(t *testing.T) {
	b := New(storage.NewMemory())
	require.NoError(t, b.AddIngredient(pepperoni))
	require.NoError(t, b.AddIngredient(models.Ingredient{ID: "champinones", DisplayName: "Champiñones", Category: models.CategoryVegetable, Price: 2000}))

	b.RemoveIngredient("pepperoni")
	assert.Equal(t, BasePrice+2000, b.Total())

	// absent id is a no-op
	b.RemoveIngredient("pepperoni")
	assert.Equal(t, BasePrice+2000, b.Total())
}

func TestCommitWithoutSessionSavesDraft(t *testing.T) {
	store := storage.NewMemory()
	b := New(store)
	require.NoError(t, b.AddIngredient(pepperoni))

	_, err := b.Commit(cart.NewManager(store, nil), false)
	assert.ErrorIs(t, err, ErrLoginRequired)

	// the composition survives a simulated re-login via the saved draft
	restored := New(store)
	assert.Equal(t, int64(18000), restored.Total())
}

func TestCommitAddsCustomItemAndResets(t *testing.T) {
	store := storage.NewMemory()
	c := cart.NewManager(store, nil)
	b := New(store)
	require.NoError(t, b.AddIngredient(pepperoni))

	item, err := b.Commit(c, true)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(item.ID, "custom-"))
	assert.Equal(t, models.KindCustom, item.Kind)
	assert.Equal(t, int64(18000), item.UnitPrice)
	assert.Equal(t, 1, item.Quantity)
	require.Len(t, item.Ingredients, 1)
	assert.True(t, strings.HasPrefix(item.PreviewImage, "data:image/png;base64,"))

	items := c.Get()
	require.Len(t, items, 1)
	assert.Equal(t, item.ID, items[0].ID)

	// builder is back to Empty and the draft is gone
	assert.Equal(t, BasePrice, b.Total())
	_, ok := store.Read(storage.KeyDraft)
	assert.False(t, ok)
}

func TestCommitEmptyComposition(t *testing.T) {
	store := storage.NewMemory()
	_, err := New(store).Commit(cart.NewManager(store, nil), true)
	assert.ErrorIs(t, err, ErrNoIngredients)
}

func TestCustomIDsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := newCustomID()
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func writeDraft(t *testing.T, store storage.Store, age time.Duration) {
	t.Helper()
	data, err := json.Marshal(draft{
		Ingredients: []models.Ingredient{pepperoni},
		SavedAt:     time.Now().Add(-age),
	})
	require.NoError(t, err)
	require.NoError(t, store.Write(storage.KeyDraft, data))
}

func TestDraftRecoveryWindow(t *testing.T) {
	t.Run("young draft restored", func(t *testing.T) {
		store := storage.NewMemory()
		writeDraft(t, store, 23*time.Hour)
		b := New(store)
		assert.Equal(t, int64(18000), b.Total())
	})

	t.Run("stale draft discarded", func(t *testing.T) {
		store := storage.NewMemory()
		writeDraft(t, store, 25*time.Hour)
		b := New(store)
		assert.Equal(t, BasePrice, b.Total())
		_, ok := store.Read(storage.KeyDraft)
		assert.False(t, ok)
	})

	t.Run("malformed draft discarded", func(t *testing.T) {
		store := storage.NewMemory()
		require.NoError(t, store.Write(storage.KeyDraft, []byte("not json")))
		b := New(store)
		assert.Equal(t, BasePrice, b.Total())
	})
}

func TestPreviewRendersDataURL(t *testing.T) {
	out := Preview([]models.Ingredient{pepperoni})
	assert.True(t, strings.HasPrefix(out, "data:image/png;base64,"))

	// an unknown category still renders
	out = Preview([]models.Ingredient{{ID: "x", Category: "mystery"}})
	assert.True(t, strings.HasPrefix(out, "data:image/png;base64,"))
}
