// Package builder implements the custom-pizza builder: a composition of
// ingredients over a base price that commits into the cart as a single
// custom line item. An unauthenticated commit is parked as a draft in client
// state and recovered on the next visit within 24 hours.
package builder

import (
	"encoding/json"
	"errors"
	"strconv"
	"sync"
	"time"

	"pizzeria-go/cart"
	"pizzeria-go/models"
	"pizzeria-go/storage"
)

// BasePrice is the price of a custom pizza before any ingredients.
const BasePrice int64 = 15000

// DraftMaxAge is how long a saved draft stays recoverable.
const DraftMaxAge = 24 * time.Hour

var (
	// ErrDuplicateIngredient is returned when an ingredient id is already on
	// the pizza; each ingredient may appear at most once.
	ErrDuplicateIngredient = errors.New("builder: ingredient already added")
	// ErrLoginRequired is returned by Commit without an active session. The
	// composition has been saved as a draft when this is returned.
	ErrLoginRequired = errors.New("builder: login required to add to cart")
	// ErrNoIngredients is returned by Commit on an empty composition.
	ErrNoIngredients = errors.New("builder: no ingredients selected")
)

// draft is the persisted form of an in-progress composition.
type draft struct {
	Ingredients []models.Ingredient `json:"ingredients"`
	SavedAt     time.Time           `json:"saved_at"`
}

// Builder accumulates ingredient selections and a running price.
type Builder struct {
	store       storage.Store
	ingredients []models.Ingredient
}

// New returns a builder over the given client-state store. A saved draft
// younger than DraftMaxAge is restored into the composition; older or
// malformed drafts are discarded silently.
func New(store storage.Store) *Builder {
	b := &Builder{store: store}
	if data, ok := store.Read(storage.KeyDraft); ok {
		var d draft
		if err := json.Unmarshal(data, &d); err == nil && time.Since(d.SavedAt) < DraftMaxAge {
			b.ingredients = d.Ingredients
		} else {
			store.Delete(storage.KeyDraft)
		}
	}
	return b
}

// Ingredients returns the current composition in selection order.
func (b *Builder) Ingredients() []models.Ingredient {
	out := make([]models.Ingredient, len(b.ingredients))
	copy(out, b.ingredients)
	return out
}

// Total is the base price plus the sum of selected ingredient prices.
func (b *Builder) Total() int64 {
	total := BasePrice
	for _, ing := range b.ingredients {
		total += ing.Price
	}
	return total
}

// AddIngredient appends an ingredient to the composition. Adding an id that
// is already present is rejected.
func (b *Builder) AddIngredient(ing models.Ingredient) error {
	for _, have := range b.ingredients {
		if have.ID == ing.ID {
			return ErrDuplicateIngredient
		}
	}
	b.ingredients = append(b.ingredients, ing)
	return nil
}

// RemoveIngredient drops the ingredient with the given id; absent ids are a
// no-op.
func (b *Builder) RemoveIngredient(id string) {
	for i, ing := range b.ingredients {
		if ing.ID == id {
			b.ingredients = append(b.ingredients[:i], b.ingredients[i+1:]...)
			return
		}
	}
}

// Reset clears the composition, restores the base price and discards any
// saved draft.
func (b *Builder) Reset() {
	b.ingredients = nil
	b.store.Delete(storage.KeyDraft)
}

// SaveDraft persists the current composition with a timestamp for later
// recovery.
func (b *Builder) SaveDraft() error {
	data, err := json.Marshal(draft{Ingredients: b.ingredients, SavedAt: time.Now()})
	if err != nil {
		return err
	}
	return b.store.Write(storage.KeyDraft, data)
}

// Commit hands the composition to the cart as a custom line item and resets
// the builder. Without an active session the composition is saved as a draft
// and ErrLoginRequired is returned so the caller can send the user to
// authenticate.
func (b *Builder) Commit(c *cart.Manager, loggedIn bool) (models.CartLineItem, error) {
	if len(b.ingredients) == 0 {
		return models.CartLineItem{}, ErrNoIngredients
	}
	if !loggedIn {
		if err := b.SaveDraft(); err != nil {
			return models.CartLineItem{}, err
		}
		return models.CartLineItem{}, ErrLoginRequired
	}

	item := models.CartLineItem{
		ID:           newCustomID(),
		Name:         "Pizza Personalizada",
		UnitPrice:    b.Total(),
		Quantity:     1,
		Kind:         models.KindCustom,
		Ingredients:  b.Ingredients(),
		PreviewImage: Preview(b.ingredients),
	}
	if err := c.Add(item); err != nil {
		return models.CartLineItem{}, err
	}
	b.Reset()
	return item, nil
}

var (
	idMu   sync.Mutex
	lastID int64
)

// newCustomID returns a time-based id unique within the process lifetime.
func newCustomID() string {
	idMu.Lock()
	defer idMu.Unlock()
	now := time.Now().UnixMilli()
	if now <= lastID {
		now = lastID + 1
	}
	lastID = now
	return "custom-" + strconv.FormatInt(now, 10)
}
