// Package cart manages the shopping-cart line items persisted in client
// state. The persisted snapshot is authoritative: every operation re-reads
// it, mutates, and writes it back, so totals and counts can never go stale
// across mutations.
package cart

import (
	"encoding/json"
	"errors"

	"pizzeria-go/models"
	"pizzeria-go/storage"
)

// ShippingCost is the flat delivery surcharge added to every order total.
const ShippingCost int64 = 5000

// Quantity actions accepted by UpdateQuantity.
const (
	ActionIncrease = "increase"
	ActionDecrease = "decrease"
)

// ErrInvalidIndex is returned by RemoveAt when the index does not match the
// current snapshot. Callers must re-fetch the cart before removing by index.
var ErrInvalidIndex = errors.New("cart: index out of range")

// Manager owns the cart of one user.
type Manager struct {
	store    storage.Store
	onChange func(count int)
}

// NewManager returns a cart manager over the given client-state store.
// onChange, if non-nil, is invoked after every mutation with the new item
// count; it drives the cart-badge refresh and carries no correctness weight.
func NewManager(store storage.Store, onChange func(count int)) *Manager {
	return &Manager{store: store, onChange: onChange}
}

// Get returns the current persisted snapshot. A missing or malformed blob
// yields an empty cart, never an error.
func (m *Manager) Get() []models.CartLineItem {
	data, ok := m.store.Read(storage.KeyCart)
	if !ok {
		return nil
	}
	var items []models.CartLineItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil
	}
	return items
}

// Add merges the item into the cart: an existing id gets its quantity bumped
// by the incoming quantity (default 1), a new id is appended.
func (m *Manager) Add(item models.CartLineItem) error {
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	items := m.Get()
	merged := false
	for i := range items {
		if items[i].ID == item.ID {
			items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, item)
	}
	return m.save(items)
}

// UpdateQuantity bumps the quantity of the item with the given id. Decrease
// never drops below 1; removal is a separate operation. An unknown id or
// action is a no-op.
func (m *Manager) UpdateQuantity(id, action string) error {
	items := m.Get()
	for i := range items {
		if items[i].ID != id {
			continue
		}
		switch action {
		case ActionIncrease:
			items[i].Quantity++
		case ActionDecrease:
			if items[i].Quantity > 1 {
				items[i].Quantity--
			}
		}
		return m.save(items)
	}
	return nil
}

// Remove deletes the line item with the given id. Unknown id is a no-op.
func (m *Manager) Remove(id string) error {
	items := m.Get()
	for i := range items {
		if items[i].ID == id {
			return m.save(append(items[:i], items[i+1:]...))
		}
	}
	return nil
}

// RemoveAt deletes the line item at the given position in the current
// snapshot.
func (m *Manager) RemoveAt(index int) error {
	items := m.Get()
	if index < 0 || index >= len(items) {
		return ErrInvalidIndex
	}
	return m.save(append(items[:index], items[index+1:]...))
}

// Clear deletes the persisted snapshot entirely.
func (m *Manager) Clear() {
	m.store.Delete(storage.KeyCart)
	m.notify(0)
}

// Count is the sum of quantities across all line items.
func (m *Manager) Count() int {
	count := 0
	for _, it := range m.Get() {
		count += it.Quantity
	}
	return count
}

// Subtotal is the sum of unit price times quantity over all items,
// recomputed from the persisted snapshot on every call.
func (m *Manager) Subtotal() int64 {
	var sum int64
	for _, it := range m.Get() {
		sum += it.LineTotal()
	}
	return sum
}

// Total is the subtotal plus the flat shipping surcharge.
func (m *Manager) Total() int64 {
	return m.Subtotal() + ShippingCost
}

func (m *Manager) save(items []models.CartLineItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	if err := m.store.Write(storage.KeyCart, data); err != nil {
		return err
	}
	count := 0
	for _, it := range items {
		count += it.Quantity
	}
	m.notify(count)
	return nil
}

func (m *Manager) notify(count int) {
	if m.onChange != nil {
		m.onChange(count)
	}
}
