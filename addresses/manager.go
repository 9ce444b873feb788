// Package addresses manages saved shipping addresses: CRUD over the remote
// address service plus the single-default invariant.
package addresses

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"pizzeria-go/models"
	"pizzeria-go/remote"
)

// ValidationError reports a missing or malformed address field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("address %s: %s", e.Field, e.Message)
}

// Manager wraps the address service with validation and default handling.
type Manager struct {
	service remote.AddressService
}

// NewManager returns an address manager over the remote service.
func NewManager(service remote.AddressService) *Manager {
	return &Manager{service: service}
}

// List returns the user's addresses, default first, then newest first.
func (m *Manager) List(ctx context.Context, userID string) ([]models.Address, error) {
	return m.service.ListByUser(ctx, userID)
}

// Create validates and saves a new address. The user's first address always
// becomes the default; an explicit default request displaces the current one.
func (m *Manager) Create(ctx context.Context, addr models.Address) (models.Address, error) {
	if err := validate(addr); err != nil {
		return models.Address{}, err
	}
	existing, err := m.service.ListByUser(ctx, addr.UserID)
	if err != nil {
		return models.Address{}, err
	}
	if len(existing) == 0 {
		addr.IsDefault = true
	} else if addr.IsDefault {
		if err := m.service.ClearDefaults(ctx, addr.UserID); err != nil {
			return models.Address{}, err
		}
	}
	return m.service.Insert(ctx, addr)
}

// Update validates and rewrites an existing address's fields. The default
// flag is managed through SetDefault, not here.
func (m *Manager) Update(ctx context.Context, addr models.Address) error {
	if err := validate(addr); err != nil {
		return err
	}
	return m.service.Update(ctx, addr)
}

// Delete removes an address.
func (m *Manager) Delete(ctx context.Context, addressID string) error {
	return m.service.Delete(ctx, addressID)
}

// SetDefault makes the given address the user's only default: every flag is
// cleared first, then the one address is marked.
func (m *Manager) SetDefault(ctx context.Context, userID, addressID string) error {
	if err := m.service.ClearDefaults(ctx, userID); err != nil {
		return err
	}
	return m.service.MarkDefault(ctx, addressID)
}

// Temporary builds an unsaved fallback address from the session profile,
// offered at checkout when the user has nothing persisted. Its id is tagged
// so it is never mistaken for a stored address reference.
func Temporary(sess models.Session) models.TemporaryAddress {
	return models.TemporaryAddress{
		ID:    "temp-" + uuid.NewString(),
		Phone: sess.Phone,
	}
}

func validate(addr models.Address) error {
	if strings.TrimSpace(addr.City) == "" {
		return &ValidationError{Field: "city", Message: "required"}
	}
	if strings.TrimSpace(addr.Municipality) == "" {
		return &ValidationError{Field: "municipality", Message: "required"}
	}
	if digits(addr.Phone) < 10 {
		return &ValidationError{Field: "phone", Message: "at least 10 digits"}
	}
	if len(strings.TrimSpace(addr.Street)) < 10 {
		return &ValidationError{Field: "address", Message: "at least 10 characters"}
	}
	if strings.TrimSpace(addr.Neighborhood) == "" {
		return &ValidationError{Field: "neighborhood", Message: "required"}
	}
	if strings.TrimSpace(addr.PropertyType) == "" {
		return &ValidationError{Field: "property_type", Message: "required"}
	}
	return nil
}

func digits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
