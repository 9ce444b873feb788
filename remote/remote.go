// Package remote defines the hosted-database collaborators the storefront
// talks to: the user directory, the order service, the address service and
// the menu catalog. Consumers depend on the interfaces; the mongo-backed
// implementations are wired in at startup.
package remote

import (
	"context"

	"pizzeria-go/models"
)

// UserDirectory is the remote account table.
type UserDirectory interface {
	// FindByEmail returns the active user with the given email, or
	// ErrNotFound when no such account exists.
	FindByEmail(ctx context.Context, email string) (models.User, error)
	// Insert creates the account and returns it with its assigned id.
	Insert(ctx context.Context, user models.User) (models.User, error)
	UpdateLastLogin(ctx context.Context, userID string) error
	UpdateProfile(ctx context.Context, userID, fullName, phone string) error
}

// OrderService is the remote order store. Header and line inserts are two
// separate writes with no transaction spanning them; callers must handle the
// gap (see checkout.PartialOrderError).
type OrderService interface {
	InsertOrder(ctx context.Context, order models.Order) (models.Order, error)
	InsertItems(ctx context.Context, items []models.OrderItem) error
	UpdateStatus(ctx context.Context, orderID, status string) error
	// ListByUser returns the user's orders, newest first, joined with their
	// line items and shipping address.
	ListByUser(ctx context.Context, userID string) ([]models.OrderWithItems, error)
}

// AddressService is the remote shipping-address table.
type AddressService interface {
	// ListByUser returns addresses ordered by (is_default desc, created_at desc).
	ListByUser(ctx context.Context, userID string) ([]models.Address, error)
	Insert(ctx context.Context, addr models.Address) (models.Address, error)
	Update(ctx context.Context, addr models.Address) error
	Delete(ctx context.Context, addressID string) error
	// ClearDefaults unsets the default flag on every address of the user,
	// run before a new default is chosen.
	ClearDefaults(ctx context.Context, userID string) error
	// MarkDefault sets the default flag on one address.
	MarkDefault(ctx context.Context, addressID string) error
}

// Menu is the predefined pizza catalog.
type Menu interface {
	List(ctx context.Context) ([]models.MenuItem, error)
	Get(ctx context.Context, id string) (models.MenuItem, error)
	Insert(ctx context.Context, item models.MenuItem) (models.MenuItem, error)
	Update(ctx context.Context, item models.MenuItem) error
	Delete(ctx context.Context, id string) error
}
