// Package checkout turns the cart into an order: precondition validation,
// header and line-item creation against the order service, cart clearing and
// the confirmation mail. The header and line inserts are separate remote
// writes with no spanning transaction; a failure between them is surfaced as
// a PartialOrderError and the header is flagged for manual reconciliation.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"pizzeria-go/cart"
	"pizzeria-go/models"
	"pizzeria-go/remote"
)

// Validation errors, one per failing precondition.
var (
	ErrCartEmpty        = errors.New("checkout: cart is empty")
	ErrNoAddress        = errors.New("checkout: no shipping address selected")
	ErrNoPaymentMethod  = errors.New("checkout: no payment method selected")
	ErrBadPaymentMethod = errors.New("checkout: unknown payment method")
)

// PartialOrderError reports an order whose header was created but whose line
// items failed to persist. The header is left in needs_review status; no
// automatic rollback is performed.
type PartialOrderError struct {
	OrderID     string
	OrderNumber string
	Err         error
}

func (e *PartialOrderError) Error() string {
	return fmt.Sprintf("checkout: order %s created without line items: %v", e.OrderNumber, e.Err)
}

func (e *PartialOrderError) Unwrap() error { return e.Err }

// Mailer sends the order confirmation. Failures are logged, never fatal.
type Mailer interface {
	SendOrderConfirmation(toEmail, name string, order models.Order) error
}

// Options are the checkout inputs beyond the cart itself. Exactly one of
// AddressID or Temporary must be set.
type Options struct {
	AddressID     string
	Temporary     *models.TemporaryAddress
	PaymentMethod string
	Notes         string
	Email         string
	Name          string
}

// Flow submits orders for one storefront.
type Flow struct {
	orders remote.OrderService
	mailer Mailer
}

// NewFlow returns a checkout flow over the order service. mailer may be nil
// to skip confirmations.
func NewFlow(orders remote.OrderService, mailer Mailer) *Flow {
	return &Flow{orders: orders, mailer: mailer}
}

// PlaceOrder validates the preconditions, creates the order header and one
// line per cart item, clears the cart and sends the confirmation. A
// temporary address is embedded as free text in the order notes rather than
// referenced by id.
func (f *Flow) PlaceOrder(ctx context.Context, userID string, c *cart.Manager, opts Options) (models.Order, error) {
	items := c.Get()
	if len(items) == 0 {
		return models.Order{}, ErrCartEmpty
	}
	if opts.AddressID == "" && opts.Temporary == nil {
		return models.Order{}, ErrNoAddress
	}
	switch opts.PaymentMethod {
	case "":
		return models.Order{}, ErrNoPaymentMethod
	case models.PaymentCash, models.PaymentCard, models.PaymentTransfer:
	default:
		return models.Order{}, ErrBadPaymentMethod
	}

	notes := strings.TrimSpace(opts.Notes)
	if opts.Temporary != nil {
		notes = strings.TrimSpace(temporaryAddressNote(*opts.Temporary) + " " + notes)
	}

	subtotal := c.Subtotal()
	order := models.Order{
		UserID:        userID,
		OrderNumber:   "ORD-" + strconv.FormatInt(time.Now().UnixMilli(), 10),
		Subtotal:      subtotal,
		ShippingCost:  cart.ShippingCost,
		Total:         subtotal + cart.ShippingCost,
		PaymentMethod: opts.PaymentMethod,
		Status:        models.StatusPending,
		PaymentStatus: "pending",
		Notes:         notes,
		AddressID:     opts.AddressID,
	}

	order, err := f.orders.InsertOrder(ctx, order)
	if err != nil {
		return models.Order{}, err
	}

	lines := make([]models.OrderItem, 0, len(items))
	for _, it := range items {
		lines = append(lines, models.OrderItem{
			OrderID:           order.ID,
			ProductID:         it.ID,
			ProductName:       it.Name,
			Description:       ingredientsText(it.Ingredients),
			UnitPrice:         it.UnitPrice,
			Quantity:          it.Quantity,
			IsCustom:          it.IsCustom(),
			CustomIngredients: it.Ingredients,
			ImageURL:          it.PreviewImage,
		})
	}
	if err := f.orders.InsertItems(ctx, lines); err != nil {
		// Flag the orphaned header so it can be reconciled by hand.
		if uerr := f.orders.UpdateStatus(ctx, order.ID.Hex(), models.StatusNeedsReview); uerr != nil {
			log.Printf("checkout: could not flag order %s for review: %v", order.OrderNumber, uerr)
		}
		return models.Order{}, &PartialOrderError{
			OrderID:     order.ID.Hex(),
			OrderNumber: order.OrderNumber,
			Err:         err,
		}
	}

	c.Clear()

	if f.mailer != nil && opts.Email != "" {
		if err := f.mailer.SendOrderConfirmation(opts.Email, opts.Name, order); err != nil {
			log.Printf("checkout: confirmation mail for %s failed: %v", order.OrderNumber, err)
		}
	}
	return order, nil
}

func temporaryAddressNote(a models.TemporaryAddress) string {
	parts := []string{a.Street, a.Neighborhood, a.Municipality, a.City}
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	note := "Dirección: " + strings.Join(kept, ", ")
	if a.Phone != "" {
		note += ". Tel: " + a.Phone
	}
	if a.Notes != "" {
		note += ". " + a.Notes
	}
	return note + "."
}

func ingredientsText(ingredients []models.Ingredient) string {
	if len(ingredients) == 0 {
		return ""
	}
	names := make([]string, len(ingredients))
	for i, ing := range ingredients {
		names[i] = ing.DisplayName
	}
	return strings.Join(names, ", ")
}
