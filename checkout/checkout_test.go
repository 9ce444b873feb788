package checkout

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"pizzeria-go/cart"
	"pizzeria-go/models"
	"pizzeria-go/storage"
)

// fakeOrders records writes and can be told to fail line-item inserts.
type fakeOrders struct {
	orders     []models.Order
	items      []models.OrderItem
	statuses   map[string]string
	failItems  error
	failStatus error
}

func newFakeOrders() *fakeOrders {
	return &fakeOrders{statuses: map[string]string{}}
}

func (f *fakeOrders) InsertOrder(_ context.Context, order models.Order) (models.Order, error) {
	order.ID = primitive.NewObjectID()
	f.orders = append(f.orders, order)
	return order, nil
}

func (f *fakeOrders) InsertItems(_ context.Context, items []models.OrderItem) error {
	if f.failItems != nil {
		return f.failItems
	}
	f.items = append(f.items, items...)
	return nil
}

func (f *fakeOrders) UpdateStatus(_ context.Context, orderID, status string) error {
	if f.failStatus != nil {
		return f.failStatus
	}
	f.statuses[orderID] = status
	return nil
}

func (f *fakeOrders) ListByUser(_ context.Context, _ string) ([]models.OrderWithItems, error) {
	return nil, nil
}

// fakeMailer records confirmations.
type fakeMailer struct {
	sent []string
}

func (f *fakeMailer) SendOrderConfirmation(toEmail, _ string, _ models.Order) error {
	f.sent = append(f.sent, toEmail)
	return nil
}

func loadedCart(t *testing.T) *cart.Manager {
	t.Helper()
	m := cart.NewManager(storage.NewMemory(), nil)
	require.NoError(t, m.Add(models.CartLineItem{ID: "1", Name: "Mediterránea", UnitPrice: 20000, Quantity: 1, Kind: models.KindStandard}))
	require.NoError(t, m.Add(models.CartLineItem{
		ID: "custom-1", Name: "Pizza Personalizada", UnitPrice: 10000, Quantity: 2, Kind: models.KindCustom,
		Ingredients: []models.Ingredient{{ID: "pepperoni", DisplayName: "Pepperoni", Category: models.CategoryProtein, Price: 3000}},
	}))
	return m
}

func TestPlaceOrder(t *testing.T) {
	orders := newFakeOrders()
	mailer := &fakeMailer{}
	flow := NewFlow(orders, mailer)
	c := loadedCart(t)

	order, err := flow.PlaceOrder(context.Background(), "u1", c, Options{
		AddressID:     "addr-1",
		PaymentMethod: models.PaymentCash,
		Notes:         "sin cebolla",
		Email:         "ana@example.com",
		Name:          "Ana",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(order.OrderNumber, "ORD-"))
	assert.Equal(t, int64(40000), order.Subtotal)
	assert.Equal(t, cart.ShippingCost, order.ShippingCost)
	assert.Equal(t, int64(45000), order.Total)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, "addr-1", order.AddressID)
	assert.Equal(t, "sin cebolla", order.Notes)

	require.Len(t, orders.items, 2)
	assert.Equal(t, order.ID, orders.items[0].OrderID)
	assert.True(t, orders.items[1].IsCustom)
	assert.Equal(t, "Pepperoni", orders.items[1].Description)
	assert.Equal(t, 2, orders.items[1].Quantity)

	assert.Empty(t, c.Get(), "cart must be cleared after a successful order")
	assert.Equal(t, []string{"ana@example.com"}, mailer.sent)
}

func TestPlaceOrderPreconditions(t *testing.T) {
	flow := NewFlow(newFakeOrders(), nil)

	empty := cart.NewManager(storage.NewMemory(), nil)
	_, err := flow.PlaceOrder(context.Background(), "u1", empty, Options{AddressID: "a", PaymentMethod: models.PaymentCash})
	assert.ErrorIs(t, err, ErrCartEmpty)

	_, err = flow.PlaceOrder(context.Background(), "u1", loadedCart(t), Options{PaymentMethod: models.PaymentCash})
	assert.ErrorIs(t, err, ErrNoAddress)

	_, err = flow.PlaceOrder(context.Background(), "u1", loadedCart(t), Options{AddressID: "a"})
	assert.ErrorIs(t, err, ErrNoPaymentMethod)

	_, err = flow.PlaceOrder(context.Background(), "u1", loadedCart(t), Options{AddressID: "a", PaymentMethod: "bitcoin"})
	assert.ErrorIs(t, err, ErrBadPaymentMethod)
}

func TestPlaceOrderTemporaryAddressGoesIntoNotes(t *testing.T) {
	orders := newFakeOrders()
	flow := NewFlow(orders, nil)

	_, err := flow.PlaceOrder(context.Background(), "u1", loadedCart(t), Options{
		Temporary: &models.TemporaryAddress{
			ID:           "temp-1",
			Street:       "Calle 123 #45-67",
			Municipality: "Cali",
			City:         "Valle del Cauca",
			Phone:        "300 123 4567",
		},
		PaymentMethod: models.PaymentCard,
		Notes:         "timbre dañado",
	})
	require.NoError(t, err)

	require.Len(t, orders.orders, 1)
	header := orders.orders[0]
	assert.Empty(t, header.AddressID, "temporary addresses must not be referenced by id")
	assert.Contains(t, header.Notes, "Calle 123 #45-67")
	assert.Contains(t, header.Notes, "timbre dañado")
}

func TestPlaceOrderPartialFailure(t *testing.T) {
	orders := newFakeOrders()
	orders.failItems = errors.New("insert blew up")
	flow := NewFlow(orders, nil)
	c := loadedCart(t)

	_, err := flow.PlaceOrder(context.Background(), "u1", c, Options{
		AddressID:     "addr-1",
		PaymentMethod: models.PaymentCash,
	})

	var partial *PartialOrderError
	require.ErrorAs(t, err, &partial)
	assert.NotEmpty(t, partial.OrderNumber)

	// header flagged for manual reconciliation, cart untouched
	require.Len(t, orders.orders, 1)
	assert.Equal(t, models.StatusNeedsReview, orders.statuses[partial.OrderID])
	assert.Len(t, c.Get(), 2)
}

func TestPlaceOrderPartialFailureStatusUpdateAlsoFails(t *testing.T) {
	orders := newFakeOrders()
	orders.failItems = errors.New("insert blew up")
	orders.failStatus = errors.New("status blew up")
	flow := NewFlow(orders, nil)

	_, err := flow.PlaceOrder(context.Background(), "u1", loadedCart(t), Options{
		AddressID:     "addr-1",
		PaymentMethod: models.PaymentCash,
	})

	var partial *PartialOrderError
	require.ErrorAs(t, err, &partial)
}
