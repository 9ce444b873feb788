package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"pizzeria-go/cart"
	"pizzeria-go/checkout"
	"pizzeria-go/models"
	"pizzeria-go/remote"
	"pizzeria-go/session"
	"pizzeria-go/storage"
)

// OrderController handles checkout and order history.
type OrderController struct {
	Flow     *checkout.Flow
	Orders   remote.OrderService
	Store    storage.Store
	Sessions *session.Manager
}

// NewOrderController creates a new OrderController.
func NewOrderController(flow *checkout.Flow, orders remote.OrderService, store storage.Store, sessions *session.Manager) *OrderController {
	return &OrderController{Flow: flow, Orders: orders, Store: store, Sessions: sessions}
}

// PlaceOrder submits the cart as an order.
func (oc *OrderController) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	sess := oc.Sessions.Active(claims.UserID)
	if sess == nil {
		http.Error(w, "Tu sesión ha expirado. Inicia sesión nuevamente.", http.StatusUnauthorized)
		return
	}

	var body struct {
		AddressID     string                   `json:"address_id"`
		Temporary     *models.TemporaryAddress `json:"temporary_address"`
		PaymentMethod string                   `json:"payment_method"`
		Notes         string                   `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	m := cart.NewManager(storage.ForUser(oc.Store, claims.UserID), nil)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	order, err := oc.Flow.PlaceOrder(ctx, claims.UserID, m, checkout.Options{
		AddressID:     body.AddressID,
		Temporary:     body.Temporary,
		PaymentMethod: body.PaymentMethod,
		Notes:         body.Notes,
		Email:         sess.Email,
		Name:          sess.Name,
	})

	var partial *checkout.PartialOrderError
	switch {
	case err == nil:
	case errors.Is(err, checkout.ErrCartEmpty):
		http.Error(w, "Tu carrito está vacío", http.StatusBadRequest)
		return
	case errors.Is(err, checkout.ErrNoAddress):
		http.Error(w, "Por favor selecciona una dirección de envío", http.StatusBadRequest)
		return
	case errors.Is(err, checkout.ErrNoPaymentMethod), errors.Is(err, checkout.ErrBadPaymentMethod):
		http.Error(w, "Por favor selecciona un método de pago válido", http.StatusBadRequest)
		return
	case errors.As(err, &partial):
		// The header exists but the lines were lost; surface this distinctly
		// so the client does not retry into a duplicate order.
		writeJSON(w, http.StatusBadGateway, map[string]interface{}{
			"error":        "El pedido quedó incompleto y será revisado manualmente.",
			"order_number": partial.OrderNumber,
		})
		return
	default:
		remoteError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"order_number": order.OrderNumber,
		"total":        order.Total,
		"message":      "Tu pedido ha sido recibido y está siendo preparado",
	})
}

// GetOrders returns the user's order history with line items and addresses.
func (oc *OrderController) GetOrders(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	orders, err := oc.Orders.ListByUser(ctx, claims.UserID)
	if err != nil {
		remoteError(w, err)
		return
	}
	if orders == nil {
		orders = []models.OrderWithItems{}
	}
	writeJSON(w, http.StatusOK, orders)
}
