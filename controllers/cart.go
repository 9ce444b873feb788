package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"pizzeria-go/cart"
	"pizzeria-go/models"
	"pizzeria-go/storage"
)

// CartController handles cart-related requests. Each request operates on the
// authenticated user's persisted cart snapshot.
type CartController struct {
	Store storage.Store
}

// NewCartController creates a new CartController.
func NewCartController(store storage.Store) *CartController {
	return &CartController{Store: store}
}

func (cc *CartController) manager(userID string) *cart.Manager {
	return cart.NewManager(storage.ForUser(cc.Store, userID), nil)
}

// GetCart returns the cart items and totals.
func (cc *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	m := cc.manager(claims.UserID)
	items := m.Get()
	if items == nil {
		items = []models.CartLineItem{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"items":         items,
		"count":         m.Count(),
		"subtotal":      m.Subtotal(),
		"shipping_cost": cart.ShippingCost,
		"total":         m.Total(),
	})
}

// AddToCart merges a line item into the cart.
func (cc *CartController) AddToCart(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var item models.CartLineItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if item.ID == "" || item.Name == "" || item.UnitPrice < 0 {
		http.Error(w, "Invalid item", http.StatusBadRequest)
		return
	}
	if item.Kind == "" {
		item.Kind = models.KindStandard
	}

	if err := cc.manager(claims.UserID).Add(item); err != nil {
		http.Error(w, "Error updating cart", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, "Item added to cart")
}

// UpdateQuantity bumps an item's quantity up or down by one. Decreasing at
// quantity 1 leaves the item untouched.
func (cc *CartController) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var body struct {
		Action string `json:"action"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if body.Action != cart.ActionIncrease && body.Action != cart.ActionDecrease {
		http.Error(w, "Unknown action", http.StatusBadRequest)
		return
	}

	id := mux.Vars(r)["id"]
	if err := cc.manager(claims.UserID).UpdateQuantity(id, body.Action); err != nil {
		http.Error(w, "Error updating cart", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, "Cart updated")
}

// RemoveFromCart deletes one line item by id.
func (cc *CartController) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id := mux.Vars(r)["id"]
	if err := cc.manager(claims.UserID).Remove(id); err != nil {
		http.Error(w, "Error updating cart", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, "Item removed from cart")
}

// ClearCart deletes the whole cart snapshot.
func (cc *CartController) ClearCart(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	cc.manager(claims.UserID).Clear()
	writeJSON(w, http.StatusOK, "Cart cleared")
}
