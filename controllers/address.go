package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"pizzeria-go/addresses"
	"pizzeria-go/models"
	"pizzeria-go/session"
)

// AddressController handles shipping-address management.
type AddressController struct {
	Addresses *addresses.Manager
	Sessions  *session.Manager
}

// NewAddressController creates a new AddressController.
func NewAddressController(mgr *addresses.Manager, sessions *session.Manager) *AddressController {
	return &AddressController{Addresses: mgr, Sessions: sessions}
}

// ListAddresses returns the user's saved addresses, default first. When none
// are saved, a temporary unsaved address is offered so checkout stays
// reachable.
func (ac *AddressController) ListAddresses(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	addrs, err := ac.Addresses.List(ctx, claims.UserID)
	if err != nil {
		remoteError(w, err)
		return
	}
	if addrs == nil {
		addrs = []models.Address{}
	}

	resp := map[string]interface{}{"addresses": addrs}
	if len(addrs) == 0 {
		if sess := ac.Sessions.Active(claims.UserID); sess != nil {
			resp["temporary"] = addresses.Temporary(*sess)
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// CreateAddress validates and saves a new address.
func (ac *AddressController) CreateAddress(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var addr models.Address
	if err := json.NewDecoder(r.Body).Decode(&addr); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	addr.UserID = claims.UserID

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	created, err := ac.Addresses.Create(ctx, addr)
	if err != nil {
		var verr *addresses.ValidationError
		if errors.As(err, &verr) {
			http.Error(w, verr.Error(), http.StatusBadRequest)
			return
		}
		remoteError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdateAddress rewrites an existing address.
func (ac *AddressController) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var addr models.Address
	if err := json.NewDecoder(r.Body).Decode(&addr); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	oid, err := primitiveIDFromPath(r)
	if err != nil {
		http.Error(w, "Invalid address ID", http.StatusBadRequest)
		return
	}
	addr.ID = oid
	addr.UserID = claims.UserID

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := ac.Addresses.Update(ctx, addr); err != nil {
		var verr *addresses.ValidationError
		if errors.As(err, &verr) {
			http.Error(w, verr.Error(), http.StatusBadRequest)
			return
		}
		remoteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "Address updated")
}

// DeleteAddress removes an address.
func (ac *AddressController) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	if _, ok := claimsFrom(r); !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := ac.Addresses.Delete(ctx, mux.Vars(r)["id"]); err != nil {
		remoteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "Address deleted")
}

// SetDefaultAddress makes the address the user's only default.
func (ac *AddressController) SetDefaultAddress(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := ac.Addresses.SetDefault(ctx, claims.UserID, mux.Vars(r)["id"]); err != nil {
		remoteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "Default address updated")
}
