package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"pizzeria-go/models"
	"pizzeria-go/remote"
)

// MenuController serves the predefined pizza catalog.
type MenuController struct {
	Menu remote.Menu
}

// NewMenuController creates a new MenuController.
func NewMenuController(menu remote.Menu) *MenuController {
	return &MenuController{Menu: menu}
}

// GetMenu returns the full catalog.
func (mc *MenuController) GetMenu(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	items, err := mc.Menu.List(ctx)
	if err != nil {
		remoteError(w, err)
		return
	}
	if items == nil {
		items = []models.MenuItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

// GetMenuItem returns one catalog pizza by id.
func (mc *MenuController) GetMenuItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	item, err := mc.Menu.Get(ctx, mux.Vars(r)["id"])
	if err != nil {
		remoteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// CreateMenuItem adds a pizza to the catalog (admin).
func (mc *MenuController) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	var item models.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if item.Name == "" || item.Price <= 0 {
		http.Error(w, "Name and positive price are required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	created, err := mc.Menu.Insert(ctx, item)
	if err != nil {
		remoteError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdateMenuItem rewrites a catalog pizza (admin).
func (mc *MenuController) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	var item models.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	oid, err := primitiveIDFromPath(r)
	if err != nil {
		http.Error(w, "Invalid menu item ID", http.StatusBadRequest)
		return
	}
	item.ID = oid

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := mc.Menu.Update(ctx, item); err != nil {
		remoteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "Menu item updated")
}

// DeleteMenuItem removes a catalog pizza (admin).
func (mc *MenuController) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := mc.Menu.Delete(ctx, mux.Vars(r)["id"]); err != nil {
		remoteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "Menu item deleted")
}
