package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"pizzeria-go/builder"
	"pizzeria-go/cart"
	"pizzeria-go/models"
	"pizzeria-go/session"
	"pizzeria-go/storage"
)

// BuilderController handles the custom-pizza builder. The composition is
// persisted as a draft between requests, so every page of the flow sees the
// same state and a login interruption loses nothing.
type BuilderController struct {
	Store    storage.Store
	Sessions *session.Manager
}

// NewBuilderController creates a new BuilderController.
func NewBuilderController(store storage.Store, sessions *session.Manager) *BuilderController {
	return &BuilderController{Store: store, Sessions: sessions}
}

func (bc *BuilderController) load(userID string) (*builder.Builder, storage.Store) {
	store := storage.ForUser(bc.Store, userID)
	return builder.New(store), store
}

func (bc *BuilderController) respond(w http.ResponseWriter, b *builder.Builder) {
	ingredients := b.Ingredients()
	if ingredients == nil {
		ingredients = []models.Ingredient{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"base_price":  builder.BasePrice,
		"ingredients": ingredients,
		"total":       b.Total(),
	})
}

// GetComposition returns the current composition and running price,
// restoring a recoverable draft if one exists.
func (bc *BuilderController) GetComposition(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	b, _ := bc.load(claims.UserID)
	bc.respond(w, b)
}

// AddIngredient appends a topping to the composition.
func (bc *BuilderController) AddIngredient(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var ing models.Ingredient
	if err := json.NewDecoder(r.Body).Decode(&ing); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if ing.ID == "" || ing.Price < 0 {
		http.Error(w, "Invalid ingredient", http.StatusBadRequest)
		return
	}

	b, _ := bc.load(claims.UserID)
	if err := b.AddIngredient(ing); err != nil {
		if errors.Is(err, builder.ErrDuplicateIngredient) {
			http.Error(w, "Este ingrediente ya fue añadido", http.StatusConflict)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if err := b.SaveDraft(); err != nil {
		http.Error(w, "Error saving composition", http.StatusInternalServerError)
		return
	}
	bc.respond(w, b)
}

// RemoveIngredient drops a topping from the composition.
func (bc *BuilderController) RemoveIngredient(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	b, _ := bc.load(claims.UserID)
	b.RemoveIngredient(mux.Vars(r)["id"])
	if err := b.SaveDraft(); err != nil {
		http.Error(w, "Error saving composition", http.StatusInternalServerError)
		return
	}
	bc.respond(w, b)
}

// ResetBuilder clears the composition and discards the draft.
func (bc *BuilderController) ResetBuilder(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	b, _ := bc.load(claims.UserID)
	b.Reset()
	bc.respond(w, b)
}

// Commit hands the composition to the cart as a custom line item. Without an
// active session the composition is parked as a draft and the client is told
// to authenticate.
func (bc *BuilderController) Commit(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	b, store := bc.load(claims.UserID)
	loggedIn := bc.Sessions.Active(claims.UserID) != nil
	item, err := b.Commit(cart.NewManager(store, nil), loggedIn)
	switch {
	case err == nil:
	case errors.Is(err, builder.ErrLoginRequired):
		http.Error(w, "Inicia sesión para añadir tu pizza. Tu creación fue guardada.", http.StatusUnauthorized)
		return
	case errors.Is(err, builder.ErrNoIngredients):
		http.Error(w, "Aún no has seleccionado ingredientes", http.StatusBadRequest)
		return
	default:
		http.Error(w, "Error al añadir al carrito", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, item)
}
