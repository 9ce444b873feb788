package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"pizzeria-go/session"
	"pizzeria-go/storage"
)

// UserController handles registration, login and profile requests.
type UserController struct {
	Sessions *session.Manager
	Store    storage.Store
}

// NewUserController creates a new UserController.
func NewUserController(sessions *session.Manager, store storage.Store) *UserController {
	return &UserController{Sessions: sessions, Store: store}
}

// Register creates an account and logs it in immediately.
func (uc *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var reg session.Registration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	sess, token, err := uc.Sessions.Register(ctx, reg)
	switch {
	case err == nil:
	case errors.Is(err, session.ErrEmailTaken):
		http.Error(w, "Este email ya está registrado", http.StatusBadRequest)
		return
	case errors.Is(err, session.ErrPasswordMismatch):
		http.Error(w, "Las contraseñas no coinciden", http.StatusBadRequest)
		return
	case errors.Is(err, session.ErrPasswordTooShort):
		http.Error(w, "La contraseña debe tener al menos 6 caracteres", http.StatusBadRequest)
		return
	case errors.Is(err, session.ErrMissingField):
		http.Error(w, "Faltan campos obligatorios", http.StatusBadRequest)
		return
	default:
		remoteError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"token":   token,
		"session": sess,
	})
}

// Login authenticates the credentials and issues a session token. The
// response flags a recoverable pizza draft so the client can resume it.
func (uc *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var creds session.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	sess, token, err := uc.Sessions.Login(ctx, creds)
	switch {
	case err == nil:
	case errors.Is(err, session.ErrInvalidCredentials):
		http.Error(w, "Email o contraseña incorrectos", http.StatusUnauthorized)
		return
	case errors.Is(err, session.ErrMissingField):
		http.Error(w, "Faltan campos obligatorios", http.StatusBadRequest)
		return
	default:
		remoteError(w, err)
		return
	}

	_, hasDraft := storage.ForUser(uc.Store, sess.UserID).Read(storage.KeyDraft)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token":     token,
		"session":   sess,
		"has_draft": hasDraft,
	})
}

// Logout wipes the user's client state.
func (uc *UserController) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	uc.Sessions.Logout(claims.UserID)
	writeJSON(w, http.StatusOK, "Logged out")
}

// GetProfile returns the active session for the authenticated user.
func (uc *UserController) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	sess := uc.Sessions.Active(claims.UserID)
	if sess == nil {
		http.Error(w, "Sesión expirada. Inicia sesión nuevamente.", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// UpdateProfile changes the user's display name and phone.
func (uc *UserController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var body struct {
		FullName string `json:"full_name"`
		Phone    string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := uc.Sessions.UpdateProfile(ctx, claims.UserID, body.FullName, body.Phone)
	switch {
	case err == nil:
	case errors.Is(err, session.ErrMissingField):
		http.Error(w, "El nombre es obligatorio", http.StatusBadRequest)
		return
	default:
		remoteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "Profile updated")
}
