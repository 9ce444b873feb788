// Package session handles login, registration and the persisted session
// lifecycle. Sessions live for 24 hours from issuance; expiry is advisory
// and checked on read.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"pizzeria-go/models"
	"pizzeria-go/remote"
	"pizzeria-go/storage"
	"pizzeria-go/utils"
)

// MaxAge is the session lifetime from issuance.
const MaxAge = 24 * time.Hour

var (
	// ErrInvalidCredentials covers both a missing account and a wrong
	// password; callers surface a single "email or password incorrect"
	// style message for either.
	ErrInvalidCredentials = errors.New("session: invalid credentials")
	// ErrEmailTaken is returned when registering an email that already has
	// an account.
	ErrEmailTaken = errors.New("session: email already registered")
	// ErrPasswordTooShort is returned for passwords under 6 characters.
	ErrPasswordTooShort = errors.New("session: password must be at least 6 characters")
	// ErrPasswordMismatch is returned when password and confirmation differ.
	ErrPasswordMismatch = errors.New("session: passwords do not match")
	// ErrMissingField is returned when a required registration or login
	// field is empty.
	ErrMissingField = errors.New("session: missing required field")
)

// Credentials are the login inputs.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration are the sign-up inputs.
type Registration struct {
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// Manager issues and validates sessions against the user directory and
// persists them in per-user client state.
type Manager struct {
	directory remote.UserDirectory
	store     storage.Store
}

// NewManager returns a session manager over the directory and the shared
// client-state store.
func NewManager(directory remote.UserDirectory, store storage.Store) *Manager {
	return &Manager{directory: directory, store: store}
}

// Login checks the credentials against the user directory and, on match,
// issues a session and token and persists both. A missing account and a
// wrong password both come back as ErrInvalidCredentials.
func (m *Manager) Login(ctx context.Context, creds Credentials) (models.Session, string, error) {
	creds.Email = strings.ToLower(strings.TrimSpace(creds.Email))
	if creds.Email == "" || creds.Password == "" {
		return models.Session{}, "", ErrMissingField
	}

	user, err := m.directory.FindByEmail(ctx, creds.Email)
	if errors.Is(err, remote.ErrNotFound) {
		return models.Session{}, "", ErrInvalidCredentials
	}
	if err != nil {
		return models.Session{}, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)) != nil {
		return models.Session{}, "", ErrInvalidCredentials
	}

	// Best effort; a failed timestamp update must not block the login.
	if err := m.directory.UpdateLastLogin(ctx, user.ID.Hex()); err != nil {
		log.Printf("session: last-login update failed for %s: %v", user.ID.Hex(), err)
	}

	return m.issue(user)
}

// Register validates the sign-up fields, creates the account and logs it in
// immediately.
func (m *Manager) Register(ctx context.Context, reg Registration) (models.Session, string, error) {
	reg.Email = strings.ToLower(strings.TrimSpace(reg.Email))
	if reg.Email == "" || reg.FullName == "" || reg.Password == "" {
		return models.Session{}, "", ErrMissingField
	}
	if reg.Password != reg.ConfirmPassword {
		return models.Session{}, "", ErrPasswordMismatch
	}
	if len(reg.Password) < 6 {
		return models.Session{}, "", ErrPasswordTooShort
	}

	_, err := m.directory.FindByEmail(ctx, reg.Email)
	if err == nil {
		return models.Session{}, "", ErrEmailTaken
	}
	if !errors.Is(err, remote.ErrNotFound) {
		return models.Session{}, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.Session{}, "", err
	}
	user, err := m.directory.Insert(ctx, models.User{
		Email:        reg.Email,
		PasswordHash: string(hash),
		FullName:     reg.FullName,
		Phone:        reg.Phone,
	})
	if err != nil {
		return models.Session{}, "", err
	}

	return m.issue(user)
}

// Active returns the persisted session for the user, or nil when none is
// stored, the blob is malformed, or the session is older than MaxAge.
func (m *Manager) Active(userID string) *models.Session {
	store := storage.ForUser(m.store, userID)
	data, ok := store.Read(storage.KeySession)
	if !ok {
		return nil
	}
	var sess models.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil
	}
	if time.Since(sess.IssuedAt) > MaxAge {
		return nil
	}
	return &sess
}

// Logout wipes the user's whole client state: session, profile, cart and
// any in-progress pizza draft.
func (m *Manager) Logout(userID string) {
	storage.ClearClientState(storage.ForUser(m.store, userID))
}

// UpdateProfile changes the user's name and phone in the directory and in
// the persisted session.
func (m *Manager) UpdateProfile(ctx context.Context, userID, fullName, phone string) error {
	if strings.TrimSpace(fullName) == "" {
		return ErrMissingField
	}
	if err := m.directory.UpdateProfile(ctx, userID, fullName, phone); err != nil {
		return err
	}
	if sess := m.Active(userID); sess != nil {
		sess.Name = fullName
		sess.Phone = phone
		m.persist(*sess)
	}
	return nil
}

func (m *Manager) issue(user models.User) (models.Session, string, error) {
	role := "user"
	if user.IsAdmin {
		role = "admin"
	}
	token, err := utils.GenerateJWT(user.ID.Hex(), user.Email, role)
	if err != nil {
		return models.Session{}, "", err
	}
	sess := models.Session{
		UserID:   user.ID.Hex(),
		Name:     user.FullName,
		Email:    user.Email,
		Phone:    user.Phone,
		IssuedAt: time.Now(),
	}
	if err := m.persist(sess); err != nil {
		return models.Session{}, "", err
	}
	return sess, token, nil
}

func (m *Manager) persist(sess models.Session) error {
	store := storage.ForUser(m.store, sess.UserID)
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	if err := store.Write(storage.KeySession, data); err != nil {
		return err
	}
	profile, err := json.Marshal(map[string]string{
		"id":    sess.UserID,
		"name":  sess.Name,
		"email": sess.Email,
		"phone": sess.Phone,
	})
	if err != nil {
		return err
	}
	return store.Write(storage.KeyUser, profile)
}
