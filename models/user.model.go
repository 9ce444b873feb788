package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an account row in the user directory.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	FullName     string             `bson:"full_name" json:"full_name"`
	Phone        string             `bson:"phone" json:"phone"`
	IsActive     bool               `bson:"is_active" json:"is_active"`
	IsAdmin      bool               `bson:"is_admin" json:"-"`
	LastLogin    time.Time          `bson:"last_login,omitempty" json:"last_login,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}

// Session is the client-held view of a logged-in user. It expires 24 hours
// after IssuedAt; expiry is checked on read, not actively swept.
type Session struct {
	UserID   string    `json:"user_id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Phone    string    `json:"phone"`
	IssuedAt time.Time `json:"issued_at"`
}
