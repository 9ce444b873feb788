package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Address represents a saved shipping address. At most one address per user
// has IsDefault set; all flags are cleared before a new default is chosen.
type Address struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID       string             `bson:"user_id" json:"user_id"`
	Neighborhood string             `bson:"neighborhood" json:"neighborhood"`
	PropertyType string             `bson:"property_type" json:"property_type"`
	Street       string             `bson:"address" json:"address"`
	Municipality string             `bson:"municipality" json:"municipality"`
	City         string             `bson:"city" json:"city"`
	Phone        string             `bson:"phone" json:"phone"`
	Notes        string             `bson:"additional_info,omitempty" json:"additional_info,omitempty"`
	IsDefault    bool               `bson:"is_default" json:"is_default"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}

// TemporaryAddress is an unsaved address offered at checkout when the user has
// no persisted ones. It never carries a real address id; checkout embeds it as
// free text in the order notes instead.
type TemporaryAddress struct {
	ID           string `json:"id"`
	Neighborhood string `json:"neighborhood"`
	PropertyType string `json:"property_type"`
	Street       string `json:"address"`
	Municipality string `json:"municipality"`
	City         string `json:"city"`
	Phone        string `json:"phone"`
	Notes        string `json:"additional_info,omitempty"`
}
