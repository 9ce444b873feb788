package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MenuItem is a predefined pizza from the catalog.
type MenuItem struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Price       int64              `bson:"price" json:"price"`
	ImageURL    string             `bson:"image_url,omitempty" json:"image_url,omitempty"`
	Ingredients []string           `bson:"ingredients,omitempty" json:"ingredients,omitempty"`
}
