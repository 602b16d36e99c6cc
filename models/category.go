package models

import (
	"strings"
	"time"
	"unicode"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category represents a category document in the categories collection.
// CategoryID is a separate numeric identifier that is unique alongside the
// Mongo _id; category_name is unique and stored in title case.
type Category struct {
	ID           primitive.ObjectID `json:"id" bson:"_id"`
	CategoryName string             `json:"category_name" bson:"category_name"`
	CategoryID   int                `json:"category_id" bson:"category_id"`
	ImageURL     string             `json:"image_url,omitempty" bson:"image_url,omitempty"`
	IsActive     bool               `json:"is_active" bson:"is_active"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
}

// TitleCase normalizes a category name the way it is persisted: first letter
// of each word upper-cased, the rest lower-cased ("hot SAUCE" -> "Hot Sauce").
func TitleCase(name string) string {
	words := strings.Split(name, " ")
	for i, word := range words {
		runes := []rune(strings.ToLower(word))
		if len(runes) == 0 {
			continue
		}
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
