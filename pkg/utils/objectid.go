package utils

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParseObjectID converts a hex string into an ObjectID
func ParseObjectID(hex string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(strings.TrimSpace(hex))
}

// IsValidObjectID reports whether the string is a valid ObjectID hex
func IsValidObjectID(hex string) bool {
	return primitive.IsValidObjectID(strings.TrimSpace(hex))
}

// NormalizeEmail lowercases and trims an email address. All email lookups
// go through this so the same customer never appears under two casings.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeSlug lowercases and trims a store slug
func NormalizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}
