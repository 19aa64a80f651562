package utils

import (
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// ==================== IDS ====================

func GenerateID() string {
	return uuid.NewString()
}

func IsValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// ==================== SLUG ====================

// Slugify lower-cases and hyphenates a display name: "Summer Sale!" -> "summer-sale"
func Slugify(name string) string {
	return slug.Make(strings.TrimSpace(name))
}
