package models

import (
	"strings"
	"unicode"

	"gorm.io/gorm"
)

// AllModels returns all models for migration
// Note: User must be migrated first as trips and memberships depend on it
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Trip{},
		&TripMembership{},
	}
}

// AutoMigrate runs GORM auto-migration for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}

// Capitalize normalizes a display string: first letter upper, rest lower.
// User names and trip titles are stored in this form.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
