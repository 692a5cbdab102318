package models

import (
	"time"
)

// User represents a registered traveler
type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Surname      string    `gorm:"not null" json:"surname"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `json:"-"`
	RegisteredAt time.Time `gorm:"autoCreateTime" json:"registered_at"`

	// Relationships
	CreatedTrips []Trip           `gorm:"foreignKey:CreatedBy" json:"created_trips,omitempty"`
	Memberships  []TripMembership `gorm:"foreignKey:UserID" json:"memberships,omitempty"`
}
