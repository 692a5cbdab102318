package models

import (
	"time"
)

// Trip represents a planned journey owned by its creator.
// Only the creator may edit or delete it.
type Trip struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	StartDate   time.Time `gorm:"not null" json:"start_date"`
	EndDate     time.Time `gorm:"not null" json:"end_date"`
	CreatedBy   uint      `gorm:"not null;index" json:"created_by"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Creator User             `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	Members []TripMembership `gorm:"foreignKey:TripID" json:"members,omitempty"`
}
