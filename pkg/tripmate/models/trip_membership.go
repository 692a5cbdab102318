package models

import (
	"time"
)

// MembershipRole is a lookup value for a user's role within a trip
type MembershipRole int

const (
	RoleOrganizer   MembershipRole = 1
	RoleParticipant MembershipRole = 2
)

// TripMembership represents the many-to-many relationship between users and
// trips. A (user, trip) pair is unique: a user cannot join the same trip
// twice. Rows are hard-deleted when a user leaves so the pair can be
// re-created on rejoin.
type TripMembership struct {
	ID       uint           `gorm:"primarykey" json:"id"`
	UserID   uint           `gorm:"not null;uniqueIndex:idx_user_trip" json:"user_id"`
	TripID   uint           `gorm:"not null;uniqueIndex:idx_user_trip" json:"trip_id"`
	Role     MembershipRole `gorm:"not null;default:2" json:"role"`
	JoinedAt time.Time      `gorm:"autoCreateTime" json:"joined_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Trip Trip `gorm:"foreignKey:TripID" json:"trip,omitempty"`
}
