package trips

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tripmate/tripmate/pkg/tripmate/auth"
	"github.com/tripmate/tripmate/pkg/tripmate/models"
)

// MemberResponse represents a trip participant in API responses
type MemberResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Email    string `json:"email"`
	Role     int    `json:"role"`
	JoinedAt string `json:"joined_at"`
}

// isMember reports whether a membership row exists for the (user, trip) pair
func (h *Handler) isMember(userID, tripID uint) bool {
	err := h.db.Where("user_id = ? AND trip_id = ?", userID, tripID).
		First(&models.TripMembership{}).Error
	return err == nil
}

// joinedTripIDs returns the set of trip IDs the user holds a membership for
func (h *Handler) joinedTripIDs(userID uint) (map[uint]bool, error) {
	var memberships []models.TripMembership
	if err := h.db.Where("user_id = ?", userID).Find(&memberships).Error; err != nil {
		return nil, err
	}
	ids := make(map[uint]bool, len(memberships))
	for _, m := range memberships {
		ids[m.TripID] = true
	}
	return ids, nil
}

// tripMembers returns the roster of a trip in database iteration order
func (h *Handler) tripMembers(tripID uint) ([]MemberResponse, error) {
	var memberships []models.TripMembership
	if err := h.db.Preload("User").Where("trip_id = ?", tripID).Find(&memberships).Error; err != nil {
		return nil, err
	}

	members := make([]MemberResponse, len(memberships))
	for i, m := range memberships {
		members[i] = MemberResponse{
			ID:       m.User.ID,
			Name:     m.User.Name,
			Surname:  m.User.Surname,
			Email:    m.User.Email,
			Role:     int(m.Role),
			JoinedAt: m.JoinedAt.Format("2006-01-02T15:04:05Z"),
		}
	}
	return members, nil
}

// Join adds the current user to a trip as a participant. Joining a trip you
// created is rejected here, before the membership check, so the creator gets
// a distinct message. Joining twice answers with a friendly conflict, not a
// hard failure.
func (h *Handler) Join(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	tripID, ok := parseTripID(c)
	if !ok {
		return
	}

	var trip models.Trip
	if err := h.db.First(&trip, tripID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "The trip does not exist"})
		return
	}

	if trip.CreatedBy == userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You cannot join your own trip"})
		return
	}

	if h.isMember(userID, tripID) {
		c.JSON(http.StatusConflict, gin.H{"error": "You have already joined this trip"})
		return
	}

	membership := models.TripMembership{
		UserID: userID,
		TripID: tripID,
		Role:   models.RoleParticipant,
	}
	if err := h.db.Create(&membership).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not join the trip. Please try again"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "You have joined the trip successfully"})
}

// Leave removes the current user from a trip. Leaving a trip you are not a
// member of deletes zero rows and still succeeds.
func (h *Handler) Leave(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	tripID, ok := parseTripID(c)
	if !ok {
		return
	}

	var trip models.Trip
	if err := h.db.First(&trip, tripID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "The trip does not exist"})
		return
	}

	if err := h.db.Where("user_id = ? AND trip_id = ?", userID, tripID).
		Delete(&models.TripMembership{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not leave the trip. Please try again"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "You have left the trip successfully"})
}
