package trips

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tripmate/tripmate/pkg/tripmate/auth"
	"github.com/tripmate/tripmate/pkg/tripmate/models"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// Handler handles trip-related requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new trips handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// TripRequest represents the request to create or update a trip
type TripRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

// TripResponse represents a trip in API responses
type TripResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	CreatedBy   uint   `json:"created_by"`
	CreatedAt   string `json:"created_at"`
}

// DashboardResponse partitions every trip into exactly one bucket for the
// current user: trips they created, trips they joined, and the rest.
type DashboardResponse struct {
	Created   []TripResponse `json:"created"`
	Joined    []TripResponse `json:"joined"`
	Available []TripResponse `json:"available"`
}

func tripToResponse(trip models.Trip) TripResponse {
	return TripResponse{
		ID:          trip.ID,
		Title:       trip.Title,
		Description: trip.Description,
		StartDate:   trip.StartDate.Format(dateLayout),
		EndDate:     trip.EndDate.Format(dateLayout),
		CreatedBy:   trip.CreatedBy,
		CreatedAt:   trip.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

func tripsToResponse(trips []models.Trip) []TripResponse {
	out := make([]TripResponse, len(trips))
	for i, t := range trips {
		out[i] = tripToResponse(t)
	}
	return out
}

// validateTrip checks every rule and collects all violations rather than
// stopping at the first, so a form with four mistakes reports four messages.
func validateTrip(req TripRequest) (start, end time.Time, errs []string) {
	if len(req.Title) < 3 {
		errs = append(errs, "Title must be at least 3 characters")
	}
	if len(req.Description) < 10 {
		errs = append(errs, "Description must be at least 10 characters")
	}

	var startOK, endOK bool
	if req.StartDate == "" {
		errs = append(errs, "Start date is required")
	} else {
		var err error
		start, err = time.Parse(dateLayout, req.StartDate)
		if err != nil {
			errs = append(errs, "Start date must be in YYYY-MM-DD format")
		} else {
			startOK = true
		}
	}
	if req.EndDate == "" {
		errs = append(errs, "End date is required")
	} else {
		var err error
		end, err = time.Parse(dateLayout, req.EndDate)
		if err != nil {
			errs = append(errs, "End date must be in YYYY-MM-DD format")
		} else {
			endOK = true
		}
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, "End date cannot be before the start date")
	}

	return start, end, errs
}

func parseTripID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid trip ID"})
		return 0, false
	}
	return uint(id), true
}

// Dashboard returns the three-way partition of all trips for the current
// user. A trip the user created is never listed as joined, even if a
// membership row exists: created-by-me wins, then joined, then available.
func (h *Handler) Dashboard(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var trips []models.Trip
	if err := h.db.Find(&trips).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch trips"})
		return
	}

	joinedIDs, err := h.joinedTripIDs(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch memberships"})
		return
	}

	resp := DashboardResponse{
		Created:   []TripResponse{},
		Joined:    []TripResponse{},
		Available: []TripResponse{},
	}
	for _, trip := range trips {
		switch {
		case trip.CreatedBy == userID:
			resp.Created = append(resp.Created, tripToResponse(trip))
		case joinedIDs[trip.ID]:
			resp.Joined = append(resp.Joined, tripToResponse(trip))
		default:
			resp.Available = append(resp.Available, tripToResponse(trip))
		}
	}

	c.JSON(http.StatusOK, resp)
}

// Create creates a new trip owned by the current user
func (h *Handler) Create(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start, end, errs := validateTrip(req)
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	trip := models.Trip{
		Title:       models.Capitalize(req.Title),
		Description: req.Description,
		StartDate:   start,
		EndDate:     end,
		CreatedBy:   userID,
	}

	if err := h.db.Create(&trip).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create trip"})
		return
	}

	c.JSON(http.StatusCreated, tripToResponse(trip))
}

// GetForEdit returns a trip for the edit form. Owner only; a missing trip
// and a foreign trip get the same answer so IDs are not probeable.
func (h *Handler) GetForEdit(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	tripID, ok := parseTripID(c)
	if !ok {
		return
	}

	var trip models.Trip
	if err := h.db.First(&trip, tripID).Error; err != nil || trip.CreatedBy != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to edit this trip"})
		return
	}

	c.JSON(http.StatusOK, tripToResponse(trip))
}

// Update edits a trip. The handler rejects non-owners up front; the UPDATE
// itself still filters on created_by as a second line of defense, so a
// bypassed check silently affects zero rows.
func (h *Handler) Update(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	tripID, ok := parseTripID(c)
	if !ok {
		return
	}

	var trip models.Trip
	if err := h.db.First(&trip, tripID).Error; err != nil || trip.CreatedBy != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to edit this trip"})
		return
	}

	var req TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start, end, errs := validateTrip(req)
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	result := h.db.Model(&models.Trip{}).
		Where("id = ? AND created_by = ?", tripID, userID).
		Updates(map[string]interface{}{
			"title":       models.Capitalize(req.Title),
			"description": req.Description,
			"start_date":  start,
			"end_date":    end,
		})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update trip"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to edit this trip"})
		return
	}

	if err := h.db.First(&trip, tripID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch trip"})
		return
	}

	c.JSON(http.StatusOK, tripToResponse(trip))
}

// Delete removes a trip and its memberships. Ownership is checked before
// any row is touched, and both deletes run in one transaction, so a
// non-owner can never strip a trip's memberships.
func (h *Handler) Delete(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	tripID, ok := parseTripID(c)
	if !ok {
		return
	}

	var trip models.Trip
	if err := h.db.First(&trip, tripID).Error; err != nil || trip.CreatedBy != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to delete this trip"})
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		// Memberships first, for referential integrity
		if err := tx.Where("trip_id = ?", tripID).Delete(&models.TripMembership{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ? AND created_by = ?", tripID, userID).Delete(&models.Trip{}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete trip"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Trip deleted successfully"})
}

// Detail returns a trip together with its roster of participants
func (h *Handler) Detail(c *gin.Context) {
	tripID, ok := parseTripID(c)
	if !ok {
		return
	}

	var trip models.Trip
	if err := h.db.First(&trip, tripID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "The trip does not exist"})
		return
	}

	members, err := h.tripMembers(tripID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch participants"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"trip":         tripToResponse(trip),
		"participants": members,
	})
}

// RegisterRoutes registers trip routes on the given router group.
// Paths keep the Spanish action names of the original site.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.Dashboard)
	rg.POST("/crear", h.Create)
	rg.GET("/editar/:id", h.GetForEdit)
	rg.POST("/editar/:id", h.Update)
	rg.POST("/eliminar/:id", h.Delete)
	rg.GET("/detalle/:id", h.Detail)
	rg.POST("/unir/:id", h.Join)
	rg.POST("/salir/:id", h.Leave)
}
