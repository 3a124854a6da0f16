package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/petkovm/ridehail/internal/helpers"
	"github.com/petkovm/ridehail/internal/models"
)

// The rating is deliberately unbounded here; whatever integer the
// client submits flows into the aggregate.
type LeaveReviewRequest struct {
	TripID  uuid.UUID `json:"trip_id" binding:"required"`
	Rating  *int      `json:"rating" binding:"required"`
	Comment string    `json:"comment"`
}

// LeaveReview records feedback for a completed trip and recomputes the
// driver's aggregate rating from all of their reviews. Nothing stops a
// client from reviewing the same trip twice; each submission triggers a
// fresh recomputation.
func LeaveReview(c *gin.Context) {
	var req LeaveReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var trip models.Trip
	if err := gormDB.Preload("Client").Where("id = ?", req.TripID).First(&trip).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Trip not found")
		return
	}

	if trip.Status != models.TripCompleted {
		helpers.RespondWithError(c, http.StatusBadRequest, "You can only rate completed trips")
		return
	}

	if trip.DriverID == nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "No driver assigned to this trip")
		return
	}

	// The client's name is copied as it stands right now; later renames
	// do not touch existing reviews.
	review := models.Review{
		ID:         uuid.New(),
		TripID:     trip.ID,
		DriverID:   *trip.DriverID,
		ClientName: trip.Client.FullName,
		Rating:     *req.Rating,
		Comment:    req.Comment,
	}

	if err := gormDB.Create(&review).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to save review.")
		return
	}

	var ratings []int
	gormDB.Model(&models.Review{}).Where("driver_id = ?", *trip.DriverID).Pluck("rating", &ratings)

	if average, ok := helpers.AverageRating(ratings); ok {
		var driver models.Driver
		if err := gormDB.Where("id = ?", *trip.DriverID).First(&driver).Error; err == nil {
			driver.Rating = average
			gormDB.Save(&driver)
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"review_id": review.ID,
		"message":   "Thank you for your feedback, " + review.ClientName + "!",
	})
}
