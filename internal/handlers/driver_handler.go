package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/petkovm/ridehail/internal/helpers"
	"github.com/petkovm/ridehail/internal/models"
	"github.com/petkovm/ridehail/internal/pricing"
)

type DriverSetupRequest struct {
	UserID       uuid.UUID `json:"user_id" binding:"required"`
	CarModel     string    `json:"car_model" binding:"required"`
	LicensePlate string    `json:"license_plate" binding:"required"`
}

type ManageServiceRequest struct {
	Price    *float64 `json:"price"`
	Schedule *string  `json:"schedule"`
	Location *string  `json:"location"`
}

type UpdateLocationRequest struct {
	NewLocation string `json:"new_location" binding:"required"`
}

type DriverEarningsResponse struct {
	Balance    float64 `json:"balance"`
	TripsCount int64   `json:"trips_count"`
}

type ReviewView struct {
	ClientName string `json:"client_name"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
}

// SetupDriver provisions the vehicle profile for a user with the driver
// role. Safe to retry: a second call for the same user returns the
// existing profile instead of creating a duplicate.
func SetupDriver(c *gin.Context) {
	var req DriverSetupRequest
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

	var user models.User
	if err := gormDB.Where("id = ?", req.UserID).First(&user).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "User not found.")
		return
	}

	if user.Role != models.RoleDriver {
		helpers.RespondWithError(c, http.StatusForbidden, "User does not have permission to be a driver")
		return
	}

	var driver models.Driver
	if err := gormDB.Where("user_id = ?", req.UserID).First(&driver).Error; err == nil {
		c.JSON(http.StatusOK, gin.H{
			"message":   "Driver profile is already set up",
			"driver_id": driver.ID,
		})
		return
	}

	newDriver := models.Driver{
		ID:           uuid.New(),
		UserID:       req.UserID,
		CarModel:     req.CarModel,
		LicensePlate: req.LicensePlate,
	}

	if err := gormDB.Create(&newDriver).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create driver profile.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Driver profile is ready for use",
		"driver_id": newDriver.ID,
	})
}

func ManageDriverService(c *gin.Context) {
	driverID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid driver ID.")
		return
	}

	var req ManageServiceRequest
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

	var driver models.Driver
	if err := gormDB.Where("id = ?", driverID).First(&driver).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Driver not found")
		return
	}

	// Price zero is a valid update; for the text fields an empty string
	// is treated the same as an absent field.
	if req.Price != nil {
		driver.PricePerKm = *req.Price
	}
	if req.Schedule != nil && *req.Schedule != "" {
		driver.Schedule = *req.Schedule
	}
	if req.Location != nil && *req.Location != "" {
		driver.CurrentLocation = *req.Location
	}

	if err := gormDB.Save(&driver).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update service parameters.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Service parameters updated successfully",
	})
}

// ToggleDriverShift flips the driver between online and offline.
func ToggleDriverShift(c *gin.Context) {
	driverID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid driver ID.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var driver models.Driver
	if err := gormDB.Where("id = ?", driverID).First(&driver).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Driver not found.")
		return
	}

	driver.IsOnline = !driver.IsOnline
	if err := gormDB.Save(&driver).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update shift status.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Shift status updated successfully",
		"is_online": driver.IsOnline,
	})
}

func GetDriverEarnings(c *gin.Context) {
	driverID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid driver ID.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var driver models.Driver
	if err := gormDB.Where("id = ?", driverID).First(&driver).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Driver not found")
		return
	}

	var tripsCount int64
	gormDB.Model(&models.Trip{}).
		Where("driver_id = ? AND status = ?", driverID, models.TripCompleted).
		Count(&tripsCount)

	c.JSON(http.StatusOK, DriverEarningsResponse{
		Balance:    pricing.Round2(driver.TotalEarnings),
		TripsCount: tripsCount,
	})
}

func UpdateDriverLocation(c *gin.Context) {
	driverID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid driver ID.")
		return
	}

	var req UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. New location is required.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var driver models.Driver
	if err := gormDB.Where("id = ?", driverID).First(&driver).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Driver not found.")
		return
	}

	driver.CurrentLocation = req.NewLocation
	if err := gormDB.Save(&driver).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update location.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Location updated successfully",
	})
}

func GetDriverTripHistory(c *gin.Context) {
	driverID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid driver ID.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var trips []models.Trip
	err = gormDB.Where("driver_id = ? AND status = ?", driverID, models.TripCompleted).
		Order("created_at DESC").Find(&trips).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving trip history.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"trips": trips,
	})
}

func GetDriverReviews(c *gin.Context) {
	driverID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid driver ID.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var driver models.Driver
	if err := gormDB.Where("id = ?", driverID).First(&driver).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Driver not found.")
		return
	}

	var reviews []models.Review
	if err := gormDB.Where("driver_id = ?", driverID).Find(&reviews).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving reviews.")
		return
	}

	result := make([]ReviewView, 0, len(reviews))
	for _, review := range reviews {
		result = append(result, ReviewView{
			ClientName: review.ClientName,
			Rating:     review.Rating,
			Comment:    review.Comment,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"total_reviews": len(result),
		"reviews":       result,
	})
}
