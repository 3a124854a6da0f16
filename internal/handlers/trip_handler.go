package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/petkovm/ridehail/internal/helpers"
	"github.com/petkovm/ridehail/internal/models"
	"github.com/petkovm/ridehail/internal/observability"
	"github.com/petkovm/ridehail/internal/pricing"
)

type TripRequest struct {
	ClientID       uuid.UUID `json:"client_id" binding:"required"`
	PickupLocation string    `json:"pickup_location" binding:"required"`
	Destination    string    `json:"destination" binding:"required"`
	CarCategory    string    `json:"car_category"`
	FinalPrice     float64   `json:"final_price"`
	IsUrgent       bool      `json:"is_urgent"`
	IsShared       bool      `json:"is_shared"`
}

type AcceptTripRequest struct {
	DriverID uuid.UUID `json:"driver_id" binding:"required"`
}

type DriverDetails struct {
	Name            string `json:"name"`
	Car             string `json:"car"`
	Plate           string `json:"plate"`
	CurrentLocation string `json:"current_location"`
}

type TripStatusResponse struct {
	Status         models.TripStatus `json:"status"`
	DriverDetails  DriverDetails     `json:"driver_details"`
	PickupLocation string            `json:"pickup_location"`
	Destination    string            `json:"destination"`
}

// RequestTrip creates a new trip in the searching state. The client id
// is taken as-is without an existence check, matching the behavior the
// rest of the system expects.
func RequestTrip(c *gin.Context) {
	var req TripRequest
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

	carCategory := req.CarCategory
	if carCategory == "" {
		carCategory = "Standard"
	}

	trip := models.Trip{
		ID:             uuid.New(),
		ClientID:       req.ClientID,
		PickupLocation: req.PickupLocation,
		Destination:    req.Destination,
		CarCategory:    carCategory,
		FinalPrice:     req.FinalPrice,
		Status:         models.TripSearching,
		PaymentStatus:  models.PaymentPending,
		IsShared:       req.IsShared,
		SeatsAvailable: 4,
		IsUrgent:       req.IsUrgent,
	}

	if err := gormDB.Create(&trip).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create trip request.")
		return
	}

	observability.TripsRequested.Inc()

	c.JSON(http.StatusCreated, gin.H{
		"message": "Request accepted. Searching for a driver...",
		"trip_id": trip.ID,
	})
}

func GetAvailableTrips(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var trips []models.Trip
	err := gormDB.Where("status = ?", models.TripSearching).
		Order("created_at DESC").Find(&trips).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving available trips.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"available_trips": trips,
	})
}

func GetSharedTrips(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var trips []models.Trip
	err := gormDB.Where("is_shared = ? AND status = ?", true, models.TripSearching).
		Order("created_at DESC").Find(&trips).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving shared trips.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"shared_trips": trips,
	})
}

// CalculateTripPrice applies the urgency surge and then the promo
// discount. An unknown or inactive promo code is a no-op, not an error.
func CalculateTripPrice(c *gin.Context) {
	originalPrice, err := helpers.StringToFloat(c.Query("original_price"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid original price.")
		return
	}

	isUrgent := c.DefaultQuery("is_urgent", "false") == "true"
	promoCode := c.Query("promo_code")

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	discount := 0
	if promoCode != "" {
		var promo models.PromoCode
		err := gormDB.Where("code = ? AND is_active = ?", strings.ToUpper(promoCode), true).
			First(&promo).Error
		if err == nil {
			discount = promo.DiscountPercentage
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"final_price": pricing.Calculate(originalPrice, isUrgent, discount),
	})
}

func AcceptTrip(c *gin.Context) {
	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid trip ID.")
		return
	}

	var req AcceptTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Driver ID is required.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var driver models.Driver
	if err := gormDB.Where("id = ?", req.DriverID).First(&driver).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Driver not found.")
		return
	}

	var trip models.Trip
	if err := gormDB.Where("id = ?", tripID).First(&trip).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Trip not found.")
		return
	}

	if !trip.CanAccept() {
		helpers.RespondWithError(c, http.StatusBadRequest, "This trip is already taken or cancelled")
		return
	}

	// No row lock here: two drivers racing past the status check end up
	// with the last writer assigned.
	trip.DriverID = &driver.ID
	trip.Status = models.TripAccepted

	if err := gormDB.Save(&trip).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to accept trip.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Trip accepted successfully",
	})
}

func CancelTrip(c *gin.Context) {
	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid trip ID.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var trip models.Trip
	if err := gormDB.Where("id = ?", tripID).First(&trip).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Request not found")
		return
	}

	if !trip.CanCancel() {
		helpers.RespondWithError(c, http.StatusBadRequest, "Cannot cancel a trip with status: "+string(trip.Status))
		return
	}

	trip.Status = models.TripCancelled
	if err := gormDB.Save(&trip).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to cancel trip.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Trip cancelled successfully",
	})
}

// CompleteTrip marks the trip completed and paid, and credits the
// assigned driver with the agreed price or the flat fallback fare. All
// preconditions are checked before anything is written.
func CompleteTrip(c *gin.Context) {
	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid trip ID.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var trip models.Trip
	if err := gormDB.Where("id = ?", tripID).First(&trip).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Trip not found")
		return
	}

	if !trip.CanComplete() {
		helpers.RespondWithError(c, http.StatusBadRequest, "Trip has already been completed")
		return
	}

	if trip.DriverID == nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "No driver assigned to this trip")
		return
	}

	var driver models.Driver
	if err := gormDB.Where("id = ?", *trip.DriverID).First(&driver).Error; err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "No driver assigned to this trip")
		return
	}

	trip.Status = models.TripCompleted
	trip.PaymentStatus = models.PaymentPaid
	driver.TotalEarnings += trip.CompletionAmount()

	err = gormDB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&trip).Error; err != nil {
			return err
		}
		return tx.Save(&driver).Error
	})
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to complete trip.")
		return
	}

	observability.TripsCompleted.Inc()

	c.JSON(http.StatusOK, gin.H{
		"message": "Trip completed and payment processed successfully",
	})
}

// TrackTripStatus returns the driver and route projection for the trip,
// or a still-searching placeholder until a driver is assigned. The
// location is whatever the driver last persisted, not a live feed.
func TrackTripStatus(c *gin.Context) {
	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid trip ID.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var trip models.Trip
	if err := gormDB.Where("id = ?", tripID).First(&trip).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Trip not found")
		return
	}

	if trip.Status == models.TripSearching || trip.DriverID == nil {
		c.JSON(http.StatusOK, gin.H{
			"status":  trip.Status,
			"message": "Still searching for the nearest driver...",
		})
		return
	}

	var driver models.Driver
	if err := gormDB.Preload("User").Where("id = ?", *trip.DriverID).First(&driver).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Driver not found.")
		return
	}

	c.JSON(http.StatusOK, TripStatusResponse{
		Status: trip.Status,
		DriverDetails: DriverDetails{
			Name:            driver.User.FullName,
			Car:             driver.CarModel,
			Plate:           driver.LicensePlate,
			CurrentLocation: driver.CurrentLocation,
		},
		PickupLocation: trip.PickupLocation,
		Destination:    trip.Destination,
	})
}
