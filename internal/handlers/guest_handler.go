package handlers

import (
	"math"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/petkovm/ridehail/internal/helpers"
	"github.com/petkovm/ridehail/internal/models"
)

type DriverPublicProfile struct {
	ID          uuid.UUID `json:"id"`
	FullName    string    `json:"full_name"`
	CarModel    string    `json:"car_model"`
	CarCategory string    `json:"car_category"`
	Rating      float64   `json:"rating"`
	Location    string    `json:"location"`
	PricePerKm  float64   `json:"price_per_km"`
}

type DriverRankingEntry struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"full_name"`
	Rating   float64   `json:"rating"`
}

type AvailableDriverView struct {
	ID              uuid.UUID `json:"id"`
	FullName        string    `json:"full_name"`
	CarModel        string    `json:"car_model"`
	CarCategory     string    `json:"car_category"`
	Rating          float64   `json:"rating"`
	CurrentLocation string    `json:"current_location"`
}

func GetDriverPublicProfile(c *gin.Context) {
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
	if err := gormDB.Preload("User").Where("id = ?", driverID).First(&driver).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Driver not found")
		return
	}

	c.JSON(http.StatusOK, DriverPublicProfile{
		ID:          driver.ID,
		FullName:    driver.User.FullName,
		CarModel:    driver.CarModel,
		CarCategory: driver.CarCategory,
		Rating:      math.Round(driver.Rating*10) / 10,
		Location:    driver.CurrentLocation,
		PricePerKm:  driver.PricePerKm,
	})
}

func GetDriverRankings(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var drivers []models.Driver
	if err := gormDB.Preload("User").Find(&drivers).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving drivers.")
		return
	}

	result := make([]DriverRankingEntry, 0, len(drivers))
	for _, driver := range drivers {
		result = append(result, DriverRankingEntry{
			ID:       driver.ID,
			FullName: driver.User.FullName,
			Rating:   driver.Rating,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Rating > result[j].Rating
	})

	c.JSON(http.StatusOK, gin.H{
		"rankings": result,
	})
}

// SearchAvailableDrivers lists online drivers that are not currently on
// an accepted or started trip.
func SearchAvailableDrivers(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var busyIDs []uuid.UUID
	gormDB.Model(&models.Trip{}).
		Where("status IN ? AND driver_id IS NOT NULL", []models.TripStatus{models.TripAccepted, models.TripStarted}).
		Pluck("driver_id", &busyIDs)

	query := gormDB.Preload("User").Where("is_online = ?", true)
	if len(busyIDs) > 0 {
		query = query.Where("id NOT IN ?", busyIDs)
	}

	var drivers []models.Driver
	if err := query.Find(&drivers).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving available drivers.")
		return
	}

	result := make([]AvailableDriverView, 0, len(drivers))
	for _, driver := range drivers {
		result = append(result, AvailableDriverView{
			ID:              driver.ID,
			FullName:        driver.User.FullName,
			CarModel:        driver.CarModel,
			CarCategory:     driver.CarCategory,
			Rating:          driver.Rating,
			CurrentLocation: driver.CurrentLocation,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"available_drivers": result,
	})
}
