package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/petkovm/ridehail/internal/helpers"
	"github.com/petkovm/ridehail/internal/models"
)

type UserSettingsRequest struct {
	Address *string `json:"address"`
	Prefs   *string `json:"prefs"`
}

type UserSecurityRequest struct {
	Password    string  `json:"password" binding:"required"`
	NewPassword *string `json:"new_password"`
	Phone       *string `json:"phone"`
}

type AddFavoriteRequest struct {
	UserID   uuid.UUID `json:"user_id" binding:"required"`
	DriverID uuid.UUID `json:"driver_id" binding:"required"`
}

type FavoriteDriverView struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"full_name"`
	Car      string    `json:"car"`
	Rating   float64   `json:"rating"`
	IsOnline bool      `json:"is_online"`
}

func UpdateUserSettings(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid user ID.")
		return
	}

	var req UserSettingsRequest
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
	if err := gormDB.Where("id = ?", userID).First(&user).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "User not found.")
		return
	}

	// An empty string is treated the same as an absent field.
	if req.Address != nil && *req.Address != "" {
		user.HomeAddress = req.Address
	}
	if req.Prefs != nil && *req.Prefs != "" {
		user.Preferences = req.Prefs
	}

	if err := gormDB.Save(&user).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update profile.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
	})
}

func UpdateUserSecurity(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid user ID.")
		return
	}

	var req UserSecurityRequest
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
	if err := gormDB.Where("id = ?", userID).First(&user).Error; err != nil {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid current password!")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid current password!")
		return
	}

	if req.NewPassword != nil && *req.NewPassword != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to hash the password.")
			return
		}
		user.Password = string(hashedPassword)
	}
	if req.Phone != nil && *req.Phone != "" {
		user.Phone = *req.Phone
	}

	if err := gormDB.Save(&user).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update security settings.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Security settings updated successfully",
	})
}

func AddFavoriteDriver(c *gin.Context) {
	var req AddFavoriteRequest
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
		helpers.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	updated, changed := helpers.AppendFavorite(user.Favorites, req.DriverID.String())
	if !changed {
		c.JSON(http.StatusOK, gin.H{
			"message": "Driver is already in your favorites list",
		})
		return
	}

	user.Favorites = updated
	if err := gormDB.Save(&user).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update favorites.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Driver added to favorites",
	})
}

func GetFavoriteDrivers(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid user ID.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var user models.User
	if err := gormDB.Where("id = ?", userID).First(&user).Error; err != nil || user.Favorites == "" {
		c.JSON(http.StatusOK, gin.H{
			"message": "No favorite drivers found",
		})
		return
	}

	var favoriteIDs []uuid.UUID
	for _, id := range helpers.SplitFavorites(user.Favorites) {
		if parsed, err := uuid.Parse(id); err == nil {
			favoriteIDs = append(favoriteIDs, parsed)
		}
	}

	var drivers []models.Driver
	if err := gormDB.Preload("User").Where("id IN ?", favoriteIDs).Find(&drivers).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving favorite drivers.")
		return
	}

	result := make([]FavoriteDriverView, 0, len(drivers))
	for _, driver := range drivers {
		result = append(result, FavoriteDriverView{
			ID:       driver.ID,
			FullName: driver.User.FullName,
			Car:      driver.CarModel,
			Rating:   driver.Rating,
			IsOnline: driver.IsOnline,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"favorite_drivers": result,
	})
}

func GetClientTripHistory(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid user ID.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var trips []models.Trip
	err = gormDB.Where("client_id = ? AND status = ?", userID, models.TripCompleted).
		Order("created_at DESC").Find(&trips).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving trip history.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"trip_history": trips,
	})
}
