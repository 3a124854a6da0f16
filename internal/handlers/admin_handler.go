package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/petkovm/ridehail/internal/helpers"
	"github.com/petkovm/ridehail/internal/models"
	"github.com/petkovm/ridehail/internal/pricing"
)

type SystemStatsResponse struct {
	TotalUsers     int64   `json:"total_users"`
	ActiveDrivers  int64   `json:"active_drivers"`
	CompletedTrips int64   `json:"completed_trips"`
	TotalIncomes   float64 `json:"total_incomes"`
}

type UnverifiedDriverView struct {
	UserID   uuid.UUID `json:"user_id"`
	FullName string    `json:"full_name"`
}

type AdminReviewView struct {
	ID         uuid.UUID `json:"id"`
	TripID     uuid.UUID `json:"trip_id"`
	ClientName string    `json:"client_name"`
	DriverName string    `json:"driver_name"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
}

type CreatePromoCodeRequest struct {
	Code     string `json:"code" binding:"required"`
	Discount *int   `json:"discount" binding:"required"`
}

// GetSystemStats runs four independent aggregates; each number reflects
// the store at the moment of its own query.
func GetSystemStats(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var totalUsers int64
	gormDB.Model(&models.User{}).Count(&totalUsers)

	var activeDrivers int64
	gormDB.Model(&models.Driver{}).Where("is_online = ?", true).Count(&activeDrivers)

	var completedTrips int64
	gormDB.Model(&models.Trip{}).Where("status = ?", models.TripCompleted).Count(&completedTrips)

	var totalIncomes float64
	gormDB.Model(&models.Trip{}).Where("status = ?", models.TripCompleted).
		Select("COALESCE(SUM(final_price), 0)").Scan(&totalIncomes)

	c.JSON(http.StatusOK, SystemStatsResponse{
		TotalUsers:     totalUsers,
		ActiveDrivers:  activeDrivers,
		CompletedTrips: completedTrips,
		TotalIncomes:   pricing.Round2(totalIncomes),
	})
}

func GetUnverifiedDrivers(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var users []models.User
	err := gormDB.Where("role = ? AND is_verified = ?", models.RoleDriver, false).Find(&users).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving unverified drivers.")
		return
	}

	result := make([]UnverifiedDriverView, 0, len(users))
	for _, user := range users {
		result = append(result, UnverifiedDriverView{
			UserID:   user.ID,
			FullName: user.FullName,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"drivers": result,
	})
}

func VerifyDriver(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
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
	if err := gormDB.Where("id = ?", userID).First(&user).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "User not found in the database.")
		return
	}

	user.IsVerified = true
	if err := gormDB.Save(&user).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to verify driver.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Driver " + user.FullName + " is verified.",
	})
}

func BlockUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
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
	if err := gormDB.Where("id = ?", userID).First(&user).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "User is not found")
		return
	}

	user.IsActive = false
	if err := gormDB.Save(&user).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to block user.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User " + user.FullName + " is blocked.",
	})
}

func GetAllReviews(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var reviews []models.Review
	if err := gormDB.Preload("Driver.User").Find(&reviews).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving reviews.")
		return
	}

	result := make([]AdminReviewView, 0, len(reviews))
	for _, review := range reviews {
		result = append(result, AdminReviewView{
			ID:         review.ID,
			TripID:     review.TripID,
			ClientName: review.ClientName,
			DriverName: review.Driver.User.FullName,
			Rating:     review.Rating,
			Comment:    review.Comment,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"all_reviews": result,
	})
}

func DeleteReview(c *gin.Context) {
	reviewID, err := uuid.Parse(c.Param("review_id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid review ID.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	result := gormDB.Where("id = ?", reviewID).Delete(&models.Review{})
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete review.")
		return
	}

	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Review is not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Review removed successfully.",
	})
}

func CreatePromoCode(c *gin.Context) {
	var req CreatePromoCodeRequest
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

	code := strings.ToUpper(req.Code)

	var existing models.PromoCode
	if result := gormDB.Where("code = ?", code).First(&existing); result.Error == nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "This code already exists")
		return
	}

	promo := models.PromoCode{
		ID:                 uuid.New(),
		Code:               code,
		DiscountPercentage: *req.Discount,
		IsActive:           true,
	}

	if err := gormDB.Create(&promo).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create promo code.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Promo-code " + code + " is active.",
	})
}

func GetActivePromoCodes(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var promos []models.PromoCode
	if err := gormDB.Where("is_active = ?", true).Find(&promos).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving promo codes.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"promo_codes": promos,
	})
}

func DeletePromoCode(c *gin.Context) {
	code := strings.ToUpper(c.Param("code"))

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	// Hard delete: a soft-deleted row would still hold the unique code
	// and block re-creating it later.
	result := gormDB.Unscoped().Where("code = ?", code).Delete(&models.PromoCode{})
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete promo code.")
		return
	}

	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Promo code not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Promo code " + code + " has been deleted.",
	})
}
