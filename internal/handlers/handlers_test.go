package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/petkovm/ridehail/internal/middleware"
	"github.com/petkovm/ridehail/internal/models"
)

// setupTestDB opens an ephemeral sqlite store with the full schema
// migrated, scoped to one test.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.User{}, &models.Driver{}, &models.Trip{}, &models.Review{}, &models.Message{}, &models.PromoCode{})
	require.NoError(t, err)

	return db
}

// newTestRouter wires the handlers under test the way the server does,
// minus the auth middleware.
func newTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(middleware.DatabaseMiddleware(db))

	r.POST("/register", Register)
	r.POST("/login", Login)
	r.PATCH("/user/:id/settings", UpdateUserSettings)
	r.PUT("/driver/:id/manage-service", ManageDriverService)
	r.POST("/trip/request", RequestTrip)
	r.PATCH("/trip/:id/accept", AcceptTrip)
	r.PATCH("/trip/:id/cancel", CancelTrip)
	r.PATCH("/trip/:id/complete", CompleteTrip)
	r.GET("/trip/:id/status", TrackTripStatus)
	r.GET("/trips/calculate-price", CalculateTripPrice)
	r.POST("/reviews/add", LeaveReview)
	r.POST("/admin/promo-codes/create", CreatePromoCode)
	r.DELETE("/admin/promo-codes/:code", DeletePromoCode)

	return r
}

func performRequest(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createTestUser(t *testing.T, db *gorm.DB, role models.Role) models.User {
	t.Helper()

	suffix := uuid.NewString()[:8]
	user := models.User{
		ID:       uuid.New(),
		FullName: "Test User " + suffix,
		Email:    "user-" + suffix + "@example.com",
		Phone:    "+359" + suffix,
		Password: "irrelevant",
		Role:     role,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createTestDriver(t *testing.T, db *gorm.DB, userID uuid.UUID) models.Driver {
	t.Helper()

	driver := models.Driver{
		ID:           uuid.New(),
		UserID:       userID,
		CarModel:     "Skoda Octavia",
		LicensePlate: "CB1234AB",
	}
	require.NoError(t, db.Create(&driver).Error)
	return driver
}

func createTestTrip(t *testing.T, db *gorm.DB, clientID uuid.UUID, status models.TripStatus, driverID *uuid.UUID, finalPrice float64) models.Trip {
	t.Helper()

	trip := models.Trip{
		ID:             uuid.New(),
		ClientID:       clientID,
		DriverID:       driverID,
		PickupLocation: "Levski G",
		Destination:    "Lozenets",
		Status:         status,
		PaymentStatus:  models.PaymentPending,
		FinalPrice:     finalPrice,
		CarCategory:    "Standard",
		SeatsAvailable: 4,
	}
	require.NoError(t, db.Create(&trip).Error)
	return trip
}
