package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petkovm/ridehail/internal/models"
)

func TestTripLifecycle(t *testing.T) {
	db := setupTestDB(t)
	router := newTestRouter(db)

	client := createTestUser(t, db, models.RoleClient)
	driverUser := createTestUser(t, db, models.RoleDriver)
	driver := createTestDriver(t, db, driverUser.ID)

	w := performRequest(router, http.MethodPost, "/trip/request", gin.H{
		"client_id":       client.ID,
		"pickup_location": "Studentski Grad",
		"destination":     "Letishte Sofia",
		"final_price":     25.0,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		TripID uuid.UUID `json:"trip_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	var trip models.Trip
	require.NoError(t, db.Where("id = ?", created.TripID).First(&trip).Error)
	assert.Equal(t, models.TripSearching, trip.Status)
	assert.Nil(t, trip.DriverID)

	w = performRequest(router, http.MethodPatch, fmt.Sprintf("/trip/%s/accept", created.TripID), gin.H{
		"driver_id": driver.ID,
	})
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, db.Where("id = ?", created.TripID).First(&trip).Error)
	assert.Equal(t, models.TripAccepted, trip.Status)
	require.NotNil(t, trip.DriverID)
	assert.Equal(t, driver.ID, *trip.DriverID)

	t.Run("accepted trip cannot be accepted again", func(t *testing.T) {
		w := performRequest(router, http.MethodPatch, fmt.Sprintf("/trip/%s/accept", created.TripID), gin.H{
			"driver_id": driver.ID,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	w = performRequest(router, http.MethodPatch, fmt.Sprintf("/trip/%s/complete", created.TripID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, db.Where("id = ?", created.TripID).First(&trip).Error)
	assert.Equal(t, models.TripCompleted, trip.Status)
	assert.Equal(t, models.PaymentPaid, trip.PaymentStatus)

	var paid models.Driver
	require.NoError(t, db.Where("id = ?", driver.ID).First(&paid).Error)
	assert.InDelta(t, 25.0, paid.TotalEarnings, 1e-9)

	t.Run("completed trip cannot be completed twice", func(t *testing.T) {
		w := performRequest(router, http.MethodPatch, fmt.Sprintf("/trip/%s/complete", created.TripID), nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "already been completed")

		var again models.Driver
		require.NoError(t, db.Where("id = ?", driver.ID).First(&again).Error)
		assert.InDelta(t, 25.0, again.TotalEarnings, 1e-9)
	})
}

func TestCompleteTripFallbackFare(t *testing.T) {
	db := setupTestDB(t)
	router := newTestRouter(db)

	client := createTestUser(t, db, models.RoleClient)
	driverUser := createTestUser(t, db, models.RoleDriver)
	driver := createTestDriver(t, db, driverUser.ID)
	trip := createTestTrip(t, db, client.ID, models.TripAccepted, &driver.ID, 0)

	w := performRequest(router, http.MethodPatch, fmt.Sprintf("/trip/%s/complete", trip.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var paid models.Driver
	require.NoError(t, db.Where("id = ?", driver.ID).First(&paid).Error)
	assert.InDelta(t, models.FallbackFare, paid.TotalEarnings, 1e-9)
}

func TestCompleteTripWithoutDriver(t *testing.T) {
	db := setupTestDB(t)
	router := newTestRouter(db)

	client := createTestUser(t, db, models.RoleClient)
	trip := createTestTrip(t, db, client.ID, models.TripSearching, nil, 30.0)

	w := performRequest(router, http.MethodPatch, fmt.Sprintf("/trip/%s/complete", trip.ID), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No driver assigned")

	var unchanged models.Trip
	require.NoError(t, db.Where("id = ?", trip.ID).First(&unchanged).Error)
	assert.Equal(t, models.TripSearching, unchanged.Status)
	assert.Equal(t, models.PaymentPending, unchanged.PaymentStatus)
}

func TestCalculateTripPriceWithPromo(t *testing.T) {
	db := setupTestDB(t)
	router := newTestRouter(db)

	require.NoError(t, db.Create(&models.PromoCode{
		Code:               "SALE",
		DiscountPercentage: 10,
		IsActive:           true,
	}).Error)

	inactive := models.PromoCode{
		Code:               "EXPIRED",
		DiscountPercentage: 50,
	}
	require.NoError(t, db.Create(&inactive).Error)
	require.NoError(t, db.Model(&inactive).Update("is_active", false).Error)

	finalPrice := func(query string) float64 {
		t.Helper()
		w := performRequest(router, http.MethodGet, "/trips/calculate-price?"+query, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			FinalPrice float64 `json:"final_price"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		return resp.FinalPrice
	}

	// Code lookup is case-insensitive on the client side.
	assert.InDelta(t, 90.0, finalPrice("original_price=100&promo_code=sale"), 1e-9)
	assert.InDelta(t, 135.0, finalPrice("original_price=100&is_urgent=true&promo_code=SALE"), 1e-9)

	t.Run("unknown code is a no-op", func(t *testing.T) {
		assert.InDelta(t, 100.0, finalPrice("original_price=100&promo_code=FAKE"), 1e-9)
	})

	t.Run("inactive code is a no-op", func(t *testing.T) {
		assert.InDelta(t, 100.0, finalPrice("original_price=100&promo_code=EXPIRED"), 1e-9)
	})
}
