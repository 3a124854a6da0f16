package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petkovm/ridehail/internal/models"
)

func TestManageDriverService(t *testing.T) {
	db := setupTestDB(t)
	router := newTestRouter(db)

	driverUser := createTestUser(t, db, models.RoleDriver)
	driver := createTestDriver(t, db, driverUser.ID)

	w := performRequest(router, http.MethodPut, fmt.Sprintf("/driver/%s/manage-service", driver.ID), gin.H{
		"price":    0.0,
		"schedule": "",
		"location": "Mladost 4",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Driver
	require.NoError(t, db.Where("id = ?", driver.ID).First(&updated).Error)

	// Zero is a real price; the empty schedule leaves the default alone.
	assert.InDelta(t, 0.0, updated.PricePerKm, 1e-9)
	assert.Equal(t, models.DefaultSchedule, updated.Schedule)
	assert.Equal(t, "Mladost 4", updated.CurrentLocation)
}
