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

func TestUpdateUserSettings(t *testing.T) {
	db := setupTestDB(t)
	router := newTestRouter(db)

	user := createTestUser(t, db, models.RoleClient)
	address := "bul. Vitosha 1"
	user.HomeAddress = &address
	require.NoError(t, db.Save(&user).Error)

	w := performRequest(router, http.MethodPatch, fmt.Sprintf("/user/%s/settings", user.ID), gin.H{
		"address": "",
		"prefs":   "no smoking",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.User
	require.NoError(t, db.Where("id = ?", user.ID).First(&updated).Error)

	// The empty address must not clobber the stored one.
	require.NotNil(t, updated.HomeAddress)
	assert.Equal(t, "bul. Vitosha 1", *updated.HomeAddress)
	require.NotNil(t, updated.Preferences)
	assert.Equal(t, "no smoking", *updated.Preferences)
}
