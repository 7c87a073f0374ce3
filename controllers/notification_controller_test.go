package controllers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/infra-track/api-go/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendNotification(t *testing.T) {
	r, db, _ := newTestRouter(t)
	user := createTestUser(t, db, "amina", "amina@example.com")

	w := doJSON(r, http.MethodPost, "/api/notifications", authHeader(t, user), map[string]interface{}{
		"user_id": user.ID,
		"title":   "Power restored",
		"message": "The Yaoundé grid is back online",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, false, data["is_read"])

	w = doJSON(r, http.MethodPost, "/api/notifications", authHeader(t, user), map[string]interface{}{
		"user_id": 999,
		"title":   "x",
		"message": "y",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBroadcastCreatesOneRowPerUser(t *testing.T) {
	r, db, _ := newTestRouter(t)
	sender := createTestUser(t, db, "admin", "admin@example.com")
	for i := 0; i < 4; i++ {
		createTestUser(t, db, fmt.Sprintf("user%d", i), fmt.Sprintf("user%d@example.com", i))
	}

	w := doJSON(r, http.MethodPost, "/api/notifications/broadcast", authHeader(t, sender), map[string]interface{}{
		"title":   "Maintenance window",
		"message": "The water network will be offline tonight",
	})

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(5), body["count"]) // sender included

	var rows int64
	db.Model(&models.Notification{}).Count(&rows)
	assert.Equal(t, int64(5), rows)

	// Every row is unread and carries the broadcast payload.
	var unread int64
	db.Model(&models.Notification{}).Where("is_read = ? AND title = ?", false, "Maintenance window").Count(&unread)
	assert.Equal(t, int64(5), unread)
}

func TestBroadcastWithNoUsers(t *testing.T) {
	r, db, _ := newTestRouter(t)
	sender := createTestUser(t, db, "admin", "admin@example.com")
	auth := authHeader(t, sender)
	require.NoError(t, db.Delete(sender).Error)

	w := doJSON(r, http.MethodPost, "/api/notifications/broadcast", auth, map[string]interface{}{
		"title":   "Hello",
		"message": "Anyone there?",
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decodeBody(t, w)["count"])
}

func TestListNotificationsNewestFirstCappedAt50(t *testing.T) {
	r, db, _ := newTestRouter(t)
	user := createTestUser(t, db, "amina", "amina@example.com")

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 55; i++ {
		n := models.Notification{
			UserID:    user.ID,
			Title:     fmt.Sprintf("n%d", i),
			Message:   "m",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(&n).Error)
	}

	w := doJSON(r, http.MethodGet, fmt.Sprintf("/api/notifications/%d", user.ID), authHeader(t, user), nil)
	require.Equal(t, http.StatusOK, w.Code)

	notifications := decodeBody(t, w)["notifications"].([]interface{})
	require.Len(t, notifications, 50)
	newest := notifications[0].(map[string]interface{})
	assert.Equal(t, "n54", newest["title"])
}

func TestMarkAllReadIsIdempotent(t *testing.T) {
	r, db, _ := newTestRouter(t)
	user := createTestUser(t, db, "amina", "amina@example.com")

	for i := 0; i < 3; i++ {
		require.NoError(t, db.Create(&models.Notification{UserID: user.ID, Title: "t", Message: "m"}).Error)
	}
	path := fmt.Sprintf("/api/notifications/%d/read-all", user.ID)

	w := doJSON(r, http.MethodPut, path, authHeader(t, user), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var unread int64
	db.Model(&models.Notification{}).Where("user_id = ? AND is_read = ?", user.ID, false).Count(&unread)
	assert.Zero(t, unread)

	// Second call changes nothing and still succeeds.
	w = doJSON(r, http.MethodPut, path, authHeader(t, user), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeBody(t, w)["success"])
}

func TestMarkSingleNotificationRead(t *testing.T) {
	r, db, _ := newTestRouter(t)
	user := createTestUser(t, db, "amina", "amina@example.com")

	n := models.Notification{UserID: user.ID, Title: "t", Message: "m"}
	require.NoError(t, db.Create(&n).Error)
	other := models.Notification{UserID: user.ID, Title: "t2", Message: "m2"}
	require.NoError(t, db.Create(&other).Error)

	w := doJSON(r, http.MethodPut, fmt.Sprintf("/api/notifications/%d/read", n.ID), authHeader(t, user), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var read models.Notification
	require.NoError(t, db.First(&read, n.ID).Error)
	assert.True(t, read.IsRead)

	var untouched models.Notification
	require.NoError(t, db.First(&untouched, other.ID).Error)
	assert.False(t, untouched.IsRead)
}
