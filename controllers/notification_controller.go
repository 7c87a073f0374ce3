package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/infra-track/api-go/models"
	"github.com/infra-track/api-go/realtime"
	"gorm.io/gorm"
)

type NotificationController struct {
	DB  *gorm.DB
	Hub *realtime.Hub
}

func NewNotificationController(db *gorm.DB, hub *realtime.Hub) *NotificationController {
	return &NotificationController{DB: db, Hub: hub}
}

// SendNotification godoc
// @Summary Send a notification to one user
// @Tags notifications
// @Accept json
// @Produce json
// @Success 201 {object} StandardResponse
// @Router /notifications [post]
func (nc *NotificationController) SendNotification(c *gin.Context) {
	var input struct {
		UserID  uint   `json:"user_id" binding:"required"`
		Title   string `json:"title" binding:"required"`
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "User id, title and message are required"})
		return
	}

	var user models.User
	if err := nc.DB.First(&user, input.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		return
	}

	notification := models.Notification{
		UserID:  input.UserID,
		Title:   input.Title,
		Message: input.Message,
	}
	if err := nc.DB.Create(&notification).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error creating notification"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Notification created", "data": notification})
}

// BroadcastNotification godoc
// @Summary Fan a notification out to every registered user
// @Description Individual insert failures are logged and skipped; the response carries the created count
// @Tags notifications
// @Accept json
// @Produce json
// @Success 200 {object} StandardResponse
// @Router /notifications/broadcast [post]
func (nc *NotificationController) BroadcastNotification(c *gin.Context) {
	var input struct {
		Title   string `json:"title" binding:"required"`
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Title and message are required"})
		return
	}

	var userIDs []uint
	if err := nc.DB.Model(&models.User{}).Pluck("id", &userIDs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error broadcasting notification"})
		return
	}

	if len(userIDs) == 0 {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "No users to notify", "count": 0})
		return
	}

	created := 0
	for _, id := range userIDs {
		notification := models.Notification{
			UserID:  id,
			Title:   input.Title,
			Message: input.Message,
		}
		if err := nc.DB.Create(&notification).Error; err != nil {
			log.Printf("Failed to create notification for user %d: %v", id, err)
			continue
		}
		created++
	}

	// One event for the whole broadcast, not one per user.
	if nc.Hub != nil {
		nc.Hub.Broadcast(realtime.EventNewNotification, gin.H{
			"title":   input.Title,
			"message": input.Message,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Notification sent",
		"count":   created,
	})
}

// GetUserNotifications godoc
// @Summary List a user's most recent notifications
// @Tags notifications
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} StandardResponse
// @Router /notifications/{userId} [get]
func (nc *NotificationController) GetUserNotifications(c *gin.Context) {
	var notifications []models.Notification
	if err := nc.DB.Where("user_id = ?", c.Param("id")).
		Order("created_at DESC").
		Limit(50).
		Find(&notifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "notifications": notifications})
}

// MarkNotificationRead godoc
// @Summary Mark one notification as read
// @Description Idempotent; marking an already-read notification is a no-op
// @Tags notifications
// @Produce json
// @Param id path int true "Notification ID"
// @Success 200 {object} StandardResponse
// @Router /notifications/{id}/read [put]
func (nc *NotificationController) MarkNotificationRead(c *gin.Context) {
	if err := nc.DB.Model(&models.Notification{}).
		Where("id = ?", c.Param("id")).
		Update("is_read", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error marking notification as read"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Notification marked as read"})
}

// MarkAllNotificationsRead godoc
// @Summary Mark all of a user's notifications as read
// @Description Idempotent; a second call changes nothing and still succeeds
// @Tags notifications
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} StandardResponse
// @Router /notifications/{userId}/read-all [put]
func (nc *NotificationController) MarkAllNotificationsRead(c *gin.Context) {
	if err := nc.DB.Model(&models.Notification{}).
		Where("user_id = ?", c.Param("id")).
		Update("is_read", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error marking notifications as read"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "All notifications marked as read"})
}
