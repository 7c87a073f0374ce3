package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/infra-track/api-go/controllers"
)

func SetupNotificationRoutes(protected *gin.RouterGroup, notificationController *controllers.NotificationController) {
	notifications := protected.Group("/notifications")
	{
		notifications.POST("", notificationController.SendNotification)
		notifications.POST("/broadcast", notificationController.BroadcastNotification)
		notifications.GET("/:id", notificationController.GetUserNotifications)
		notifications.PUT("/:id/read", notificationController.MarkNotificationRead)
		notifications.PUT("/:id/read-all", notificationController.MarkAllNotificationsRead)
	}
}
