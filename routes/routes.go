package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/infra-track/api-go/controllers"
	"github.com/infra-track/api-go/middleware"
	"github.com/infra-track/api-go/realtime"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, hub *realtime.Hub) {
	// Initialize controllers
	authController := controllers.NewAuthController(db)
	userController := controllers.NewUserController(db)
	uploadController := controllers.NewUploadController(db)
	reportController := controllers.NewReportController(db, hub, uploadController)
	notificationController := controllers.NewNotificationController(db, hub)
	statsController := controllers.NewStatsController(db)

	// Realtime fan-out channel; every client subscribes on connect.
	r.GET("/ws", realtime.ServeWS(hub))

	// Public routes
	public := r.Group("/api")
	{
		public.POST("/auth/register", authController.Register)
		public.POST("/auth/login", authController.Login)

		public.GET("/users", userController.GetUsers)
		public.GET("/users/:id", userController.GetUser)
		public.GET("/users/:id/stats", userController.GetUserStats)

		public.GET("/stats", statsController.GetStats)
		public.GET("/stats/trends", statsController.GetTrends)

		SetupReportRoutes(public, reportController)
	}

	// Protected routes
	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.PUT("/users/:id", userController.UpdateUser)
		protected.DELETE("/users/:id", userController.DeleteUser)

		protected.POST("/reports/:id/verify", reportController.VerifyReport)

		SetupNotificationRoutes(protected, notificationController)
		SetupUploadRoutes(protected, uploadController)
	}
}
