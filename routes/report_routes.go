package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/infra-track/api-go/controllers"
)

func SetupReportRoutes(api *gin.RouterGroup, reportController *controllers.ReportController) {
	reports := api.Group("/reports")
	{
		reports.GET("", reportController.GetReports)
		reports.POST("", reportController.CreateReport)
		reports.GET("/:id", reportController.GetReport)
		reports.PUT("/:id", reportController.UpdateReport)
		reports.PUT("/:id/vote", reportController.VoteReport)
		reports.PUT("/:id/status", reportController.SetReportStatus)
		reports.DELETE("/:id", reportController.DeleteReport)
	}
}
