package controllers

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/infra-track/api-go/models"
	"gorm.io/gorm"
)

type StatsController struct {
	DB *gorm.DB
}

func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{DB: db}
}

// Statuses that still count as an active outage.
var activeStatuses = []string{models.StatusOutage, models.StatusInvestigating}

var trackedServices = []string{"power", "water", "internet"}

// GetStats godoc
// @Summary Dashboard summary numbers
// @Description Computed from the current table state on every read; nothing is precomputed
// @Tags stats
// @Produce json
// @Success 200 {object} StandardResponse
// @Router /stats [get]
func (sc *StatsController) GetStats(c *gin.Context) {
	var activeReports int64
	if err := sc.DB.Model(&models.Report{}).
		Where("status IN ?", activeStatuses).
		Count(&activeReports).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching stats"})
		return
	}

	var countriesCovered int64
	if err := sc.DB.Model(&models.Report{}).Distinct("country").Count(&countriesCovered).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching stats"})
		return
	}

	// Users who filed a report inside the trailing 30-day window.
	since := time.Now().AddDate(0, 0, -30)
	var activeUsers int64
	if err := sc.DB.Model(&models.Report{}).
		Where("user_id IS NOT NULL AND created_at >= ?", since).
		Distinct("user_id").
		Count(&activeUsers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching stats"})
		return
	}

	infrastructure := gin.H{}
	var sum, counted int
	for _, service := range trackedServices {
		health, err := sc.serviceHealth(service)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching stats"})
			return
		}
		infrastructure[service] = health
		sum += health
		counted++
	}
	infrastructure["overall"] = int(math.Round(float64(sum) / float64(counted)))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"hero": gin.H{
				"activeReports":    activeReports,
				"countriesCovered": countriesCovered,
				"activeUsers":      activeUsers,
			},
			"infrastructure": infrastructure,
		},
	})
}

// serviceHealth is the percentage of a service's reports that are no
// longer active outages. A service with no reports is healthy.
func (sc *StatsController) serviceHealth(serviceType string) (int, error) {
	var total, active int64
	if err := sc.DB.Model(&models.Report{}).Where("service_type = ?", serviceType).Count(&total).Error; err != nil {
		return 0, err
	}
	if total == 0 {
		return 100, nil
	}
	if err := sc.DB.Model(&models.Report{}).
		Where("service_type = ? AND status IN ?", serviceType, activeStatuses).
		Count(&active).Error; err != nil {
		return 0, err
	}
	return int(math.Round(float64(total-active) / float64(total) * 100)), nil
}

// GetTrends godoc
// @Summary Per-day report counts per service type
// @Description Real aggregation over the reports table for the trailing window
// @Tags stats
// @Produce json
// @Param days query int false "Window size in days (default 7, max 30)"
// @Success 200 {object} StandardResponse
// @Router /stats/trends [get]
func (sc *StatsController) GetTrends(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "7"))
	if err != nil || days <= 0 {
		days = 7
	}
	if days > 30 {
		days = 30
	}

	now := time.Now()
	year, month, day := now.Date()
	today := time.Date(year, month, day, 0, 0, 0, 0, now.Location())
	since := today.AddDate(0, 0, -(days - 1))

	var rows []struct {
		ServiceType string
		CreatedAt   time.Time
	}
	if err := sc.DB.Model(&models.Report{}).
		Select("service_type, created_at").
		Where("created_at >= ?", since).
		Scan(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching trends"})
		return
	}

	// Bucket per day so every day of the window shows up, including
	// the ones with zero reports.
	trends := make(map[string]map[string]int64)
	for i := 0; i < days; i++ {
		day := since.AddDate(0, 0, i).Format("2006-01-02")
		trends[day] = make(map[string]int64)
	}
	for _, row := range rows {
		day := row.CreatedAt.Format("2006-01-02")
		if bucket, ok := trends[day]; ok {
			bucket[row.ServiceType]++
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"days": days, "trends": trends}})
}
