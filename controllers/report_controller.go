package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/infra-track/api-go/models"
	"github.com/infra-track/api-go/realtime"
	"github.com/infra-track/api-go/utils"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type ReportController struct {
	DB      *gorm.DB
	Hub     *realtime.Hub
	Uploads *UploadController
}

func NewReportController(db *gorm.DB, hub *realtime.Hub, uploads *UploadController) *ReportController {
	return &ReportController{DB: db, Hub: hub, Uploads: uploads}
}

// ReportWithUser is a report row joined with its submitter's display
// name and verification flag. Both are nil for anonymous reports.
type ReportWithUser struct {
	models.Report
	UserName     *string `json:"user_name"`
	UserVerified *bool   `json:"user_verified"`
}

func (rc *ReportController) joinedReports() *gorm.DB {
	return rc.DB.Model(&models.Report{}).
		Select("reports.*, users.full_name as user_name, users.verified as user_verified").
		Joins("LEFT JOIN users ON reports.user_id = users.id")
}

// CreateReport godoc
// @Summary Create an outage report
// @Description Accepts a multipart form with an optional image; anonymous reports are allowed
// @Tags reports
// @Accept mpfd
// @Produce json
// @Success 201 {object} StandardResponse
// @Router /reports [post]
func (rc *ReportController) CreateReport(c *gin.Context) {
	serviceType := c.PostForm("service_type")
	title := c.PostForm("title")
	country := c.PostForm("country")
	city := c.PostForm("city")

	if serviceType == "" || title == "" || country == "" || city == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Service type, title, country, and city are required"})
		return
	}

	status := c.PostForm("status")
	if status == "" {
		status = models.StatusOutage
	}
	severity := c.PostForm("severity")
	if severity == "" {
		severity = "medium"
	}

	var userID *uint
	if v := c.PostForm("user_id"); v != "" {
		parsed, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid user id"})
			return
		}
		id := uint(parsed)
		userID = &id
	}

	// Validate and store the image before touching the database.
	var imagePath *string
	if file, err := c.FormFile("image"); err == nil && file != nil {
		if rc.Uploads == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Image storage is not configured"})
			return
		}
		path, err := rc.Uploads.SaveReportImage(file)
		if err != nil {
			if errors.Is(err, ErrImageTooLarge) || errors.Is(err, ErrNotImage) {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error storing image"})
			}
			return
		}
		imagePath = &path
	}

	report := models.Report{
		UserID:            userID,
		ServiceType:       serviceType,
		Title:             title,
		Description:       optionalString(c.PostForm("description")),
		Status:            status,
		Severity:          severity,
		Country:           country,
		City:              city,
		LocationAddress:   optionalString(c.PostForm("location_address")),
		LocationLatitude:  optionalFloat(c.PostForm("location_latitude")),
		LocationLongitude: optionalFloat(c.PostForm("location_longitude")),
		ImagePath:         imagePath,
		Tags:              pq.StringArray(c.PostFormArray("tags")),
	}

	tx := rc.DB.Begin()

	if err := tx.Create(&report).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error creating report"})
		return
	}

	if userID != nil {
		if err := tx.Model(&models.User{}).Where("id = ?", *userID).
			Update("total_reports", gorm.Expr("total_reports + ?", 1)).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error creating report"})
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error creating report"})
		return
	}

	if rc.Hub != nil {
		rc.Hub.Broadcast(realtime.EventNewReport, report)
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Report created successfully", "data": report})
}

// GetReports godoc
// @Summary List reports with optional filters
// @Tags reports
// @Produce json
// @Param service_type query string false "Filter by service type"
// @Param status query string false "Filter by status"
// @Param user_id query int false "Filter by submitter"
// @Param limit query int false "Page size (default 50)"
// @Param offset query int false "Offset (default 0)"
// @Success 200 {object} StandardResponse
// @Router /reports [get]
func (rc *ReportController) GetReports(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 {
		limit = 50
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	query := rc.joinedReports()

	if serviceType := c.Query("service_type"); serviceType != "" {
		query = query.Where("reports.service_type = ?", serviceType)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("reports.status = ?", status)
	}
	if userID := c.Query("user_id"); userID != "" {
		query = query.Where("reports.user_id = ?", userID)
	}

	var reports []ReportWithUser
	if err := query.Order("reports.created_at DESC").Limit(limit).Offset(offset).Find(&reports).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching reports"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "reports": reports, "count": len(reports)})
}

// GetReport godoc
// @Summary Fetch a single report
// @Tags reports
// @Produce json
// @Param id path int true "Report ID"
// @Success 200 {object} StandardResponse
// @Router /reports/{id} [get]
func (rc *ReportController) GetReport(c *gin.Context) {
	var report ReportWithUser
	if err := rc.joinedReports().Where("reports.id = ?", c.Param("id")).First(&report).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Report not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": report})
}

// VoteReport godoc
// @Summary Upvote or downvote a report
// @Description Applies a single atomic counter increment, then broadcasts the updated report
// @Tags reports
// @Accept json
// @Produce json
// @Param id path int true "Report ID"
// @Success 200 {object} StandardResponse
// @Router /reports/{id}/vote [put]
func (rc *ReportController) VoteReport(c *gin.Context) {
	var input struct {
		Action string `json:"action" binding:"required,oneof=upvote downvote"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Action must be upvote or downvote"})
		return
	}

	rc.applyVote(c, c.Param("id"), input.Action)
}

func (rc *ReportController) applyVote(c *gin.Context, reportID, action string) {
	column := "upvotes"
	if action == "downvote" {
		column = "downvotes"
	}

	// Single statement so concurrent votes never lose updates.
	result := rc.DB.Model(&models.Report{}).Where("id = ?", reportID).
		Update(column, gorm.Expr(column+" + ?", 1))
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error updating report"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Report not found"})
		return
	}

	rc.fetchAndBroadcast(c, reportID)
}

// SetReportStatus godoc
// @Summary Transition a report's lifecycle status
// @Tags reports
// @Accept json
// @Produce json
// @Param id path int true "Report ID"
// @Success 200 {object} StandardResponse
// @Router /reports/{id}/status [put]
func (rc *ReportController) SetReportStatus(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Status is required"})
		return
	}

	rc.applyStatus(c, c.Param("id"), input.Status)
}

func (rc *ReportController) applyStatus(c *gin.Context, reportID, status string) {
	result := rc.DB.Model(&models.Report{}).Where("id = ?", reportID).
		Update("status", status)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error updating report"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Report not found"})
		return
	}

	rc.fetchAndBroadcast(c, reportID)
}

// UpdateReport godoc
// @Summary Legacy combined vote/status mutation
// @Description Accepts either an action or a status, never both
// @Tags reports
// @Accept json
// @Produce json
// @Param id path int true "Report ID"
// @Success 200 {object} StandardResponse
// @Router /reports/{id} [put]
func (rc *ReportController) UpdateReport(c *gin.Context) {
	var input struct {
		Action string `json:"action"`
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	switch {
	case input.Action != "" && input.Status != "":
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Provide either action or status, not both"})
	case input.Action == "upvote" || input.Action == "downvote":
		rc.applyVote(c, c.Param("id"), input.Action)
	case input.Action != "":
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Action must be upvote or downvote"})
	case input.Status != "":
		rc.applyStatus(c, c.Param("id"), input.Status)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Either action (upvote/downvote) or status is required"})
	}
}

func (rc *ReportController) fetchAndBroadcast(c *gin.Context, reportID string) {
	var report models.Report
	if err := rc.DB.First(&report, reportID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Report not found"})
		return
	}

	if rc.Hub != nil {
		rc.Hub.Broadcast(realtime.EventReportUpdated, report)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Report updated successfully", "data": report})
}

// DeleteReport godoc
// @Summary Delete a report
// @Tags reports
// @Produce json
// @Param id path int true "Report ID"
// @Success 200 {object} StandardResponse
// @Router /reports/{id} [delete]
func (rc *ReportController) DeleteReport(c *gin.Context) {
	var report models.Report
	if err := rc.DB.First(&report, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Report not found"})
		return
	}

	tx := rc.DB.Begin()

	// Verifications belong to the report they vouch for.
	if err := tx.Where("report_id = ?", report.ID).Delete(&models.Verification{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error deleting report"})
		return
	}

	if err := tx.Delete(&report).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error deleting report"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error deleting report"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Report deleted successfully", "data": report})
}

// VerifyReport godoc
// @Summary Vouch that a report is real
// @Description Idempotent per (user, report) pair
// @Tags reports
// @Produce json
// @Param id path int true "Report ID"
// @Success 200 {object} StandardResponse
// @Router /reports/{id}/verify [post]
func (rc *ReportController) VerifyReport(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Access token required"})
		return
	}

	var report models.Report
	if err := rc.DB.First(&report, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Report not found"})
		return
	}

	verification := models.Verification{UserID: user.UserID, ReportID: report.ID}
	if err := rc.DB.Where("user_id = ? AND report_id = ?", user.UserID, report.ID).
		FirstOrCreate(&verification).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error verifying report"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Report verified", "data": verification})
}

func optionalFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
