package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/infra-track/api-go/models"
	"github.com/infra-track/api-go/utils"
	"gorm.io/gorm"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// GetUsers godoc
// @Summary List all users
// @Tags users
// @Produce json
// @Success 200 {object} StandardResponse
// @Router /users [get]
func (uc *UserController) GetUsers(c *gin.Context) {
	var users []models.User
	if err := uc.DB.Order("created_at DESC").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "users": users})
}

// GetUser godoc
// @Summary Fetch a single user
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} StandardResponse
// @Router /users/{id} [get]
func (uc *UserController) GetUser(c *gin.Context) {
	var user models.User
	if err := uc.DB.First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": user})
}

type UpdateUserRequest struct {
	FullName    *string `json:"full_name"`
	PhoneNumber *string `json:"phone_number"`
	Country     *string `json:"country"`
	City        *string `json:"city"`
	Verified    *bool   `json:"verified"`
}

// UpdateUser godoc
// @Summary Update profile fields
// @Description Partial update; absent fields are left untouched
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} StandardResponse
// @Router /users/{id} [put]
func (uc *UserController) UpdateUser(c *gin.Context) {
	currentUser := utils.GetUser(c)
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid user id"})
		return
	}

	if currentUser == nil || currentUser.UserID != uint(userID) {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "You can only update your own profile"})
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		return
	}

	updates := make(map[string]interface{})
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.PhoneNumber != nil {
		updates["phone_number"] = *req.PhoneNumber
	}
	if req.Country != nil {
		updates["country"] = *req.Country
	}
	if req.City != nil {
		updates["city"] = *req.City
	}
	if req.Verified != nil {
		updates["verified"] = *req.Verified
	}

	if len(updates) > 0 {
		if err := uc.DB.Model(&user).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error updating user"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User updated successfully", "data": user})
}

// DeleteUser godoc
// @Summary Delete a user and everything it owns
// @Description Cascades to the user's reports, verifications, and notifications
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} StandardResponse
// @Router /users/{id} [delete]
func (uc *UserController) DeleteUser(c *gin.Context) {
	currentUser := utils.GetUser(c)
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid user id"})
		return
	}

	if currentUser == nil || currentUser.UserID != uint(userID) {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "You can only delete your own account"})
		return
	}

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		return
	}

	tx := uc.DB.Begin()

	// Other users' verifications of this user's reports go with the
	// reports, so nothing points at a row that no longer exists.
	var reportIDs []uint
	if err := tx.Model(&models.Report{}).Where("user_id = ?", userID).
		Pluck("id", &reportIDs).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error deleting user"})
		return
	}

	if len(reportIDs) > 0 {
		if err := tx.Where("report_id IN ?", reportIDs).Delete(&models.Verification{}).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error deleting user"})
			return
		}
	}

	if err := tx.Where("user_id = ?", userID).Delete(&models.Report{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error deleting user"})
		return
	}

	if err := tx.Where("user_id = ?", userID).Delete(&models.Verification{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error deleting user"})
		return
	}

	if err := tx.Where("user_id = ?", userID).Delete(&models.Notification{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error deleting user"})
		return
	}

	if err := tx.Delete(&user).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error deleting user"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error deleting user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User deleted successfully", "data": user})
}

// GetUserStats godoc
// @Summary Aggregate report and vote counts for a user
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} StandardResponse
// @Router /users/{id}/stats [get]
func (uc *UserController) GetUserStats(c *gin.Context) {
	userID := c.Param("id")

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		return
	}

	var verificationsCount int64
	if err := uc.DB.Model(&models.Verification{}).Where("user_id = ?", userID).
		Count(&verificationsCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching user stats"})
		return
	}

	var votes struct {
		TotalUpvotes   int64
		TotalDownvotes int64
	}
	if err := uc.DB.Model(&models.Report{}).
		Select("COALESCE(SUM(upvotes), 0) as total_upvotes, COALESCE(SUM(downvotes), 0) as total_downvotes").
		Where("user_id = ?", userID).
		Scan(&votes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching user stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"total_reports":       user.TotalReports,
			"verifications_count": verificationsCount,
			"total_upvotes":       votes.TotalUpvotes,
			"total_downvotes":     votes.TotalDownvotes,
		},
	})
}
