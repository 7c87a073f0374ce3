package controllers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/infra-track/api-go/config"
	"gorm.io/gorm"
)

// Report images are bounded the way the original dashboard bounded
// them: 5MB, image types only.
const maxImageSize = 5 * 1024 * 1024

// Rejections of the upload itself. Anything else out of
// SaveReportImage is a storage failure.
var (
	ErrImageTooLarge = fmt.Errorf("image exceeds the %dMB limit", maxImageSize/(1024*1024))
	ErrNotImage      = errors.New("only image files are allowed")
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

type UploadController struct {
	DB       *gorm.DB
	R2Client *s3.Client
	R2Config *config.R2Config
}

func NewUploadController(db *gorm.DB) *UploadController {
	r2Config := config.GetR2Config()

	r2Client := s3.New(s3.Options{
		BaseEndpoint: aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", r2Config.AccountID)),
		Credentials: credentials.NewStaticCredentialsProvider(
			r2Config.AccessKeyID,
			r2Config.SecretAccessKey,
			"",
		),
		Region: r2Config.Region,
	})

	return &UploadController{
		DB:       db,
		R2Client: r2Client,
		R2Config: r2Config,
	}
}

// SaveReportImage validates a multipart image and pushes it to R2.
// The content type is sniffed from the file head, not trusted from the
// client. Returns the public URL of the stored object.
func (uc *UploadController) SaveReportImage(file *multipart.FileHeader) (string, error) {
	if file.Size > maxImageSize {
		return "", ErrImageTooLarge
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("could not read image: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return "", fmt.Errorf("could not read image: %w", err)
	}

	contentType := http.DetectContentType(data)
	if !allowedImageTypes[contentType] {
		return "", ErrNotImage
	}

	key := uc.generateImageKey(file.Filename)

	_, err = uc.R2Client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(uc.R2Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to store image: %w", err)
	}

	return fmt.Sprintf("%s/%s", uc.R2Config.PublicURL, key), nil
}

type PresignedURLRequest struct {
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
	FileSize    int64  `json:"fileSize" binding:"required"`
}

type PresignedURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	FileURL   string `json:"fileUrl"`
	Key       string `json:"key"`
	ExpiresIn int    `json:"expiresIn"`
}

// GetPresignedURL godoc
// @Summary Presigned PUT URL for a report image
// @Description Direct-upload path for the dashboard; same size and type limits as the multipart path
// @Tags uploads
// @Accept json
// @Produce json
// @Success 200 {object} StandardResponse
// @Router /uploads/presign [post]
func (uc *UploadController) GetPresignedURL(c *gin.Context) {
	var req PresignedURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	if !allowedImageTypes[req.ContentType] {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Only image files are allowed"})
		return
	}

	if req.FileSize > maxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "File size exceeds limit"})
		return
	}

	key := uc.generateImageKey(req.FileName)

	presignedURL, err := uc.createPresignedURL(key, req.ContentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create upload URL"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data: PresignedURLResponse{
			UploadURL: presignedURL,
			FileURL:   fmt.Sprintf("%s/%s", uc.R2Config.PublicURL, key),
			Key:       key,
			ExpiresIn: 3600, // 1 hour
		},
		Message: "Presigned URL generated successfully",
	})
}

// DeleteFile godoc
// @Summary Remove an uploaded object
// @Tags uploads
// @Accept json
// @Produce json
// @Success 200 {object} StandardResponse
// @Router /uploads [delete]
func (uc *UploadController) DeleteFile(c *gin.Context) {
	var req struct {
		Key string `json:"key" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	// Only report image keys may be deleted through this endpoint.
	if !strings.HasPrefix(req.Key, "reports/") {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Invalid key"})
		return
	}

	_, err := uc.R2Client.DeleteObject(context.TODO(), &s3.DeleteObjectInput{
		Bucket: aws.String(uc.R2Config.BucketName),
		Key:    aws.String(req.Key),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete file"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "File deleted successfully"})
}

func (uc *UploadController) generateImageKey(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return fmt.Sprintf("reports/%s%s", uuid.New().String(), ext)
}

func (uc *UploadController) createPresignedURL(key, contentType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(uc.R2Config.BucketName),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}

	presigner := s3.NewPresignClient(uc.R2Client)
	req, err := presigner.PresignPutObject(context.TODO(), input, func(opts *s3.PresignOptions) {
		opts.Expires = time.Hour
	})
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
