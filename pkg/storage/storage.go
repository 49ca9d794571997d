package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Config holds storage configuration
type Config struct {
	Bucket        string   `json:"bucket"`
	Region        string   `json:"region"`
	Endpoint      string   `json:"endpoint"` // For S3-compatible storage
	AccessKey     string   `json:"access_key"`
	SecretKey     string   `json:"secret_key"`
	BaseURL       string   `json:"base_url"` // Public URL prefix
	MaxFileSizeMB int      `json:"max_file_size_mb"`
	AllowedTypes  []string `json:"allowed_types"` // e.g., ["image/jpeg", "image/png", "image/webp"]
}

// UploadResult contains the result of an upload operation
type UploadResult struct {
	Key        string    `json:"key"`
	URL        string    `json:"url"`
	Size       int64     `json:"size"`
	MimeType   string    `json:"mime_type"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Storage interface defines the storage operations
type Storage interface {
	// Upload uploads a file to storage
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (*UploadResult, error)

	// Download downloads a file from storage
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete deletes a file from storage
	Delete(ctx context.Context, key string) error

	// GetURL returns the public URL for a file
	GetURL(key string) string

	// Exists checks if a file exists
	Exists(ctx context.Context, key string) (bool, error)
}

// GenerateCampaignImageKey generates a unique storage key for a campaign image
func GenerateCampaignImageKey(campaignID uuid.UUID, filename string) string {
	ext := path.Ext(filename)
	uniqueID := uuid.New().String()[:8]
	timestamp := time.Now().Format("20060102")

	// Format: campaigns/{campaign_id}/images/{timestamp}_{unique_id}{ext}
	return fmt.Sprintf("campaigns/%s/images/%s_%s%s",
		campaignID.String(),
		timestamp,
		uniqueID,
		ext,
	)
}

// GenerateCampaignVideoKey generates a unique storage key for a campaign video
func GenerateCampaignVideoKey(campaignID uuid.UUID, filename string) string {
	ext := path.Ext(filename)
	uniqueID := uuid.New().String()[:8]
	timestamp := time.Now().Format("20060102")

	return fmt.Sprintf("campaigns/%s/videos/%s_%s%s",
		campaignID.String(),
		timestamp,
		uniqueID,
		ext,
	)
}

// IsImageContentType reports whether the content type is a supported raster image
func IsImageContentType(contentType string) bool {
	switch strings.ToLower(contentType) {
	case "image/jpeg", "image/png", "image/webp":
		return true
	}
	return false
}
