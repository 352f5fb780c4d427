package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"autogenics-server/config"
)

// Storage uploads progress photos and hands back public URLs. The
// interface lets handlers run against a stub in tests.
type Storage interface {
	// EnsureBucket idempotently checks that the storage backend is ready
	// to accept uploads for the named bucket.
	EnsureBucket(ctx context.Context, bucket string) error
	// Upload stores the file under fileName and returns its public URL.
	Upload(ctx context.Context, bucket, fileName string, file io.Reader) (string, error)
}

var ErrStorageNotConfigured = errors.New("storage credentials are not configured")

// ValidateImageFile enforces the upload contract: image/* content type and
// at most maxBytes. Returns a user-facing reason when invalid.
func ValidateImageFile(h *multipart.FileHeader, maxBytes int64) (string, bool) {
	if h == nil || h.Size <= 0 {
		return "No image selected", false
	}
	if h.Size > maxBytes {
		return fmt.Sprintf("Image must be less than %dMB", maxBytes/(1024*1024)), false
	}
	contentType := h.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "image/") {
		return "", true
	}
	// Some clients omit the part content type; fall back to the extension.
	if contentType == "" {
		switch strings.ToLower(filepath.Ext(h.Filename)) {
		case ".jpg", ".jpeg", ".png", ".webp", ".gif":
			return "", true
		}
	}
	return "Only image files are allowed", false
}

// DisabledStorage stands in when no credentials are configured. Every
// call fails with ErrStorageNotConfigured so uploads degrade to a clear
// error instead of a nil dereference.
type DisabledStorage struct{}

func (DisabledStorage) EnsureBucket(ctx context.Context, bucket string) error {
	return ErrStorageNotConfigured
}

func (DisabledStorage) Upload(ctx context.Context, bucket, fileName string, file io.Reader) (string, error) {
	return "", ErrStorageNotConfigured
}

// CloudinaryStorage implements Storage against Cloudinary. Bucket names
// map to upload folders.
type CloudinaryStorage struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryStorage builds a client from the configured credentials.
func NewCloudinaryStorage() (*CloudinaryStorage, error) {
	cfg := config.AppConfig.Storage
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, ErrStorageNotConfigured
	}

	cld, err := cloudinary.NewFromURL(fmt.Sprintf("cloudinary://%s:%s@%s", cfg.APIKey, cfg.APISecret, cfg.CloudName))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}
	return &CloudinaryStorage{cld: cld}, nil
}

// EnsureBucket verifies credentials with an API ping. Cloudinary folders
// are created on first upload, so readiness is just reachability.
func (s *CloudinaryStorage) EnsureBucket(ctx context.Context, bucket string) error {
	if bucket == "" {
		return errors.New("missing bucket name")
	}
	if _, err := s.cld.Admin.Ping(ctx); err != nil {
		return fmt.Errorf("storage backend unreachable: %w", err)
	}
	log.Printf("✅ Storage bucket %q ready", bucket)
	return nil
}

// Upload stores an image and returns its public URL
func (s *CloudinaryStorage) Upload(ctx context.Context, bucket, fileName string, file io.Reader) (string, error) {
	overwrite := false
	unique := true
	res, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:         bucket,
		PublicID:       strings.TrimSuffix(fileName, filepath.Ext(fileName)),
		Overwrite:      &overwrite,
		UniqueFilename: &unique,
		ResourceType:   "image",
	})
	if err != nil {
		return "", err
	}
	return res.SecureURL, nil
}
