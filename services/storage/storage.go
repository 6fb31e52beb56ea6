package storage

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// StorageService stores job photos and returns stable references. The
// engine only ever sees the returned references.
type StorageService interface {
	UploadJobPhoto(ctx context.Context, jobID string, file *multipart.FileHeader) (string, error)
	DeletePhoto(ctx context.Context, publicID string) error
}

// CloudinaryStorage implements StorageService on Cloudinary.
type CloudinaryStorage struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryStorage creates a photo store from an initialized client.
func NewCloudinaryStorage(cld *cloudinary.Cloudinary) *CloudinaryStorage {
	return &CloudinaryStorage{cld: cld}
}

// UploadJobPhoto uploads one photo under the job's folder and returns its
// delivery URL.
func (s *CloudinaryStorage) UploadJobPhoto(ctx context.Context, jobID string, file *multipart.FileHeader) (string, error) {
	f, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	result, err := s.cld.Upload.Upload(ctx, f, uploader.UploadParams{
		Folder: "jobs/" + jobID,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload job photo: %w", err)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("no URL returned for uploaded photo")
	}
	return result.SecureURL, nil
}

// DeletePhoto removes a photo by its public ID.
func (s *CloudinaryStorage) DeletePhoto(ctx context.Context, publicID string) error {
	if _, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("failed to delete photo: %w", err)
	}
	return nil
}
