package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"salonhub/config"
	"salonhub/utils"
)

// Object is a stored file.
type Object struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// StorageService defines the interface for storage operations.
type StorageService interface {
	Upload(ctx context.Context, r io.Reader, name, folder string) (*Object, error)
	Delete(ctx context.Context, id string) error
	DownloadURL(ctx context.Context, id string, expires time.Duration) (string, error)
}

// New returns the backend selected by STORAGE_PROVIDER.
func New(ctx context.Context) (StorageService, error) {
	switch config.AppConfig.StorageProvider {
	case "", "cloudinary":
		cld, err := utils.Cloudinary()
		if err != nil {
			return nil, err
		}
		return NewCloudinaryStorage(cld), nil
	case "firebase":
		return NewFirebaseStorageService(ctx, config.AppConfig.FirebaseCredentialsFile, config.AppConfig.FirebaseStorageBucket)
	default:
		return nil, fmt.Errorf("unknown STORAGE_PROVIDER %q", config.AppConfig.StorageProvider)
	}
}
