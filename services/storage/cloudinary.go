package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStorage implements StorageService on Cloudinary.
type CloudinaryStorage struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryStorage(cld *cloudinary.Cloudinary) *CloudinaryStorage {
	return &CloudinaryStorage{cld: cld}
}

func publicID(name string) string {
	base := path.Base(name)
	return strings.TrimSuffix(base, path.Ext(base))
}

func (s *CloudinaryStorage) Upload(ctx context.Context, r io.Reader, name, folder string) (*Object, error) {
	res, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		PublicID:     publicID(name),
		Folder:       folder,
		ResourceType: "auto",
		Overwrite:    api.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload failed: %w", err)
	}
	if res.Error.Message != "" {
		return nil, fmt.Errorf("cloudinary upload failed: %s", res.Error.Message)
	}
	return &Object{ID: res.PublicID, URL: res.SecureURL}, nil
}

func (s *CloudinaryStorage) Delete(ctx context.Context, id string) error {
	res, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: id})
	if err != nil {
		return fmt.Errorf("cloudinary delete failed: %w", err)
	}
	if res.Error.Message != "" {
		return fmt.Errorf("cloudinary delete failed: %s", res.Error.Message)
	}
	return nil
}

// DownloadURL returns the delivery URL; Cloudinary assets are public so
// expires is ignored.
func (s *CloudinaryStorage) DownloadURL(_ context.Context, id string, _ time.Duration) (string, error) {
	asset, err := s.cld.Image(id)
	if err != nil {
		return "", fmt.Errorf("cloudinary url failed: %w", err)
	}
	return asset.String()
}
