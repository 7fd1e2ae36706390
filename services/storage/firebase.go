package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/url"
	"os"
	"path"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// serviceAccount holds the fields needed to sign URLs.
type serviceAccount struct {
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
}

func loadServiceAccount(file string) (*serviceAccount, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read service account: %w", err)
	}
	var sa serviceAccount
	if err := json.Unmarshal(data, &sa); err != nil {
		return nil, fmt.Errorf("failed to parse service account: %w", err)
	}
	return &sa, nil
}

// FirebaseStorageService implements StorageService using Firebase Storage.
type FirebaseStorageService struct {
	client         *storage.Client
	bucketName     string
	serviceAccount *serviceAccount
}

// NewFirebaseStorageService creates a new FirebaseStorageService.
func NewFirebaseStorageService(ctx context.Context, serviceAccountJSONPath, bucketName string) (*FirebaseStorageService, error) {
	if bucketName == "" {
		return nil, fmt.Errorf("FIREBASE_STORAGE_BUCKET is not set")
	}
	client, err := storage.NewClient(ctx, option.WithCredentialsFile(serviceAccountJSONPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	sa, err := loadServiceAccount(serviceAccountJSONPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load service account for signing URLs: %w", err)
	}
	return &FirebaseStorageService{client: client, bucketName: bucketName, serviceAccount: sa}, nil
}

func (s *FirebaseStorageService) Upload(ctx context.Context, r io.Reader, name, folder string) (*Object, error) {
	objectPath := path.Join(folder, path.Base(name))
	w := s.client.Bucket(s.bucketName).Object(objectPath).NewWriter(ctx)
	w.ACL = []storage.ACLRule{{Entity: storage.AllUsers, Role: storage.RoleReader}}
	if ext := path.Ext(name); ext != "" {
		w.ObjectAttrs.ContentType = mime.TypeByExtension(ext)
	}

	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to copy file to storage: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to close writer: %w", err)
	}
	return &Object{ID: objectPath, URL: s.publicURL(objectPath)}, nil
}

func (s *FirebaseStorageService) Delete(ctx context.Context, id string) error {
	if err := s.client.Bucket(s.bucketName).Object(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *FirebaseStorageService) publicURL(objectPath string) string {
	return fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media", s.bucketName, url.QueryEscape(objectPath))
}

// DownloadURL returns a signed URL valid for expires.
func (s *FirebaseStorageService) DownloadURL(_ context.Context, id string, expires time.Duration) (string, error) {
	signed, err := storage.SignedURL(s.bucketName, id, &storage.SignedURLOptions{
		GoogleAccessID: s.serviceAccount.ClientEmail,
		PrivateKey:     []byte(s.serviceAccount.PrivateKey),
		Method:         "GET",
		Expires:        time.Now().Add(expires),
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate signed URL: %w", err)
	}
	return signed, nil
}
