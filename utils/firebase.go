package utils

import (
	"context"
	"fmt"

	"salonhub/config"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

var (
	FirebaseApp *firebase.App
	AuthClient  *auth.Client
	FCMClient   *messaging.Client
)

// FirebaseInit initializes the Firebase app with its Auth and Messaging clients.
func FirebaseInit(ctx context.Context) error {
	opt := option.WithCredentialsFile(config.AppConfig.FirebaseCredentialsFile)

	var fbConfig *firebase.Config
	if bucket := config.AppConfig.FirebaseStorageBucket; bucket != "" {
		fbConfig = &firebase.Config{StorageBucket: bucket}
	}
	app, err := firebase.NewApp(ctx, fbConfig, opt)
	if err != nil {
		return fmt.Errorf("firebase: error initializing app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return fmt.Errorf("firebase: error getting Auth client: %w", err)
	}
	fcm, err := app.Messaging(ctx)
	if err != nil {
		return fmt.Errorf("firebase: error getting Messaging client: %w", err)
	}

	FirebaseApp = app
	AuthClient = authClient
	FCMClient = fcm
	return nil
}
