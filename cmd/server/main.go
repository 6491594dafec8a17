package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"time"

	gcs "cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	httpapi "rentify-backend/internal/api/http"
	"rentify-backend/internal/config"
	"rentify-backend/internal/geocode"
	"rentify-backend/internal/logger"
	fsrepo "rentify-backend/internal/repository/firestore"
	"rentify-backend/internal/security"
	"rentify-backend/internal/service"
	"rentify-backend/internal/storage"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Rentify Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Firebase configuration", "project_id", cfg.Firebase.ProjectID)

	ctx := context.Background()
	creds := option.WithCredentialsFile(cfg.Firebase.CredentialsFile)

	// Initialize Firebase
	app, err := firebase.NewApp(ctx, &firebase.Config{
		ProjectID:     cfg.Firebase.ProjectID,
		StorageBucket: cfg.Firebase.StorageBucket,
	}, creds)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}
	messagingClient, err := app.Messaging(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Messaging: %v", err)
	}
	firestoreClient, err := app.Firestore(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firestore: %v", err)
	}
	defer firestoreClient.Close()
	logger.Info("Firebase clients initialized")

	// Initialize Repositories
	store := fsrepo.NewStore(firestoreClient)

	// Initialize Security
	tokenManager := security.NewTokenManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
		time.Duration(cfg.JWT.RefreshTokenExpiry)*time.Minute,
	)

	// Initialize Storage Backend
	var backend storage.Backend
	serveLocalImages := false
	switch cfg.Storage.Type {
	case "gcs":
		logger.Info("Using Cloud Storage backend", "bucket", cfg.Firebase.StorageBucket)
		gcsClient, err := gcs.NewClient(ctx, creds)
		if err != nil {
			log.Fatalf("Failed to initialize Cloud Storage: %v", err)
		}
		backend = storage.NewGCSBackend(gcsClient, cfg.Firebase.StorageBucket)
	default:
		logger.Info("Using filesystem storage backend", "upload_dir", cfg.Storage.UploadDir)
		fsBackend, err := storage.NewFSBackend(cfg.Storage.BaseURL, cfg.Storage.UploadDir)
		if err != nil {
			log.Fatalf("Failed to initialize filesystem storage: %v", err)
		}
		backend = fsBackend
		serveLocalImages = true
	}

	// Initialize Services
	emailSvc := service.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromName, cfg.SendGrid.FromEmail)
	pushSvc := service.NewPushService(messagingClient)
	authSvc := service.NewAuthService(&service.FirebaseVerifier{Client: authClient}, store.UserRepository, tokenManager)
	userSvc := service.NewUserService(store.UserRepository)
	itemSvc := service.NewItemService(store.ItemRepository, store.UserRepository, store.RentalRepository)
	rentalSvc := service.NewRentalService(store.RentalRepository, store.ItemRepository, store.UserRepository, store.NotificationRepository, pushSvc, emailSvc)
	noteSvc := service.NewNotificationService(store.NotificationRepository)
	imageSvc := service.NewImageStorageService(backend)
	geocoder := geocode.NewClient(cfg.Geocoder.BaseURL, cfg.Geocoder.APIKey)

	// Set up HTTP server
	router := httpapi.NewRouter(httpapi.RouterDeps{
		Auth:             authSvc,
		Users:            userSvc,
		Items:            itemSvc,
		Rentals:          rentalSvc,
		Notifications:    noteSvc,
		Images:           imageSvc,
		Geocoder:         geocoder,
		Tokens:           tokenManager,
		Backend:          backend,
		ServeLocalImages: serveLocalImages,
	})

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Failed to serve HTTP", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
