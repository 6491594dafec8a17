package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	"rentify-backend/internal/config"
	"rentify-backend/internal/jobs"
	"rentify-backend/internal/logger"
	fsrepo "rentify-backend/internal/repository/firestore"
	"rentify-backend/internal/scheduler"
	"rentify-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'send-rental-start-reminders', 'all-nightly')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Rentify Cronjob Runner...", "log_level", cfg.Log.Level)

	ctx := context.Background()
	creds := option.WithCredentialsFile(cfg.Firebase.CredentialsFile)

	// Initialize Firebase
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.Firebase.ProjectID}, creds)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
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

	// Initialize Services
	emailService := service.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromName, cfg.SendGrid.FromEmail)
	pushService := service.NewPushService(messagingClient)

	jobServices := &jobs.Services{
		Email: emailService,
		Push:  pushService,
	}

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(
		store.UserRepository,
		store.ItemRepository,
		store.RentalRepository,
		jobServices,
		cfg,
	)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler := scheduler.NewScheduler(jobRunner)

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

// runJobOnce runs a specific job once and exits
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) {
	switch jobName {
	case "send-rental-start-reminders":
		jobRunner.SendRentalStartReminders()
	case "send-return-reminders":
		jobRunner.SendReturnReminders()
	case "all-nightly":
		jobRunner.RunAllNightlyJobs()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - send-rental-start-reminders\n")
		fmt.Printf("  - send-return-reminders\n")
		fmt.Printf("  - all-nightly\n")
		os.Exit(1)
	}
}
