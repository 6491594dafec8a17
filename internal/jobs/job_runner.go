package jobs

import (
	"time"

	"rentify-backend/internal/config"
	"rentify-backend/internal/logger"
	"rentify-backend/internal/repository"
	"rentify-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	userRepo   repository.UserRepository
	itemRepo   repository.ItemRepository
	rentalRepo repository.RentalRepository
	services   *Services
	config     *config.Config
	now        func() time.Time
}

// Services holds all service dependencies needed by jobs
type Services struct {
	Email service.EmailService
	Push  service.PushService
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(
	userRepo repository.UserRepository,
	itemRepo repository.ItemRepository,
	rentalRepo repository.RentalRepository,
	services *Services,
	cfg *config.Config,
) *JobRunner {
	return &JobRunner{
		userRepo:   userRepo,
		itemRepo:   itemRepo,
		rentalRepo: rentalRepo,
		services:   services,
		config:     cfg,
		now:        time.Now,
	}
}

// Config exposes the loaded configuration to the scheduler.
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAllNightlyJobs runs all nightly jobs (for manual execution)
func (jr *JobRunner) RunAllNightlyJobs() {
	jr.SendRentalStartReminders()
	jr.SendReturnReminders()
}
