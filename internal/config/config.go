package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Firebase  FirebaseConfig  `yaml:"firebase"`
	SendGrid  SendGridConfig  `yaml:"sendgrid"`
	JWT       JWTConfig       `yaml:"jwt"`
	Storage   StorageConfig   `yaml:"storage"`
	Geocoder  GeocoderConfig  `yaml:"geocoder"`
	Log       LogConfig       `yaml:"log"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// FirebaseConfig contains the Firebase project settings. The
// credentials file is the service-account JSON used for Firestore,
// token verification and FCM sends.
type FirebaseConfig struct {
	ProjectID       string `yaml:"project_id"`
	CredentialsFile string `yaml:"credentials_file"`
	StorageBucket   string `yaml:"storage_bucket"`
}

// SendGridConfig contains email delivery settings
type SendGridConfig struct {
	APIKey    string `yaml:"api_key"`
	FromEmail string `yaml:"from_email"`
	FromName  string `yaml:"from_name"`
}

// JWTConfig contains session token settings
type JWTConfig struct {
	Secret             string `yaml:"secret"`
	AccessTokenExpiry  int    `yaml:"access_token_expiry_minutes"`
	RefreshTokenExpiry int    `yaml:"refresh_token_expiry_minutes"`
}

// StorageConfig contains image storage settings
type StorageConfig struct {
	Type         string   `yaml:"type"`       // "mock" or "gcs"
	UploadDir    string   `yaml:"upload_dir"` // For mock storage
	BaseURL      string   `yaml:"base_url"`   // Server base URL for mock URLs
	MaxFileSize  int64    `yaml:"max_file_size_mb"`
	AllowedTypes []string `yaml:"allowed_types"`
}

// GeocoderConfig contains the address autocomplete vendor settings
type GeocoderConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	SendRentalStartReminders string `yaml:"send_rental_start_reminders"`
	SendReturnReminders      string `yaml:"send_return_reminders"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Firebase
	if val := os.Getenv("FIREBASE_PROJECT_ID"); val != "" {
		c.Firebase.ProjectID = val
	}
	if val := os.Getenv("FIREBASE_CREDENTIALS_FILE"); val != "" {
		c.Firebase.CredentialsFile = val
	}
	if val := os.Getenv("FIREBASE_STORAGE_BUCKET"); val != "" {
		c.Firebase.StorageBucket = val
	}

	// SendGrid
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.SendGrid.APIKey = val
	}
	if val := os.Getenv("SENDGRID_FROM_EMAIL"); val != "" {
		c.SendGrid.FromEmail = val
	}

	// JWT
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.JWT.Secret = val
	}

	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// Storage
	if val := os.Getenv("UPLOAD_DIR"); val != "" {
		c.Storage.UploadDir = val
	}

	// Geocoder
	if val := os.Getenv("GEOCODER_API_KEY"); val != "" {
		c.Geocoder.APIKey = val
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	// Set defaults for log if not configured
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Server validation
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	// Firebase validation
	if c.Firebase.ProjectID == "" {
		return fmt.Errorf("firebase project id is required")
	}
	if c.Firebase.CredentialsFile == "" {
		return fmt.Errorf("firebase credentials file is required")
	}

	// JWT validation
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}
	if c.JWT.AccessTokenExpiry == 0 {
		c.JWT.AccessTokenExpiry = 60
	}
	if c.JWT.RefreshTokenExpiry == 0 {
		c.JWT.RefreshTokenExpiry = 60 * 24 * 7
	}

	// Storage validation
	if c.Storage.Type == "" {
		c.Storage.Type = "mock"
	}
	if c.Storage.Type == "mock" && c.Storage.UploadDir == "" {
		return fmt.Errorf("upload directory is required for mock storage")
	}
	if c.Storage.Type == "gcs" && c.Firebase.StorageBucket == "" {
		return fmt.Errorf("firebase storage bucket is required for gcs storage")
	}
	if len(c.Storage.AllowedTypes) == 0 {
		c.Storage.AllowedTypes = []string{"image/jpeg", "image/png"}
	}

	// Geocoder defaults
	if c.Geocoder.BaseURL == "" {
		c.Geocoder.BaseURL = "https://api.geoapify.com/v1/geocode/autocomplete"
	}

	// Scheduler defaults
	if c.Scheduler.SendRentalStartReminders == "" {
		c.Scheduler.SendRentalStartReminders = "0 0 8 * * *" // 8 AM UTC
	}
	if c.Scheduler.SendReturnReminders == "" {
		c.Scheduler.SendReturnReminders = "0 0 9 * * *" // 9 AM UTC
	}

	return nil
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
