package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port        string
	CORSOrigins string

	DBDriver   string // sqlite, postgres, mysql
	DBName     string
	DBHost     string
	DBUser     string
	DBPassword string
	DBPort     string

	EnrollmentStore string // file, database, s3
	EnrollmentsFile string

	S3Bucket    string
	S3Key       string
	S3Region    string
	S3Endpoint  string // R2 or MinIO compatible endpoint, optional
	S3AccessKey string
	S3SecretKey string

	TaskCatalog     string // supabase, file, none
	TaskCatalogFile string

	ProgressLedger  string // supabase, database, none
	LedgerTimeout   time.Duration
	ProgressWorkers int

	SupabaseURL string
	SupabaseKey string

	SendgridAPIKey  string
	EmailSender     string
	EmailSenderName string

	AMQPURL      string
	AMQPExchange string

	NotificationRetentionDays int
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:        getEnv("PORT", "5000"),
		CORSOrigins: getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173"),

		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DBName:     getEnv("DB_NAME", "internhub.db"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", ""),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBPort:     getEnv("DB_PORT", ""),

		EnrollmentStore: strings.ToLower(getEnv("ENROLLMENT_STORE", "file")),
		EnrollmentsFile: getEnv("ENROLLMENTS_FILE", "enrollments.json"),

		S3Bucket:    getEnv("S3_BUCKET", ""),
		S3Key:       getEnv("S3_KEY", "enrollments.json"),
		S3Region:    getEnv("S3_REGION", "auto"),
		S3Endpoint:  getEnv("S3_ENDPOINT", ""),
		S3AccessKey: getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey: getEnv("S3_SECRET_KEY", ""),

		TaskCatalog:     strings.ToLower(getEnv("TASK_CATALOG", "none")),
		TaskCatalogFile: getEnv("TASK_CATALOG_FILE", "tasks.yaml"),

		ProgressLedger:  strings.ToLower(getEnv("PROGRESS_LEDGER", "none")),
		LedgerTimeout:   time.Duration(getEnvInt("LEDGER_TIMEOUT_MS", 3000)) * time.Millisecond,
		ProgressWorkers: getEnvInt("PROGRESS_WORKERS", 8),

		SupabaseURL: strings.TrimRight(getEnv("SUPABASE_URL", ""), "/"),
		SupabaseKey: getEnv("SUPABASE_KEY", ""),

		SendgridAPIKey:  getEnv("SENDGRID_API_KEY", ""),
		EmailSender:     getEnv("EMAIL_SENDER", ""),
		EmailSenderName: getEnv("EMAIL_SENDER_NAME", "InternHub"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "internhub.events"),

		NotificationRetentionDays: getEnvInt("NOTIFICATION_RETENTION_DAYS", 30),
	}

	// Validate critical configuration
	if AppConfig.DBDriver == "sqlite" && AppConfig.DBName == "internhub.db" {
		log.Println("Warning: Using default SQLite database internhub.db. Update DB_NAME in your environment.")
	}
	if (AppConfig.TaskCatalog == "supabase" || AppConfig.ProgressLedger == "supabase") && AppConfig.SupabaseURL == "" {
		log.Println("Warning: Supabase is selected but SUPABASE_URL is empty. Lookups will be reported as unavailable.")
	}
	if AppConfig.EnrollmentStore == "s3" && AppConfig.S3Bucket == "" {
		log.Println("Warning: ENROLLMENT_STORE=s3 but S3_BUCKET is empty.")
	}
	if AppConfig.LedgerTimeout <= 0 {
		log.Println("Warning: LEDGER_TIMEOUT_MS must be positive. Falling back to 3000ms.")
		AppConfig.LedgerTimeout = 3 * time.Second
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
