package main

import (
	"context"
	"fmt"
	"internhub/catalog"
	"internhub/config"
	enrollmentController "internhub/controllers/enrollment"
	notificationController "internhub/controllers/notification"
	"internhub/database"
	"internhub/ledger"
	"internhub/middleware"
	enrollmentRoutes "internhub/routers/enrollmentRoutes"
	notificationRoutes "internhub/routers/notificationRoutes"
	"internhub/services/enrollment"
	"internhub/services/notification"
	"internhub/storage"
	"internhub/utils"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig

	db, err := database.ConnectDb(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx := context.Background()

	repo, err := buildRepository(ctx, cfg, db)
	if err != nil {
		log.Fatalf("Failed to set up enrollment storage: %v", err)
	}

	notifications := notification.NewService(db)

	var mailer notification.Mailer
	if cfg.SendgridAPIKey != "" {
		m, err := utils.NewSendGridMailer(cfg.SendgridAPIKey, cfg.EmailSender, cfg.EmailSenderName)
		if err != nil {
			log.Printf("Warning: e-mail notifications disabled: %v", err)
		} else {
			mailer = m
		}
	}

	var publisher notification.Publisher
	var amqpPublisher *utils.AMQPPublisher
	if cfg.AMQPURL != "" {
		amqpPublisher, err = utils.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			log.Printf("Warning: event publishing disabled: %v", err)
		} else {
			publisher = amqpPublisher
		}
	}

	dispatcher := notification.NewDispatcher(notifications, mailer, publisher)

	store, err := enrollment.NewStore(ctx, repo, buildCatalog(cfg), buildLedger(cfg, db),
		enrollment.WithNotifier(dispatcher),
		enrollment.WithLedgerTimeout(cfg.LedgerTimeout),
		enrollment.WithWorkers(cfg.ProgressWorkers),
	)
	if err != nil {
		log.Fatalf("Failed to load enrollments: %v", err)
	}

	scheduler, err := utils.InitializeNotificationScheduler(notifications, cfg.NotificationRetentionDays)
	if err != nil {
		log.Fatalf("Failed to start notification scheduler: %v", err)
	}

	app := newApp(cfg.CORSOrigins,
		enrollmentController.New(store),
		notificationController.New(notifications),
	)

	go func() {
		log.Printf("Server is running on port %s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	<-scheduler.Stop().Done()
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	dispatcher.Wait()
	if amqpPublisher != nil {
		amqpPublisher.Close()
	}
	log.Println("Server exited")
}

// newApp builds the fiber application with every route mounted.
func newApp(corsOrigins string, enrollments *enrollmentController.Controller, notifications *notificationController.Controller) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
		UnescapePath: true,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: corsOrigins,
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Content-Type,Authorization",
	}))
	app.Use(middleware.RequestLogger())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Welcome to the InternHub enrollment API")
	})

	enrollmentRoutes.SetupEnrollmentRoutes(app, enrollments)
	notificationRoutes.SetupNotificationRoutes(app, notifications)

	return app
}

func buildRepository(ctx context.Context, cfg *config.Config, db *gorm.DB) (storage.Repository, error) {
	switch cfg.EnrollmentStore {
	case "file", "":
		return storage.NewFileRepository(cfg.EnrollmentsFile)
	case "database":
		return storage.NewGormRepository(db), nil
	case "s3":
		return storage.NewS3Repository(ctx, storage.S3Config{
			Bucket:    cfg.S3Bucket,
			Key:       cfg.S3Key,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
	default:
		return nil, fmt.Errorf("unsupported ENROLLMENT_STORE %q", cfg.EnrollmentStore)
	}
}

func buildCatalog(cfg *config.Config) enrollment.TaskCatalog {
	switch cfg.TaskCatalog {
	case "supabase":
		if cfg.SupabaseURL == "" {
			return catalog.Disabled{}
		}
		return catalog.NewSupabase(utils.NewSupabaseClient(cfg.SupabaseURL, cfg.SupabaseKey, cfg.LedgerTimeout))
	case "file":
		static, err := catalog.LoadFile(cfg.TaskCatalogFile)
		if err != nil {
			log.Printf("Warning: task catalog file %s not loaded: %v", cfg.TaskCatalogFile, err)
			return catalog.Disabled{}
		}
		return static
	default:
		return catalog.Disabled{}
	}
}

func buildLedger(cfg *config.Config, db *gorm.DB) enrollment.ProgressLedger {
	switch cfg.ProgressLedger {
	case "supabase":
		if cfg.SupabaseURL == "" {
			return ledger.Disabled{}
		}
		return ledger.NewSupabase(utils.NewSupabaseClient(cfg.SupabaseURL, cfg.SupabaseKey, cfg.LedgerTimeout))
	case "database":
		return ledger.NewGorm(db)
	default:
		return ledger.Disabled{}
	}
}
