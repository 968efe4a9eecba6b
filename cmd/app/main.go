package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/g-80/Food-Delivery-App-API-sub001/cmd"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/adapters/out/postgres/addressrepo"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/adapters/out/postgres/cartrepo"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/adapters/out/postgres/deliveryrepo"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/adapters/out/postgres/historyrepo"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/adapters/out/postgres/orderrepo"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/adapters/out/postgres/paymentrepo"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/adapters/out/postgres/taskrepo"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	configs := getConfigs(logger)

	gormDB, err := openDatabase(configs)
	if err != nil {
		logger.Error("Failed to connect to the database", "error", err)
		os.Exit(1)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: configs.RedisAddr})

	app, err := cmd.NewCompositionRoot(configs, gormDB, redisClient, logger)
	if err != nil {
		logger.Error("Failed to build the application", "error", err)
		os.Exit(1)
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		logger.Error("Failed to start background jobs", "error", err)
		os.Exit(1)
	}
	defer jobManager.StopAll()

	server, err := app.CreateServer()
	if err != nil {
		logger.Error("Failed to build the HTTP server", "error", err)
		os.Exit(1)
	}

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(log.INFO)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)))
}

func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{},
		&deliveryrepo.DeliveryDTO{}, &paymentrepo.PaymentDTO{},
		&cartrepo.CartDTO{}, &addressrepo.AddressDTO{}, &taskrepo.TaskDTO{},
		&historyrepo.LocationHistoryDTO{},
	)
	if err != nil {
		return nil, err
	}
	return gormDB, nil
}

func getConfigs(logger *slog.Logger) cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		logger.Info("No .env file found, reading configuration from the environment")
	}

	return cmd.Config{
		HTTPPort:   envOr("HTTP_PORT", "8080"),
		DBHost:     envOr("DB_HOST", "localhost"),
		DBPort:     envOr("DB_PORT", "5432"),
		DBUser:     envOr("DB_USER", "postgres"),
		DBPassword: envOr("DB_PASSWORD", "postgres"),
		DBName:     envOr("DB_NAME", "food_delivery"),
		DBSslMode:  envOr("DB_SSLMODE", "disable"),

		RedisAddr: envOr("REDIS_ADDR", "localhost:6379"),

		PaymentGatewayURL:    envOr("PAYMENT_GATEWAY_URL", "http://localhost:9090"),
		PaymentGatewayAPIKey: os.Getenv("PAYMENT_GATEWAY_API_KEY"),
		CatalogueURL:         envOr("CATALOGUE_URL", "http://localhost:9091"),

		OfferTimeout:        envSeconds("OFFER_TIMEOUT_SECONDS", 30),
		ConfirmationTimeout: envSeconds("CONFIRMATION_TIMEOUT_SECONDS", 60),
		PresenceTTL:         envSeconds("PRESENCE_TTL_SECONDS", 90),

		CandidateRadiusKm:   envFloat("CANDIDATE_RADIUS_KM", 5.0),
		MaxCandidates:       envInt("MAX_CANDIDATES", 10),
		PipelineMaxAttempts: envInt("PIPELINE_MAX_ATTEMPTS", 3),
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return value
}

func envFloat(key string, fallback float64) float64 {
	value, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return fallback
	}
	return value
}

func envSeconds(key string, fallback int) time.Duration {
	return time.Duration(envInt(key, fallback)) * time.Second
}
