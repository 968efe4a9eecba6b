package cmd

import "time"

// Config carries everything main reads from the environment.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RedisAddr string

	PaymentGatewayURL    string
	PaymentGatewayAPIKey string
	CatalogueURL         string

	OfferTimeout        time.Duration
	ConfirmationTimeout time.Duration
	PresenceTTL         time.Duration

	CandidateRadiusKm   float64
	MaxCandidates       int
	PipelineMaxAttempts int
}
