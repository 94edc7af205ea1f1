package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// BatchPolicy controls how a batch analysis reacts to individual failures.
type BatchPolicy string

const (
	// BatchPolicyAbort fails the whole batch on the first failed tweet.
	BatchPolicyAbort BatchPolicy = "abort"
	// BatchPolicyPartial returns per-item errors alongside the successes.
	BatchPolicyPartial BatchPolicy = "partial"
)

// Config holds the application configuration.
type Config struct {
	ServerPort      int
	JWTSecret       string
	DatabasePath    string // sqlite file for users and events
	MongoURI        string
	MongoDatabase   string
	UpstreamBaseURL string // base URL of the sentiment/tweet-fetch service
	UpstreamTimeout time.Duration
	BatchPolicy     BatchPolicy
	ProbeSchedule   string // standard cron expression for the upstream probe
}

// Load loads configuration from a .env file (if present) and the
// environment, with defaults for everything except the JWT secret.
func Load() (*Config, error) {
	// A missing .env is fine; the environment still applies either way.
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("PORT", "5050"))
	if err != nil {
		return nil, err
	}

	timeoutSecs, err := strconv.Atoi(getEnv("UPSTREAM_TIMEOUT_SECONDS", "30"))
	if err != nil {
		return nil, err
	}

	policy := BatchPolicy(getEnv("ANALYZE_BATCH_POLICY", string(BatchPolicyAbort)))
	if policy != BatchPolicyAbort && policy != BatchPolicyPartial {
		policy = BatchPolicyAbort
	}

	return &Config{
		ServerPort:      port,
		JWTSecret:       getEnv("JWT_SECRET", ""),
		DatabasePath:    getEnv("DATABASE_PATH", "./tweetpulse.db"),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:   getEnv("MONGO_DATABASE", "tweetpulse"),
		UpstreamBaseURL: getEnv("UPSTREAM_URL", "http://localhost:5001"),
		UpstreamTimeout: time.Duration(timeoutSecs) * time.Second,
		BatchPolicy:     policy,
		ProbeSchedule:   getEnv("PROBE_SCHEDULE", "* * * * *"),
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
