package config

import (
	"fmt"
	"os"
	"strconv"

	domainconfig "threadline-backend/domain/config"
)

// Storage driver names
const (
	StorageDriverDynamoDB = "dynamodb"
	StorageDriverMemory   = "memory"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// Storage configuration
	StorageDriver string // "dynamodb" or "memory"
	AWSRegion     string
	DynamoDBTable string
	LabelIndex    string // GSI1 - cluster-label lookups
	SnippetIndex  string // GSI2 - direct SnippetID lookups
	EventBusName  string

	// Thread context budgets (the motion budget)
	MaxUpstreamNodes   int
	MaxDownstreamNodes int
	MaxLateralNodes    int

	// Lambda configuration
	IsLambda bool

	// Logging
	LogLevel string

	// Authentication
	JWTSecret string
	JWTIssuer string

	// Feature flags
	EnableMetrics bool
	EnableCORS    bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	defaults := domainconfig.DefaultMotionBudget()

	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),

		StorageDriver: getEnv("STORAGE_DRIVER", "dynamodb"),
		AWSRegion:     getEnv("AWS_REGION", "us-west-2"),
		DynamoDBTable: getEnv("TABLE_NAME", "threadline"),
		LabelIndex:    getEnv("LABEL_INDEX_NAME", "LabelIndex"),
		SnippetIndex:  getEnv("SNIPPET_INDEX_NAME", "SnippetIndex"),
		EventBusName:  getEnv("EVENT_BUS_NAME", "threadline-events"),

		MaxUpstreamNodes:   getEnvInt("MAX_UPSTREAM_NODES", defaults.MaxUpstreamNodes),
		MaxDownstreamNodes: getEnvInt("MAX_DOWNSTREAM_NODES", defaults.MaxDownstreamNodes),
		MaxLateralNodes:    getEnvInt("MAX_LATERAL_NODES", defaults.MaxLateralNodes),

		IsLambda: os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "",

		LogLevel: getEnv("LOG_LEVEL", "info"),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTIssuer: getEnv("JWT_ISSUER", "threadline-backend"),

		EnableMetrics: getEnvBool("ENABLE_METRICS", true),
		EnableCORS:    getEnvBool("ENABLE_CORS", true),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.StorageDriver != StorageDriverDynamoDB && c.StorageDriver != StorageDriverMemory {
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}

	if c.MaxUpstreamNodes <= 0 || c.MaxDownstreamNodes <= 0 || c.MaxLateralNodes <= 0 {
		return fmt.Errorf("motion budget values must be positive")
	}

	if c.Environment == "production" {
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required in production")
		}
		if c.StorageDriver == "dynamodb" && c.DynamoDBTable == "" {
			return fmt.Errorf("TABLE_NAME is required")
		}
	}

	return nil
}

// MotionBudget returns the configured per-axis node budgets
func (c *Config) MotionBudget() domainconfig.MotionBudget {
	return domainconfig.MotionBudget{
		MaxUpstreamNodes:   c.MaxUpstreamNodes,
		MaxDownstreamNodes: c.MaxDownstreamNodes,
		MaxLateralNodes:    c.MaxLateralNodes,
	}
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
