package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultWorkerCount    = 16
	DefaultRequestTimeout = 2 * time.Minute
)

type Config struct {
	LogMode        string
	InputDir       string
	OutputDir      string
	WorkerCount    int
	StatusPort     string
	RequestTimeout time.Duration
}

func checkEnv(envVars []string) error {
	var missingVars []string

	for _, envVar := range envVars {
		if value, exists := os.LookupEnv(envVar); !exists || value == "" {
			missingVars = append(missingVars, envVar)
		}
	}

	if len(missingVars) > 0 {
		return fmt.Errorf("error: this env vars are missing: %v", missingVars)
	}

	return nil
}

func validateEnv() error {
	return checkEnv([]string{
		"LOG_MODE",
		"INPUT_DIR",
		"OUTPUT_DIR",
	})
}

func intEnv(name string, fallback int) (int, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", name, raw)
	}

	return v, nil
}

func LoadConfig(envPath string) (*Config, error) {
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load configuration file: %w", err)
	}

	if err := validateEnv(); err != nil {
		return nil, fmt.Errorf("LoadConfig: %w", err)
	}

	workers, err := intEnv("WORKER_COUNT", DefaultWorkerCount)
	if err != nil {
		return nil, fmt.Errorf("LoadConfig: %w", err)
	}

	timeoutSec, err := intEnv("HTTP_TIMEOUT_SECONDS", int(DefaultRequestTimeout/time.Second))
	if err != nil {
		return nil, fmt.Errorf("LoadConfig: %w", err)
	}

	return &Config{
		LogMode:        os.Getenv("LOG_MODE"),
		InputDir:       os.Getenv("INPUT_DIR"),
		OutputDir:      os.Getenv("OUTPUT_DIR"),
		WorkerCount:    workers,
		StatusPort:     os.Getenv("STATUS_PORT"),
		RequestTimeout: time.Duration(timeoutSec) * time.Second,
	}, nil
}
