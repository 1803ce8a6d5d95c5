package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	portEnv         = "FUNCTIONS_CUSTOMHANDLER_PORT"
	defaultPort     = 3000
	defaultHost     = "127.0.0.1"
	shutdownTimeout = 30 * time.Second
)

// config holds the process settings read from the environment.
type config struct {
	Host string
	Port int
	// Quiet limits framework logging to errors (LOG_LEVEL=error).
	Quiet bool
}

// loadConfig reads the environment. An unparsable or out of range port is an
// error, not a silent fallback to the default.
func loadConfig() (config, error) {
	cfg := config{
		Host: getEnv("HOST", defaultHost),
		Port: defaultPort,
	}

	if raw := os.Getenv(portEnv); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil {
			return config{}, fmt.Errorf("%s is not a number: %q", portEnv, raw)
		}
		if port < 1 || port > 65535 {
			return config{}, fmt.Errorf("%s out of range: %d", portEnv, port)
		}
		cfg.Port = port
	}

	cfg.Quiet = strings.EqualFold(getEnv("LOG_LEVEL", "info"), "error")

	return cfg, nil
}

// getEnv returns environment variable value or default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
