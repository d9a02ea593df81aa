package config

import (
	"os"
	"strconv"
	"strings"
)

// GetEnvOrDefault returns the environment value for key, or defaultVal if unset
func GetEnvOrDefault(key, defaultVal string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return defaultVal
}

// GetEnvIntOrDefault returns the integer environment value for key, or defaultVal
func GetEnvIntOrDefault(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

// GetEnvBool reports whether the environment value for key is "true"
func GetEnvBool(key string) bool {
	return strings.EqualFold(strings.TrimSpace(os.Getenv(key)), "true")
}
