// Package env has small helpers for reading process environment variables
// outside the envconfig-managed configuration.
package env

import "os"

// Get reads the named variable, falling back when it is unset or empty.
func Get(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
