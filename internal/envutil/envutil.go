package envutil

import "os"

// Get retrieves an environment variable with automatic USERD_ prefix fallback.
// It checks for the environment variable in this order:
// 1. Exact key as provided
// 2. Key with USERD_ prefix
// 3. Returns fallback if neither exists
func Get(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	if len(key) < 6 || key[:6] != "USERD_" {
		if value, exists := os.LookupEnv("USERD_" + key); exists {
			return value
		}
	}

	return fallback
}
