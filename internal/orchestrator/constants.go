package orchestrator

import (
	"os"
	"time"
)

// DefaultRunTimeout bounds a whole mark run, all git calls included.
var DefaultRunTimeout = getTimeoutOrDefault("TAGMYREBASE_RUN_TIMEOUT", 5*time.Minute)

// getTimeoutOrDefault reads a duration from envVar, falling back to def
func getTimeoutOrDefault(envVar string, def time.Duration) time.Duration {
	if env := os.Getenv(envVar); env != "" {
		if duration, err := time.ParseDuration(env); err == nil && duration > 0 {
			return duration
		}
	}
	return def
}
