package constants

import "time"

// RFC 3339 date-time format string.
// Use this format for all date-time serialization and communication with external systems.
const RFC3339DateTimeFormat = "2006-01-02T15:04:05Z07:00"

// SubmissionTimestampFormat is the UTC, millisecond precision layout used in store keys and
// records. Lexical order of two values equals their chronological order.
const SubmissionTimestampFormat = "2006-01-02T15:04:05.000Z"

// Default rate limiting configuration
const (
	// DefaultRateLimitRequests is the default number of requests allowed per time window
	DefaultRateLimitRequests = 100
	// DefaultRateLimitWindow is the default time window for rate limiting
	DefaultRateLimitWindowMinutes = 1

	// FormSubmissionRequestsPerMinute caps form posts per client IP.
	FormSubmissionRequestsPerMinute = 10
	// ExportRequestsPerMinute caps CSV exports per client IP.
	ExportRequestsPerMinute = 5
)

// DefaultRateLimitWindow returns the default rate limit window duration
func DefaultRateLimitWindow() time.Duration {
	return time.Duration(DefaultRateLimitWindowMinutes) * time.Minute
}
