package config

import (
	"log/slog"
	"os"
	"time"
)

// BucketLocation resolves the timezone used for trend bucket truncation.
// Defaults to UTC so every deployment region writes identical buckets;
// BUCKET_TIMEZONE overrides it for installations that bucket in local time.
func BucketLocation() *time.Location {
	name := os.Getenv("BUCKET_TIMEZONE")
	if name == "" {
		return time.UTC
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		slog.Warn("Invalid BUCKET_TIMEZONE, falling back to UTC",
			slog.String("timezone", name),
			slog.String("error", err.Error()))
		return time.UTC
	}
	return loc
}
