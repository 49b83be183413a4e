package domain

import (
	"context"
	"time"
)

// Cache is the persistent formatted-string store
// a miss is ("", false, nil); any error means the backend is unavailable
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Oracle is the calendar capability the formatter relies on
type Oracle interface {
	Parse(text string) (time.Time, bool)
	Format(t time.Time, pattern, locale string) string
	FromNow(t, now time.Time, locale string) string
	Diff(now, t time.Time, unit string) int64
}

// Classifier answers the cheap and the authoritative date questions
type Classifier interface {
	LooksLikeADate(value string) bool
	IsDate(value any) bool
}

// ServicePort is the interface implemented by the dates service
type ServicePort interface {
	Classify(ctx context.Context, in ClassifyInput) (ClassifyOutput, error)
	Format(ctx context.Context, in FormatInput) (FormatOutput, error)
	Resolve(ctx context.Context, in ResolveInput) (ResolveOutput, error)
	Layouts(ctx context.Context) (LayoutsOutput, error)
}
