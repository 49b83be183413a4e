// Package domain holds date formatting types independent of transport or storage
package domain

import (
	"context"
	"time"
)

// NumericPolicy decides how numeric inputs reach the formatter
type NumericPolicy string

const (
	// NumericText stringifies the digits and parses them against the catalog
	NumericText NumericPolicy = "text"

	// NumericReject treats every numeric input as an invalid date
	NumericReject NumericPolicy = "reject"

	// NumericEpochMs reads numeric input as unix milliseconds
	NumericEpochMs NumericPolicy = "epoch_ms"
)

// NumericPolicies lists the accepted policy names
func NumericPolicies() []string {
	return []string{string(NumericText), string(NumericReject), string(NumericEpochMs)}
}

// DefaultLocale is used when neither the caller nor configuration names one
const DefaultLocale = "en"

// FormatRequest selects one of the formatting modes
// precedence is FormatString, then FromNow, then Difference; none returns the input
type FormatRequest struct {
	FormatString string
	FromNow      bool
	Difference   string
	Locale       string
}

// Mode is the branch a request takes
type Mode string

// Modes in precedence order
const (
	ModeFormat     Mode = "format"
	ModeFromNow    Mode = "from_now"
	ModeDifference Mode = "difference"
	ModeIdentity   Mode = "identity"
)

// Mode picks the branch; an explicit pattern beats the relative flag which beats a unit
func (r FormatRequest) Mode() Mode {
	switch {
	case r.FormatString != "":
		return ModeFormat
	case r.FromNow:
		return ModeFromNow
	case r.Difference != "":
		return ModeDifference
	default:
		return ModeIdentity
	}
}

// ResolveInfo is positional metadata forwarded to the upstream resolver
// From and FromNode are hints only the upstream reads
type ResolveInfo struct {
	FieldName string
	Path      []string
	From      string
	FromNode  bool
}

// ExecContext is what the field resolution layer hands every resolver
type ExecContext struct {
	// DefaultFieldResolver produces a value when the field has no resolver of its own
	DefaultFieldResolver Resolver
	// Values is forwarded untouched
	Values map[string]any
}

// ResolveParams bundles one resolve call
type ResolveParams struct {
	Source any
	Args   map[string]any
	Exec   ExecContext
	Info   ResolveInfo
}

// Resolver produces a field value
type Resolver func(ctx context.Context, p ResolveParams) (any, error)

// ArgSpec declares one resolver argument
type ArgSpec struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Default     any    `json:"default,omitempty"`
}

// Field is a resolvable field with its declared arguments
type Field struct {
	Type    string
	Args    map[string]ArgSpec
	Resolve Resolver
}

// ResolverOptions are fixed when the date resolver is built
type ResolverOptions struct {
	From     string
	FromNode bool
	// Defaults are used for any argument the caller omits
	Defaults FormatRequest
}

// CacheStats summarizes a cache backend
type CacheStats struct {
	Driver  string
	Entries int64
	Bytes   int64
}

// Clock returns the current instant
type Clock func() time.Time
