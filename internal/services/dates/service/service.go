// Package service contains the memoized date formatter and the date resolver
package service

import (
	"context"
	"time"

	"datefmt/internal/core/calendar"
	"datefmt/internal/core/classify"
	"datefmt/internal/core/layout"
	perr "datefmt/internal/platform/errors"
	"datefmt/internal/platform/logger"
	pnet "datefmt/internal/platform/net"
	"datefmt/internal/services/dates/cache"
	"datefmt/internal/services/dates/domain"
)

// Service is the public service port
type Service interface{ domain.ServicePort }

// Options control service behavior
type Options struct {
	// Cache is required
	Cache domain.Cache

	// Oracle defaults to the built-in calendar
	Oracle domain.Oracle

	// Classifier defaults to the built-in catalog classifier
	Classifier domain.Classifier

	// Catalog is reported by Layouts, defaults to the built-in catalog
	Catalog *layout.Compiled

	// Numeric defaults to NumericText
	Numeric domain.NumericPolicy

	// Defaults seed the resolver arguments; an empty locale means en
	Defaults domain.FormatRequest

	// FanOut bounds concurrent element formatting, 0 means 8
	FanOut int

	Now domain.Clock
}

// Svc implements the service port
type Svc struct {
	cache    domain.Cache
	oracle   domain.Oracle
	classify domain.Classifier
	catalog  *layout.Compiled
	numeric  domain.NumericPolicy
	defaults domain.FormatRequest
	fanOut   int
	now      domain.Clock
}

// New constructs the service
func New(opt Options) *Svc {
	if opt.Cache == nil {
		panic("dates.Service requires a non nil Cache")
	}
	s := &Svc{
		cache:    opt.Cache,
		oracle:   opt.Oracle,
		classify: opt.Classifier,
		catalog:  opt.Catalog,
		numeric:  opt.Numeric,
		defaults: opt.Defaults,
		fanOut:   opt.FanOut,
		now:      opt.Now,
	}
	if s.oracle == nil {
		s.oracle = calendar.Default()
	}
	if s.classify == nil {
		s.classify = classify.Default()
	}
	if s.catalog == nil {
		s.catalog = layout.Default()
	}
	switch s.numeric {
	case domain.NumericText, domain.NumericReject, domain.NumericEpochMs:
	default:
		s.numeric = domain.NumericText
	}
	if s.defaults.Locale == "" {
		s.defaults.Locale = domain.DefaultLocale
	}
	if s.fanOut <= 0 {
		s.fanOut = 8
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// FormatDate renders date per req
// unparseable input yields the invalid date sentinel; only cache failures are errors
func (s *Svc) FormatDate(ctx context.Context, date any, req domain.FormatRequest) (any, error) {
	norm, err := normalize(date)
	if err != nil {
		return nil, err
	}
	locale := req.Locale
	if locale == "" {
		locale = domain.DefaultLocale
	}

	switch req.Mode() {
	case domain.ModeFormat:
		return s.formatCached(ctx, norm, req.FormatString, locale)
	case domain.ModeFromNow:
		t, ok := s.instant(norm)
		if !ok {
			return calendar.InvalidDate, nil
		}
		return s.oracle.FromNow(t, s.now(), locale), nil
	case domain.ModeDifference:
		t, ok := s.instant(norm)
		if !ok {
			return calendar.InvalidDate, nil
		}
		return s.oracle.Diff(s.now(), t, req.Difference), nil
	default:
		return norm, nil
	}
}

// formatCached is read then compute and write; two racing misses write the same value
func (s *Svc) formatCached(ctx context.Context, norm any, pattern, locale string) (string, error) {
	log := logger.C(ctx)
	key := cache.Key(s.keyInput(norm), pattern, locale)

	v, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		log.Error().Err(err).Str("pattern", pattern).Msg("format cache get failed")
		return "", perr.Wrap(err, perr.ErrorCodeUnavailable, "format cache get")
	}
	if ok {
		log.Debug().Str("pattern", pattern).Str("locale", locale).Msg("format cache hit")
		return v, nil
	}

	out := calendar.InvalidDate
	if t, ok := s.instant(norm); ok {
		out = s.oracle.Format(t, pattern, locale)
	}
	if err := s.cache.Set(ctx, key, out); err != nil {
		log.Error().Err(err).Str("pattern", pattern).Msg("format cache set failed")
		return "", perr.Wrap(err, perr.ErrorCodeUnavailable, "format cache set")
	}
	log.Debug().Str("pattern", pattern).Str("locale", locale).Msg("format cache miss")
	return out, nil
}

// Classify runs both checks over each value
func (s *Svc) Classify(_ context.Context, in domain.ClassifyInput) (domain.ClassifyOutput, error) {
	rows := make([]domain.ClassifyRow, len(in.Values))
	for i, v := range in.Values {
		rows[i] = domain.ClassifyRow{
			Value:         v,
			LooksLikeDate: s.classify.LooksLikeADate(v),
			IsDate:        s.classify.IsDate(v),
		}
	}
	return domain.ClassifyOutput{Rows: rows}, nil
}

// Format formats one value; the locale falls back to the negotiated request locale
func (s *Svc) Format(ctx context.Context, in domain.FormatInput) (domain.FormatOutput, error) {
	out, err := s.FormatDate(ctx, in.Date, domain.FormatRequest{
		FormatString: in.FormatString,
		FromNow:      in.FromNow,
		Difference:   in.Difference,
		Locale:       s.locale(ctx, in.Locale),
	})
	if err != nil {
		return domain.FormatOutput{}, err
	}
	return domain.FormatOutput{Result: out}, nil
}

// Resolve runs the date resolver over a source holding in.Value
func (s *Svc) Resolve(ctx context.Context, in domain.ResolveInput) (domain.ResolveOutput, error) {
	defaults := s.defaults
	defaults.Locale = s.locale(ctx, "")
	field := s.DateResolver(domain.ResolverOptions{Defaults: defaults}, domain.Field{Type: "Date"})

	out, err := field.Resolve(ctx, domain.ResolveParams{
		Source: map[string]any{"value": in.Value},
		Args:   in.Args,
		Exec:   domain.ExecContext{DefaultFieldResolver: PropertyResolver},
		Info:   domain.ResolveInfo{FieldName: "value", Path: []string{"value"}},
	})
	if err != nil {
		return domain.ResolveOutput{}, err
	}
	return domain.ResolveOutput{Result: out}, nil
}

// Layouts describes the compiled catalog
func (s *Svc) Layouts(context.Context) (domain.LayoutsOutput, error) {
	return domain.LayoutsOutput{
		Templates: s.catalog.Templates(),
		Pattern:   s.catalog.Pattern(),
		Lengths:   s.catalog.Lengths(),
		Locales:   calendar.Supported(),
	}, nil
}

func (s *Svc) locale(ctx context.Context, explicit string) string {
	if explicit != "" {
		return explicit
	}
	if l := pnet.Locale(ctx); l != "" {
		return l
	}
	return s.defaults.Locale
}
