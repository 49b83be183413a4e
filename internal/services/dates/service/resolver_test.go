package service

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	perr "datefmt/internal/platform/errors"
	"datefmt/internal/services/dates/domain"
)

func constResolver(v any) domain.Resolver {
	return func(context.Context, domain.ResolveParams) (any, error) { return v, nil }
}

func TestDateResolver_ArgsMergeOverFieldArgs(t *testing.T) {
	t.Parallel()

	s := newSvc(newCountingCache())
	field := s.DateResolver(domain.ResolverOptions{Defaults: domain.FormatRequest{FormatString: "YYYY", Locale: "de"}},
		domain.Field{Type: "Date", Args: map[string]domain.ArgSpec{
			"filter":        {Type: "String"},
			ArgFormatString: {Type: "Int"},
		}})

	if _, ok := field.Args["filter"]; !ok {
		t.Fatal("field args dropped")
	}
	if a := field.Args[ArgFormatString]; a.Type != "String" || a.Default != "YYYY" {
		t.Fatalf("formatString = %+v", a)
	}
	if a := field.Args[ArgLocale]; a.Default != "de" {
		t.Fatalf("locale = %+v", a)
	}
	if a := field.Args[ArgDifference]; a.Default != nil {
		t.Fatalf("difference default = %v", a.Default)
	}
	if a := field.Args[ArgFromNow]; a.Default != false || a.Description == "" {
		t.Fatalf("fromNow = %+v", a)
	}
}

func TestDateResolver_NullPassesThrough(t *testing.T) {
	t.Parallel()

	c := newCountingCache()
	s := newSvc(c)
	field := s.DateResolver(domain.ResolverOptions{}, domain.Field{Resolve: constResolver(nil)})

	got, err := field.Resolve(context.Background(), domain.ResolveParams{
		Args: map[string]any{ArgFormatString: "YYYY"},
	})
	if err != nil || got != nil {
		t.Fatalf("got %v %v", got, err)
	}
	if c.gets.Load() != 0 {
		t.Fatal("formatter ran for a null value")
	}
}

func TestDateResolver_ScalarUsesArgsOverDefaults(t *testing.T) {
	t.Parallel()

	s := newSvc(newCountingCache(), withLocaleOracle)
	field := s.DateResolver(domain.ResolverOptions{Defaults: domain.FormatRequest{FormatString: "YYYY", Locale: "fr"}},
		domain.Field{Resolve: constResolver("2021-03-15")})

	got, _ := field.Resolve(context.Background(), domain.ResolveParams{})
	if got != "fr" {
		t.Fatalf("defaults: %v", got)
	}
	got, _ = field.Resolve(context.Background(), domain.ResolveParams{
		Args: map[string]any{ArgFormatString: "MMMM", ArgLocale: "nl", "unrelated": 3},
	})
	if got != "nl" {
		t.Fatalf("args: %v", got)
	}
}

func TestDateResolver_BadArgType(t *testing.T) {
	t.Parallel()

	s := newSvc(newCountingCache())
	field := s.DateResolver(domain.ResolverOptions{}, domain.Field{Resolve: constResolver("2021-03-15")})
	_, err := field.Resolve(context.Background(), domain.ResolveParams{Args: map[string]any{ArgFromNow: "yes"}})
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("expected invalid argument got %v", err)
	}
	if e, _ := perr.As(err); e.Field() != ArgFromNow {
		t.Fatalf("field = %q", e.Field())
	}
}

func TestDateResolver_SequenceKeepsOrder(t *testing.T) {
	t.Parallel()

	// later elements finish first
	delays := map[string]time.Duration{
		"2021-03-15": 30 * time.Millisecond,
		"2021-03-16": 15 * time.Millisecond,
		"2021-03-17": 0,
	}
	s := newSvc(slowCache{inner: newCountingCache(), delay: delays})
	field := s.DateResolver(domain.ResolverOptions{},
		domain.Field{Resolve: constResolver([]string{"2021-03-15", "2021-03-16", "2021-03-17"})})

	got, err := field.Resolve(context.Background(), domain.ResolveParams{Args: map[string]any{ArgFormatString: "DD"}})
	if err != nil {
		t.Fatal(err)
	}
	list, ok := got.([]any)
	if !ok || len(list) != 3 {
		t.Fatalf("got %#v", got)
	}
	for i, want := range []string{"15", "16", "17"} {
		if list[i] != want {
			t.Fatalf("element %d = %v want %s", i, list[i], want)
		}
	}
}

func TestDateResolver_SequenceErrorFails(t *testing.T) {
	t.Parallel()

	c := newCountingCache()
	c.getErr = errors.New("down")
	s := newSvc(c)
	field := s.DateResolver(domain.ResolverOptions{},
		domain.Field{Resolve: constResolver([]any{"2021-03-15", "2021-03-16"})})

	_, err := field.Resolve(context.Background(), domain.ResolveParams{Args: map[string]any{ArgFormatString: "DD"}})
	if !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("expected unavailable got %v", err)
	}
}

func TestDateResolver_FallsBackToDefaultResolver(t *testing.T) {
	t.Parallel()

	s := newSvc(newCountingCache())
	field := s.DateResolver(domain.ResolverOptions{}, domain.Field{})

	got, err := field.Resolve(context.Background(), domain.ResolveParams{
		Source: map[string]any{"published": "2021-03-15"},
		Args:   map[string]any{ArgFormatString: "YYYY"},
		Exec:   domain.ExecContext{DefaultFieldResolver: PropertyResolver},
		Info:   domain.ResolveInfo{FieldName: "published"},
	})
	if err != nil || got != "2021" {
		t.Fatalf("got %v %v", got, err)
	}

	if _, err := field.Resolve(context.Background(), domain.ResolveParams{}); !perr.IsCode(err, perr.ErrorCodeUnknown) {
		t.Fatalf("expected error without any resolver got %v", err)
	}
}

func TestDateResolver_SourceHints(t *testing.T) {
	t.Parallel()

	var seen atomic.Value
	capture := func(_ context.Context, p domain.ResolveParams) (any, error) {
		seen.Store(p.Info)
		return nil, nil
	}
	s := newSvc(newCountingCache())
	info := domain.ResolveInfo{FieldName: "date", From: "info.from", FromNode: true}

	withFrom := s.DateResolver(domain.ResolverOptions{From: "frontmatter.date", FromNode: false},
		domain.Field{Resolve: capture})
	_, _ = withFrom.Resolve(context.Background(), domain.ResolveParams{Info: info})
	got := seen.Load().(domain.ResolveInfo)
	if got.From != "frontmatter.date" || got.FromNode {
		t.Fatalf("option hints = %+v", got)
	}

	without := s.DateResolver(domain.ResolverOptions{FromNode: false}, domain.Field{Resolve: capture})
	_, _ = without.Resolve(context.Background(), domain.ResolveParams{Info: info})
	got = seen.Load().(domain.ResolveInfo)
	if got.From != "info.from" || !got.FromNode {
		t.Fatalf("info hints = %+v", got)
	}
}

func TestDateResolver_UpstreamErrorPropagates(t *testing.T) {
	t.Parallel()

	boom := errors.New("upstream")
	s := newSvc(newCountingCache())
	field := s.DateResolver(domain.ResolverOptions{}, domain.Field{
		Resolve: func(context.Context, domain.ResolveParams) (any, error) { return nil, boom },
	})
	if _, err := field.Resolve(context.Background(), domain.ResolveParams{}); !errors.Is(err, boom) {
		t.Fatalf("got %v", err)
	}
}

func TestResolve_EndToEnd(t *testing.T) {
	t.Parallel()

	s := newSvc(newCountingCache(), func(o *Options) { o.Defaults.FormatString = "YYYY" })
	out, err := s.Resolve(context.Background(), domain.ResolveInput{Value: []any{"2021-03-15", nil}})
	if err != nil {
		t.Fatal(err)
	}
	list := out.Result.([]any)
	if list[0] != "2021" || list[1] != "Invalid date" {
		t.Fatalf("got %v", list)
	}

	out, _ = s.Resolve(context.Background(), domain.ResolveInput{Value: nil})
	if out.Result != nil {
		t.Fatalf("null: %v", out.Result)
	}
}

func TestSequence(t *testing.T) {
	t.Parallel()

	if _, ok := sequence([]byte("2021")); ok {
		t.Fatal("bytes are not a list")
	}
	if _, ok := sequence("2021"); ok {
		t.Fatal("string is not a list")
	}
	if s, ok := sequence([2]int{1, 2}); !ok || len(s) != 2 {
		t.Fatalf("array = %v %v", s, ok)
	}
}

func TestPropertyResolver_Struct(t *testing.T) {
	t.Parallel()

	type node struct {
		Date   string
		hidden string
	}
	n := &node{Date: "2021-03-15", hidden: "x"}
	got, _ := PropertyResolver(context.Background(), domain.ResolveParams{Source: n, Info: domain.ResolveInfo{FieldName: "Date"}})
	if got != "2021-03-15" {
		t.Fatalf("got %v", got)
	}
	got, _ = PropertyResolver(context.Background(), domain.ResolveParams{Source: n, Info: domain.ResolveInfo{FieldName: "hidden"}})
	if got != nil {
		t.Fatalf("unexported = %v", got)
	}
}

// slowCache delays misses per input so completion order differs from input order
type slowCache struct {
	inner *countingCache
	delay map[string]time.Duration
}

func (c slowCache) Get(ctx context.Context, k string) (string, bool, error) {
	for in, d := range c.delay {
		if strings.Contains(k, in) {
			time.Sleep(d)
		}
	}
	return c.inner.Get(ctx, k)
}

func (c slowCache) Set(ctx context.Context, k, v string) error { return c.inner.Set(ctx, k, v) }
