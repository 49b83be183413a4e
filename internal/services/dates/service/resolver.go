package service

import (
	"context"
	"maps"
	"reflect"

	perr "datefmt/internal/platform/errors"
	"datefmt/internal/services/dates/domain"

	"golang.org/x/sync/errgroup"
)

// argument names published by DateResolver
const (
	ArgFormatString = "formatString"
	ArgFromNow      = "fromNow"
	ArgDifference   = "difference"
	ArgLocale       = "locale"
)

// DateArgs declares the date arguments with the given defaults
func DateArgs(d domain.FormatRequest) map[string]domain.ArgSpec {
	return map[string]domain.ArgSpec{
		ArgFormatString: {
			Type: "String",
			Description: "Format the date using Moment.js' date tokens, e.g. " +
				"`date(formatString: \"YYYY MMMM DD\")`. See https://momentjs.com/docs/#/displaying/format/ " +
				"for documentation for different tokens.",
			Default: orNil(d.FormatString),
		},
		ArgFromNow: {
			Type:        "Boolean",
			Description: "Returns a string generated with Moment.js' `fromNow` function",
			Default:     d.FromNow,
		},
		ArgDifference: {
			Type: "String",
			Description: "Returns the difference between this date and the current time. " +
				"Defaults to \"milliseconds\" but you can also pass in as the measurement " +
				"\"years\", \"months\", \"weeks\", \"days\", \"hours\", \"minutes\", and \"seconds\".",
			Default: orNil(d.Difference),
		},
		ArgLocale: {
			Type:        "String",
			Description: "Configures the locale Moment.js will use to format the date.",
			Default:     orNil(d.Locale),
		},
	}
}

func orNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// DateResolver wraps field so whatever it resolves is formatted by the date
// arguments; the field's own args are kept and the date args are laid over them
func (s *Svc) DateResolver(opts domain.ResolverOptions, field domain.Field) domain.Field {
	defaults := opts.Defaults
	args := maps.Clone(field.Args)
	if args == nil {
		args = make(map[string]domain.ArgSpec, 4)
	}
	maps.Copy(args, DateArgs(defaults))

	upstream := field.Resolve
	field.Args = args
	field.Resolve = func(ctx context.Context, p domain.ResolveParams) (any, error) {
		resolve := upstream
		if resolve == nil {
			resolve = p.Exec.DefaultFieldResolver
		}
		if resolve == nil {
			return nil, perr.Internalf("date resolver: field %q has no resolver", p.Info.FieldName)
		}

		req, err := requestFrom(p.Args, defaults)
		if err != nil {
			return nil, err
		}

		info := p.Info
		if opts.From != "" {
			info.From = opts.From
			info.FromNode = opts.FromNode
		}
		raw, err := resolve(ctx, domain.ResolveParams{Source: p.Source, Args: p.Args, Exec: p.Exec, Info: info})
		if err != nil {
			return nil, err
		}
		if raw == nil {
			return nil, nil
		}
		if seq, ok := sequence(raw); ok {
			return s.formatAll(ctx, seq, req)
		}
		return s.FormatDate(ctx, raw, req)
	}
	return field
}

// formatAll formats elements concurrently and keeps input order
func (s *Svc) formatAll(ctx context.Context, seq []any, req domain.FormatRequest) ([]any, error) {
	out := make([]any, len(seq))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.fanOut)
	for i, d := range seq {
		g.Go(func() error {
			v, err := s.FormatDate(gctx, d, req)
			if err != nil {
				return err
			}
			out[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// requestFrom lays caller args over the defaults
func requestFrom(args map[string]any, d domain.FormatRequest) (domain.FormatRequest, error) {
	req := d
	for name, v := range args {
		if v == nil {
			continue
		}
		var ok bool
		switch name {
		case ArgFormatString:
			req.FormatString, ok = v.(string)
		case ArgFromNow:
			req.FromNow, ok = v.(bool)
		case ArgDifference:
			req.Difference, ok = v.(string)
		case ArgLocale:
			req.Locale, ok = v.(string)
		default:
			// arguments of the wrapped field are not ours
			ok = true
		}
		if !ok {
			return domain.FormatRequest{}, perr.WithField(
				perr.InvalidArgf("argument %s has unexpected type %T", name, v), name)
		}
	}
	return req, nil
}

// sequence reports whether v is a list and flattens it to []any; bytes are not lists
func sequence(v any) ([]any, bool) {
	if s, ok := v.([]any); ok {
		return s, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	if rv.Type().Elem().Kind() == reflect.Uint8 {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// PropertyResolver reads the field named in info from a map or struct source
func PropertyResolver(_ context.Context, p domain.ResolveParams) (any, error) {
	switch src := p.Source.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return src[p.Info.FieldName], nil
	}
	rv := reflect.Indirect(reflect.ValueOf(p.Source))
	if rv.Kind() != reflect.Struct {
		return nil, nil
	}
	f := rv.FieldByName(p.Info.FieldName)
	if !f.IsValid() || !f.CanInterface() {
		return nil, nil
	}
	return f.Interface(), nil
}
