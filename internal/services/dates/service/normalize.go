package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"datefmt/internal/core/classify"
	perr "datefmt/internal/platform/errors"
	"datefmt/internal/services/dates/domain"
)

// jsTime is the JSON form of a time value, which the catalog accepts
const jsTime = "2006-01-02T15:04:05.000Z"

// normalize deep copies v through its JSON form so a caller mutating its own
// value later cannot change what was formatted; numbers survive as json.Number
func normalize(v any) (any, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case string:
		return t, nil
	case time.Time:
		return t.UTC().Format(jsTime), nil
	case *time.Time:
		if t == nil {
			return nil, nil
		}
		return t.UTC().Format(jsTime), nil
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "normalize date")
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "normalize date")
	}
	return out, nil
}

// instant parses a normalized value under the numeric policy
func (s *Svc) instant(norm any) (time.Time, bool) {
	if classify.IsNumeric(norm) {
		n := json.Number(fmt.Sprint(norm))
		switch s.numeric {
		case domain.NumericReject:
			return time.Time{}, false
		case domain.NumericEpochMs:
			return epochMs(n)
		default:
			return s.oracle.Parse(n.String())
		}
	}
	if v, ok := norm.(string); ok {
		return s.oracle.Parse(v)
	}
	return time.Time{}, false
}

func epochMs(n json.Number) (time.Time, bool) {
	if ms, err := n.Int64(); err == nil {
		return time.UnixMilli(ms).UTC(), true
	}
	f, err := n.Float64()
	if err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(int64(f)).UTC(), true
}

// keyInput renders a normalized value for the cache key
// strings, numbers and other shapes get distinct tags so they never share a
// key; numbers also carry the policy since it changes their meaning
func (s *Svc) keyInput(norm any) string {
	switch v := norm.(type) {
	case string:
		return "s:" + v
	case json.Number:
		return "n:" + string(s.numeric) + ":" + v.String()
	case nil:
		return "z:"
	default:
		raw, _ := json.Marshal(v)
		return "j:" + string(raw)
	}
}
