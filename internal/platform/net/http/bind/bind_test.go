package bind

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "datefmt/internal/platform/errors"
	"datefmt/internal/platform/testkit"
)

type payload struct {
	Date     any      `json:"date"               validate:"required"`
	Values   []string `json:"values,omitempty"   validate:"omitempty,max=2"`
	Locale   string   `json:"locale,omitempty"   validate:"omitempty,max=35,locale_tag"`
	Internal string   `json:"-"`
	NoTag    string   `validate:"omitempty,min=3"`
}

func post(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/dates/format", strings.NewReader(body))
}

func TestParseJSON_DecodesNumbersExactly(t *testing.T) {
	t.Parallel()
	got, err := ParseJSON[payload](post(`{"date":1616371200000,"locale":"pt_BR"}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	n, ok := got.Date.(json.Number)
	if !ok || n.String() != "1616371200000" {
		t.Fatalf("date %T %v", got.Date, got.Date)
	}
}

func TestParseJSON_RejectsMalformedBodies(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"empty":    "",
		"broken":   `{"date":`,
		"unknown":  `{"date":"2021","extra":1}`,
		"trailing": `{"date":"2021"} {"date":"2022"}`,
		"too big":  `{"date":"` + strings.Repeat("9", MaxBody) + `"}`,
	}
	for name, body := range cases {
		_, err := ParseJSON[payload](post(body))
		if !perr.IsCode(err, perr.ErrorCodeJSON) {
			t.Fatalf("%s: want JSON error, got %v", name, err)
		}
	}
}

func TestParseJSON_ValidationNamesJSONField(t *testing.T) {
	t.Parallel()
	cases := []struct {
		body, field, msg string
	}{
		{`{"values":["a"]}`, "date", "date is a required field"},
		{`{"date":"x","values":["a","b","c"]}`, "values", "values must be at most 2"},
		{`{"date":"x","locale":"not a tag!"}`, "locale", "locale must be a BCP 47 language tag"},
		{`{"date":"x","NoTag":"ab"}`, "NoTag", "NoTag must be at least 3"},
	}
	for _, c := range cases {
		_, err := ParseJSON[payload](post(c.body))
		e, ok := perr.As(err)
		if !ok || e.Code() != perr.ErrorCodeValidation {
			t.Fatalf("%s: %v", c.body, err)
		}
		if e.Field() != c.field {
			t.Fatalf("%s: field %q want %q", c.body, e.Field(), c.field)
		}
		testkit.MustContain(t, e.Error(), c.msg)
	}
}

func TestParseJSON_LocaleTags(t *testing.T) {
	t.Parallel()
	for _, tag := range []string{"", "en", "pt_BR", "ja", "de-CH"} {
		body := `{"date":"x","locale":"` + tag + `"}`
		if _, err := ParseJSON[payload](post(body)); err != nil {
			t.Fatalf("%q rejected: %v", tag, err)
		}
	}
}

func TestParseJSON_TrailingSeam(t *testing.T) {
	testkit.Serial(t)
	testkit.Swap(t, &jsonMore, func(*json.Decoder) bool { return true })
	if _, err := ParseJSON[payload](post(`{"date":"x"}`)); !perr.IsCode(err, perr.ErrorCodeJSON) {
		t.Fatalf("want trailing data error, got %v", err)
	}
}

func TestParseJSON_NonStructTarget(t *testing.T) {
	t.Parallel()
	if _, err := ParseJSON[[]string](post(`["a"]`)); !perr.IsCode(err, perr.ErrorCodeJSON) {
		t.Fatalf("want validator internal error mapped to JSON, got %v", err)
	}
}
