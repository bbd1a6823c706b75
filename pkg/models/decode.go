package models

import (
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"

	"github.com/dmitrymomot/archivist/pkg/casing"
)

func decode(raw map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			timeToStringHook,
			commaListHook,
		),
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(casing.Normalize(raw))
}

// timeToStringHook turns YAML timestamps back into text so LastUpdated keeps
// a single representation.
func timeToStringHook(from, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.String {
		return data, nil
	}
	t, ok := data.(time.Time)
	if !ok {
		return data, nil
	}
	if t.Equal(t.Truncate(24*time.Hour)) && t.Location() == time.UTC {
		return t.Format(time.DateOnly), nil
	}
	return t.Format(time.RFC3339), nil
}

// commaListHook accepts "a, b" where a list of strings is expected.
func commaListHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Slice {
		return data, nil
	}
	return SplitList(reflect.ValueOf(data).String()), nil
}

// SplitList splits a comma-separated list and trims every element.
// Empty elements are dropped.
func SplitList(s string) []string {
	out := []string{}
	for p := range strings.SplitSeq(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, ErrNoTimestamp
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrBadTimestamp
}

// trimSlash strips exactly one trailing slash.
func trimSlash(s string) string {
	return strings.TrimSuffix(s, "/")
}

var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeURIComponent percent-encodes s leaving only
// A-Z a-z 0-9 - _ . ! ~ * ' ( ) unescaped.
func EncodeURIComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}
