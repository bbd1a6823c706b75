package locale

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// maxAcceptLanguageLength bounds how much of an Accept-Language header is parsed.
const maxAcceptLanguageLength = 4096

type weightedTag struct {
	tag     string
	quality float64
}

// ParseAcceptLanguage returns the tags of an Accept-Language header ordered
// by descending quality. Ties keep header order. Wildcards and entries with
// q=0 are dropped.
//
// Example:
//
//	ParseAcceptLanguage("fr;q=0.5, zh-CN, en;q=0.9") // ["zh-CN", "en", "fr"]
func ParseAcceptLanguage(header string) []string {
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}

	var tags []weightedTag
	for part := range strings.SplitSeq(header, ",") {
		tag, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		tag = strings.TrimSpace(tag)
		if tag == "" || tag == "*" {
			continue
		}

		quality := 1.0
		for param := range strings.SplitSeq(params, ";") {
			name, value, ok := strings.Cut(strings.TrimSpace(param), "=")
			if !ok || strings.TrimSpace(name) != "q" {
				continue
			}
			if q, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil && q >= 0 && q <= 1 {
				quality = q
			}
		}
		if quality == 0 {
			continue
		}

		tags = append(tags, weightedTag{tag: tag, quality: quality})
	}

	slices.SortStableFunc(tags, func(a, b weightedTag) int {
		return cmp.Compare(b.quality, a.quality)
	})

	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = t.tag
	}
	return out
}

// MatchAcceptLanguage returns the catalog tag matching the most preferred
// entry of an Accept-Language header.
func (c *Catalog) MatchAcceptLanguage(header string) (string, bool) {
	for _, tag := range ParseAcceptLanguage(header) {
		if match, ok := c.BestMatch(tag); ok {
			return match, true
		}
	}
	return "", false
}
