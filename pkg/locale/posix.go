package locale

import (
	"strings"

	"golang.org/x/text/language"
)

// FromPOSIX converts a POSIX locale string such as "en_US.UTF-8" or
// "de_DE@euro" into a BCP 47 tag ("en-US", "de-DE").
// The "C" and "POSIX" locales, and anything unparsable, yield "".
func FromPOSIX(s string) string {
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimSpace(s)
	if s == "" || s == "C" || s == "POSIX" {
		return ""
	}

	tag, err := language.Parse(strings.ReplaceAll(s, "_", "-"))
	if err != nil {
		return ""
	}
	return tag.String()
}

// FromEnv picks the first non-empty POSIX locale among LC_ALL, LC_MESSAGES
// and LANG, using lookup to read variables (os.Getenv in production).
func FromEnv(lookup func(string) string) string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if tag := FromPOSIX(lookup(key)); tag != "" {
			return tag
		}
	}
	return ""
}
