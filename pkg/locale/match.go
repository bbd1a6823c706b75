package locale

import "strings"

// BestMatch returns the tag from available that best serves requested.
// Iteration order of available decides ties between prefix matches.
// An empty request never matches.
func BestMatch(requested string, available []string) (string, bool) {
	if requested == "" {
		return "", false
	}

	for _, tag := range available {
		if tag == requested {
			return tag, true
		}
	}

	primary := Primary(requested)
	for _, tag := range available {
		if tag == primary {
			return tag, true
		}
	}

	for _, tag := range available {
		if strings.HasPrefix(tag, primary) {
			return tag, true
		}
	}

	return "", false
}

// Primary returns the primary language subtag ("en" for "en-US").
func Primary(tag string) string {
	primary, _, _ := strings.Cut(tag, "-")
	return primary
}
