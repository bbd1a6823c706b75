package theme

import "errors"

var ErrInvalidTheme = errors.New("theme: theme is not available")
