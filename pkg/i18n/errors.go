package i18n

import "errors"

var (
	ErrInvalidLocale    = errors.New("i18n: locale is not available")
	ErrSuperseded       = errors.New("i18n: load superseded by a newer request")
	ErrResourceNotFound = errors.New("i18n: locale resource not found")
	ErrInvalidResource  = errors.New("i18n: invalid locale resource")
	ErrNilCatalog       = errors.New("i18n: catalog cannot be nil")
	ErrNilSource        = errors.New("i18n: source cannot be nil")
)
