package locale

import "errors"

var (
	ErrInvalidTag     = errors.New("locale: invalid language tag")
	ErrDuplicateTag   = errors.New("locale: duplicate language tag")
	ErrInvalidCatalog = errors.New("locale: invalid catalog")
)
