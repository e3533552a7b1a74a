// Package apperr defines sentinel errors shared across the application.
package apperr

import "errors"

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrImport     = errors.New("import failed")
	ErrTranslate  = errors.New("translation unavailable")
)
