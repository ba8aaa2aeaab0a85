package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound             = errors.New("not found")
	ErrMissingRequiredField = errors.New("missing required field")
	ErrMalformedAssetPath   = errors.New("malformed asset path")
	ErrUnknownVariant       = errors.New("unknown variant")
)

// MissingFieldError reports a builder invoked without a mandatory field.
type MissingFieldError struct {
	Record string // e.g. "TechArticle", "Figure"
	Field  string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Record, e.Field, ErrMissingRequiredField)
}

// Is makes errors.Is(err, ErrMissingRequiredField) hold.
func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingRequiredField
}

// AssetPathError reports an image or figure reference that cannot be rendered.
type AssetPathError struct {
	Path   string
	Reason string
}

func (e *AssetPathError) Error() string {
	return fmt.Sprintf("%s %q: %s", ErrMalformedAssetPath, e.Path, e.Reason)
}

// Is makes errors.Is(err, ErrMalformedAssetPath) hold.
func (e *AssetPathError) Is(target error) bool {
	return target == ErrMalformedAssetPath
}
