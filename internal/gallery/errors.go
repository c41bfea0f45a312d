package gallery

import "errors"

// ErrForbidden indicates the caller does not own the entity a mutating
// operation targets.
var ErrForbidden = errors.New("gallery: forbidden")

// ErrInvalidInput indicates a caller-supplied value failed validation, such
// as an empty album title or an upload that is not an allowed image.
var ErrInvalidInput = errors.New("gallery: invalid input")
