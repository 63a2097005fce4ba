package domain

import "errors"

// ErrNotFound is returned by service functions when the addressed
// session, row, or saved project does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails
// business rule validation (e.g. an unknown move direction).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrInvalidProject is returned when a persisted project document cannot
// be loaded: the body is not JSON, or its rows field is missing or not a
// list. The current session state is left untouched when this is
// returned. Handlers should map this to HTTP 422.
var ErrInvalidProject = errors.New("invalid project file")
