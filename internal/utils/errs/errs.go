package errs

import "errors"

var (
	ErrNoInputFiles   = errors.New("no readable listing files in input directory")
	ErrBadStatus      = errors.New("unexpected HTTP status")
	ErrEmptyBody      = errors.New("empty response body")
	ErrUnsafeFilename = errors.New("suggested filename contains path separators")
)
