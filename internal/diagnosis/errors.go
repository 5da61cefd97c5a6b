package diagnosis

import "errors"

// modelNotFoundError signals that no artifact exists at the configured path.
type modelNotFoundError struct{ path string }

func (e modelNotFoundError) Error() string { return "model file not found: " + e.path }

// ErrModelNotFound returns an error for a missing artifact at path.
func ErrModelNotFound(path string) error { return modelNotFoundError{path: path} }

// IsModelNotFound reports whether err indicates a missing artifact.
func IsModelNotFound(err error) bool {
	var e modelNotFoundError
	return errors.As(err, &e)
}

// artifactError signals an artifact that exists but cannot be used.
type artifactError struct {
	path string
	err  error
}

func (e artifactError) Error() string { return "invalid model artifact " + e.path + ": " + e.err.Error() }

func (e artifactError) Unwrap() error { return e.err }

// IsInvalidArtifact reports whether err indicates an unreadable or
// incompatible artifact.
func IsInvalidArtifact(err error) bool {
	var e artifactError
	return errors.As(err, &e)
}
