package ml

import (
	"errors"
	"fmt"
)

// Sentinel errors for classifying load and validation failures.
var (
	ErrNotFound        = errors.New("model artifact not found")
	ErrDeserialization = errors.New("model artifact could not be deserialized")

	ErrCGPAOutOfRange  = fmt.Errorf("cgpa must be between %.1f and %.1f", MinCGPA, MaxCGPA)
	ErrCGPANotPositive = errors.New("please enter a valid CGPA greater than 0")
)

// LoadErrorKind tells a missing artifact apart from a broken one.
type LoadErrorKind string

const (
	KindNotFound        LoadErrorKind = "not_found"
	KindDeserialization LoadErrorKind = "deserialization"
)

// LoadError is returned by LoadModel. Both kinds are fatal to the caller.
type LoadError struct {
	Kind LoadErrorKind
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e == nil {
		return "<nil>"
	}
	base := fmt.Sprintf("load model: %s (path=%s)", e.Kind, e.Path)
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *LoadError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is lets errors.Is match a LoadError against ErrNotFound or ErrDeserialization.
func (e *LoadError) Is(target error) bool {
	if e == nil {
		return false
	}
	switch target {
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrDeserialization:
		return e.Kind == KindDeserialization
	}
	return false
}

func notFound(path string, err error) error {
	return &LoadError{Kind: KindNotFound, Path: path, Err: err}
}

func deserialization(path string, err error) error {
	return &LoadError{Kind: KindDeserialization, Path: path, Err: err}
}

// IsWarning reports whether err is a recoverable input warning rather than a rejection.
func IsWarning(err error) bool {
	return errors.Is(err, ErrCGPANotPositive)
}
