package types

import "fmt"

// ErrDirNotFound is returned when the target directory does not exist
type ErrDirNotFound struct {
	Path string
}

func (e ErrDirNotFound) Error() string {
	return fmt.Sprintf("directory not found: %s", e.Path)
}

// ErrTargetExists is returned instead of overwriting an existing file
type ErrTargetExists struct {
	Path string
}

func (e ErrTargetExists) Error() string {
	return fmt.Sprintf("target already exists: %s", e.Path)
}

// ErrNoDate marks a description without a recognizable date
type ErrNoDate struct {
	Path string
}

func (e ErrNoDate) Error() string {
	return fmt.Sprintf("no date found in %s", e.Path)
}

// ErrInvalidPattern wraps a prefix or template that failed to compile
type ErrInvalidPattern struct {
	Pattern string
	Err     error
}

func (e ErrInvalidPattern) Error() string {
	return fmt.Sprintf("invalid pattern %q: %v", e.Pattern, e.Err)
}

func (e ErrInvalidPattern) Unwrap() error {
	return e.Err
}
