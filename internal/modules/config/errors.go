package config

import (
	"errors"
	"fmt"
)

// ErrBlobNotFound is returned by a BlobStore when the key has never been written
// or was deleted.
var ErrBlobNotFound = errors.New("config blob not found")

// InvalidPathError reports a dot path that does not resolve against the
// configuration tree.
type InvalidPathError struct {
	Path   string
	Reason string
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("invalid config path %q: %s", e.Path, e.Reason)
}

// InvalidValueError reports a value that cannot be stored at a path, either
// because it has the wrong shape or because the resulting configuration fails
// validation.
type InvalidValueError struct {
	Path string
	Err  error
}

func (e *InvalidValueError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid config: %v", e.Err)
	}
	return fmt.Sprintf("invalid value for %q: %v", e.Path, e.Err)
}

func (e *InvalidValueError) Unwrap() error { return e.Err }

// UnknownToppingError reports a topping that is absent from the live pricing
// table. Such a topping is never priced as free.
type UnknownToppingError struct {
	Topping string
}

func (e *UnknownToppingError) Error() string {
	return fmt.Sprintf("unknown topping %q", e.Topping)
}
