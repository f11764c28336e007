// Package apperr holds the closed set of error kinds the storage layer reports.
package apperr

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is checks. Each typed error below matches exactly one of them.
var (
	ErrConnection     = errors.New("connection error")
	ErrIO             = errors.New("io error")
	ErrEntityNotFound = errors.New("entity not found")
	ErrStorage        = errors.New("storage error")
)

// Kind classifies an error into one of the domain error kinds.
type Kind string

const (
	KindConnection Kind = "connection"
	KindIO         Kind = "io"
	KindNotFound   Kind = "not_found"
	KindStorage    Kind = "storage"
	KindUnknown    Kind = "unknown"
)

// ConnectionError reports a failure to establish a pool against a database.
type ConnectionError struct {
	Host     string
	Database string
	User     string
	Err      error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connect %s@%s/%s: %v", e.User, e.Host, e.Database, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

func (e *ConnectionError) Is(target error) bool { return target == ErrConnection }

// IOError reports a script file or directory that could not be read.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func (e *IOError) Is(target error) bool { return target == ErrIO }

// EntityNotFoundError is returned when a get, update or delete matched no row.
type EntityNotFoundError struct {
	Entity string
	ID     string
}

func NewEntityNotFound(entity string, id int64) *EntityNotFoundError {
	return &EntityNotFoundError{Entity: entity, ID: fmt.Sprintf("%d", id)}
}

func (e *EntityNotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

func (e *EntityNotFoundError) Is(target error) bool { return target == ErrEntityNotFound }

// StorageError wraps any other store failure together with the operation that hit it.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }

func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

// IsEntityNotFound reports whether err carries an EntityNotFoundError and returns it.
func IsEntityNotFound(err error) (*EntityNotFoundError, bool) {
	var nf *EntityNotFoundError
	if errors.As(err, &nf) {
		return nf, true
	}
	return nil, false
}

// KindOf returns the kind of the outermost domain error found in err's chain.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var (
		connErr    *ConnectionError
		ioErr      *IOError
		notFound   *EntityNotFoundError
		storageErr *StorageError
	)
	switch {
	case errors.As(err, &notFound):
		return KindNotFound
	case errors.As(err, &connErr):
		return KindConnection
	case errors.As(err, &ioErr):
		return KindIO
	case errors.As(err, &storageErr):
		return KindStorage
	}
	return KindUnknown
}
