package core

import "github.com/pkg/errors"

// Error kinds. Use errors.Is to classify an error returned by a service.
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrDuplicateKey        = errors.New("duplicate key")
	ErrNotFound            = errors.New("not found")
	ErrConstraintViolation = errors.New("constraint violation")
	ErrIO                  = errors.New("i/o error")
	ErrInvalidCredentials  = errors.New("incorrect credentials")
)

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	if err == nil {
		err = ErrInvalidInput
	}
	return &ValidationError{err, flds}
}

func (err *ValidationError) Error() string {
	if len(err.Fields) == 0 {
		return err.Err.Error()
	}
	msg := err.Err.Error() + ":"
	for i, fld := range err.Fields {
		if i > 0 {
			msg += ";"
		}
		msg += " " + fld.Field + ": " + fld.Error
	}
	return msg
}

func (err *ValidationError) Unwrap() error { return err.Err }

func (err *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// DuplicateKeyError reports a unique constraint violation on Field.
type DuplicateKeyError struct {
	Field string
	msg   string
}

func NewDuplicateKeyError(field, msg string) *DuplicateKeyError {
	return &DuplicateKeyError{Field: field, msg: msg}
}

func (err *DuplicateKeyError) Error() string { return err.msg }

func (err *DuplicateKeyError) Is(target error) bool { return target == ErrDuplicateKey }

// IOError reports a destination file that could not be written.
type IOError struct {
	Path string
	Err  error
}

func NewIOError(path string, err error) error {
	return &IOError{Path: path, Err: err}
}

func (err *IOError) Error() string { return "writing " + err.Path + ": " + err.Err.Error() }

func (err *IOError) Unwrap() error { return err.Err }

func (err *IOError) Is(target error) bool { return target == ErrIO }
