package database

import "fmt"

// DataAccessError wraps a store read/write failure with the operation that
// produced it. Callers that need to distinguish store failures from other
// errors can match with errors.As.
type DataAccessError struct {
	Op  string
	Err error
}

func (e *DataAccessError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *DataAccessError) Unwrap() error {
	return e.Err
}

func dataErr(op string, err error) error {
	return &DataAccessError{Op: op, Err: err}
}
