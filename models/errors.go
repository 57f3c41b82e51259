package models

import (
	"errors"
	"fmt"
)

// ErrEmptyPayload rejects an attendance submission with no entries before
// any store call is made.
var ErrEmptyPayload = errors.New("no attendance entries to submit")

// StoreError wraps a failure from the data store. Submissions that fail
// this way are not marked as taken, so the user can retry.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
