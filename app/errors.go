package app

import (
	"errors"
	"fmt"
)

var (
	ErrPostNotFound  = errors.New("post not found")
	ErrGroupNotFound = errors.New("group not found")
	ErrUserNotFound  = errors.New("user not found")
	ErrSelfFollow    = errors.New("cannot follow yourself")
	ErrLoginRequired = errors.New("must be logged in")
)

// ValidationError is attached to a single form field. Nothing is saved when it is returned.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (ve *ValidationError) Error() string {
	return fmt.Sprintf("%v: %v", ve.Field, ve.Message)
}

func (ve *ValidationError) Unwrap() error {
	return ve.Err
}
