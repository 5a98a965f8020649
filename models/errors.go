package models

import "fmt"

/*
	Error taxonomy shared by the parsing and computation
	services : a call either returns a fully valid result
	or fails outright with one of these ; there is no
	partial-result mode and no internal retrying
*/

// FormatError flags a malformed input file
// (missing markers, truncated records, bad columns, ..)
type FormatError struct {
	Message string
}

func (e *FormatError) Error() string {
	return e.Message
}

func NewFormatError(format string, args ...interface{}) *FormatError {
	return &FormatError{Message: fmt.Sprintf(format, args...)}
}

// ValidationError flags an invalid parameter passed along
// with an otherwise well-formed input
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
