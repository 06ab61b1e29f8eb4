package core

import (
	"errors"
	"fmt"
	"net/http"
)

// ExtractionError is a client-reportable failure. Status is the HTTP status the
// handler answers with and Detail is the only text the caller sees; Err is kept
// for logs.
type ExtractionError struct {
	Status int
	Detail string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Err == nil {
		return e.Detail
	}
	return fmt.Sprintf("%s: %v", e.Detail, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// NewExtractionError builds an ExtractionError. A zero status means 400.
func NewExtractionError(status int, detail string, err error) *ExtractionError {
	if status == 0 {
		status = http.StatusBadRequest
	}
	return &ExtractionError{Status: status, Detail: detail, Err: err}
}

// UnsupportedFormat reports bytes that no extractor, including the image
// fallback, could decode.
func UnsupportedFormat(filename string, err error) *ExtractionError {
	return NewExtractionError(http.StatusBadRequest, "unsupported file format: "+filename, err)
}

// AsExtractionError unwraps err into an ExtractionError when it carries one.
func AsExtractionError(err error) (*ExtractionError, bool) {
	var ee *ExtractionError
	if errors.As(err, &ee) {
		return ee, true
	}
	return nil, false
}
