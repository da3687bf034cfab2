package backend

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// ErrUnauthorized matches any error produced by a 401 response.
var ErrUnauthorized = errors.New("unauthorized")

// APIError is the normalized failure of an API call. Status is zero when the
// request never got a response.
type APIError struct {
	Status  int
	Message string
	Errors  []string
	Err     error
}

func (e *APIError) Error() string {
	if len(e.Errors) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(e.Errors, ", ")
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrUnauthorized) match 401 responses.
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// IsTransport reports whether err is a failure without any server response.
func IsTransport(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == 0
}

type errorBody struct {
	Message string            `json:"message"`
	Error   string            `json:"error"`
	Msg     string            `json:"msg"`
	Errors  []json.RawMessage `json:"errors"`
}

type fieldError struct {
	Msg     string `json:"msg"`
	Message string `json:"message"`
}

func newAPIError(status int, body []byte, fallback string) *APIError {
	apiErr := &APIError{Status: status, Message: fallback}

	var payload errorBody
	if len(body) == 0 || json.Unmarshal(body, &payload) != nil {
		return apiErr
	}

	switch {
	case payload.Message != "":
		apiErr.Message = payload.Message
	case payload.Error != "":
		apiErr.Message = payload.Error
	case payload.Msg != "":
		apiErr.Message = payload.Msg
	}

	for _, raw := range payload.Errors {
		var s string
		if json.Unmarshal(raw, &s) == nil {
			if s != "" {
				apiErr.Errors = append(apiErr.Errors, s)
			}
			continue
		}
		var fe fieldError
		if json.Unmarshal(raw, &fe) == nil {
			if fe.Msg != "" {
				apiErr.Errors = append(apiErr.Errors, fe.Msg)
			} else if fe.Message != "" {
				apiErr.Errors = append(apiErr.Errors, fe.Message)
			}
		}
	}

	return apiErr
}
