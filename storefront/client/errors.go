package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Error codes surfaced by the storefront API, plus the transport-level
// NETWORK_ERROR class produced locally when no envelope could be read.
const (
	CodeNetwork       = "NETWORK_ERROR"
	CodeValidation    = "VALIDATION_ERROR"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeNotFound      = "NOT_FOUND"
	CodeConflict      = "CONFLICT"
	CodeEmailReserved = "EMAIL_RESERVED"
	CodeEmailTaken    = "EMAIL_TAKEN"
)

const errorBodyReadLimit int64 = 4096

// Error is a coded failure returned by the API or synthesized for transport
// problems. Status is zero when the request never reached the service.
type Error struct {
	Code    string
	Message string
	Status  int
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s (%d): %s", e.Code, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// CodeOf extracts the error code, or empty when err is not a client error.
func CodeOf(err error) string {
	var typed *Error
	if errors.As(err, &typed) {
		return typed.Code
	}
	return ""
}

// IsNetwork reports whether the failure is transport-class: the request never
// completed, or the response carried no readable error envelope.
func IsNetwork(err error) bool {
	return CodeOf(err) == CodeNetwork
}

func decodeError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))

	var envelope struct {
		Success bool `json:"success"`
		Error   struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Code != "" {
		return &Error{
			Code:    envelope.Error.Code,
			Message: envelope.Error.Message,
			Status:  resp.StatusCode,
		}
	}

	return &Error{
		Code:    CodeNetwork,
		Message: fmt.Sprintf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		Status:  resp.StatusCode,
	}
}
