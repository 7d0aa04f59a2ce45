package pgerr

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

const (
	CodeNotFound           = "NOT_FOUND"
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeIntegrityViolation = "INTEGRITY_VIOLATION"
	CodeStorageUnavailable = "STORAGE_UNAVAILABLE"
	CodePlayerBusy         = "PLAYER_BUSY"
	CodeForbidden          = "FORBIDDEN"
	CodeInternalError      = "INTERNAL_ERROR"
)

var (
	// ErrNotFound is returned when a resource is not found.
	ErrNotFound = New(fiber.StatusBadRequest, CodeNotFound, "resource not found with given parameters")

	// ErrInvalidReq is returned when a request is invalid.
	ErrInvalidReq = New(fiber.StatusBadRequest, CodeInvalidRequest, "invalid request: some or all request parameters are invalid")

	// ErrIntegrity is returned when a submitted play disagrees with its own judgements.
	ErrIntegrity = New(fiber.StatusBadRequest, CodeIntegrityViolation, "submitted grade does not match the judgements")

	// ErrStorage is returned when the database could not serve the request. Clients may retry.
	ErrStorage = New(fiber.StatusServiceUnavailable, CodeStorageUnavailable, "storage temporarily unavailable, please retry")

	// ErrBusy is returned when another submission of the same player holds the player lock.
	ErrBusy = New(fiber.StatusConflict, CodePlayerBusy, "another submission of this player is in progress, please retry")

	ErrForbidden = New(fiber.StatusForbidden, CodeForbidden, "forbidden")

	// ErrInternalError is returned when an internal error occurs.
	ErrInternalError = New(fiber.StatusInternalServerError, CodeInternalError, "internal server error occurred")
)

type Extras map[string]any

type Error struct {
	StatusCode int    `example:"400"`
	ErrorCode  string `example:"INVALID_REQUEST"`
	Message    string `example:"invalid request: some or all request parameters are invalid"`
	Extras     *Extras
}

func New(statusCode int, errorCode string, message string) *Error {
	return &Error{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

func (e Error) Msg(format string, parts ...any) *Error {
	e.Message = fmt.Sprintf(format, parts...)
	return &e
}

func (e Error) WithExtras(extras Extras) *Error {
	e.Extras = &extras
	return &e
}

func NewInvalidViolations(violations any) *Error {
	e := *ErrInvalidReq
	e.Extras = &Extras{
		"violations": violations,
	}
	return &e
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.ErrorCode, e.Message)
}

// Is matches errors of the same code, so derived copies still match their sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.ErrorCode == t.ErrorCode
}

// Retryable reports whether a client may resubmit the same request unchanged.
func (e *Error) Retryable() bool {
	return e.ErrorCode == CodeStorageUnavailable || e.ErrorCode == CodePlayerBusy
}
