// Package apperrors defines the error taxonomy shared by the data layer.
// Every error that crosses a service or facade boundary is an *Error carrying
// a machine-readable code from the closed set below, a human message, an
// HTTP-like status class, and optional context about the offending entity.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies an error kind. The set is closed: consumers switch on these
// values and must not encounter anything else.
type Code string

const (
	CodeUserNotFound          Code = "user_not_found"
	CodeProjectNotFound       Code = "project_not_found"
	CodeProjectUserNotFound   Code = "project_user_not_found"
	CodeFloorPlanNotFound     Code = "floor_plan_not_found"
	CodeRoomNotFound          Code = "room_not_found"
	CodeTaskNotFound          Code = "task_not_found"
	CodeChecklistItemNotFound Code = "checklist_item_not_found"
	CodeCommentNotFound       Code = "comment_not_found"
	CodeAlreadyExists         Code = "already_exists"
	CodeAccessDenied          Code = "access_denied"
	CodeInvalidInput          Code = "invalid_input"
	CodeValidationError       Code = "validation_error"
	CodeDatabaseError         Code = "database_error"
)

// Error is the single tagged error type of the data layer.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Entity  string `json:"entity,omitempty"`
	ID      string `json:"id,omitempty"`
	Field   string `json:"field,omitempty"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is makes errors.Is match on code, so two instances of the same kind compare
// equal regardless of their context fields.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == other.Code
}

var notFoundEntities = map[Code]string{
	CodeUserNotFound:          "user",
	CodeProjectNotFound:       "project",
	CodeProjectUserNotFound:   "project user",
	CodeFloorPlanNotFound:     "floor plan",
	CodeRoomNotFound:          "room",
	CodeTaskNotFound:          "task",
	CodeChecklistItemNotFound: "checklist item",
	CodeCommentNotFound:       "comment",
}

// NotFound builds a not-found error for the entity identified by code.
func NotFound(code Code, id string) *Error {
	entity, ok := notFoundEntities[code]
	if !ok {
		entity = "record"
	}
	return &Error{
		Code:    code,
		Message: fmt.Sprintf("%s not found", entity),
		Status:  http.StatusNotFound,
		Entity:  entity,
		ID:      id,
	}
}

// AlreadyExists signals a unique-field collision, e.g. a duplicate user name.
func AlreadyExists(entity, field, value string) *Error {
	return &Error{
		Code:    CodeAlreadyExists,
		Message: fmt.Sprintf("%s with %s %q already exists", entity, field, value),
		Status:  http.StatusConflict,
		Entity:  entity,
		Field:   field,
	}
}

// AccessDenied signals a failed project-role permission check.
func AccessDenied(message string) *Error {
	return &Error{
		Code:    CodeAccessDenied,
		Message: message,
		Status:  http.StatusForbidden,
	}
}

// InvalidInput signals a field-level input problem (blank required string,
// unknown enum value, out-of-range number).
func InvalidInput(field, message string) *Error {
	return &Error{
		Code:    CodeInvalidInput,
		Message: message,
		Status:  http.StatusBadRequest,
		Field:   field,
	}
}

// Validation signals a schema-level rejection by the underlying store.
func Validation(message string, err error) *Error {
	return &Error{
		Code:    CodeValidationError,
		Message: message,
		Status:  http.StatusUnprocessableEntity,
		Err:     err,
	}
}

// Database wraps an unexpected store failure, tagged with the failing
// operation name.
func Database(op string, err error) *Error {
	return &Error{
		Code:    CodeDatabaseError,
		Message: fmt.Sprintf("%s failed", op),
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// From normalizes any error into an *Error. Typed errors pass through
// untouched; everything else becomes a database error.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Database("operation", err)
}

// CodeOf returns the code carried by err, or CodeDatabaseError for untyped
// errors.
func CodeOf(err error) Code {
	return From(err).Code
}

// HTTPStatus returns the status class carried by err.
func HTTPStatus(err error) int {
	return From(err).Status
}

// IsNotFound reports whether err is any of the per-entity not-found kinds.
func IsNotFound(err error) bool {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return false
	}
	_, ok := notFoundEntities[appErr.Code]
	return ok
}
