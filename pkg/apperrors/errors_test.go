package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotFound_CarriesEntityAndStatus(t *testing.T) {
	err := NotFound(CodeTaskNotFound, "abc-123")

	assert.Equal(t, CodeTaskNotFound, err.Code)
	assert.Equal(t, "task", err.Entity)
	assert.Equal(t, "abc-123", err.ID)
	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.True(t, IsNotFound(err))
}

func TestIsNotFound_FalseForOtherKinds(t *testing.T) {
	assert.False(t, IsNotFound(AccessDenied("viewers cannot modify tasks")))
	assert.False(t, IsNotFound(errors.New("plain")))
	assert.False(t, IsNotFound(nil))
}

func TestErrorsIs_MatchesOnCode(t *testing.T) {
	err := fmt.Errorf("create task: %w", NotFound(CodeRoomNotFound, "r1"))

	assert.True(t, errors.Is(err, NotFound(CodeRoomNotFound, "")))
	assert.False(t, errors.Is(err, NotFound(CodeTaskNotFound, "")))
}

func TestDatabase_WrapsCause(t *testing.T) {
	cause := errors.New("disk I/O error")
	err := Database("update task", cause)

	assert.Equal(t, CodeDatabaseError, err.Code)
	assert.Equal(t, http.StatusInternalServerError, err.Status)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "update task failed")
}

func TestFrom_PassesTypedErrorsThrough(t *testing.T) {
	orig := InvalidInput("name", "name must not be empty")

	got := From(fmt.Errorf("service: %w", orig))
	require.NotNil(t, got)
	assert.Equal(t, CodeInvalidInput, got.Code)
	assert.Equal(t, "name", got.Field)
}

func TestFrom_WrapsUntypedErrors(t *testing.T) {
	got := From(errors.New("boom"))
	require.NotNil(t, got)
	assert.Equal(t, CodeDatabaseError, got.Code)

	assert.Nil(t, From(nil))
}

func TestAlreadyExists_Message(t *testing.T) {
	err := AlreadyExists("user", "name", "Jane Doe")
	assert.Equal(t, http.StatusConflict, err.Status)
	assert.Contains(t, err.Message, `user with name "Jane Doe" already exists`)
}
