package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntityNotFound(t *testing.T) {
	err := NewEntityNotFound("department", 7)

	assert.True(t, IsNotFound(err))
	assert.False(t, IsDuplicateEmail(err))

	de := ToDomainError(err)
	require.NotNil(t, de)
	assert.Equal(t, http.StatusNotFound, de.HTTPStatus)
	assert.Equal(t, "department 7 not found", de.Message)
	assert.Equal(t, int64(7), de.Details["id"])
}

func TestNewDuplicateEmailMapsToConflict(t *testing.T) {
	err := fmt.Errorf("create employee: %w", NewDuplicateEmail("ana@example.com"))

	assert.True(t, IsDuplicateEmail(err))
	de := ToDomainError(err)
	assert.Equal(t, http.StatusConflict, de.HTTPStatus)
	assert.Equal(t, CodeDuplicateEmail, de.Code)
}

func TestToDomainErrorWrapsUnknown(t *testing.T) {
	cause := errors.New("connection refused")
	de := ToDomainError(cause)

	assert.Equal(t, CodeInternal, de.Code)
	assert.Equal(t, http.StatusInternalServerError, de.HTTPStatus)
	assert.ErrorIs(t, de, cause)
}

func TestMapErrorNil(t *testing.T) {
	assert.NoError(t, MapError(nil))
	assert.Nil(t, ToDomainError(nil))
}
