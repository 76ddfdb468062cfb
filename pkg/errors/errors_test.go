package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCloneKeepsCodeAndStatus(t *testing.T) {
	err := Clone(ErrValidation, "sessionDuration exceeds daily budget")
	assert.Equal(t, ErrValidation.Code, err.Code)
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, "sessionDuration exceeds daily budget", err.Error())
	assert.Equal(t, "validation failed", ErrValidation.Message)
	assert.True(t, errors.Is(err, ErrValidation))
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestWrapUnwraps(t *testing.T) {
	cause := fmt.Errorf("dial tcp: refused")
	err := Wrap(cause, ErrInternal.Code, ErrInternal.Status, "failed to load subjects")
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, "failed to load subjects: dial tcp: refused", err.Error())
}

func TestFromError(t *testing.T) {
	assert.Nil(t, FromError(nil))

	typed := FromError(fmt.Errorf("outer: %w", ErrNoActiveSubjects))
	assert.Equal(t, http.StatusPreconditionFailed, typed.Status)

	plain := FromError(errors.New("boom"))
	assert.Equal(t, ErrInternal.Code, plain.Code)
	assert.Equal(t, http.StatusInternalServerError, plain.Status)
}

func TestInternalAndInvalidHelpers(t *testing.T) {
	cause := fmt.Errorf("pq: connection reset")
	internal := Internal(cause, "failed to save timetable")
	assert.Equal(t, ErrInternal.Code, internal.Code)
	assert.Equal(t, http.StatusInternalServerError, internal.Status)
	assert.ErrorIs(t, internal, cause)

	invalid := Invalid(cause, "invalid subject payload")
	assert.Equal(t, ErrValidation.Code, invalid.Code)
	assert.Equal(t, http.StatusBadRequest, invalid.Status)
	assert.Equal(t, "invalid subject payload: pq: connection reset", invalid.Error())
}

func TestPlanningErrorsKeepDistinctCodes(t *testing.T) {
	missing := Clone(ErrTimetableMissing, "generate a timetable before exporting")
	assert.True(t, errors.Is(missing, ErrTimetableMissing))
	assert.False(t, errors.Is(missing, ErrNoActiveSubjects))
	assert.Equal(t, http.StatusPreconditionFailed, ErrNoActiveSubjects.Status)
	assert.Equal(t, http.StatusPreconditionFailed, missing.Status)
	assert.Equal(t, http.StatusForbidden, ErrDownloadTokenInvalid.Status)
}
