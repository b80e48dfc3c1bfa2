package service

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/MKhiriev/go-project-tracker/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapStoreError(t *testing.T) {
	assert.NoError(t, mapStoreError(nil, "x"))

	assert.ErrorIs(t, mapStoreError(store.ErrNotFound, "epic 1"), ErrNotFound)
	assert.ErrorIs(t, mapStoreError(store.ErrNoUserWasFound, "user"), ErrNotFound)
	assert.ErrorIs(t, mapStoreError(fmt.Errorf("%w: fk", store.ErrReferenceNotFound), "task"), ErrInvalidInput)
	assert.ErrorIs(t, mapStoreError(fmt.Errorf("%w: %w", store.ErrBuildingSQLQuery, store.ErrUnknownColumn), "task"), ErrInvalidInput)

	var appErr *ApplicationError
	require.ErrorAs(t, mapStoreError(store.ErrAlreadyExists, `phase "Build"`), &appErr)
	assert.Equal(t, http.StatusConflict, appErr.Status)
	assert.Equal(t, `phase "Build" already exists`, appErr.Message)
	assert.ErrorIs(t, appErr, store.ErrAlreadyExists)

	other := errors.New("disk on fire")
	assert.Equal(t, other, mapStoreError(other, "x"))
}

func TestIsClientError(t *testing.T) {
	assert.True(t, isClientError(fmt.Errorf("%w: epic 1", ErrNotFound)))
	assert.True(t, isClientError(ErrActorRequired))
	assert.True(t, isClientError(NewApplicationError(http.StatusConflict, "closed")))
	assert.False(t, isClientError(errors.New("boom")))
}
