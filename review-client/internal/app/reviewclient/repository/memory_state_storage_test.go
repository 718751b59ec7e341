package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStateStorage_LoadMissing(t *testing.T) {
	storage := NewMemoryStateStorage()

	_, err := storage.Load(context.Background(), "currentUser")

	assert.ErrorIs(t, err, ErrStateNotFound)
}

func TestMemoryStateStorage_SaveCopiesValue(t *testing.T) {
	// Arrange
	storage := NewMemoryStateStorage()
	value := []byte(`{"a":1}`)
	require.NoError(t, storage.Save(context.Background(), "k", value))

	// Act - изменение исходного буфера не должно попасть в хранилище
	value[2] = 'b'
	data, err := storage.Load(context.Background(), "k")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(data))
}
