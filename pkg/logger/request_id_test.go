package logger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"forgeauth/pkg/logger"
)

func TestRequestIDContext(t *testing.T) {
	t.Run("returns request ID when present in context", func(t *testing.T) {
		expectedID := "test-request-id-123"
		ctx := logger.NewRequestIDContext(context.Background(), expectedID)

		retrievedID, ok := logger.GetRequestID(ctx)

		assert.True(t, ok)
		assert.Equal(t, expectedID, retrievedID)
	})

	t.Run("returns false when no request ID in context", func(t *testing.T) {
		retrievedID, ok := logger.GetRequestID(context.Background())

		assert.False(t, ok)
		assert.Empty(t, retrievedID)
	})

	t.Run("generates request ID for empty value", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "")

		retrievedID, ok := logger.GetRequestID(ctx)

		assert.True(t, ok)
		assert.NotEmpty(t, retrievedID)
	})
}

func TestGenerateRequestID(t *testing.T) {
	first := logger.GenerateRequestID()
	second := logger.GenerateRequestID()

	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
}
