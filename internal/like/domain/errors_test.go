package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_KindsSurviveWrapping(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		sentinel error
		code     string
	}{
		{"not found", NewNotFoundError(MsgLikeNotFound), ErrNotFound, CodeNotFound},
		{"conflict", NewConflictError(MsgAlreadyLiked), ErrConflict, CodeConflict},
		{"validation", NewValidationError("article_id is required"), ErrValidation, CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("handler: %w", tt.err)

			assert.True(t, errors.Is(wrapped, tt.sentinel))

			var appErr *AppError
			require.True(t, errors.As(wrapped, &appErr))
			assert.Equal(t, tt.code, appErr.Code)
			assert.Equal(t, tt.err.Message, appErr.Error())
		})
	}
}
