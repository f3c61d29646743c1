package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", NewValidationError("bad"), fiber.StatusBadRequest},
		{"unauthorized", NewUnauthorizedError("who"), fiber.StatusUnauthorized},
		{"forbidden", NewForbiddenError("no"), fiber.StatusForbidden},
		{"not found", NewNotFoundError("Link", 1), fiber.StatusNotFound},
		{"conflict", NewConflictError("taken"), fiber.StatusConflict},
		{"internal", NewInternalError(errors.New("boom")), fiber.StatusInternalServerError},
		{"plain error", errors.New("boom"), fiber.StatusInternalServerError},
		{"wrapped app error", fmt.Errorf("ctx: %w", NewNotFoundError("Link", 2)), fiber.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusForError(tt.err))
		})
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	inner := errors.New("db gone")
	err := NewInternalError(inner)
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "db gone")
}

func TestValidTheme(t *testing.T) {
	assert.True(t, ValidTheme(ThemeMinimal))
	assert.True(t, ValidTheme(ThemeCyberpunk))
	assert.False(t, ValidTheme(Theme("vaporwave")))
	assert.False(t, ValidTheme(Theme("")))
}
