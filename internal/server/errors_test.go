package server

import (
	"errors"
	"net/http"
	"testing"

	"commentary/internal/config"
	"commentary/internal/models"
	"commentary/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return testutil.SQLiteConfig()
}

func errorApp(env string, err error) *testEnv {
	cfg := testConfig()
	cfg.Env = env
	s := &Server{config: cfg}
	app := fiber.New(fiber.Config{ErrorHandler: s.errorHandler})
	app.Get("/", func(*fiber.Ctx) error { return err })
	return &testEnv{server: s, app: app}
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name     string
		env      string
		err      error
		status   int
		expected map[string]any
	}{
		{
			name:     "validation",
			env:      "test",
			err:      models.NewValidationError("a", "b"),
			status:   http.StatusBadRequest,
			expected: map[string]any{"errors": []any{"a", "b"}},
		},
		{
			name:     "not found",
			env:      "test",
			err:      models.NewNotFoundError("Comment"),
			status:   http.StatusNotFound,
			expected: map[string]any{"message": "Comment not found", "code": "NOT_FOUND"},
		},
		{
			name:     "store failure shows details outside production",
			env:      "test",
			err:      models.NewInternalError(errors.New("disk full")),
			status:   http.StatusInternalServerError,
			expected: map[string]any{"message": "Internal server error", "code": "INTERNAL_ERROR", "details": "disk full"},
		},
		{
			name:     "store failure hides details in production",
			env:      "production",
			err:      models.NewInternalError(errors.New("disk full")),
			status:   http.StatusInternalServerError,
			expected: map[string]any{"message": "Internal server error", "code": "INTERNAL_ERROR"},
		},
		{
			name:     "plain error",
			env:      "production",
			err:      errors.New("unexpected"),
			status:   http.StatusInternalServerError,
			expected: map[string]any{"message": "Internal server error", "code": "INTERNAL_ERROR"},
		},
		{
			name:     "fiber error",
			env:      "test",
			err:      fiber.NewError(fiber.StatusUnsupportedMediaType, "nope"),
			status:   http.StatusUnsupportedMediaType,
			expected: map[string]any{"message": "nope"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := errorApp(tt.env, tt.err)
			status, raw := env.do(t, http.MethodGet, "/", "")
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.expected, decode[map[string]any](t, raw))
		})
	}
}

func TestErrorHandler_RecoveredPanic(t *testing.T) {
	cfg := testConfig()
	db := testutil.NewSQLiteDB(t)
	s, err := NewServerWithDeps(cfg, db, nil)
	require.NoError(t, err)
	app := s.NewApp()
	app.Get("/panic", func(*fiber.Ctx) error { panic("boom") })

	env := &testEnv{server: s, app: app}
	status, raw := env.do(t, http.MethodGet, "/panic", "")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL_ERROR", decode[map[string]any](t, raw)["code"])
}
