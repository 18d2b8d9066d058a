package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meetoutdoors/meetoutdoors-api/internal/lib/logger"
)

func TestHealthHandler_ServeHTTP(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("refused") }

	tests := []struct {
		name         string
		checks       map[string]Checker
		wantStatus   int
		wantContains []string
	}{
		{name: "no checks", checks: nil, wantStatus: http.StatusOK, wantContains: []string{`"status":"OK"`}},
		{name: "all up", checks: map[string]Checker{"postgres": ok, "redis": ok}, wantStatus: http.StatusOK, wantContains: []string{`"postgres":"ok"`, `"redis":"ok"`}},
		{
			name:         "redis down",
			checks:       map[string]Checker{"postgres": ok, "redis": down},
			wantStatus:   http.StatusServiceUnavailable,
			wantContains: []string{`"redis":"down"`, `"postgres":"ok"`, "unhealthy"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			New(logger.Discard(), tt.checks).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			for _, s := range tt.wantContains {
				assert.Contains(t, rec.Body.String(), s)
			}
		})
	}
}
