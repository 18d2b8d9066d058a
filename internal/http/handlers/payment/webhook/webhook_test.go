package webhook

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/meetoutdoors/meetoutdoors-api/internal/lib/logger"
	"github.com/meetoutdoors/meetoutdoors-api/internal/storage"
)

type MockService struct{ mock.Mock }

func (m *MockService) GrantPremium(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

const secret = "pay-secret"

func succeeded(userID string) string {
	return fmt.Sprintf(`{"event":"payment.succeeded","object":{"id":"p1","status":"succeeded","metadata":{"user_id":%q}}}`, userID)
}

func TestWebhookHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		signature  string
		grantUser  string
		grantErr   error
		wantStatus int
	}{
		{name: "premium granted", body: succeeded("u1"), grantUser: "u1", wantStatus: http.StatusOK},
		{name: "unknown profile is acknowledged", body: succeeded("u2"), grantUser: "u2", grantErr: fmt.Errorf("repo: %w", storage.ErrNotFound), wantStatus: http.StatusOK},
		{name: "backend failure", body: succeeded("u1"), grantUser: "u1", grantErr: errors.New("db"), wantStatus: http.StatusInternalServerError},
		{name: "other event ignored", body: `{"event":"payment.canceled","object":{"id":"p1"}}`, wantStatus: http.StatusOK},
		{name: "missing user id", body: succeeded(""), wantStatus: http.StatusUnprocessableEntity},
		{name: "invalid signature", body: succeeded("u1"), signature: "AAAA", wantStatus: http.StatusUnauthorized},
		{name: "broken json", body: `{`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			if tt.grantUser != "" {
				svc.On("GrantPremium", mock.Anything, tt.grantUser).Return(tt.grantErr).Once()
			}

			sig := tt.signature
			if sig == "" {
				sig = Sign(secret, []byte(tt.body))
			}
			req := httptest.NewRequest(http.MethodPost, "/payments/webhook", strings.NewReader(tt.body))
			req.Header.Set(SignatureHeader, sig)
			rec := httptest.NewRecorder()
			New(logger.Discard(), svc, secret).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestWebhookHandler_NoSecretRejectsEverything(t *testing.T) {
	svc := new(MockService)
	body := succeeded("u1")
	req := httptest.NewRequest(http.MethodPost, "/payments/webhook", strings.NewReader(body))
	req.Header.Set(SignatureHeader, Sign("", []byte(body)))
	rec := httptest.NewRecorder()
	New(logger.Discard(), svc, "").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	svc.AssertNotCalled(t, "GrantPremium", mock.Anything, mock.Anything)
}

func TestSign_IsDeterministic(t *testing.T) {
	assert.Equal(t, Sign("k", []byte("body")), Sign("k", []byte("body")))
	assert.NotEqual(t, Sign("k", []byte("body")), Sign("other", []byte("body")))
}
