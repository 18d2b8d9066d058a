package me

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/meetoutdoors/meetoutdoors-api/internal/http/middlewarectx"
	ent "github.com/meetoutdoors/meetoutdoors-api/internal/lib/entitlement"
	"github.com/meetoutdoors/meetoutdoors-api/internal/lib/logger"
	"github.com/meetoutdoors/meetoutdoors-api/internal/models"
	"github.com/meetoutdoors/meetoutdoors-api/internal/storage"
)

type MockService struct{ mock.Mock }

func (m *MockService) Profile(ctx context.Context, userID string) (*models.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockService) Apply(ctx context.Context, p *models.Profile, source string) (ent.Result, bool) {
	args := m.Called(ctx, p, source)
	return args.Get(0).(ent.Result), args.Bool(1)
}

func TestMeHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name         string
		userID       string
		profile      *models.Profile
		err          error
		result       ent.Result
		wantStatus   int
		wantContains []string
	}{
		{
			name: "active trial", userID: "u1",
			profile:      &models.Profile{ID: "u1"},
			result:       ent.Result{DaysLeft: 4, State: ent.StateActive},
			wantStatus:   http.StatusOK,
			wantContains: []string{`"allowed":true`, `"days_left":4`, `"state":"active"`},
		},
		{
			name: "expired trial is reported on the profile", userID: "u1",
			profile:      &models.Profile{ID: "u1"},
			result:       ent.Result{TrialExpired: true, State: ent.StateExpired},
			wantStatus:   http.StatusOK,
			wantContains: []string{`"allowed":false`, `"trial_expired":true`},
		},
		{
			name: "premium", userID: "u1",
			profile:      &models.Profile{ID: "u1", IsPremium: true},
			result:       ent.Result{IsPremium: true, State: ent.StatePremium},
			wantStatus:   http.StatusOK,
			wantContains: []string{`"allowed":true`, `"state":"premium"`},
		},
		{name: "no profile", userID: "u1", err: storage.ErrNotFound, wantStatus: http.StatusNotFound, wantContains: []string{"profile not found"}},
		{name: "backend failure", userID: "u1", err: errors.New("db"), wantStatus: http.StatusInternalServerError, wantContains: []string{"failed to read profile"}},
		{name: "no user", wantStatus: http.StatusUnauthorized, wantContains: []string{"unauthorized"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			if tt.userID != "" {
				svc.On("Profile", mock.Anything, tt.userID).Return(tt.profile, tt.err).Once()
			}
			if tt.profile != nil {
				svc.On("Apply", mock.Anything, tt.profile, "request").Return(tt.result, false).Once()
			}

			req := httptest.NewRequest(http.MethodGet, "/profile/me", nil)
			if tt.userID != "" {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserID, tt.userID))
			}
			rec := httptest.NewRecorder()
			New(logger.Discard(), svc).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			for _, s := range tt.wantContains {
				assert.Contains(t, rec.Body.String(), s)
			}
			svc.AssertExpectations(t)
		})
	}
}
