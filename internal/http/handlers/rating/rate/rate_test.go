package rate

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/meetoutdoors/meetoutdoors-api/internal/http/middlewarectx"
	"github.com/meetoutdoors/meetoutdoors-api/internal/lib/logger"
	"github.com/meetoutdoors/meetoutdoors-api/internal/models"
	ratingsvc "github.com/meetoutdoors/meetoutdoors-api/internal/services/rating"
)

type MockService struct{ mock.Mock }

func (m *MockService) Rate(ctx context.Context, raterID, rateeID string, req models.RateRequest) (models.RatingSummary, error) {
	args := m.Called(ctx, raterID, rateeID, req)
	return args.Get(0).(models.RatingSummary), args.Error(1)
}

const rateeID = "0b7d4f7a-2c1e-4e57-a3b4-9f0d1c2e3a4b"

func TestRateHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name         string
		id           string
		userID       string
		body         string
		callService  bool
		result       models.RatingSummary
		err          error
		wantStatus   int
		wantContains string
	}{
		{
			name: "rated", id: rateeID, userID: "u1", body: `{"score":4,"comment":"great guide"}`, callService: true,
			result:     models.RatingSummary{RateeID: rateeID, Average: 4.5, Count: 2},
			wantStatus: http.StatusOK, wantContains: `"average":4.5`,
		},
		{
			name: "self rating", id: rateeID, userID: "u1", body: `{"score":4,"comment":"great guide"}`, callService: true,
			err:        fmt.Errorf("rating.Rate: %w", ratingsvc.ErrSelfRating),
			wantStatus: http.StatusUnprocessableEntity, wantContains: "cannot rate yourself",
		},
		{
			name: "backend failure", id: rateeID, userID: "u1", body: `{"score":4,"comment":"great guide"}`, callService: true,
			err:        errors.New("db"),
			wantStatus: http.StatusInternalServerError,
		},
		{name: "score too high", id: rateeID, userID: "u1", body: `{"score":6}`, wantStatus: http.StatusUnprocessableEntity, wantContains: "Score must be at most 5"},
		{name: "missing score", id: rateeID, userID: "u1", body: `{}`, wantStatus: http.StatusUnprocessableEntity, wantContains: "Score is a required field"},
		{name: "broken json", id: rateeID, userID: "u1", body: `[`, wantStatus: http.StatusBadRequest},
		{name: "bad id", id: "bad", userID: "u1", body: `{"score":4}`, wantStatus: http.StatusBadRequest},
		{name: "no user", id: rateeID, body: `{"score":4}`, wantStatus: http.StatusUnauthorized, wantContains: "unauthorized"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			if tt.callService {
				svc.On("Rate", mock.Anything, tt.userID, tt.id, models.RateRequest{Score: 4, Comment: "great guide"}).
					Return(tt.result, tt.err).Once()
			}

			r := chi.NewRouter()
			r.Put("/profiles/{id}/rating", New(logger.Discard(), svc).ServeHTTP)
			req := httptest.NewRequest(http.MethodPut, "/profiles/"+tt.id+"/rating", strings.NewReader(tt.body))
			if tt.userID != "" {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserID, tt.userID))
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantContains)
			svc.AssertExpectations(t)
		})
	}
}
