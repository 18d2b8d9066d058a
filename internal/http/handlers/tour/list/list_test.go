package list

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/meetoutdoors/meetoutdoors-api/internal/lib/logger"
	"github.com/meetoutdoors/meetoutdoors-api/internal/lib/schedule"
	"github.com/meetoutdoors/meetoutdoors-api/internal/models"
)

type MockService struct{ mock.Mock }

func (m *MockService) List(ctx context.Context, limit, offset int) ([]models.TourView, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TourView), args.Error(1)
}

func TestListHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantLimit  int
		wantOffset int
		err        error
		wantStatus int
	}{
		{name: "defaults", query: "", wantLimit: 20, wantOffset: 0, wantStatus: http.StatusOK},
		{name: "explicit", query: "?limit=5&offset=10", wantLimit: 5, wantOffset: 10, wantStatus: http.StatusOK},
		{name: "clamped", query: "?limit=1000&offset=-3", wantLimit: 100, wantOffset: 0, wantStatus: http.StatusOK},
		{name: "garbage", query: "?limit=abc&offset=x", wantLimit: 20, wantOffset: 0, wantStatus: http.StatusOK},
		{name: "service error", query: "", wantLimit: 20, err: errors.New("db"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			views := []models.TourView{{Tour: models.Tour{ID: "t1"}, Status: schedule.StatusLive}}
			if tt.err != nil {
				svc.On("List", mock.Anything, tt.wantLimit, tt.wantOffset).Return(nil, tt.err).Once()
			} else {
				svc.On("List", mock.Anything, tt.wantLimit, tt.wantOffset).Return(views, nil).Once()
			}

			rec := httptest.NewRecorder()
			New(logger.Discard(), svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tours"+tt.query, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.err == nil {
				assert.Contains(t, rec.Body.String(), `"status":"Live now"`)
				assert.Contains(t, rec.Body.String(), `"count":1`)
			}
			svc.AssertExpectations(t)
		})
	}
}
