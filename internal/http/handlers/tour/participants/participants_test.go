package participants

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/meetoutdoors/meetoutdoors-api/internal/lib/logger"
	"github.com/meetoutdoors/meetoutdoors-api/internal/models"
	"github.com/meetoutdoors/meetoutdoors-api/internal/storage"
)

type MockService struct{ mock.Mock }

func (m *MockService) Participants(ctx context.Context, tourID string) ([]models.Participant, error) {
	args := m.Called(ctx, tourID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Participant), args.Error(1)
}

const tourID = "6f1c2b4e-8d3a-4c55-9b7e-2a1d0c9e8f71"

func TestParticipantsHandler_ServeHTTP(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Participants", mock.Anything, tourID).Return([]models.Participant{
			{TourID: tourID, UserID: "u1", FullName: "Anna"},
			{TourID: tourID, UserID: "u2", FullName: "Ben"},
		}, nil).Once()

		rec := serve(svc, tourID)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"count":2`)
		assert.Contains(t, rec.Body.String(), `"full_name":"Ben"`)
	})

	t.Run("unknown tour", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Participants", mock.Anything, tourID).Return(nil, storage.ErrNotFound).Once()
		assert.Equal(t, http.StatusNotFound, serve(svc, tourID).Code)
	})

	t.Run("bad id", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, serve(new(MockService), "x").Code)
	})
}

func serve(svc *MockService, id string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Get("/tours/{id}/participants", New(logger.Discard(), svc).ServeHTTP)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tours/"+id+"/participants", nil))
	return rec
}
