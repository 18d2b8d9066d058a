package relay

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	ent "github.com/meetoutdoors/meetoutdoors-api/internal/lib/entitlement"
	"github.com/meetoutdoors/meetoutdoors-api/internal/lib/logger"
	"github.com/meetoutdoors/meetoutdoors-api/internal/models"
	"github.com/meetoutdoors/meetoutdoors-api/internal/rabbitmq"
)

type InvalidatorMock struct{ mock.Mock }

func (m *InvalidatorMock) Invalidate(ctx context.Context, tourID string) error {
	return m.Called(ctx, tourID).Error(0)
}

type EvaluatorMock struct{ mock.Mock }

func (m *EvaluatorMock) Apply(ctx context.Context, p *models.Profile, source string) (ent.Result, bool) {
	args := m.Called(ctx, *p, source)
	return args.Get(0).(ent.Result), args.Bool(1)
}

func TestService_Handle(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setupMocks func(i *InvalidatorMock, e *EvaluatorMock)
		wantErr    error
	}{
		{
			name: "tour update invalidates snapshot",
			body: `{"type":"UPDATE","table":"tours","record":{"id":"t1","title":"x"},"old_record":null}`,
			setupMocks: func(i *InvalidatorMock, _ *EvaluatorMock) {
				i.On("Invalidate", mock.Anything, "t1").Return(nil).Once()
			},
		},
		{
			name: "participant delete uses old record",
			body: `{"type":"DELETE","table":"tour_participants","record":null,"old_record":{"tour_id":"t2","user_id":"u"}}`,
			setupMocks: func(i *InvalidatorMock, _ *EvaluatorMock) {
				i.On("Invalidate", mock.Anything, "t2").Return(nil).Once()
			},
		},
		{
			name: "invalidate failure is retried",
			body: `{"type":"INSERT","table":"tour_participants","record":{"tour_id":"t3"}}`,
			setupMocks: func(i *InvalidatorMock, _ *EvaluatorMock) {
				i.On("Invalidate", mock.Anything, "t3").Return(errors.New("redis down")).Once()
			},
			wantErr: errors.New("redis down"),
		},
		{
			name: "profile with loose types is re-evaluated",
			body: `{"type":"UPDATE","table":"profiles","record":{"id":"u1","is_premium":"false","trial_start":"2024-01-01T00:00:00Z","trial_end":"garbage","trial_expired":0}}`,
			setupMocks: func(_ *InvalidatorMock, e *EvaluatorMock) {
				e.On("Apply", mock.Anything, mock.MatchedBy(func(p models.Profile) bool {
					return p.ID == "u1" && !p.IsPremium && p.TrialStart != nil && p.TrialEnd == nil && !p.TrialExpired
				}), "relay").Return(ent.Result{TrialExpired: true, State: ent.StateExpired}, true).Once()
			},
		},
		{
			name:       "profile delete ignored",
			body:       `{"type":"DELETE","table":"profiles","old_record":{"id":"u1"}}`,
			setupMocks: func(*InvalidatorMock, *EvaluatorMock) {},
		},
		{
			name:       "ratings ignored",
			body:       `{"type":"INSERT","table":"ratings","record":{"rater_id":"a"}}`,
			setupMocks: func(*InvalidatorMock, *EvaluatorMock) {},
		},
		{
			name:       "chat message acknowledged",
			body:       `{"type":"INSERT","table":"chat_messages","record":{"tour_id":"t1","body":"hi"}}`,
			setupMocks: func(*InvalidatorMock, *EvaluatorMock) {},
		},
		{
			name:       "malformed json discarded",
			body:       `{not json`,
			setupMocks: func(*InvalidatorMock, *EvaluatorMock) {},
			wantErr:    rabbitmq.ErrDiscard,
		},
		{
			name:       "tour change without id discarded",
			body:       `{"type":"UPDATE","table":"tours","record":{"title":"x"}}`,
			setupMocks: func(*InvalidatorMock, *EvaluatorMock) {},
			wantErr:    rabbitmq.ErrDiscard,
		},
		{
			name:       "profile without id discarded",
			body:       `{"type":"INSERT","table":"profiles","record":{"email":"a@b.c"}}`,
			setupMocks: func(*InvalidatorMock, *EvaluatorMock) {},
			wantErr:    rabbitmq.ErrDiscard,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i, e := new(InvalidatorMock), new(EvaluatorMock)
			tt.setupMocks(i, e)

			err := NewService(i, e, logger.Discard()).Handle(context.Background(), []byte(tt.body))
			switch {
			case tt.wantErr == nil:
				require.NoError(t, err)
			case errors.Is(tt.wantErr, rabbitmq.ErrDiscard):
				assert.ErrorIs(t, err, rabbitmq.ErrDiscard)
			default:
				require.Error(t, err)
				assert.NotErrorIs(t, err, rabbitmq.ErrDiscard)
				assert.Contains(t, err.Error(), tt.wantErr.Error())
			}
			i.AssertExpectations(t)
			e.AssertExpectations(t)
		})
	}
}

func TestService_Handle_DuplicateDeliveryIsHarmless(t *testing.T) {
	i, e := new(InvalidatorMock), new(EvaluatorMock)
	i.On("Invalidate", mock.Anything, "t1").Return(nil).Twice()

	s := NewService(i, e, logger.Discard())
	body := []byte(`{"type":"UPDATE","table":"tours","record":{"id":"t1"}}`)
	require.NoError(t, s.Handle(context.Background(), body))
	require.NoError(t, s.Handle(context.Background(), body))
	i.AssertExpectations(t)
}
