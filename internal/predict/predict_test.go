package predict_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/urban-heat-service/internal/domain"
	"github.com/couchcryptid/urban-heat-service/internal/model"
	"github.com/couchcryptid/urban-heat-service/internal/observability"
	"github.com/couchcryptid/urban-heat-service/internal/predict"
)

// --- mocks ---

type mockScorer struct {
	score float64
	calls int
}

func (m *mockScorer) Score(_, _, _ float64) float64 {
	m.calls++
	return m.score
}

func newTestService(scorer predict.Scorer) (*predict.Service, *observability.Metrics) {
	metrics := observability.NewMetricsForTesting()
	return predict.New(scorer, slog.Default(), metrics, clockwork.NewFakeClock()), metrics
}

// --- tests ---

func TestService_Handle_HappyPath(t *testing.T) {
	scorer := &mockScorer{score: 75}
	svc, metrics := newTestService(scorer)

	resp, err := svc.Handle([]byte(`{"lat": 0, "lon": 0, "avg_temp": 30}`))
	require.NoError(t, err)

	assert.Equal(t, 75.0, resp.UHI)
	assert.Equal(t, domain.LabelHigh, resp.Label)
	assert.Len(t, resp.Advice, 4)
	assert.Equal(t, domain.ClosingTip, resp.Advice[len(resp.Advice)-1])
	assert.Equal(t, 1, scorer.calls)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Predictions.WithLabelValues("High")))
}

func TestService_Handle_InputErrorSkipsScorer(t *testing.T) {
	scorer := &mockScorer{score: 50}
	svc, metrics := newTestService(scorer)

	_, err := svc.Handle([]byte(`{"lat": "x", "lon": 1, "avg_temp": 1}`))
	require.Error(t, err)

	var inputErr *domain.InputError
	require.True(t, errors.As(err, &inputErr))
	assert.Equal(t, domain.FieldLat, inputErr.Field)
	assert.Equal(t, 0, scorer.calls)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.BadRequests.WithLabelValues("non_numeric")))
}

func TestService_Predict_LabelMatchesScore(t *testing.T) {
	for _, score := range []float64{0, 44.999, 45, 69.999, 70, 100} {
		svc, _ := newTestService(&mockScorer{score: score})
		resp := svc.Predict(domain.PredictionRequest{})
		assert.Equal(t, domain.Classify(score), resp.Label, "score=%v", score)
	}
}

func TestService_Predict_WithTrainedModel(t *testing.T) {
	m, err := model.Train(model.TrainOptions{})
	require.NoError(t, err)
	svc, _ := newTestService(m)

	resp := svc.Predict(domain.PredictionRequest{Lat: 0, Lon: 0, AvgTemp: 30})

	assert.GreaterOrEqual(t, resp.UHI, 0.0)
	assert.LessOrEqual(t, resp.UHI, 100.0)
	assert.Equal(t, domain.Classify(resp.UHI), resp.Label)
	assert.Equal(t, resp, svc.Predict(domain.PredictionRequest{Lat: 0, Lon: 0, AvgTemp: 30}))
}

func TestService_CheckReadiness(t *testing.T) {
	ready, metrics := newTestService(&mockScorer{})
	require.NoError(t, ready.CheckReadiness(context.Background()))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ModelReady))

	notReady, _ := newTestService(nil)
	assert.Error(t, notReady.CheckReadiness(context.Background()))
}

func TestService_TypedNilScorerIsNotReady(t *testing.T) {
	var m *model.Model
	svc, metrics := newTestService(m)

	require.ErrorIs(t, svc.CheckReadiness(context.Background()), predict.ErrModelNotLoaded)
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.ModelReady))

	_, err := svc.Handle([]byte(`{"lat": 0, "lon": 0, "avg_temp": 30}`))
	assert.ErrorIs(t, err, predict.ErrModelNotLoaded)
}
