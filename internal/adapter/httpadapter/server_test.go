package httpadapter_test

import (
	"encoding/json"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/urban-heat-service/internal/adapter/httpadapter"
	"github.com/couchcryptid/urban-heat-service/internal/domain"
	"github.com/couchcryptid/urban-heat-service/internal/model"
	"github.com/couchcryptid/urban-heat-service/internal/observability"
	"github.com/couchcryptid/urban-heat-service/internal/predict"
)

func newTestServer(t *testing.T, scorer predict.Scorer) *httpadapter.Server {
	t.Helper()
	svc := predict.New(scorer, slog.Default(), observability.NewMetricsForTesting(), clockwork.NewFakeClock())
	return httpadapter.NewServer(":0", svc, slog.Default())
}

func postPredict(srv *httpadapter.Server, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	srv.ServeHTTP(rec, req)
	return rec
}

func TestPredict_EndToEnd(t *testing.T) {
	m, err := model.Train(model.TrainOptions{})
	require.NoError(t, err)
	srv := newTestServer(t, m)

	rec := postPredict(srv, `{"lat": 0, "lon": 0, "avg_temp": 30}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body domain.PredictionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, math.IsNaN(body.UHI) || math.IsInf(body.UHI, 0))
	assert.GreaterOrEqual(t, body.UHI, 0.0)
	assert.LessOrEqual(t, body.UHI, 100.0)
	assert.Equal(t, domain.Classify(body.UHI), body.Label)
	require.NotEmpty(t, body.Advice)
	assert.Equal(t, domain.ClosingTip, body.Advice[len(body.Advice)-1])
}

func TestPredict_KnownWeights(t *testing.T) {
	srv := newTestServer(t, model.New(model.Weights{AvgTemp: 2}, 10))

	rec := postPredict(srv, `{"lat": 12, "lon": 34, "avg_temp": "20"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body domain.PredictionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 50.0, body.UHI)
	assert.Equal(t, domain.LabelModerate, body.Label)
	assert.Len(t, body.Advice, 3)
}

func TestPredict_BadRequest(t *testing.T) {
	srv := newTestServer(t, model.New(model.Weights{}, 50))

	tests := []struct {
		name   string
		body   string
		detail string
	}{
		{"non-numeric", `{"lat": "x", "lon": 1, "avg_temp": 1}`, `"lat"`},
		{"missing", `{"lat": 1, "lon": 1}`, `"avg_temp"`},
		{"non-finite", `{"lat": 1, "lon": "Infinity", "avg_temp": 1}`, `"lon"`},
		{"malformed", `not json`, "JSON object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postPredict(srv, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var body domain.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "bad_request", body.Error)
			assert.Contains(t, body.Detail, tt.detail)
		})
	}
}

func TestPredict_MethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, model.New(model.Weights{}, 50))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/predict", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHealthzReturns200(t *testing.T) {
	srv := newTestServer(t, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyzReturns200WhenModelLoaded(t *testing.T) {
	srv := newTestServer(t, model.New(model.Weights{}, 0))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyzReturns503WithoutModel(t *testing.T) {
	srv := newTestServer(t, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestPredict_WithoutModelReturns503(t *testing.T) {
	var m *model.Model
	srv := newTestServer(t, m)

	rec := postPredict(srv, `{"lat": 0, "lon": 0, "avg_temp": 30}`)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var body domain.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not_ready", body.Error)
}

func TestReadyzReturns503WithTypedNilModel(t *testing.T) {
	var m *model.Model
	srv := newTestServer(t, m)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
