package predict

import (
	"errors"
	"log/slog"
	"reflect"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/urban-heat-service/internal/domain"
	"github.com/couchcryptid/urban-heat-service/internal/observability"
)

// Scorer maps model inputs to a UHI score in [0,100].
type Scorer interface {
	Score(lat, lon, avgTemp float64) float64
}

// ErrModelNotLoaded is returned by Handle when the service has no scorer.
var ErrModelNotLoaded = errors.New("model is not loaded")

// Advisor maps a score to its tier and ordered tips.
type Advisor func(uhi float64) (domain.Label, []string)

// Service composes request parsing, scoring, and advice.
type Service struct {
	scorer  Scorer
	advise  Advisor
	logger  *slog.Logger
	metrics *observability.Metrics
	clock   clockwork.Clock
}

// New creates a Service around a fitted scorer. A nil scorer, including a
// typed nil pointer, leaves the service not ready. A nil clock selects the
// real clock.
func New(scorer Scorer, logger *slog.Logger, metrics *observability.Metrics, clock clockwork.Clock) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if isNil(scorer) {
		scorer = nil
	} else {
		metrics.ModelReady.Set(1)
	}
	return &Service{
		scorer:  scorer,
		advise:  domain.Advise,
		logger:  logger,
		metrics: metrics,
		clock:   clock,
	}
}

// Handle parses a raw request body and predicts on it. Invalid input is
// returned as a *domain.InputError without touching the scorer.
func (s *Service) Handle(body []byte) (domain.PredictionResponse, error) {
	if s.scorer == nil {
		return domain.PredictionResponse{}, ErrModelNotLoaded
	}
	req, err := domain.ParsePredictionRequest(body)
	if err != nil {
		var inputErr *domain.InputError
		if errors.As(err, &inputErr) {
			s.metrics.BadRequests.WithLabelValues(string(inputErr.Reason)).Inc()
			s.logger.Warn("rejected prediction request", "field", inputErr.Field, "reason", inputErr.Reason)
		}
		return domain.PredictionResponse{}, err
	}
	return s.Predict(req), nil
}

// Predict scores a validated request and attaches advice.
func (s *Service) Predict(req domain.PredictionRequest) domain.PredictionResponse {
	start := s.clock.Now()

	uhi := s.scorer.Score(req.Lat, req.Lon, req.AvgTemp)
	label, tips := s.advise(uhi)

	s.metrics.Predictions.WithLabelValues(string(label)).Inc()
	s.metrics.PredictDuration.Observe(s.clock.Since(start).Seconds())
	s.logger.Debug("prediction",
		"lat", req.Lat,
		"lon", req.Lon,
		"avg_temp", req.AvgTemp,
		"uhi", uhi,
		"label", label,
	)

	return domain.PredictionResponse{UHI: uhi, Label: label, Advice: tips}
}

func isNil(scorer Scorer) bool {
	if scorer == nil {
		return true
	}
	v := reflect.ValueOf(scorer)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
