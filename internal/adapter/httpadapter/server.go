package httpadapter

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/urban-heat-service/internal/domain"
	"github.com/couchcryptid/urban-heat-service/internal/predict"
)

// Error codes of the prediction endpoint.
const (
	errorCodeBadRequest = "bad_request"
	errorCodeNotReady   = "not_ready"
)

// Predictor turns a raw request body into a prediction.
type Predictor interface {
	Handle(body []byte) (domain.PredictionResponse, error)
	CheckReadiness(ctx context.Context) error
}

// Server exposes the prediction endpoint alongside health, readiness, and metrics.
type Server struct {
	httpServer *http.Server
	predictor  Predictor
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /predict, /healthz, /readyz, and /metrics routes.
func NewServer(addr string, predictor Predictor, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		predictor: predictor,
		logger:    logger,
	}

	mux.HandleFunc("POST /predict", s.handlePredict)
	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(predictor))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.logger.Warn("read prediction body failed", "error", err)
		writeBadRequest(w, "read request body: "+err.Error())
		return
	}

	resp, err := s.predictor.Handle(body)
	if errors.Is(err, predict.ErrModelNotLoaded) {
		sharedobs.WriteJSON(w, http.StatusServiceUnavailable, domain.ErrorResponse{
			Error:  errorCodeNotReady,
			Detail: err.Error(),
		})
		return
	}
	if err != nil {
		var inputErr *domain.InputError
		if !errors.As(err, &inputErr) {
			s.logger.Error("prediction failed", "error", err)
		}
		writeBadRequest(w, err.Error())
		return
	}

	sharedobs.WriteJSON(w, http.StatusOK, resp)
}

func writeBadRequest(w http.ResponseWriter, detail string) {
	sharedobs.WriteJSON(w, http.StatusBadRequest, domain.ErrorResponse{
		Error:  errorCodeBadRequest,
		Detail: detail,
	})
}
