package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xtding233/circle-curves/internal/config"
	"github.com/xtding233/circle-curves/internal/curve"
	"github.com/xtding233/circle-curves/internal/render"
)

type evalResp struct {
	Curve   *curve.Curve   `json:"curve,omitempty"`
	Samples []curve.Sample `json:"samples,omitempty"`
	Summary *curve.Summary `json:"summary,omitempty"`
	Err     string         `json:"err,omitempty"`
}

type presetsResp struct {
	Presets []string `json:"presets"`
}

// Server exposes curve evaluation over HTTP.
type Server struct {
	resolver config.Resolver // optional; nil disables /curves/{name}
	logger   *zap.Logger
}

// NewServer creates the HTTP surface. resolver may be nil.
func NewServer(resolver config.Resolver, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{resolver: resolver, logger: logger}
}

// Handler returns the routed handler with request-id logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /evaluate", s.handleEvaluate)
	mux.HandleFunc("GET /presets", s.handlePresets)
	mux.HandleFunc("GET /curves/{name}", s.handleCurve)
	mux.HandleFunc("GET /plot", s.handlePlot)
	return s.withRequestID(mux)
}

// curve from query params
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	c, err := curveFromQuery(r)
	if err != nil {
		writeErr(w, err)
		return
	}
	s.writeCurve(w, r, c)
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, presetsResp{Presets: curve.PresetNames()})
}

// curve from the config directory, with n/formula/unit overrides
func (s *Server) handleCurve(w http.ResponseWriter, r *http.Request) {
	if s.resolver == nil {
		writeJSON(w, http.StatusNotFound, evalResp{Err: "no curve config loaded"})
		return
	}
	var o config.Overrides
	n, hasN, msg := parseInt(r, "n")
	if msg != "" {
		writeJSON(w, http.StatusBadRequest, evalResp{Err: msg})
		return
	}
	if hasN {
		o.N = &n
	}
	if f := r.URL.Query().Get("formula"); f != "" {
		o.Formula = &f
	}
	if u := r.URL.Query().Get("unit"); u != "" {
		o.Unit = &u
	}
	_, c, err := s.resolver.Resolve(r.PathValue("name"), o)
	if err != nil {
		writeErr(w, err)
		return
	}
	s.writeCurve(w, r, c)
}

func (s *Server) handlePlot(w http.ResponseWriter, r *http.Request) {
	c, err := curveFromQuery(r)
	if err != nil {
		writeErr(w, err)
		return
	}
	samples, err := evaluate(c)
	if err != nil {
		writeErr(w, err)
		return
	}
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = "png"
	}
	var buf bytes.Buffer
	if err := render.WriteChart(&buf, format, samples, render.ChartOptions{
		Title: r.URL.Query().Get("title"),
		Unit:  c.Unit,
	}); err != nil {
		writeErr(w, err)
		return
	}
	w.Header().Set("Content-Type", render.ContentTypes[format])
	_, _ = w.Write(buf.Bytes())
}

// evaluate bounds n, evaluates c and rejects results JSON and charts cannot carry.
func evaluate(c curve.Curve) ([]curve.Sample, error) {
	if err := checkSize(c); err != nil {
		return nil, err
	}
	samples, err := c.Evaluate()
	if err != nil {
		return nil, err
	}
	if err := curve.CheckFinite(samples); err != nil {
		return nil, err
	}
	return samples, nil
}

func (s *Server) writeCurve(w http.ResponseWriter, r *http.Request, c curve.Curve) {
	samples, err := evaluate(c)
	if err != nil {
		writeErr(w, err)
		return
	}
	sum := curve.Summarize(samples)
	s.logger.Debug("curve evaluated",
		zap.String("request_id", w.Header().Get(requestIDHeader)),
		zap.Int("n", c.N),
		zap.Int("components", len(c.Components)),
		zap.Float64("y_min", sum.Min),
		zap.Float64("y_max", sum.Max))
	writeJSON(w, http.StatusOK, evalResp{Curve: &c, Samples: samples, Summary: &sum})
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, config.ErrCurveNotFound):
		return http.StatusNotFound
	case errors.Is(err, curve.ErrInvalidSampleCount),
		errors.Is(err, curve.ErrInvalidCurve),
		errors.Is(err, curve.ErrNonFiniteSample),
		errors.Is(err, config.ErrInvalidConfig),
		errors.Is(err, render.ErrUnsupportedFormat),
		errors.Is(err, ErrUnknownPreset),
		errors.Is(err, ErrBadParam),
		errors.Is(err, ErrTooManySamples):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeErr(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), evalResp{Err: err.Error()})
}

// writeJSON encodes v before touching the header so an encode failure still
// reaches the client as a JSON error.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		status = http.StatusInternalServerError
		buf.Reset()
		_ = json.NewEncoder(&buf).Encode(evalResp{Err: err.Error()})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

const requestIDHeader = "X-Request-Id"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		s.logger.Info("http request",
			zap.String("request_id", id),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("took", time.Since(start)))
	})
}
