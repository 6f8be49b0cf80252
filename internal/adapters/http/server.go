package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/riggen"
	"github.com/aretw0/riggen/internal/logging"
	"github.com/aretw0/riggen/pkg/domain"
	"github.com/aretw0/riggen/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// DefaultMaxBodyBytes caps the size of a /convert request body.
const DefaultMaxBodyBytes = 64 << 20

// Converter is the part of riggen.Converter the server needs.
type Converter interface {
	Convert(ctx context.Context, in domain.Input) (domain.OutputSequence, error)
}

// Server serves conversions over HTTP.
type Server struct {
	Converter Converter
	// Store keeps named results; the /results routes answer 404 when nil.
	Store ports.ResultStore
	// Metrics is mounted at /metrics when set.
	Metrics      http.Handler
	Logger       *slog.Logger
	MaxBodyBytes int64
}

// NewHandler creates the chi router for the server.
func NewHandler(s *Server) http.Handler {
	if s.Logger == nil {
		s.Logger = logging.NewNop()
	}
	if s.MaxBodyBytes <= 0 {
		s.MaxBodyBytes = DefaultMaxBodyBytes
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Post("/convert", s.Convert)
	r.Route("/results", func(r chi.Router) {
		r.Get("/", s.ListResults)
		r.Get("/{name}", s.GetResult)
		r.Delete("/{name}", s.DeleteResult)
	})
	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics)
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Convert handles POST /convert. The body is {"pose":[…],"hand_left":[…],"hand_right":[…]}.
// With ?name=<name> the result is also saved to the store.
func (s *Server) Convert(w http.ResponseWriter, r *http.Request) {
	logger, requestID := logging.WithRequestID(s.Logger)
	w.Header().Set("X-Request-Id", requestID)

	var in domain.Input
	body := http.MaxBytesReader(w, r.Body, s.MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(&in); err != nil {
		logger.Warn("Invalid convert request", "error", err)
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := riggen.CheckAlignment(in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	out, err := s.Converter.Convert(r.Context(), in)
	if err != nil {
		logger.Error("Conversion failed", "error", err, "frames", in.Len())
		writeError(w, statusFor(err), err.Error())
		return
	}

	status := http.StatusOK
	if name := r.URL.Query().Get("name"); name != "" {
		if s.Store == nil {
			writeError(w, http.StatusNotImplemented, "no result store configured")
			return
		}
		if err := s.Store.Save(r.Context(), name, out); err != nil {
			logger.Error("Failed to save result", "name", name, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to save result")
			return
		}
		w.Header().Set("Location", "/results/"+name)
		status = http.StatusCreated
	}

	logger.Info("Conversion served", "frames", len(out))
	writeJSON(w, status, out)
}

// ListResults handles GET /results.
func (s *Server) ListResults(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		writeError(w, http.StatusNotFound, "no result store configured")
		return
	}
	names, err := s.Store.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, names)
}

// GetResult handles GET /results/{name}.
func (s *Server) GetResult(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		writeError(w, http.StatusNotFound, "no result store configured")
		return
	}
	out, err := s.Store.Load(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// DeleteResult handles DELETE /results/{name}.
func (s *Server) DeleteResult(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		writeError(w, http.StatusNotFound, "no result store configured")
		return
	}
	if err := s.Store.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetHealth handles the GET /healthz request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":     "riggen-http",
		"version": strings.TrimSpace(riggen.Version),
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrLengthMismatch):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrSolverFailed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrResultNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Response encode failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
