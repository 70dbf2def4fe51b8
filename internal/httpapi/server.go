package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"khsumd/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Summarize(ctx context.Context, text string, maxLength, minLength int) string
	Status() types.StatusResponse
	IsNeuralReady() bool
	TokenizerLoaded() bool
}

// NewMux registers /api/summarize, /api/health, /status, /healthz, /readyz
// and /metrics on a chi router.
func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
		}))
	}
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	r.Use(MetricsMiddleware)

	r.Post("/api/summarize", func(w http.ResponseWriter, r *http.Request) {
		// Content-Type check
		ct := r.Header.Get("Content-Type")
		if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
			writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
			return
		}
		// Limit body size (configurable, default 1MiB)
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		var req types.SummarizeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			// If exceeded size, MaxBytesReader may cause an error; still return 400 to avoid size leak details
			writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		// Validation happens here, not in the summarizer: empty text and
		// too-short text never reach the core.
		trimmed := strings.TrimSpace(req.Text)
		if trimmed == "" {
			writeJSONError(w, http.StatusBadRequest, msgNoText)
			return
		}
		if utf8.RuneCountInString(trimmed) < 10 {
			writeJSONError(w, http.StatusBadRequest, msgTextTooShort)
			return
		}
		maxLen := req.MaxLength
		if maxLen <= 0 {
			maxLen = defaultMaxLength
		}
		minLen := req.MinLength
		if minLen <= 0 {
			minLen = defaultMinLength
		}

		lvl := requestLogLevel(r)
		start := time.Now()
		if lvl >= LevelInfo && zlog != nil {
			z := zlog.Info().Int("max_length", maxLen).Int("min_length", minLen).
				Int("text_len", utf8.RuneCountInString(req.Text))
			if rid := middleware.GetReqID(r.Context()); rid != "" {
				z = z.Str("request_id", rid)
			}
			z.Msg("summarize start")
		}

		// Join server base context with request context so shutdown cancels
		// an in-flight generation too.
		joinedCtx, cancel := joinContexts(serverBaseCtx, r.Context())
		defer cancel()
		summary := svc.Summarize(joinedCtx, req.Text, maxLen, minLen)
		// Client gone: nothing to write. Shutdown: tell a still-connected
		// client instead of an implicit empty 200.
		if r.Context().Err() != nil {
			return
		}
		if serverBaseCtx.Err() != nil {
			writeJSONError(w, http.StatusServiceUnavailable, "server shutting down")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(types.SummarizeResponse{
			Success:        true,
			Summary:        summary,
			OriginalLength: utf8.RuneCountInString(req.Text),
			SummaryLength:  utf8.RuneCountInString(summary),
		}); err != nil {
			writeJSONError(w, http.StatusInternalServerError, msgInternal)
			return
		}
		if lvl >= LevelInfo && zlog != nil {
			z := zlog.Info().Dur("dur", time.Since(start)).
				Int("summary_len", utf8.RuneCountInString(summary)).
				Bool("neural", svc.IsNeuralReady())
			if rid := middleware.GetReqID(r.Context()); rid != "" {
				z = z.Str("request_id", rid)
			}
			z.Msg("summarize end")
		}
	})

	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(types.HealthResponse{
			Status:          "ok",
			ModelLoaded:     svc.IsNeuralReady(),
			TokenizerLoaded: svc.TokenizerLoaded(),
		}); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
			return
		}
	})

	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(svc.Status()); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
			return
		}
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// The service is servable even without a model (extractive fallback), so
	// readiness never fails; the body distinguishes the active mode.
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if svc.IsNeuralReady() {
			w.Write([]byte("ready"))
			return
		}
		w.Write([]byte("fallback"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)

	return r
}
