package api

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	defaultFuelRPS   = 25
	defaultFuelBurst = 50
)

// RouterOption configures the behaviour of NewRouter.
type RouterOption func(*routerConfig)

// WithLogging controls whether access logs are emitted.
func WithLogging(enabled bool) RouterOption {
	return func(cfg *routerConfig) {
		cfg.enableLogging = enabled
	}
}

// WithRateLimit sets the token bucket guarding POST /api/fuel.
// A non-positive rate or burst leaves the route unlimited.
func WithRateLimit(ratePerSecond float64, burst int) RouterOption {
	return func(cfg *routerConfig) {
		if ratePerSecond <= 0 || burst <= 0 {
			cfg.fuelLimiter = nil
			return
		}
		cfg.fuelLimiter = rate.NewLimiter(rate.Limit(ratePerSecond), burst)
	}
}

// WithLimiter replaces the fuel route limiter, mainly for tests.
func WithLimiter(limiter allower) RouterOption {
	return func(cfg *routerConfig) {
		cfg.fuelLimiter = limiter
	}
}

// allower is satisfied by *rate.Limiter.
type allower interface {
	Allow() bool
}

type routerConfig struct {
	enableLogging bool
	fuelLimiter   allower
}

// NewRouter registers the fuel service routes. Only the compute route is
// rate limited; reads of the manifest and health checks are not.
func NewRouter(handler *Handler, logger *zap.Logger, opts ...RouterOption) http.Handler {
	cfg := routerConfig{
		enableLogging: true,
		fuelLimiter:   rate.NewLimiter(defaultFuelRPS, defaultFuelBurst),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", handler.handleHealth)
	mux.HandleFunc("GET /api/modules", handler.handleGetModules)
	mux.HandleFunc("PUT /api/modules", handler.handlePutModules)
	mux.Handle("POST /api/fuel", limitFuel(cfg.fuelLimiter, http.HandlerFunc(handler.handleFuel)))

	var root http.Handler = recoverPanics(logger, mux)
	if cfg.enableLogging {
		root = accessLog(logger, root)
	}
	return withRequestID(root)
}

func limitFuel(limiter allower, next http.Handler) http.Handler {
	if limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			writeError(w, http.StatusTooManyRequests, "Too many requests", "fuel calculations are rate limited, retry shortly")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func accessLog(logger *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(sw, r)

		logger.Info("request completed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", sw.status),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", requestIDFromContext(r.Context())),
		)
	})
}

func recoverPanics(logger *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				logger.Error("handler panicked",
					zap.Any("panic", v),
					zap.String("request_id", requestIDFromContext(r.Context())),
				)
				writeError(w, http.StatusInternalServerError, "Internal error", "unexpected server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// withRequestID echoes X-Request-ID, generating one when the client sent none.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get("X-Request-ID"))
		if id == "" {
			id = newRequestID()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDContextKey, id)))
	})
}

func newRequestID() string {
	buf := make([]byte, 16)
	// crypto/rand.Read never returns an error since Go 1.24.
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (s *statusWriter) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}
