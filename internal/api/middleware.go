package api

import (
	"net/http"
	"strconv"
	"time"

	"shareit/internal/config"
	"shareit/internal/domain"
	"shareit/internal/metrics"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func loggingMiddleware(log *zerolog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		w.Header().Set("X-Request-Id", requestID)

		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)

		metrics.IncHTTP(endpointLabel(r), strconv.Itoa(recorder.status))
		log.Info().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", recorder.status).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}

// endpointLabel keeps metric cardinality bounded: the matched mux pattern
// is a fixed set, the raw path is not.
func endpointLabel(r *http.Request) string {
	if r.Pattern != "" {
		return r.Pattern
	}
	return "unmatched"
}

func recoveryMiddleware(log *zerolog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().Interface("panic", rec).Str("path", r.URL.Path).Msg("panic recovered")
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// rateLimitMiddleware applies a global token-bucket limit plus a fixed
// per-user window backed by the rate-limit repository. Requests without a
// user header only pass the global limiter.
func rateLimitMiddleware(cfg config.RateLimitConfig, repo domain.RateLimitRepository, log *zerolog.Logger, next http.Handler) http.Handler {
	global := rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst)
	window := time.Duration(cfg.Window) * time.Second

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !global.Allow() {
			writeError(w, http.StatusTooManyRequests, "too many requests")
			return
		}

		if repo != nil {
			if userID, err := strconv.ParseInt(r.Header.Get(UserIDHeader), 10, 64); err == nil {
				ok, err := repo.CheckRateLimit(r.Context(), userID, cfg.PerUser, window)
				if err != nil {
					// Limiter failure must not take the API down.
					log.Error().Err(err).Int64("user_id", userID).Msg("rate limit check failed")
				} else if !ok {
					writeError(w, http.StatusTooManyRequests, "too many requests")
					return
				}
			}
		}

		next.ServeHTTP(w, r)
	})
}
