package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"shareit/internal/config"
	"shareit/internal/domain"

	"github.com/rs/zerolog"
)

// UserIDHeader carries the caller-supplied user identifier. The transport
// trusts it; there is no authentication beyond this.
const UserIDHeader = "X-Sharer-User-Id"

type HTTPServer struct {
	cfg      config.HTTPConfig
	items    domain.ItemService
	bookings domain.BookingService
	users    domain.UserService
	requests domain.RequestService
	exports  *Exporter
	server   *http.Server
	log      zerolog.Logger
}

type Services struct {
	Items    domain.ItemService
	Bookings domain.BookingService
	Users    domain.UserService
	Requests domain.RequestService
}

func NewHTTPServer(cfg config.HTTPConfig, svc Services, exporter *Exporter, rateLimits domain.RateLimitRepository, logger *zerolog.Logger) *HTTPServer {
	srv := &HTTPServer{
		cfg:      cfg,
		items:    svc.Items,
		bookings: svc.Bookings,
		users:    svc.Users,
		requests: svc.Requests,
		exports:  exporter,
		log:      logger.With().Str("component", "http").Logger(),
	}

	mux := http.NewServeMux()

	mux.HandleFunc("POST /users", srv.handleCreateUser)
	mux.HandleFunc("GET /users", srv.handleListUsers)
	mux.HandleFunc("GET /users/{id}", srv.handleGetUser)
	mux.HandleFunc("PATCH /users/{id}", srv.handleUpdateUser)
	mux.HandleFunc("DELETE /users/{id}", srv.handleDeleteUser)

	mux.HandleFunc("POST /items", srv.handleCreateItem)
	mux.HandleFunc("GET /items", srv.handleListItems)
	mux.HandleFunc("GET /items/search", srv.handleSearchItems)
	mux.HandleFunc("GET /items/{id}", srv.handleGetItem)
	mux.HandleFunc("PATCH /items/{id}", srv.handleUpdateItem)
	mux.HandleFunc("DELETE /items/{id}", srv.handleDeleteItem)
	mux.HandleFunc("POST /items/{id}/comment", srv.handleAddComment)

	mux.HandleFunc("POST /bookings", srv.handleCreateBooking)
	mux.HandleFunc("GET /bookings", srv.handleBookingsByBooker)
	mux.HandleFunc("GET /bookings/owner", srv.handleBookingsByOwner)
	mux.HandleFunc("GET /bookings/{id}", srv.handleGetBooking)
	mux.HandleFunc("PATCH /bookings/{id}", srv.handleApproveBooking)
	mux.HandleFunc("DELETE /bookings/{id}", srv.handleCancelBooking)

	mux.HandleFunc("POST /requests", srv.handleCreateRequest)
	mux.HandleFunc("GET /requests", srv.handleOwnRequests)
	mux.HandleFunc("GET /requests/all", srv.handleOtherRequests)
	mux.HandleFunc("GET /requests/{id}", srv.handleGetRequest)

	mux.HandleFunc("GET /admin/export", srv.handleExport)

	handler := recoveryMiddleware(&srv.log,
		loggingMiddleware(&srv.log,
			rateLimitMiddleware(cfg.RateLimit, rateLimits, &srv.log, mux)))

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	return srv
}

func (s *HTTPServer) Handler() http.Handler {
	return s.server.Handler
}

func (s *HTTPServer) Start() error {
	if s.server == nil {
		return fmt.Errorf("http server is not initialized")
	}
	s.log.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}
