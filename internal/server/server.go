// Package server assembles the HTTP surface: middleware stack, the Slack
// events endpoint, the admin API and the operational endpoints.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/grubworks/grubbot/internal/database"
	"github.com/grubworks/grubbot/internal/handler"
	"github.com/grubworks/grubbot/internal/logger"
	"github.com/grubworks/grubbot/internal/menu"
	"github.com/grubworks/grubbot/internal/metrics"
	"github.com/grubworks/grubbot/internal/order"
	"github.com/grubworks/grubbot/internal/repository"
)

// Config carries the server's wiring inputs.
type Config struct {
	Port                   int
	APIKey                 string
	TrustedProxies         []string
	SlackVerificationToken string
	SlackBotUserID         string
}

type Server struct {
	httpServer   *http.Server
	dbPool       database.Pool
	orderService order.Service
	menuService  menu.Service
}

// NewServer creates a new Server instance
func NewServer(cfg Config, dbPool database.Pool, orderService order.Service, menuService menu.Service, menuAdmin repository.MenuAdmin, mentions handler.MentionRouter) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(cfg.APIKey, cfg.TrustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(cfg.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// Slack Events API entry point; verified by token, not API key
	eventsHandler := handler.NewEventsHandler(mentions, cfg.SlackVerificationToken, cfg.SlackBotUserID)
	r.Post("/slack/events", eventsHandler.HandleEvent)

	// Admin API
	ordersHandler := handler.NewOrdersHandler(orderService)
	placesHandler := handler.NewPlacesHandler(menuAdmin, menuService)
	r.Route("/api/v1/admin", func(r chi.Router) {
		r.Route("/orders", func(r chi.Router) {
			r.Post("/", ordersHandler.HandleOpenOrder)
			r.Get("/{channel}", ordersHandler.HandleGetOrder)
			r.Delete("/{channel}", ordersHandler.HandleCloseOrder)
			r.Put("/{channel}/collector", ordersHandler.HandleSetCollector)
			r.Put("/{channel}/override", ordersHandler.HandleSetOverride)
		})

		r.Route("/places", func(r chi.Router) {
			r.Put("/", placesHandler.HandleUpsertPlace)
			r.Get("/{name}", placesHandler.HandleGetPlace)
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool:       dbPool,
		orderService: orderService,
		menuService:  menuService,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		// Use HasPrefix to catch potential variations (e.g. /healthz/)
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		// Generate unique request ID
		requestID := logger.GenerateRequestID()

		// Add request ID to context
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		// Get scoped logger
		log := logger.FromContext(ctx)

		// Log request start with details
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		// Wrap response writer to capture status code
		rw := newResponseWriter(w)

		// Process request
		next.ServeHTTP(rw, r)

		// Log request completion with metrics
		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
