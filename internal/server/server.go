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
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/hollis-dev/SatchelBot_Go/internal/backpack"
	"github.com/hollis-dev/SatchelBot_Go/internal/database"
	"github.com/hollis-dev/SatchelBot_Go/internal/economy"
	"github.com/hollis-dev/SatchelBot_Go/internal/handler"
	"github.com/hollis-dev/SatchelBot_Go/internal/inventory"
	"github.com/hollis-dev/SatchelBot_Go/internal/item"
	"github.com/hollis-dev/SatchelBot_Go/internal/logger"
	"github.com/hollis-dev/SatchelBot_Go/internal/metrics"
	"github.com/hollis-dev/SatchelBot_Go/internal/user"
)

// Services bundles everything the HTTP API exposes.
type Services struct {
	Users       user.Service
	Inventories inventory.Service
	Economy     economy.Service
	Backpacks   backpack.Service
	Items       item.Service
}

type Server struct {
	httpServer *http.Server
	dbPool     database.Pool
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, dbPool database.Pool, svcs Services) *Server {
	r := chi.NewRouter()

	// Chi middleware executes in order defined, outermost first.
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(RateLimitMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Unversioned operational endpoints
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))
	r.Get("/version", handler.HandleVersion())
	r.Handle("/metrics", promhttp.Handler())

	backpackHandler := handler.NewBackpackHandler(svcs.Users, svcs.Backpacks)
	itemAdminHandler := handler.NewItemAdminHandler(svcs.Items)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/user", func(r chi.Router) {
			r.Post("/register", handler.HandleRegisterUser(svcs.Users))
			r.Get("/inventory", handler.HandleGetInventory(svcs.Users, svcs.Inventories))

			r.Route("/item", func(r chi.Router) {
				r.Post("/use", handler.HandleUseItem(svcs.Users))
				r.Post("/buy", handler.HandleBuyItem(svcs.Users, svcs.Economy))
				r.Post("/sell", handler.HandleSellItem(svcs.Users, svcs.Economy))
			})
		})

		r.Route("/economy", func(r chi.Router) {
			r.Get("/balance", handler.HandleGetBalance(svcs.Users, svcs.Economy))
			r.Post("/deposit", handler.HandleDeposit(svcs.Users, svcs.Economy))
			r.Post("/withdraw", handler.HandleWithdraw(svcs.Users, svcs.Economy))
		})

		r.Route("/backpack", func(r chi.Router) {
			r.Post("/create", backpackHandler.HandleCreate)
			r.Post("/rename", backpackHandler.HandleRename)
			r.Post("/delete", backpackHandler.HandleDelete)
			r.Post("/grant", backpackHandler.HandleGrantAccess)
			r.Post("/revoke", backpackHandler.HandleRevokeAccess)
			r.Post("/deposit", backpackHandler.HandleDeposit)
			r.Post("/withdraw", backpackHandler.HandleWithdraw)
			r.Get("/show", backpackHandler.HandleShow)
			r.Get("/list", backpackHandler.HandleList)
		})

		r.Route("/admin/item", func(r chi.Router) {
			r.Post("/create", itemAdminHandler.HandleCreate)
			r.Post("/update", itemAdminHandler.HandleUpdate)
			r.Post("/delete", itemAdminHandler.HandleDelete)
			r.Get("/get", itemAdminHandler.HandleGet)
			r.Get("/list", itemAdminHandler.HandleList)
		})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool: dbPool,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
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

		// Probes and scrapes would drown the log.
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)
		log.Info("Request started",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info("Server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
