package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/mrops-br/simple-shop/internal/infrastructure/config"
	"github.com/mrops-br/simple-shop/internal/infrastructure/http/handler"
	"github.com/mrops-br/simple-shop/internal/infrastructure/http/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Handlers groups the HTTP handlers the server routes to
type Handlers struct {
	Products   *handler.ProductHandler
	Cart       *handler.CartHandler
	Checkout   *handler.CheckoutHandler
	Storefront *handler.StorefrontHandler
}

// Server represents the HTTP server
type Server struct {
	router        *chi.Mux
	config        *config.ServerConfig
	handlers      Handlers
	logger        *slog.Logger
	meterProvider metric.MeterProvider
	httpServer    *http.Server
}

// NewServer creates a new HTTP server
func NewServer(
	cfg *config.ServerConfig,
	handlers Handlers,
	meterProvider metric.MeterProvider,
	logger *slog.Logger,
) *Server {
	s := &Server{
		router:        chi.NewRouter(),
		config:        cfg,
		handlers:      handlers,
		logger:        logger,
		meterProvider: meterProvider,
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// setupMiddleware configures the middleware chain
func (s *Server) setupMiddleware() {
	s.router.Use(chimiddleware.RequestID)
	// Structured JSON logging middleware (replaces chimiddleware.Logger)
	s.router.Use(middleware.StructuredLogger(s.logger))
	s.router.Use(chimiddleware.Recoverer)

	// Add HTTP route to context so all logs include it automatically
	s.router.Use(middleware.HTTPRouteContext())

	meter := s.meterProvider.Meter("simple-shop")
	s.router.Use(middleware.ActiveRequestsMiddleware(meter))
}

// setupRoutes configures the storefront and API routes
func (s *Server) setupRoutes() {
	sf := s.handlers.Storefront
	s.router.Get("/", sf.Index)
	s.router.Route("/cart", func(r chi.Router) {
		r.Post("/add/{id}", sf.Add)
		r.Post("/inc/{id}", sf.Increment)
		r.Post("/dec/{id}", sf.Decrement)
		r.Post("/remove/{id}", sf.Remove)
		r.Post("/clear", sf.Clear)
	})
	s.router.Post("/checkout", sf.Checkout)

	s.router.Route("/api", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", s.handlers.Products.ListProducts)
			r.Get("/{id}", s.handlers.Products.GetProduct)
		})
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", s.handlers.Cart.GetCart)
			r.Delete("/", s.handlers.Cart.ClearCart)
			r.Post("/items", s.handlers.Cart.AddItem)
			r.Patch("/items/{id}", s.handlers.Cart.ChangeQuantity)
			r.Delete("/items/{id}", s.handlers.Cart.RemoveItem)
		})
		r.Post("/checkout", s.handlers.Checkout.Checkout)
	})

	// Health check endpoint
	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Prometheus metrics endpoint - exposes OpenTelemetry metrics
	s.router.Get("/metrics", promhttp.Handler().ServeHTTP)
}

// Handler returns the instrumented root handler
func (s *Server) Handler() http.Handler {
	// Wrap the entire router with otelhttp for automatic HTTP metrics and tracing
	return otelhttp.NewHandler(s.router, "http-server",
		otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
			return fmt.Sprintf("%s %s", r.Method, r.URL.Path)
		}),
		otelhttp.WithMeterProvider(s.meterProvider),
		otelhttp.WithMetricAttributesFn(func(r *http.Request) []attribute.KeyValue {
			return []attribute.KeyValue{
				attribute.String("http.route", middleware.RoutePattern(r)),
			}
		}),
	)
}

// Start starts the HTTP server and blocks until it stops
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server",
		slog.String("address", s.httpServer.Addr),
	)

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
