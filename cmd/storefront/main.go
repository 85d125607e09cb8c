package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/Sqr400Flashfund/sqr400flashfund/internal/catalog"
	"github.com/Sqr400Flashfund/sqr400flashfund/internal/checkout"
	"github.com/Sqr400Flashfund/sqr400flashfund/internal/contact"
	"github.com/Sqr400Flashfund/sqr400flashfund/internal/content"
	"github.com/Sqr400Flashfund/sqr400flashfund/internal/events"
	"github.com/Sqr400Flashfund/sqr400flashfund/internal/gateway"
	h "github.com/Sqr400Flashfund/sqr400flashfund/internal/http"
)

type Config struct {
	HTTPPort        string
	BackendURL      string // empty runs the local gateway
	RedisAddr       string // empty disables caching
	KafkaBrokers    []string
	SessionIdleTTL  time.Duration
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	// .env is optional, env vars win
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		BackendURL:      getEnv("BACKEND_URL", ""),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		SessionIdleTTL:  getEnvDuration("SESSION_IDLE_TTL", checkout.DefaultSessionTTL),
		RequestTimeout:  getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		slog.Warn("invalid duration, using default", "key", key, "value", value)
		return defaultValue
	}
	return d
}

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := loadConfig()

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			slog.Warn("redis unreachable, caching disabled", "addr", cfg.RedisAddr, "error", err)
			redisClient = nil
		}
		cancel()
	}

	var productCatalog catalog.Catalog = catalog.NewMemoryCatalog(catalog.SeedProducts())
	if redisClient != nil {
		productCatalog = catalog.NewCachedCatalog(productCatalog, redisClient)
	}

	var orderGateway gateway.OrderGateway
	if cfg.BackendURL != "" {
		orderGateway = gateway.NewHTTPGateway(cfg.BackendURL, cfg.RequestTimeout)
		slog.Info("using backend order gateway", "url", cfg.BackendURL)
	} else {
		orderGateway = gateway.NewLocalGateway(productCatalog)
		slog.Info("using local order gateway")
	}

	var confirmedSink checkout.ConfirmedSink
	if len(cfg.KafkaBrokers) > 0 {
		publisher := events.NewKafkaPublisher(cfg.KafkaBrokers...)
		defer publisher.Close()
		confirmedSink = publisher
		slog.Info("publishing confirmed orders", "brokers", cfg.KafkaBrokers, "topic", events.Topic)
	}

	manager := checkout.NewManager(checkout.Deps{
		Catalog: productCatalog,
		Gateway: orderGateway,
		Events:  confirmedSink,
	}, cfg.SessionIdleTTL)
	defer manager.Close()

	var contentSource content.Source = content.NewSeedSource()
	if cfg.BackendURL != "" {
		contentSource = content.NewBackendSource(cfg.BackendURL, cfg.RequestTimeout)
	}
	contentService := content.NewService(contentSource, redisClient)

	var contactSink contact.Sink = contact.NewMemorySink()
	if cfg.BackendURL != "" {
		contactSink = contact.NewBackendSink(cfg.BackendURL, cfg.RequestTimeout)
	}
	contactService := contact.NewService(contactSink)

	checkoutHandler := h.NewCheckoutHandler(manager)
	productHandler := h.NewProductHandler(productCatalog)
	contentHandler := h.NewContentHandler(contentService)
	contactHandler := h.NewContactHandler(contactService)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(h.RequestIDMiddleware)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/checkout", func(r chi.Router) {
			r.Post("/", checkoutHandler.Start)
			r.Route("/{session_id}", func(r chi.Router) {
				r.Get("/", checkoutHandler.Get)
				r.Put("/customer", checkoutHandler.UpdateCustomer)
				r.Post("/advance", checkoutHandler.Advance)
				r.Post("/back", checkoutHandler.Back)
				r.Post("/copy", checkoutHandler.Copy)
				r.Get("/verify", checkoutHandler.Verify)
				r.Get("/download/{token}", checkoutHandler.Download)
			})
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.List)
			r.Get("/{product_id}", productHandler.Get)
		})

		r.Route("/blog", func(r chi.Router) {
			r.Get("/", contentHandler.ListPosts)
			r.Get("/search", contentHandler.SearchPosts)
			r.Get("/{slug}", contentHandler.GetPost)
		})
		r.Get("/faq", contentHandler.ListFAQs)
		r.Get("/testimonials", contentHandler.ListTestimonials)
		r.Get("/stats", contentHandler.GetStats)

		r.Post("/contact", contactHandler.SubmitMessage)
		r.Post("/newsletter/subscribe", contactHandler.Subscribe)
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("storefront starting", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited")
}
