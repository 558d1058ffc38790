package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/craftandcart/storefront/internal/auth"
	"github.com/craftandcart/storefront/internal/features/category"
	"github.com/craftandcart/storefront/internal/features/order"
	"github.com/craftandcart/storefront/internal/features/payment"
	"github.com/craftandcart/storefront/internal/features/product"
	"github.com/craftandcart/storefront/internal/features/user"
	"github.com/craftandcart/storefront/internal/middlewares"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type ServerConfig struct {
	Addr         string
	DB           *sql.DB
	Redis        *redis.Client
	TokenManager *auth.TokenService
	Gateway      *payment.BraintreeGateway
	Logger       *zap.Logger
}

type server struct {
	*ServerConfig

	srv *http.Server
}

func NewServer(serverConfig *ServerConfig) *server {
	return &server{
		ServerConfig: serverConfig,
	}
}

func (s *server) Run() error {
	router := chi.NewRouter()

	// strip trailing slashes so /product/1/ and /product/1 route alike
	router.Use(chimiddleware.StripSlashes)
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)

	router.Mount("/api/v1", s.v1Router()) // api version 1 subrouter

	s.srv = &http.Server{
		Addr:    fmt.Sprintf(":%s", s.Addr),
		Handler: router,
	}

	// start server and listen for shutdown signals
	return s.listenAndServe()
}

func (s *server) listenAndServe() error {
	shutdownCtx, shutdownCancel := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
	)
	defer shutdownCancel()

	errGrp, shutdownCtx := errgroup.WithContext(shutdownCtx)

	errGrp.Go(
		func() error {
			s.Logger.Info("server started", zap.String("port", s.Addr))

			if err := s.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) && err != nil {
				return fmt.Errorf("failed to start server: %w", err)
			}

			return nil
		},
	)

	errGrp.Go(
		func() error {
			<-shutdownCtx.Done() // block until a shutdown signal arrives
			s.Logger.Info("server is gracefully shutting down...")

			ctx, cancel := context.WithTimeout(
				context.Background(),
				(20 * time.Second),
			)
			defer cancel()

			if err := s.srv.Shutdown(ctx); err != nil {
				return fmt.Errorf("server failed to shutdown gracefully: %w", err)
			}

			return nil
		},
	)

	if err := errGrp.Wait(); err != nil {
		return err
	}
	s.Logger.Info("all pending requests completed")

	if err := s.Redis.Close(); err != nil {
		s.Logger.Warn("failed to close redis client", zap.Error(err))
	}

	if err := s.DB.Close(); err != nil {
		s.Logger.Warn("failed to close db", zap.Error(err))
	}

	s.Logger.Info("server has been gracefully shutdown")
	return nil
}

func (s *server) v1Router() *chi.Mux {
	r := chi.NewRouter()

	// health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// user feature; the middleware needs its admin lookup
	userStore := user.NewStore(s.DB)
	userService := user.NewService(userStore, s.TokenManager)

	middleware := middlewares.NewMiddleware(
		s.TokenManager,
		userService,
		s.Logger,
	)

	userHandler := user.NewHandler(userService, middleware)
	userHandler.RegisterRoutes(r)

	// category feature
	categoryStore := category.NewStore(s.DB)
	categoryService := category.NewService(categoryStore)
	categoryHandler := category.NewHandler(categoryService, middleware)
	categoryHandler.RegisterRoutes(r)

	// product feature; resolves categories at read time
	productStore := product.NewStore(s.DB)
	productService := product.NewService(
		productStore,
		categoryService,
	)
	productHandler := product.NewHandler(productService, middleware)
	productHandler.RegisterRoutes(r)

	// order feature
	orderStore := order.NewStore(s.DB)
	orderService := order.NewService(orderStore)
	orderHandler := order.NewHandler(orderService, middleware)
	orderHandler.RegisterRoutes(r)

	// payment feature; the only writer of orders
	intentStore := payment.NewIntentStore(s.DB)
	idemCache := payment.NewRedisIdemCache(s.Redis)
	paymentService := payment.NewService(
		s.Gateway,
		orderService,
		intentStore,
		idemCache,
	)
	paymentHandler := payment.NewHandler(paymentService, middleware)
	paymentHandler.RegisterRoutes(r)

	return r
}
