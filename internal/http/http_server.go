package http

// this is entry point of the http request handlers

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gitlab.com/codejudge.net/internal/core/ports/primary"
	"gitlab.com/codejudge.net/internal/core/services/evaluation"
	"gitlab.com/codejudge.net/internal/core/services/submission"
	"gitlab.com/codejudge.net/internal/handlers"
	"gitlab.com/codejudge.net/internal/handlers/execute"
	"gitlab.com/codejudge.net/internal/handlers/health"
	"gitlab.com/codejudge.net/internal/handlers/submissions"
)

type ServiceProvider struct {
	evaluationService evaluation.IEvaluationService
	submissionService submission.ISubmissionService
	jwtService        primary.JWTService
	gatherer          prometheus.Gatherer
}

func NewServiceProvider(
	evaluationService evaluation.IEvaluationService,
	submissionService submission.ISubmissionService,
	jwtService primary.JWTService,
	gatherer prometheus.Gatherer,
) *ServiceProvider {
	return &ServiceProvider{
		evaluationService: evaluationService,
		submissionService: submissionService,
		jwtService:        jwtService,
		gatherer:          gatherer,
	}
}

type Server struct {
	router          *mux.Router
	srv             *http.Server
	Port            int
	ServiceName     string
	ServiceProvider ServiceProvider
	// WriteTimeout must outlast the evaluation deadline.
	WriteTimeout time.Duration
	logger       primary.Logger
}

func NewServer(port int, serviceName string, serviceProvider ServiceProvider, writeTimeout time.Duration, logger primary.Logger) *Server {
	if writeTimeout <= 0 {
		writeTimeout = 15 * time.Second
	}
	return &Server{
		Port:            port,
		ServiceName:     serviceName,
		ServiceProvider: serviceProvider,
		WriteTimeout:    writeTimeout,
		logger:          logger,
	}
}

func (s *Server) Init() error {
	if s.ServiceProvider.evaluationService == nil || s.ServiceProvider.submissionService == nil {
		return errors.New("http server: missing services")
	}

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	health.RegisterRoutes(api)

	protected := api.NewRoute().Subrouter()
	protected.Use(handlers.NewMiddlewareProvider(s.ServiceProvider.jwtService, s.logger).JWTMiddleware)
	execute.NewExecuteHandler(s.ServiceProvider.evaluationService, s.logger).RegisterRoutes(protected)
	submissions.NewSubmissionHandler(s.ServiceProvider.submissionService, s.logger).RegisterRoutes(protected)

	if s.ServiceProvider.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.ServiceProvider.gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}

	s.router = r
	return nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start(ctx context.Context, errCh chan<- error) {
	s.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: s.WriteTimeout,
		IdleTimeout:  60 * time.Second,
		BaseContext:  func(_ net.Listener) context.Context { return ctx },
	}

	go func() {
		s.logger.Info("Server listening", "addr", s.srv.Addr, "service", s.ServiceName)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Server error", "error", err)
			errCh <- err
		}
	}()
}

// Stop drains in-flight requests until ctx expires.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down http server...")
	if s.srv == nil {
		return nil
	}
	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown http server: %w", err)
	}
	return nil
}
