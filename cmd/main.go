package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"gitlab.com/codejudge.net/internal/adapter/crypto"
	"gitlab.com/codejudge.net/internal/adapter/judge0"
	"gitlab.com/codejudge.net/internal/adapter/logging"
	"gitlab.com/codejudge.net/internal/adapter/metrics"
	"gitlab.com/codejudge.net/internal/adapter/postgres/problemrepository"
	"gitlab.com/codejudge.net/internal/adapter/postgres/submissionrepository"
	"gitlab.com/codejudge.net/internal/adapter/redis/ratelimitport"
	"gitlab.com/codejudge.net/internal/config"
	"gitlab.com/codejudge.net/internal/core/services/evaluation"
	"gitlab.com/codejudge.net/internal/core/services/judge"
	"gitlab.com/codejudge.net/internal/core/services/language"
	"gitlab.com/codejudge.net/internal/core/services/submission"
	logger2 "gitlab.com/codejudge.net/internal/global/logger"
	http2 "gitlab.com/codejudge.net/internal/http"
)

func main() {
	InitReader()
	// Set up graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	logger2.Info("Starting code evaluation service")

	sysCfg := config.NewSystemConfig()
	logger := logging.NewZapLogger(sysCfg.DebugMode)
	defer logger.Sync()

	db, err := setupDatabase(sysCfg.PostgresConfig)
	if err != nil {
		logger.Error("Failed to set up database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     sysCfg.RedisConfig.Url,
		Password: sysCfg.RedisConfig.Password,
		DB:       sysCfg.RedisConfig.DB,
	})
	defer redisClient.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewPrometheusRecorder(registry)

	// SECONDARY PORTS
	judgeClient := judge0.NewClient(sysCfg.JudgeConfig, logger.With("component", "judge0"))
	problemRepo := problemrepository.NewProblemRepository(db, logger, sysCfg.PostgresConfig.Schema)
	submissionRepo := submissionrepository.NewSubmissionRepository(db, logger, sysCfg.PostgresConfig.Schema)
	limiter := ratelimitport.NewFixedWindowLimiter(redisClient, sysCfg.RateLimitConfig, logger)

	//primary ports
	jwtProvider := crypto.NewJWTService(sysCfg.JwtConfig)

	//services
	languages := language.NewRegistry(sysCfg.JudgeConfig.Languages)
	logger.Info("Loaded language table", "languages", languages.Names())
	executor := judge.NewExecutionService(judgeClient, sysCfg.JudgeConfig.PollInterval, recorder, logger)
	evaluationSvc := evaluation.NewEvaluationService(
		problemRepo,
		submissionRepo,
		executor,
		languages,
		limiter,
		recorder,
		sysCfg.EvaluationConfig,
		logger,
	)
	submissionSvc := submission.NewSubmissionService(submissionRepo, logger)
	serviceProvider := http2.NewServiceProvider(evaluationSvc, submissionSvc, jwtProvider, registry)

	//server
	ctxBg, cancelBg := context.WithCancel(context.Background())
	defer cancelBg()

	serverErr := make(chan error, 1)
	httpServer := http2.NewServer(sysCfg.HTTPPort, "codejudge", *serviceProvider, sysCfg.EvaluationConfig.Timeout+5*time.Second, logger)
	if err := httpServer.Init(); err != nil {
		logger.Error("Failed to init http server", "error", err)
		os.Exit(1)
	}
	httpServer.Start(ctxBg, serverErr)

	select {
	case <-quit:
	case err := <-serverErr:
		logger.Error("Http server stopped unexpectedly", "error", err)
	}
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), sysCfg.EvaluationConfig.Timeout+5*time.Second)
	defer cancel()
	if err := httpServer.Stop(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	logger.Info("successfully shutdown server")
}

// setupDatabase sets up the PostgreSQL connection
func setupDatabase(cfg *config.PostgresConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.Url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

func InitReader() {
	environment := ""
	if len(os.Args) < 2 {
		log.Fatalf("Env not supplied in argument")
	} else {
		environment = os.Args[1]
	}

	err := godotenv.Load(environment + ".env")
	if err != nil {
		log.Fatalf("Error loading %s.env file", environment)
	}
}
