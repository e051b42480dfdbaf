package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"product-compare/cmd/api/analyzer"
	"product-compare/cmd/api/auth"
	"product-compare/cmd/api/router"
	"product-compare/cmd/api/scraper"
	"product-compare/cmd/api/services"
	"product-compare/internal/logger"
	"product-compare/config"
	"product-compare/db"
	"product-compare/eventbus"
	"product-compare/repositories"
)

// @title           Product Compare API
// @version         1.0
// @description     상품 URL/설명을 분석해 요약하고 여러 상품을 비교합니다.
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	config.InitApp()
	cfg := config.GetConfig()
	logger.Init(cfg.Logging.Level)
	gin.SetMode(gin.ReleaseMode)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// MongoDB 초기화
	if err := db.Init(ctx); err != nil {
		logger.Log.Errorf("failed to initialize MongoDB: %v", err)
		os.Exit(1)
	}
	database := db.Database()
	users := repositories.NewUserRepository(database)
	summaries := repositories.NewSummaryRepository(database)
	aiLogs := repositories.NewAILogRepository(database)

	client, err := analyzer.NewFromEnv(ctx, cfg.LLM, aiLogs)
	if err != nil {
		logger.Log.Errorf("failed to create analyzer: %v", err)
		os.Exit(1)
	}

	tokens, err := auth.NewJWTManagerFromEnv(cfg.Auth.Issuer, cfg.Auth.TokenTTL())
	if err != nil {
		logger.Log.Errorf("failed to create jwt manager: %v", err)
		os.Exit(1)
	}

	bus := newEventBus(ctx, cfg.EventBus)
	defer bus.Close()

	summarySvc := services.NewSummaryService(summaries, client, scraper.New(cfg.Scraper), bus, cfg.EventBus.Topic)
	authSvc := services.NewAuthService(users, summaries, tokens, bus, cfg.EventBus.Topic)

	engine := router.New(router.Deps{
		Server:    cfg.Server,
		Auth:      authSvc,
		Summaries: summarySvc,
		Tokens:    tokens,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           corsHandler(cfg.Server.CORSAllowedOrigins).Handler(engine),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.InfoWithFields("starting api server", logger.Fields{
			"addr":   srv.Addr,
			"prefix": cfg.Server.APIPrefix,
			"model":  client.Model(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Errorf("api server error: %v", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown 설정
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	logger.Log.Info("received shutdown signal, shutting down api server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorf("api server shutdown error: %v", err)
	}
	if err := db.Close(shutdownCtx); err != nil {
		logger.Log.Errorf("failed to close MongoDB: %v", err)
	}

	logger.Log.Info("api server stopped")
}

// newEventBus 는 설정이 켜져 있으면 Kafka 버스를, 아니면 NoopBus 를 반환한다.
// Kafka 초기화 실패는 서버 기동을 막지 않는다.
func newEventBus(ctx context.Context, cfg config.EventBusConfig) eventbus.Publisher {
	if !cfg.Enabled {
		return eventbus.NoopBus{}
	}
	brokers, err := eventbus.GetBrokers()
	if err != nil {
		logger.Log.Warnf("eventbus disabled: %v", err)
		return eventbus.NoopBus{}
	}
	if err := eventbus.EnsureTopic(ctx, brokers, cfg.Topic, 3); err != nil {
		logger.Log.Errorf("failed to ensure eventbus topic: %v", err)
	}
	bus, err := eventbus.NewKafkaEventBus(brokers)
	if err != nil {
		logger.Log.Errorf("failed to create event bus: %v", err)
		return eventbus.NoopBus{}
	}
	return bus
}

func corsHandler(origins []string) *cors.Cors {
	if len(origins) == 0 {
		return cors.AllowAll()
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id", "X-Span-Id"},
	})
}
