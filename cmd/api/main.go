package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"mindful-chat/api/router"
	"mindful-chat/config"
	"mindful-chat/db"
	"mindful-chat/eventbus"
	"mindful-chat/generator"
	"mindful-chat/repositories"
	"mindful-chat/responder"
	"mindful-chat/rules"
	"mindful-chat/services"
)

const shutdownTimeout = 15 * time.Second

// @title           Mindful Chat API
// @version         1.0
// @description     Supportive wellness chat backend with keyword, model and default reply tiers
// @BasePath        /api
func main() {
	config.InitApp()
	cfg := config.GetConfig()
	config.InitLogger(cfg.Logging)
	gin.SetMode(gin.ReleaseMode)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// MongoDB 초기화
	if err := db.Init(ctx); err != nil {
		config.Logger.Errorf("failed to initialize MongoDB: %v", err)
		os.Exit(1)
	}
	database := db.Database()

	// 생성 백엔드: 설정 오류여도 서버는 뜬다. 키워드 답변은 동작하고 나머지 요청은 503 이 된다.
	backend, err := generator.New(ctx, cfg)
	if err != nil {
		config.Logger.Errorf("generator is misconfigured (provider=%s): %v", cfg.Chat.Generator.Provider, err)
		backend = generator.Broken(cfg.Chat.Generator.Provider, err)
	}
	gen := generator.WithRecorder(
		generator.WithQuota(backend, generator.NewQuotaLimiter(cfg.Chat.Quota)),
		repositories.NewAILogRepository(database),
	)
	replies := responder.New(rules.NewDefaultMatcher(), gen, cfg.Chat.Generator.Timeout)

	// EventBus: KAFKA_BOOTSTRAP_SERVERS 가 있고 events.enabled 일 때만 발행한다.
	var bus eventbus.EventBus = eventbus.NopEventBus{}
	if cfg.Events.Enabled && cfg.Env.KafkaBootstrapServers != "" {
		brokers := cfg.Env.KafkaBootstrapServers
		if err := eventbus.EnsureTopics(brokers, eventbus.TopicChatEvents, cfg.Events.Partitions); err != nil {
			config.Logger.Errorf("failed to ensure eventbus topics: %v", err)
		}
		kafkaBus, err := eventbus.NewKafkaEventBus(brokers)
		if err != nil {
			config.Logger.Errorf("failed to create event bus: %v", err)
			os.Exit(1)
		}
		bus = kafkaBus
	}
	defer bus.Close()

	store := services.NewSessionStore(
		repositories.NewSessionRepository(database, cfg.Mongo.MaxRetries),
		repositories.NewMessageRepository(database, cfg.Mongo.MaxRetries),
		cfg.Mongo.OperationTimeout,
	)
	chatSvc := services.NewChatService(store, replies, services.ChatServiceOptions{
		ContextLimit:     cfg.Chat.ContextLimit,
		SessionListLimit: cfg.Chat.SessionListLimit,
		Publisher:        eventbus.NewTurnPublisher(bus, eventbus.TopicChatEvents),
	})
	statusSvc := services.NewStatusService(
		repositories.NewStatusCheckRepository(database, cfg.Mongo.MaxRetries),
		cfg.Mongo.OperationTimeout,
	)

	engine := router.New(router.Deps{
		Chat:   chatSvc,
		Status: statusSvc,
		Ping:   db.Ping,
	})
	srv := &http.Server{
		Addr:              cfg.Env.HTTPAddr,
		Handler:           router.Handler(engine, cfg.Env.CORSOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		config.Logger.Infof("starting api server on %s (provider=%s)", srv.Addr, backend.Provider())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		// Graceful shutdown: 종료 신호나 서버 오류 중 먼저 오는 쪽을 기다린다.
		sigCtx, stop := signal.NotifyContext(gctx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		<-sigCtx.Done()
		config.Logger.Info("shutting down api server...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		config.Logger.Errorf("api server error: %v", err)
	}

	disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer disconnectCancel()
	if err := db.Disconnect(disconnectCtx); err != nil {
		config.Logger.Errorf("mongo disconnect error: %v", err)
	}

	config.Logger.Info("api server stopped")
}
