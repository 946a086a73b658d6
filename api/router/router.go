package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"mindful-chat/api/handlers"
	"mindful-chat/api/middleware"
	_ "mindful-chat/docs"
	"mindful-chat/metrics"
)

type Deps struct {
	Chat   handlers.ChatService
	Status handlers.StatusService
	// Ping 은 /health 에서 저장소 상태 확인에 쓰인다.
	Ping func(ctx context.Context) error
}

func New(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestTrace(), middleware.Recovery())

	r.GET("/health", handlers.HealthHandler(deps.Ping))

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Prometheus
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api")
	{
		api.GET("/", handlers.RootHandler())

		api.POST("/status", handlers.CreateStatusCheckHandler(deps.Status))
		api.GET("/status", handlers.ListStatusChecksHandler(deps.Status))

		api.POST("/chat", handlers.ChatHandler(deps.Chat))
		api.GET("/chat/history/:session_id", handlers.ChatHistoryHandler(deps.Chat))
		api.GET("/chat/sessions", handlers.ListSessionsHandler(deps.Chat))
	}

	return r
}

// Handler 는 CORS 정책을 적용한 최종 http.Handler 를 만든다.
// origins 에 "*" 가 있으면 요청 Origin 을 그대로 반사해 credentials 와 함께 허용한다.
func Handler(engine http.Handler, origins []string) http.Handler {
	opts := cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{middleware.HeaderRequestID, middleware.HeaderSpanID},
		AllowCredentials: true,
	}
	for _, o := range origins {
		if o == "*" {
			opts.AllowedOrigins = nil
			opts.AllowOriginFunc = func(string) bool { return true }
			break
		}
	}
	return cors.New(opts).Handler(engine)
}
