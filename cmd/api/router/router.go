package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"product-compare/cmd/api/handlers"
	"product-compare/cmd/api/middleware"
	"product-compare/cmd/api/services"
	"product-compare/config"
	_ "product-compare/docs"
)

// Deps 는 라우터가 요구하는 서비스와 토큰 검증기 묶음이다.
type Deps struct {
	Server    config.ServerConfig
	Auth      *services.AuthService
	Summaries *services.SummaryService
	Tokens    middleware.TokenParser
}

func New(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestTrace())
	r.Use(middleware.BodyLimit(deps.Server.BodyLimitBytes))

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	prefix := deps.Server.APIPrefix
	if prefix == "" {
		prefix = "/api"
	}
	api := r.Group(prefix)
	api.GET("/health", handlers.HealthHandler())

	requireAuth := middleware.RequireAuth(deps.Tokens)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", handlers.RegisterHandler(deps.Auth))
		authGroup.POST("/login", handlers.LoginHandler(deps.Auth))
		authGroup.GET("/getUser", requireAuth, handlers.GetUserHandler(deps.Auth))
		authGroup.DELETE("/delete", requireAuth, handlers.DeleteUserHandler(deps.Auth))
	}

	summaries := api.Group("/summaries", requireAuth)
	{
		summaries.POST("", handlers.CreateSummaryHandler(deps.Summaries))
		summaries.GET("", handlers.ListSummariesHandler(deps.Summaries))
		summaries.POST("/compare", handlers.CompareSummariesHandler(deps.Summaries))
		summaries.GET("/:id", handlers.GetSummaryHandler(deps.Summaries))
		summaries.GET("/:id/html", handlers.GetSummaryHTMLHandler(deps.Summaries))
		summaries.DELETE("/:id", handlers.DeleteSummaryHandler(deps.Summaries))
	}

	return r
}
