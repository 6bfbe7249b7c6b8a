package router

import (
	"time"

	"github.com/JerryLinyx/MarketDigest/controllers"
	"github.com/JerryLinyx/MarketDigest/middlewares"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Health *controllers.HealthController
	News   *controllers.NewsController
	Email  *controllers.EmailController
	Digest *controllers.DigestController
	Auth   *controllers.AuthController
}

type Options struct {
	AllowedOrigins []string
	JWTSecret      string
}

func InitRouter(h Handlers, opts Options) *gin.Engine {
	r := gin.Default()

	allowedOrigins := opts.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	allowCreds := true
	if len(allowedOrigins) == 1 && allowedOrigins[0] == "*" {
		allowCreds = false
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCreds,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/", controllers.Root)
	r.GET("/test", controllers.Test)
	r.GET("/api/health", h.Health.Health)

	r.POST("/send-email", h.Email.SendEmail)

	api := r.Group("/api")
	{
		api.GET("/market-trends", h.News.MarketTrends)
		api.GET("/news", h.News.GetNews)
	}

	users := r.Group("/api/users")
	{
		users.POST("/register", h.Auth.Register)
		users.POST("/login", h.Auth.Login)
	}

	digest := r.Group("/api/digest")
	digest.Use(middlewares.AuthMiddleware(opts.JWTSecret))
	{
		digest.POST("/broadcast", h.Digest.Broadcast)
	}

	return r
}
