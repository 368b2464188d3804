package routes

import (
	"net/http"

	_ "friend-service/docs"
	"friend-service/internal/api/handlers"
	"friend-service/internal/api/middleware"
	"friend-service/internal/config"
	"friend-service/internal/repository"
	"friend-service/internal/services"
	"friend-service/internal/websocket"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

type Router struct {
	engine        *gin.Engine
	cfg           *config.Config
	wsHandler     *handlers.WSHandler
	authHandler   *handlers.AuthHandler
	userHandler   *handlers.UserHandler
	friendHandler *handlers.FriendHandler
	rateLimitMW   *middleware.RateLimitMiddleware
	authMW        *middleware.AuthMiddleware
}

// NewRouter wires repositories, services and handlers. publisher receives
// every friend request event; pass redisService itself when nothing else
// consumes them.
func NewRouter(
	cfg *config.Config,
	db *gorm.DB,
	redisService *services.RedisService,
	hub *websocket.Hub,
	publisher services.EventPublisher,
) *Router {
	gin.SetMode(cfg.Server.Mode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	engine.Use(middleware.LogApi())

	userRepo := repository.NewUserRepository(db)
	friendRepo := repository.NewFriendRepository(db, cfg.Database.Driver == "postgres" && cfg.Database.Serializable)
	sessionRepo := repository.NewSessionRepository(redisService.Client())

	userService := services.NewUserService(userRepo, sessionRepo, cfg.JWT.Secret, cfg.JWT.ExpirationTime, cfg.Friends.SearchLimit)
	friendService := services.NewFriendService(friendRepo, userRepo, publisher, cfg.Friends.RequestLimit, cfg.Friends.RequestWindow)

	return &Router{
		engine:        engine,
		cfg:           cfg,
		wsHandler:     handlers.NewWSHandler(hub, cfg.Server.AllowedOrigins),
		authHandler:   handlers.NewAuthHandler(userService),
		userHandler:   handlers.NewUserHandler(userService),
		friendHandler: handlers.NewFriendHandler(friendService),
		rateLimitMW:   middleware.NewRateLimitMiddleware(redisService),
		authMW:        middleware.NewAuthMiddleware(userService),
	}
}

func (r *Router) SetupRoutes() {
	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	})
	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public routes, limited per client IP
	public := r.engine.Group("/")
	public.Use(r.rateLimitMW.RateLimitIP(r.cfg.RateLimit.AuthRequests, r.cfg.RateLimit.AuthWindow))
	{
		public.POST("/signup/", r.authHandler.Signup)
		public.POST("/login/", r.authHandler.Login)
	}

	// Browsers cannot set headers on a WebSocket handshake
	r.engine.GET("/ws/notifications", r.authMW.RequireAuthOrQuery(), r.wsHandler.HandleWebSocket)

	auth := r.engine.Group("/")
	auth.Use(r.authMW.RequireAuth())
	{
		auth.POST("/logout/", r.authHandler.Logout)
		auth.GET("/search/", r.userHandler.Search)
		auth.GET("/friends/", r.friendHandler.Friends)
		auth.GET("/pending-requests/", r.friendHandler.Pending)

		requests := auth.Group("/friend-requests")
		{
			requests.GET("/", r.friendHandler.ListReceived)
			requests.POST("/send/", r.friendHandler.Send)
			requests.GET("/:id/", r.friendHandler.GetReceived)
			requests.POST("/:id/accept/", r.friendHandler.Accept)
			requests.POST("/:id/reject/", r.friendHandler.Reject)
		}
	}
}

func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
