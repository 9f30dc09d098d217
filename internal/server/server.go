package server

import (
	"fmt"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/eventsphere/backend/config"
	"github.com/eventsphere/backend/internal/auth"
	"github.com/eventsphere/backend/internal/handlers"
	"github.com/eventsphere/backend/internal/logger"
	"github.com/eventsphere/backend/internal/middleware"
	"github.com/eventsphere/backend/internal/models"
	"github.com/eventsphere/backend/internal/services"
)

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	logger.Configure(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	gin.SetMode(cfg.GinMode)

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
	}))

	tokens := auth.NewTokenService(cfg.TokenConfig())
	setupRoutes(r, db, tokens, services.New(db, cfg.TicketSecret))

	logger.Info().Str("port", cfg.ServerPort).Msg("starting server")
	return r.Run(":" + cfg.ServerPort)
}

func setupRoutes(r *gin.Engine, db *gorm.DB, tokens *auth.TokenService, svc *services.Services) {
	authHandler := handlers.NewAuthHandler(svc.Users, tokens)
	userHandler := handlers.NewUserHandler(svc.Users)
	categoryHandler := handlers.NewCategoryHandler(svc.Categories)
	eventHandler := handlers.NewEventHandler(svc.Events)
	participationHandler := handlers.NewParticipationHandler(svc.Participations)
	subscriptionHandler := handlers.NewSubscriptionHandler(svc.Subscriptions)
	commentHandler := handlers.NewCommentHandler(svc.Comments)
	reviewHandler := handlers.NewReviewHandler(svc.Reviews)
	ticketHandler := handlers.NewTicketHandler(svc.Tickets)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	public := r.Group("/v1")
	{
		public.POST("/auth/register", authHandler.Register)
		public.POST("/auth/login", authHandler.Login)

		public.GET("/categories", categoryHandler.List)
		public.GET("/categories/:id", categoryHandler.Get)

		public.GET("/events", eventHandler.List)
		public.GET("/events/:id", eventHandler.Get)
		public.GET("/events/:id/participations", participationHandler.ListForEvent)
		public.GET("/events/:id/comments", commentHandler.ListForEvent)
		public.GET("/events/:id/reviews", reviewHandler.ListForEvent)

		public.GET("/users/:id/comments", commentHandler.ListForUser)
		public.GET("/users/:id/reviews", reviewHandler.ListForUser)
		public.GET("/users/:id/followers", subscriptionHandler.ListFollowers)
		public.GET("/users/:id/following", subscriptionHandler.ListFollowing)

		public.GET("/comments/:id", commentHandler.Get)
		public.GET("/reviews/:id", reviewHandler.Get)
	}

	protected := r.Group("/v1")
	protected.Use(middleware.JWTAuth(db, tokens))
	{
		protected.GET("/auth/me", authHandler.Me)

		protected.GET("/users/:id", userHandler.Get)
		protected.PUT("/users/:id", userHandler.Update)
		protected.PUT("/users/:id/password", userHandler.ChangePassword)
		protected.DELETE("/users/:id", userHandler.Delete)
		protected.GET("/users/:id/tickets", ticketHandler.ListForUser)

		protected.POST("/events", eventHandler.Create)
		protected.PUT("/events/:id", eventHandler.Update)
		protected.DELETE("/events/:id", eventHandler.Delete)
		protected.PUT("/events/:id/participation", participationHandler.SetStatus)
		protected.GET("/events/:id/tickets", ticketHandler.ListForEvent)

		protected.GET("/participations/me", participationHandler.ListMine)
		protected.DELETE("/participations/:id", participationHandler.Delete)

		protected.POST("/subscriptions", subscriptionHandler.Subscribe)
		protected.DELETE("/subscriptions/:followeeId", subscriptionHandler.Unsubscribe)

		protected.POST("/comments", commentHandler.Create)
		protected.PUT("/comments/:id", commentHandler.Update)
		protected.DELETE("/comments/:id", commentHandler.Delete)

		protected.POST("/reviews", reviewHandler.Create)
		protected.PUT("/reviews/:id", reviewHandler.Update)
		protected.DELETE("/reviews/:id", reviewHandler.Delete)

		protected.POST("/tickets", ticketHandler.Purchase)
		protected.GET("/tickets/:id", ticketHandler.Get)
		protected.DELETE("/tickets/:id", ticketHandler.Delete)
		protected.GET("/tickets/:id/qr", ticketHandler.QRCode)
		protected.POST("/tickets/validate", ticketHandler.Validate)
	}

	admin := r.Group("/v1")
	admin.Use(middleware.JWTAuth(db, tokens), middleware.RequireRoles(models.RoleAdmin))
	{
		admin.GET("/users", userHandler.List)
		admin.POST("/users", userHandler.Create)

		admin.POST("/categories", categoryHandler.Create)
		admin.PUT("/categories/:id", categoryHandler.Update)
		admin.DELETE("/categories/:id", categoryHandler.Delete)

		admin.POST("/comments/as-author", commentHandler.CreateAsAuthor)
		admin.POST("/reviews/as-author", reviewHandler.CreateAsAuthor)
		admin.POST("/tickets/as-user", ticketHandler.IssueForUser)
	}
}
