package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/inkwell/publishing-platform/internal/api/handler"
	"github.com/inkwell/publishing-platform/internal/api/middleware"
	"github.com/inkwell/publishing-platform/internal/core/ports"
	"github.com/inkwell/publishing-platform/internal/core/service"
	mongodb "github.com/inkwell/publishing-platform/internal/infrastructure/db/mongo"
)

// Dependencies carries everything the router needs that is owned by the
// process: connections, the identity client factory, and the fanout queue.
type Dependencies struct {
	Mongo    *mongo.Database
	Redis    *redis.Client
	Identity ports.IdentityClientFactory
	Storage  ports.StorageSigner
	Queue    ports.PublishQueue
	Log      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("publishing"))

	// --- Repositories ---
	profileRepo := mongodb.NewProfileRepository(deps.Mongo)
	articleRepo := mongodb.NewArticleRepository(deps.Mongo)
	subscriptionRepo := mongodb.NewSubscriptionRepository(deps.Mongo)
	notificationRepo := mongodb.NewNotificationRepository(deps.Mongo)

	// --- Services ---
	authz := service.NewAuthz(profileRepo, deps.Log)
	resolver := service.NewSessionResolver(deps.Log)
	articleService := service.NewArticleService(articleRepo, profileRepo, authz, deps.Queue, deps.Log)
	subscriptionService := service.NewSubscriptionService(subscriptionRepo, deps.Log)
	profileService := service.NewProfileService(profileRepo, articleRepo, subscriptionRepo, authz, deps.Log)

	// --- Handlers ---
	articleHandler := handler.NewArticleHandler(articleService)
	adminHandler := handler.NewAdminHandler(articleService, profileService)
	subscriptionHandler := handler.NewSubscriptionHandler(subscriptionService)
	profileHandler := handler.NewProfileHandler(profileService)
	authHandler := handler.NewAuthHandler(deps.Log)
	storageHandler := handler.NewStorageHandler(deps.Storage, deps.Log)
	notificationHandler := handler.NewNotificationHandler(notificationRepo)

	// --- Request pipeline: resolve identity once, then gate by route class ---
	e.Use(middleware.Session(deps.Identity, resolver, profileRepo, deps.Log))
	e.Use(middleware.Guard())

	// --- Public routes ---
	e.GET("/articles", articleHandler.ListPublic)
	e.GET("/articles/:id", articleHandler.Get)
	e.GET("/authors", profileHandler.ListAuthors)
	e.GET("/authors/:id", profileHandler.GetAuthor)
	e.GET("/confirm", authHandler.Confirm)

	// --- Session-holding routes ---
	e.POST("/signout", authHandler.SignOut)
	e.GET("/user/profile", profileHandler.Get)
	e.PUT("/user/profile", profileHandler.Update)
	e.GET("/user/articles", articleHandler.ListOwn)
	e.POST("/user/articles", articleHandler.Create)
	e.GET("/admin/articles", adminHandler.ListArticles)
	e.GET("/admin/users", adminHandler.ListUsers)

	// --- JSON API routes (401 instead of redirect for anonymous callers) ---
	e.POST("/api/admin/articles/:id/publish", adminHandler.TogglePublish)
	e.POST("/api/admin/users/:id/role", adminHandler.AssignRole)
	e.POST("/api/subscription", subscriptionHandler.Subscribe)
	e.DELETE("/api/subscription", subscriptionHandler.Unsubscribe)
	e.GET("/api/subscription", subscriptionHandler.Status)
	e.GET("/api/notifications", notificationHandler.List)
	e.POST("/api/storage/sign", storageHandler.Sign)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis, deps.Identity)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
