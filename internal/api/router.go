package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vetcard/vetcard-api/internal/api/handler"
	"github.com/vetcard/vetcard-api/internal/api/middleware"
	"github.com/vetcard/vetcard-api/internal/core/domain"
	"github.com/vetcard/vetcard-api/internal/core/ports"
	"github.com/vetcard/vetcard-api/internal/core/service"
	"github.com/vetcard/vetcard-api/internal/infrastructure/config"
	mongodb "github.com/vetcard/vetcard-api/internal/infrastructure/db/mongo"
	redisdb "github.com/vetcard/vetcard-api/internal/infrastructure/db/redis"
	"github.com/vetcard/vetcard-api/pkg/tokens"
)

// Dependencies groups the externally owned resources the router wires
// together. The queue is passed in because its lifecycle (worker goroutines)
// belongs to main, not to the HTTP layer.
type Dependencies struct {
	Config *config.Config
	Mongo  *mongo.Database
	Redis  *redis.Client
	Codec  *tokens.Codec
	Model  ports.ChatModel

	// Queue and Notifications share one store; main owns both so the worker
	// pool can outlive individual requests.
	Queue         ports.NotificationQueue
	Notifications ports.NotificationService

	Logger zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("vetcard"))

	// --- Repositories ---
	authRepo := mongodb.NewAuthRepository(deps.Mongo)
	petRepo := mongodb.NewPetRepository(deps.Mongo)
	catalogRepo := mongodb.NewCatalogRepository(deps.Mongo)
	reminderRepo := mongodb.NewReminderRepository(deps.Mongo)
	articleRepo := mongodb.NewArticleRepository(deps.Mongo)
	appointmentRepo := mongodb.NewAppointmentRepository(deps.Mongo)
	partnerRepo := mongodb.NewPartnerRepository(deps.Mongo)
	adminRepo := mongodb.NewAdminRepository(deps.Mongo)
	replyCache := redisdb.NewReplyCache(deps.Redis)

	// --- Services ---
	authService := service.NewAuthService(authRepo, deps.Codec, deps.Logger)
	petService := service.NewPetService(petRepo, deps.Logger)
	catalogService := service.NewCatalogService(catalogRepo, deps.Logger)
	reminderService := service.NewReminderService(reminderRepo, deps.Logger)
	articleService := service.NewArticleService(articleRepo, deps.Logger)
	appointmentService := service.NewAppointmentService(appointmentRepo, petRepo, authRepo, deps.Queue, deps.Logger)
	partnerService := service.NewPartnerService(partnerRepo, deps.Logger)
	adminService := service.NewAdminService(adminRepo, articleRepo, catalogRepo, deps.Logger)
	assistantService := service.NewAssistantService(deps.Model, replyCache, petRepo, deps.Logger)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	petHandler := handler.NewPetHandler(petService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	reminderHandler := handler.NewReminderHandler(reminderService)
	articleHandler := handler.NewArticleHandler(articleService)
	appointmentHandler := handler.NewAppointmentHandler(appointmentService)
	partnerHandler := handler.NewPartnerHandler(partnerService)
	adminHandler := handler.NewAdminHandler(adminService)
	assistantHandler := handler.NewAssistantHandler(assistantService)
	notificationHandler := handler.NewNotificationHandler(deps.Notifications)
	healthHandler := handler.NewHealthHandler(deps.Mongo, deps.Redis)

	authMiddleware := middleware.Auth(deps.Codec, authRepo)

	// --- Public routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/token", authHandler.Login)
	e.POST("/auth/token/refresh", authHandler.Refresh)

	e.GET("/animal-types", petHandler.AnimalTypes)
	e.GET("/catalog/categories", catalogHandler.Categories)
	e.GET("/catalog/categories/:id", catalogHandler.Category)
	e.GET("/catalog/categories/:id/subcategories", catalogHandler.Subcategories)
	e.GET("/catalog/products", catalogHandler.Browse)
	e.GET("/catalog/products/:id", catalogHandler.Product)
	e.GET("/articles", articleHandler.Published)
	e.GET("/articles/:id", articleHandler.Read)
	e.GET("/partners/:id/schedule", partnerHandler.PublicSchedule)
	e.GET("/partners/:id/location", partnerHandler.PublicLocation)

	// --- Authenticated routes (any role) ---
	authed := e.Group("", authMiddleware)
	authed.GET("/auth/profile", authHandler.GetProfile)
	authed.PUT("/auth/profile", authHandler.UpdateProfile)

	authed.POST("/pets", petHandler.Create)
	authed.GET("/pets", petHandler.List)
	authed.PUT("/pets/:id", petHandler.Update)
	authed.DELETE("/pets/:id", petHandler.Delete)

	authed.POST("/reminders", reminderHandler.Create)
	authed.GET("/reminders", reminderHandler.List)
	authed.PUT("/reminders/:id", reminderHandler.Update)
	authed.DELETE("/reminders/:id", reminderHandler.Delete)

	authed.POST("/appointments", appointmentHandler.Book)
	authed.GET("/appointments", appointmentHandler.Mine)
	authed.POST("/consultations", appointmentHandler.Ask)
	authed.GET("/consultations", appointmentHandler.Consultations)
	authed.PUT("/consultations/:id/close", appointmentHandler.Close)

	authed.POST("/assistant/chat", assistantHandler.Chat)

	authed.GET("/notifications", notificationHandler.List)
	authed.PUT("/notifications/:id/read", notificationHandler.MarkRead)

	// --- Veterinarian routes ---
	vet := e.Group("/vet", authMiddleware, middleware.RequireRole(domain.RoleVeterinarian))
	vet.PUT("/appointments/:id/status", appointmentHandler.SetStatus)
	vet.PUT("/consultations/:id/answer", appointmentHandler.Answer)
	vet.POST("/articles", articleHandler.Create)
	vet.GET("/articles", articleHandler.Mine)
	vet.PUT("/articles/:id", articleHandler.Update)
	vet.POST("/articles/:id/publish", articleHandler.Publish)
	vet.DELETE("/articles/:id", articleHandler.Delete)

	// --- Partner routes ---
	partner := e.Group("/partner", authMiddleware, middleware.RequireRole(domain.RolePartner))
	partner.GET("/products", catalogHandler.Products)
	partner.POST("/products", catalogHandler.CreateProduct)
	partner.PUT("/products/:id", catalogHandler.UpdateProduct)
	partner.DELETE("/products/:id", catalogHandler.DeleteProduct)
	partner.GET("/schedule", partnerHandler.Schedule)
	partner.PUT("/schedule", partnerHandler.SetSchedule)
	partner.GET("/location", partnerHandler.Location)
	partner.PUT("/location", partnerHandler.SetLocation)

	// --- Admin routes ---
	admin := e.Group("/admin", authMiddleware, middleware.RequireRole(domain.RoleAdmin))
	admin.GET("/stats", adminHandler.Stats)
	admin.GET("/users", adminHandler.Users)
	admin.PUT("/users/:id/active", adminHandler.SetActive)
	admin.POST("/catalog/categories", catalogHandler.CreateCategory)
	admin.POST("/catalog/subcategories", catalogHandler.CreateSubcategory)

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Health probes (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)

	return e
}
