package routes

import (
	"time"

	"syndiceasy/internal/adapters/http/handlers"
	"syndiceasy/internal/adapters/http/middleware"
	"syndiceasy/internal/adapters/persistence/repositories"
	"syndiceasy/internal/adapters/ws"
	"syndiceasy/internal/config"
	"syndiceasy/internal/core/event"
	"syndiceasy/internal/core/feed"
	"syndiceasy/internal/core/navigation"
	"syndiceasy/internal/core/services"
	"syndiceasy/internal/core/session"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	fiberws "github.com/gofiber/websocket/v2"
	"gorm.io/gorm"
)

// App bundles the long-lived components handed back to main for
// lifecycle management.
type App struct {
	Hub           *ws.Hub
	Cron          *services.CronService
	Notifications *services.NotificationService
	Sessions      *session.Store
}

// Setup wires repositories, services and handlers, and registers every
// route. Returns the components main must start and stop.
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) *App {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	resetRepo := repositories.NewPasswordResetRepository(db)
	stateRepo := repositories.NewStateRepository(db)
	buildingRepo := repositories.NewBuildingRepository(db)
	reclamationRepo := repositories.NewReclamationRepository(db)
	caisseRepo := repositories.NewCaisseRepository(db)
	eventRepo := repositories.NewEventRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)

	// Event bus and websocket hub
	bus := event.NewBus()
	hub := ws.NewHub(bus)

	// Session store, hydrated from persisted state
	sessions := session.NewStore(services.NewSessionPersistence(stateRepo))

	// Route table and guard
	table := navigation.DefaultTable()
	guard := navigation.NewGuard(table)

	// Initialize services
	notificationService := services.NewNotificationService(
		notificationRepo, bus, hub, cfg.Notification.ReadTTL, feed.SystemClock())
	authService := services.NewAuthService(userRepo, refreshTokenRepo, resetRepo, sessions, notificationService, cfg)
	shellService := services.NewShellService(authService, notificationService, guard)
	userService := services.NewUserService(userRepo, buildingRepo, refreshTokenRepo)
	buildingService := services.NewBuildingService(buildingRepo, userRepo)
	reclamationService := services.NewReclamationService(reclamationRepo, buildingRepo, notificationService)
	caisseService := services.NewCaisseService(caisseRepo, buildingRepo, notificationService)
	eventService := services.NewEventService(eventRepo, buildingRepo, userRepo, notificationService)
	dashboardService := services.NewDashboardService(userRepo, buildingRepo, reclamationRepo, caisseRepo, eventRepo)
	cronService := services.NewCronService(refreshTokenRepo, resetRepo, notificationRepo, eventService)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	shellHandler := handlers.NewShellHandler(shellService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	userHandler := handlers.NewUserHandler(userService)
	buildingHandler := handlers.NewBuildingHandler(buildingService)
	reclamationHandler := handlers.NewReclamationHandler(reclamationService)
	caisseHandler := handlers.NewCaisseHandler(caisseService)
	eventHandler := handlers.NewEventHandler(eventService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Health check
	app.Get("/health", healthHandler.Check)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")

	// Auth routes (public, rate limited, never cached)
	authRoutes := apiV1.Group("/auth", middleware.NoCacheHeaders())
	authRoutes.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	authRoutes.Get("/refresh", middleware.AuthRateLimiter(), authHandler.Refresh)
	authRoutes.Post("/logout", authHandler.Logout)
	authRoutes.Post("/forgot-password", middleware.StrictRateLimiter(), authHandler.ForgotPassword)
	authRoutes.Post("/reset-password", middleware.StrictRateLimiter(), authHandler.ResetPassword)
	authRoutes.Get("/me", middleware.AuthMiddleware(cfg), authHandler.Me)
	authRoutes.Post("/logout-all", middleware.AuthMiddleware(cfg), authHandler.LogoutAll)

	// Shell routes: bootstrap is public (it resolves the session itself),
	// menu needs an authenticated caller
	shellRoutes := apiV1.Group("/shell")
	shellRoutes.Get("/", shellHandler.Bootstrap)
	shellRoutes.Get("/navigate", shellHandler.Navigate)
	shellRoutes.Get("/menu", middleware.AuthMiddleware(cfg), middleware.PrivateCacheHeaders(30*time.Second), shellHandler.Menu)

	// Notification routes (authenticated users)
	notificationRoutes := apiV1.Group("/notifications", middleware.AuthMiddleware(cfg))
	notificationRoutes.Get("/", notificationHandler.List)
	notificationRoutes.Get("/unread", notificationHandler.UnreadCount)
	notificationRoutes.Post("/read", notificationHandler.MarkAllRead)

	// User management routes (Admin only)
	userRoutes := apiV1.Group("/users", middleware.AuthMiddleware(cfg))
	userRoutes.Put("/me/password", userHandler.ChangePassword)
	userRoutes.Get("/", middleware.AdminOnly(), userHandler.List)
	userRoutes.Post("/", middleware.AdminOnly(), userHandler.Create)
	userRoutes.Get("/:id", middleware.AdminOnly(), userHandler.Get)
	userRoutes.Put("/:id", middleware.AdminOnly(), userHandler.Update)
	userRoutes.Delete("/:id", middleware.AdminOnly(), userHandler.Delete)

	// Building routes (reads for staff, writes for Admin)
	buildingRoutes := apiV1.Group("/buildings", middleware.AuthMiddleware(cfg))
	buildingRoutes.Get("/", buildingHandler.List)
	buildingRoutes.Get("/:id", buildingHandler.Get)
	buildingRoutes.Get("/:id/apartments", buildingHandler.ListApartments)
	buildingRoutes.Post("/", middleware.AdminOnly(), buildingHandler.Create)
	buildingRoutes.Put("/:id", middleware.AdminOnly(), buildingHandler.Update)
	buildingRoutes.Delete("/:id", middleware.AdminOnly(), buildingHandler.Delete)
	buildingRoutes.Post("/:id/apartments", middleware.AdminOnly(), buildingHandler.CreateApartment)

	apartmentRoutes := apiV1.Group("/apartments", middleware.AuthMiddleware(cfg), middleware.AdminOnly())
	apartmentRoutes.Put("/:id/resident", buildingHandler.AssignResident)
	apartmentRoutes.Delete("/:id", buildingHandler.DeleteApartment)

	// Reclamation routes
	reclamationRoutes := apiV1.Group("/reclamations", middleware.AuthMiddleware(cfg))
	reclamationRoutes.Post("/", middleware.ResidentOnly(), reclamationHandler.Create)
	reclamationRoutes.Get("/mine", middleware.ResidentOnly(), reclamationHandler.ListMine)
	reclamationRoutes.Get("/", middleware.SyndicOrAdmin(), reclamationHandler.List)
	reclamationRoutes.Get("/:id", reclamationHandler.Get)
	reclamationRoutes.Put("/:id/status", middleware.SyndicOrAdmin(), reclamationHandler.UpdateStatus)

	// Caisse routes (Admin and Syndic)
	caisseRoutes := apiV1.Group("/caisses", middleware.AuthMiddleware(cfg), middleware.SyndicOrAdmin())
	caisseRoutes.Get("/", caisseHandler.List)
	caisseRoutes.Post("/", middleware.AdminOnly(), caisseHandler.Create)
	caisseRoutes.Get("/:id", caisseHandler.Get)
	caisseRoutes.Post("/:id/transactions", caisseHandler.AddTransaction)
	caisseRoutes.Get("/:id/transactions", caisseHandler.ListTransactions)

	// Event routes (reads for everyone logged in, writes for Syndic/Admin)
	eventRoutes := apiV1.Group("/events", middleware.AuthMiddleware(cfg))
	eventRoutes.Get("/", eventHandler.List)
	eventRoutes.Get("/planning", middleware.StaffOnly(), eventHandler.Planning)
	eventRoutes.Get("/:id", eventHandler.Get)
	eventRoutes.Post("/", middleware.SyndicOrAdmin(), eventHandler.Create)
	eventRoutes.Put("/:id", middleware.SyndicOrAdmin(), eventHandler.Update)
	eventRoutes.Delete("/:id", middleware.SyndicOrAdmin(), eventHandler.Delete)

	// Dashboard routes
	dashboardRoutes := apiV1.Group("/dashboard", middleware.AuthMiddleware(cfg))
	dashboardRoutes.Get("/", middleware.AdminOnly(), dashboardHandler.Stats)
	dashboardRoutes.Get("/syndic", middleware.SyndicOrAdmin(), dashboardHandler.SyndicStats)

	// Websocket: live notification push, one room per user
	app.Use("/ws", middleware.AuthMiddleware(cfg), func(c *fiber.Ctx) error {
		if fiberws.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/notifications", fiberws.New(hub.Handler()))

	return &App{
		Hub:           hub,
		Cron:          cronService,
		Notifications: notificationService,
		Sessions:      sessions,
	}
}
