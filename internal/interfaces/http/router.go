// Package http wires repositories, use cases, and handlers into the gin
// engine.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	catalogUC "gately/internal/application/catalog/usecases"
	checkoutUC "gately/internal/application/checkout/usecases"
	ordersUC "gately/internal/application/orders/usecases"
	ticketingUC "gately/internal/application/ticketing/usecases"
	"gately/internal/infrastructure/auth"
	"gately/internal/infrastructure/config"
	"gately/internal/infrastructure/email"
	"gately/internal/infrastructure/ratelimit"
	"gately/internal/infrastructure/repository"
	catalogHandler "gately/internal/interfaces/http/handlers/catalog"
	checkoutHandler "gately/internal/interfaces/http/handlers/checkout"
	ordersHandler "gately/internal/interfaces/http/handlers/orders"
	ticketingHandler "gately/internal/interfaces/http/handlers/ticketing"
	"gately/internal/interfaces/http/middleware"
	"gately/internal/shared/db"
	"gately/internal/shared/logger"
	"gately/internal/shared/services/markdown"
)

// Router represents the HTTP router configuration
type Router struct {
	engine          *gin.Engine
	cfg             *config.Config
	eventHandler    *catalogHandler.EventHandler
	checkoutHandler *checkoutHandler.CheckoutHandler
	orderHandler    *ordersHandler.OrderHandler
	ticketHandler   *ticketingHandler.TicketHandler
	authMiddleware  *middleware.AuthMiddleware
	checkoutLimiter ratelimit.RateLimiter
	logger          logger.Interface
}

// NewRouter creates a new HTTP router with all dependencies
func NewRouter(gdb *gorm.DB, cfg *config.Config, log logger.Interface) *Router {
	engine := gin.New()

	eventRepo := repository.NewEventRepository(gdb, log)
	ticketTypeRepo := repository.NewTicketTypeRepository(gdb, log)
	discountRepo := repository.NewDiscountCodeRepository(gdb, log)
	orderRepo := repository.NewOrderRepository(gdb, log)
	ticketRepo := repository.NewTicketRepository(gdb, log)

	txManager := db.NewTransactionManager(gdb)
	signer := auth.NewHMACCredentialSigner(cfg.Ticketing.QRSecret)
	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)
	renderer := markdown.NewMarkdownService()

	var notifier email.OrderNotifier
	if cfg.Email.Enabled {
		notifier = email.NewSMTPOrderNotifier(&cfg.Email, log)
	} else {
		notifier = email.NewNoopOrderNotifier()
	}

	var checkoutLimiter ratelimit.RateLimiter
	if cfg.RateLimit.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.GetAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		checkoutLimiter = ratelimit.NewRedisRateLimiter(redisClient, cfg.RateLimit.CheckoutPerMinute)
	} else {
		checkoutLimiter = ratelimit.NewNoopRateLimiter()
	}

	listEvents := catalogUC.NewListEventsUseCase(eventRepo, log)
	getEvent := catalogUC.NewGetEventUseCase(eventRepo, ticketTypeRepo, renderer, log)
	checkout := checkoutUC.NewCheckoutUseCase(
		eventRepo, ticketTypeRepo, discountRepo, orderRepo, ticketRepo,
		signer, txManager, notifier, cfg.Ticketing, log,
	)
	validateDiscount := checkoutUC.NewValidateDiscountUseCase(discountRepo, log)
	getOrder := ordersUC.NewGetOrderUseCase(orderRepo, ticketRepo, log)
	listOrders := ordersUC.NewListBuyerOrdersUseCase(orderRepo, log)
	staffSearch := ordersUC.NewStaffSearchOrderUseCase(orderRepo, ticketRepo, log)
	checkIn := ticketingUC.NewCheckInUseCase(ticketRepo, orderRepo, eventRepo, signer, log)
	cancelTicket := ticketingUC.NewCancelTicketUseCase(
		ticketRepo, orderRepo, eventRepo, ticketTypeRepo,
		txManager, notifier, cfg.Ticketing, log,
	)

	return &Router{
		engine:          engine,
		cfg:             cfg,
		eventHandler:    catalogHandler.NewEventHandler(listEvents, getEvent),
		checkoutHandler: checkoutHandler.NewCheckoutHandler(checkout, validateDiscount),
		orderHandler:    ordersHandler.NewOrderHandler(getOrder, listOrders, staffSearch),
		ticketHandler:   ticketingHandler.NewTicketHandler(checkIn, cancelTicket),
		authMiddleware:  middleware.NewAuthMiddleware(jwtService, log),
		checkoutLimiter: checkoutLimiter,
		logger:          log,
	}
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))

	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	events := r.engine.Group("/events")
	{
		events.GET("", r.eventHandler.ListEvents)
		events.GET("/:slug", r.eventHandler.GetEvent)
	}

	checkout := r.engine.Group("/checkout")
	checkout.Use(r.authMiddleware.OptionalAuth())
	{
		checkout.POST("", middleware.CheckoutRateLimit(r.checkoutLimiter, r.logger), r.checkoutHandler.Checkout)
		checkout.POST("/validate-discount", r.checkoutHandler.ValidateDiscount)
	}

	orders := r.engine.Group("/orders")
	orders.Use(r.authMiddleware.RequireAuth())
	{
		orders.GET("", r.orderHandler.ListMyOrders)
		orders.GET("/:id", r.orderHandler.GetOrder)
	}

	tickets := r.engine.Group("/tickets")
	tickets.Use(r.authMiddleware.RequireAuth())
	{
		tickets.POST("/:id/cancel", r.ticketHandler.CancelTicket)
	}

	staff := r.engine.Group("/staff")
	staff.Use(r.authMiddleware.RequireAuth(), r.authMiddleware.RequireStaff())
	{
		staff.POST("/check-in", r.ticketHandler.CheckIn)
		staff.GET("/orders/:code", r.orderHandler.StaffSearchOrder)
	}
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// Run starts the HTTP server
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}
