//go:generate swag init -g main.go -d ./,../../internal/api/handlers,../../internal/models,../../internal/utils/response -o ../../docs

// @title						Online Shop API
// @version					1.0
// @description				Catalog, cart, checkout, orders and reviews.
// @BasePath					/api/v1
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/aaravmahajanofficial/online-shop/docs"
	"github.com/aaravmahajanofficial/online-shop/internal/api/handlers"
	"github.com/aaravmahajanofficial/online-shop/internal/api/middleware"
	"github.com/aaravmahajanofficial/online-shop/internal/cache"
	"github.com/aaravmahajanofficial/online-shop/internal/config"
	"github.com/aaravmahajanofficial/online-shop/internal/health"
	"github.com/aaravmahajanofficial/online-shop/internal/metrics"
	repository "github.com/aaravmahajanofficial/online-shop/internal/repositories"
	service "github.com/aaravmahajanofficial/online-shop/internal/services"
	"github.com/aaravmahajanofficial/online-shop/internal/telemetry"
	"github.com/aaravmahajanofficial/online-shop/internal/utils"
	"github.com/aaravmahajanofficial/online-shop/pkg/sendgrid"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := telemetry.InitTracer(ctx, cfg.Otel)
	if err != nil {
		slog.Error("❌ Error initialising tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := shutdownTracer(flushCtx); err != nil {
			slog.Error("⚠️ Error flushing traces", slog.String("error", err.Error()))
		}
	}()

	// Database setup
	utils.SetDBTimeout(cfg.Database.QueryTimeout)

	repos, err := repository.Open(ctx, cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	// Redis setup
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer redisClient.Close()

	catalogCache := cache.NewRedisCache(redisClient, &cfg.Cache)
	rateLimiter := repository.NewRateLimitRepo(redisClient, cfg.RateConfig)
	emailClient := sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName, cfg.SendGrid.BaseURL)

	catalogService := service.NewCatalogService(repos.Product, repos.Catalog, catalogCache)
	cartService := service.NewCartService(repos.Cart, repos.Product)
	notificationService := service.NewNotificationService(repos.Notification, emailClient)
	orderService := service.NewOrderService(repos.Transactor, repos.Order, repos.Cart, repos.Product, repos.User, notificationService, cfg.Notifications)
	reviewService := service.NewReviewService(repos.Review)
	userService := service.NewUserService(repos.User, repos.Order, rateLimiter, cfg.Security)

	catalogHandler := handlers.NewCatalogHandler(catalogService, cfg.Catalog)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService, cfg.Catalog)
	reviewHandler := handlers.NewReviewHandler(reviewService, cfg.Catalog)
	userHandler := handlers.NewUserHandler(userService)
	notificationHandler := handlers.NewNotificationHandler(notificationService, cfg.Catalog)
	auth := middleware.NewAuthMiddleware([]byte(cfg.Security.JWTKey))

	healthHandler, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("❌ Error creating health checks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()

	// Users
	routerMux.HandleFunc("POST /api/v1/users/register", userHandler.Register())
	routerMux.HandleFunc("POST /api/v1/users/login", userHandler.Login())
	routerMux.HandleFunc("GET /api/v1/profile", auth.Authenticate(userHandler.Profile()))
	routerMux.HandleFunc("PUT /api/v1/profile", auth.Authenticate(userHandler.UpdateProfile()))

	// Catalog
	routerMux.HandleFunc("GET /api/v1/products", catalogHandler.ListProducts())
	routerMux.HandleFunc("GET /api/v1/products/all", catalogHandler.ListAllProducts())
	routerMux.HandleFunc("GET /api/v1/products/{slug}", catalogHandler.GetProduct())
	routerMux.HandleFunc("POST /api/v1/products", auth.RequireStaff(catalogHandler.CreateProduct()))
	routerMux.HandleFunc("PUT /api/v1/products/{slug}", auth.RequireStaff(catalogHandler.UpdateProduct()))
	routerMux.HandleFunc("DELETE /api/v1/products/{slug}", auth.RequireStaff(catalogHandler.DeleteProduct()))
	routerMux.HandleFunc("GET /api/v1/products/{slug}/images", catalogHandler.ListProductImages())
	routerMux.HandleFunc("POST /api/v1/products/{slug}/images", auth.RequireStaff(catalogHandler.AddProductImage()))
	routerMux.HandleFunc("DELETE /api/v1/product-images/{id}", auth.RequireStaff(catalogHandler.DeleteProductImage()))
	routerMux.HandleFunc("GET /api/v1/categories", catalogHandler.ListCategories())
	routerMux.HandleFunc("POST /api/v1/categories", auth.RequireStaff(catalogHandler.CreateCategory()))
	routerMux.HandleFunc("GET /api/v1/brands", catalogHandler.ListBrands())
	routerMux.HandleFunc("POST /api/v1/brands", auth.RequireStaff(catalogHandler.CreateBrand()))
	routerMux.HandleFunc("GET /api/v1/groups", catalogHandler.ListGroups())
	routerMux.HandleFunc("POST /api/v1/groups", auth.RequireStaff(catalogHandler.CreateGroup()))
	routerMux.HandleFunc("POST /api/v1/attribute-groups", auth.RequireStaff(catalogHandler.CreateAttributeGroup()))
	routerMux.HandleFunc("GET /api/v1/attributes", catalogHandler.ListAttributes())
	routerMux.HandleFunc("POST /api/v1/attributes", auth.RequireStaff(catalogHandler.CreateAttribute()))
	routerMux.HandleFunc("GET /api/v1/attribute-values", catalogHandler.ListAttributeValues())
	routerMux.HandleFunc("PUT /api/v1/attribute-values", auth.RequireStaff(catalogHandler.UpsertAttributeValue()))
	routerMux.HandleFunc("DELETE /api/v1/attribute-values/{id}", auth.RequireStaff(catalogHandler.DeleteAttributeValue()))

	// Cart
	routerMux.HandleFunc("GET /api/v1/cart", auth.Authenticate(cartHandler.GetCart()))
	routerMux.HandleFunc("POST /api/v1/cart/items", auth.Authenticate(cartHandler.AddItem()))
	routerMux.HandleFunc("PUT /api/v1/cart/items/{id}", auth.Authenticate(cartHandler.SetQuantity()))
	routerMux.HandleFunc("DELETE /api/v1/cart/items/{id}", auth.Authenticate(cartHandler.RemoveItem()))

	// Orders
	routerMux.HandleFunc("POST /api/v1/orders", auth.Authenticate(orderHandler.Checkout()))
	routerMux.HandleFunc("GET /api/v1/orders", auth.Authenticate(orderHandler.ListOrders()))
	routerMux.HandleFunc("GET /api/v1/orders/{id}", auth.Authenticate(orderHandler.GetOrder()))
	routerMux.HandleFunc("PATCH /api/v1/orders/{id}/status", auth.RequireStaff(orderHandler.UpdateOrderStatus()))

	// Reviews
	routerMux.HandleFunc("GET /api/v1/reviews", reviewHandler.ListReviews())
	routerMux.HandleFunc("GET /api/v1/reviews/{id}", reviewHandler.GetReview())
	routerMux.HandleFunc("POST /api/v1/reviews", auth.Authenticate(reviewHandler.CreateReview()))
	routerMux.HandleFunc("PUT /api/v1/reviews/{id}", auth.Authenticate(reviewHandler.UpdateReview()))
	routerMux.HandleFunc("DELETE /api/v1/reviews/{id}", auth.Authenticate(reviewHandler.DeleteReview()))

	// Notifications
	routerMux.HandleFunc("GET /api/v1/notifications", auth.RequireStaff(notificationHandler.ListNotifications()))
	routerMux.HandleFunc("GET /api/v1/notifications/{id}", auth.RequireStaff(notificationHandler.GetNotification()))
	routerMux.HandleFunc("POST /api/v1/notifications/email", auth.RequireStaff(notificationHandler.SendEmail()))

	// Ops
	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// Middleware chaining, metrics must sit directly on the mux to see the matched pattern
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Recover(handler)
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, cfg.Otel.ServiceName)

	// Setup http server
	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	go func() {
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			slog.Error("❌ Failed to start server", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}
}
