package routes

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/bulanstore/bulan-api/app/configs"
	"github.com/bulanstore/bulan-api/app/handlers"
	"github.com/bulanstore/bulan-api/app/metrics"
	"github.com/bulanstore/bulan-api/app/middlewares"
	"github.com/bulanstore/bulan-api/app/repositories"
	"github.com/bulanstore/bulan-api/app/services"
	"github.com/bulanstore/bulan-api/app/utils/renderer"
	"github.com/bulanstore/bulan-api/app/utils/token"
)

// NewRouter wires repositories, services and handlers onto the HTTP surface.
func NewRouter(db *gorm.DB, redisClient *redis.Client) *mux.Router {
	env := configs.LoadENV

	r := renderer.New()
	validate := validator.New()

	userRepo := repositories.NewUserRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	productRepo := repositories.NewProductRepository(db)
	cartRepo := repositories.NewCartRepository(db)
	cartItemRepo := repositories.NewCartItemRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	addressRepo := repositories.NewAddressRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)

	jwtUtil := token.NewJWTUtil(token.Config{
		SigningKey:    env.JWTSecret,
		AccessExpiry:  env.AccessTokenExpiry(),
		RefreshExpiry: env.RefreshTokenExpiry(),
	})
	blocklist := services.NewTokenBlocklist(redisClient)
	mailer := newMailer(env)

	authService := services.NewAuthService(userRepo, jwtUtil, blocklist, mailer, env.AppURL)
	userService := services.NewUserService(userRepo)
	categoryService := services.NewCategoryService(categoryRepo)
	productService := services.NewProductService(productRepo, categoryRepo)
	cartService := services.NewCartService(cartRepo, cartItemRepo, productRepo)
	paymentService := services.NewPaymentService(
		configs.NewSnapClient(), orderRepo, env.MidtransServerKey, env.AppURL)
	orderService := services.NewOrderService(orderRepo, cartRepo, addressRepo, userRepo, paymentService, mailer)
	addressService := services.NewAddressService(addressRepo)
	reviewService := services.NewReviewService(reviewRepo, productRepo)

	authHandler := handlers.NewAuthHandler(r, validate, authService)
	userHandler := handlers.NewUserHandler(r, validate, userService)
	addressHandler := handlers.NewAddressHandler(r, validate, addressService)
	categoryHandler := handlers.NewCategoryHandler(r, validate, categoryService)
	productHandler := handlers.NewProductHandler(r, validate, productService)
	cartHandler := handlers.NewCartHandler(r, validate, cartService)
	orderHandler := handlers.NewOrderHandler(r, validate, orderService, paymentService)
	reviewHandler := handlers.NewReviewHandler(r, validate, reviewService)
	healthHandler := handlers.NewHealthHandler(r, db, redisClient, env.AppName, env.AppEnv)

	authMW := middlewares.NewAuthMiddleware(jwtUtil, blocklist, userRepo, r)
	adminMW := middlewares.RequireAdmin(r)
	httpMetrics := metrics.NewHTTPMetrics(env.AppName)

	router := mux.NewRouter()
	router.Use(middlewares.RequestLogger)
	router.Use(httpMetrics.Middleware)

	router.HandleFunc("/healthz", healthHandler.Healthz).Methods(http.MethodGet)
	router.HandleFunc("/meta", healthHandler.Meta).Methods(http.MethodGet)
	router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()

	// public
	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", authHandler.Refresh).Methods(http.MethodPost)
	api.HandleFunc("/auth/verify", authHandler.VerifyEmail).Methods(http.MethodGet)

	api.HandleFunc("/categories", categoryHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/categories/{id}", categoryHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/products", productHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/products/slug/{slug}", productHandler.GetBySlug).Methods(http.MethodGet)
	api.HandleFunc("/products/{id}", productHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/products/{productID}/reviews", reviewHandler.ListByProduct).Methods(http.MethodGet)

	api.HandleFunc("/payments/midtrans/notification", orderHandler.PaymentNotification).Methods(http.MethodPost)

	// authenticated
	private := api.NewRoute().Subrouter()
	private.Use(authMW.Authenticate)

	private.HandleFunc("/auth/logout", authHandler.Logout).Methods(http.MethodPost)
	private.HandleFunc("/auth/change-password", authHandler.ChangePassword).Methods(http.MethodPost)

	private.HandleFunc("/users/me", userHandler.Me).Methods(http.MethodGet)
	private.HandleFunc("/users/me", userHandler.UpdateMe).Methods(http.MethodPatch)

	private.HandleFunc("/addresses", addressHandler.Create).Methods(http.MethodPost)
	private.HandleFunc("/addresses", addressHandler.List).Methods(http.MethodGet)
	private.HandleFunc("/addresses/{id}", addressHandler.Get).Methods(http.MethodGet)
	private.HandleFunc("/addresses/{id}", addressHandler.Update).Methods(http.MethodPut)
	private.HandleFunc("/addresses/{id}", addressHandler.Delete).Methods(http.MethodDelete)

	private.HandleFunc("/cart", cartHandler.Get).Methods(http.MethodGet)
	private.HandleFunc("/cart", cartHandler.Clear).Methods(http.MethodDelete)
	private.HandleFunc("/cart/items", cartHandler.AddItem).Methods(http.MethodPost)
	private.HandleFunc("/cart/items/{itemID}", cartHandler.UpdateItem).Methods(http.MethodPatch)
	private.HandleFunc("/cart/items/{itemID}", cartHandler.RemoveItem).Methods(http.MethodDelete)

	private.HandleFunc("/orders/checkout", orderHandler.Checkout).Methods(http.MethodPost)
	private.HandleFunc("/orders", orderHandler.List).Methods(http.MethodGet)
	private.HandleFunc("/orders/{id}", orderHandler.Get).Methods(http.MethodGet)

	private.HandleFunc("/products/{productID}/reviews", reviewHandler.Create).Methods(http.MethodPost)
	private.HandleFunc("/reviews/{id}", reviewHandler.Update).Methods(http.MethodPatch)
	private.HandleFunc("/reviews/{id}", reviewHandler.Delete).Methods(http.MethodDelete)

	// admin
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(authMW.Authenticate, adminMW)

	admin.HandleFunc("/users", userHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id}", userHandler.Get).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id}", userHandler.Deactivate).Methods(http.MethodDelete)

	admin.HandleFunc("/categories", categoryHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/categories/{id}", categoryHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/categories/{id}", categoryHandler.Delete).Methods(http.MethodDelete)

	admin.HandleFunc("/products", productHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/products/{id}", productHandler.Update).Methods(http.MethodPatch)
	admin.HandleFunc("/products/{id}", productHandler.Delete).Methods(http.MethodDelete)

	admin.HandleFunc("/orders/{id}/status", orderHandler.UpdateStatus).Methods(http.MethodPatch)

	return router
}

func newMailer(env configs.ENV) services.EmailSender {
	if env.EmailHost == "" {
		return nil
	}
	return services.NewMailer(services.MailerConfig{
		Host:     env.EmailHost,
		Port:     env.EmailPort,
		Username: env.EmailUsername,
		Password: env.EmailPassword,
		From:     env.EmailFrom,
	})
}
