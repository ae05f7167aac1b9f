package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	database "github.com/Abhin-Krishna-MP/CakeFarm/config"
	controller "github.com/Abhin-Krishna-MP/CakeFarm/controllers"
	middleware "github.com/Abhin-Krishna-MP/CakeFarm/middlewares"
	"github.com/Abhin-Krishna-MP/CakeFarm/realtime"
	"github.com/Abhin-Krishna-MP/CakeFarm/routes"
	"github.com/Abhin-Krishna-MP/CakeFarm/services"
	"github.com/Abhin-Krishna-MP/CakeFarm/store"
)

// LoadEnv loads environment variables from the .env file
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
}

func main() {
	// Load environment variables
	LoadEnv()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	client, err := database.Connect(context.Background())
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	defer client.Disconnect(context.Background())

	db := database.OpenDatabase(client)

	// Real-time fan-out hub
	hub := realtime.NewHub()
	go hub.Run()

	// Stores
	orderStore := store.NewOrderStore(db)
	productStore := store.NewProductStore(db)
	userStore := store.NewUserStore(db)
	lunchStore := store.NewLunchStore(db)
	categoryStore := store.NewCategoryStore(db)

	expiryDays, err := strconv.Atoi(os.Getenv("ORDER_EXPIRY_DAYS"))
	if err != nil || expiryDays < 1 {
		expiryDays = 1
	}

	// Services
	lunchService := services.NewLunchService(lunchStore)
	orderService := services.NewOrderService(orderStore, productStore, userStore, lunchService, hub, expiryDays)

	// Controllers
	orderController := controller.NewOrderController(orderService)
	lunchController := controller.NewLunchController(lunchService, productStore)
	productController := controller.NewProductController(productStore)
	categoryController := controller.NewCategoryController(categoryStore)
	userController := controller.NewUserController(userStore)

	router := mux.NewRouter()
	api := router.PathPrefix("/api/v1").Subrouter()

	// Push channel: every connected socket receives every lifecycle event
	api.HandleFunc("/ws", hub.ServeWS)

	// Public routes (no authentication)
	routes.UserPublicRoutes(api, userController)
	routes.OrderPublicRoutes(api, orderController)
	routes.LunchPublicRoutes(api, lunchController)
	routes.ProductPublicRoutes(api, productController)
	routes.CategoryPublicRoutes(api, categoryController)

	// Admin routes. Registered before the catch-all authenticated subrouter:
	// mux subrouters do not backtrack once a prefix matches.
	adminRoutes := api.PathPrefix("/admin").Subrouter()
	adminRoutes.Use(middleware.Authentication, middleware.AdminOnly)
	routes.OrderAdminRoutes(adminRoutes, orderController)
	routes.LunchAdminRoutes(adminRoutes, lunchController)
	routes.ProductAdminRoutes(adminRoutes, productController)
	routes.CategoryAdminRoutes(adminRoutes, categoryController)

	// Authenticated user routes
	securedRoutes := api.PathPrefix("/").Subrouter()
	securedRoutes.Use(middleware.Authentication)
	routes.UserProtectedRoutes(securedRoutes, userController)
	routes.OrderUserRoutes(securedRoutes, orderController)

	corsOrigin := os.Getenv("CORS_ORIGIN")
	if corsOrigin == "" {
		corsOrigin = "*"
	}
	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{corsOrigin}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
	)

	log.Printf("Server running on port %s", port)
	if err := http.ListenAndServe(":"+port, handlers.LoggingHandler(os.Stdout, cors(router))); err != nil {
		log.Fatal(err)
	}
}
