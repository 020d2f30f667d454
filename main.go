package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"plant-care-service/chat"
	"plant-care-service/config"
	"plant-care-service/database"
	"plant-care-service/handlers"
	"plant-care-service/httpclient"
	"plant-care-service/identify"
	"plant-care-service/metrics"
	"plant-care-service/middleware"
	"plant-care-service/providers"
	"plant-care-service/providers/plantid"
	"plant-care-service/providers/plantnet"
	"plant-care-service/rabbitmq"
	"plant-care-service/session"
	"plant-care-service/store"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Validate required configuration
	if cfg.PlantIDAPIKey == "" && cfg.PlantNetAPIKey == "" {
		log.Fatal("at least one of PLANT_ID_API_KEY or PLANTNET_API_KEY is required")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET environment variable is required")
	}

	metrics.Register()

	// Initialize database
	db, err := database.NewDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.CreateTables(); err != nil {
		log.Fatalf("Failed to create tables: %v", err)
	}
	if err := db.MigrateTables(); err != nil {
		log.Fatalf("Failed to migrate tables: %v", err)
	}

	// Build the identification chain in configured order, skipping
	// providers without an API key.
	httpClient := httpclient.New(cfg.RequestTimeout)
	plantIDClient := plantid.NewClient(cfg.PlantIDAPIKey, cfg.PlantIDEndpoint, httpClient)
	plantNetClient := plantnet.NewClient(cfg.PlantNetAPIKey, cfg.PlantNetEndpoint, cfg.PlantNetProject, httpClient)

	var chain []providers.Provider
	for _, name := range cfg.ProviderOrder {
		switch name {
		case "plantid":
			if cfg.PlantIDAPIKey != "" {
				chain = append(chain, plantIDClient)
			}
		case "plantnet":
			if cfg.PlantNetAPIKey != "" {
				chain = append(chain, plantNetClient)
			}
		default:
			log.Fatalf("unknown identification provider %q in IDENTIFY_PROVIDER_ORDER", name)
		}
	}
	if len(chain) == 0 {
		log.Fatal("no identification provider has an API key configured")
	}

	var assessor providers.HealthAssessor
	if cfg.PlantIDAPIKey != "" {
		assessor = plantIDClient
	}
	identifySvc := identify.NewService(chain, assessor)

	// Local collections storage
	stores, err := store.NewManager(cfg.CollectionsDir)
	if err != nil {
		log.Fatalf("Failed to initialize collections storage: %v", err)
	}

	sessions := session.NewManager()

	// Optional integrations
	var assistant handlers.AssistantClient
	if cfg.GeminiAPIKey != "" {
		assistant = chat.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.RequestTimeout)
	} else {
		log.Println("GEMINI_API_KEY not set, chat assistant disabled")
	}

	var publisher handlers.EventPublisher
	if cfg.AMQPURL != "" {
		p, err := rabbitmq.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.IdentifiedRoutingKey)
		if err != nil {
			log.Printf("Failed to connect to RabbitMQ, events disabled: %v", err)
		} else {
			defer p.Close()
			publisher = p
		}
	}

	// Initialize handlers
	h := handlers.New(identifySvc, sessions, stores, db, assistant, publisher)

	// Setup HTTP server
	router := gin.Default()
	router.Use(middleware.CORSMiddleware())

	// API routes
	api := router.Group("/api/v3")
	{
		api.GET("/health", h.HealthCheck)
		api.GET("/status", h.Status)
		api.GET("/metrics", gin.WrapH(promhttp.Handler()))

		authed := api.Group("")
		authed.Use(middleware.AuthMiddleware(cfg.JWTSecret))
		{
			authed.POST("/identify", h.Identify)
			authed.POST("/identify/health", h.AssessHealth)

			authed.GET("/session", h.GetSession)
			authed.POST("/session/select", h.SelectPlant)
			authed.POST("/session/capture", h.Capture)
			authed.GET("/session/capture/:slot", h.ConsumeCapture)

			authed.GET("/plants", h.GetPlants)
			authed.GET("/plants/:id", h.GetPlant)
			authed.GET("/categories", h.GetCategories)
			authed.GET("/categories/:slug", h.GetCategory)

			authed.GET("/profile", h.GetProfile)
			authed.PUT("/profile", h.UpdateProfile)
			authed.PUT("/profile/avatar", h.UpdateAvatar)

			authed.GET("/cart", h.GetCart)
			authed.POST("/cart", h.AddToCart)
			authed.PUT("/cart/quantity", h.UpdateCartQuantity)
			authed.DELETE("/cart", h.ClearCart)
			authed.DELETE("/cart/:id", h.RemoveFromCart)

			authed.GET("/myplants", h.GetMyPlants)
			authed.POST("/myplants", h.AddMyPlant)
			authed.DELETE("/myplants/:id", h.RemoveMyPlant)
			authed.PUT("/myplants/:id", h.UpdateMyPlant)
			authed.POST("/myplants/:id/water", h.WaterMyPlant)
			authed.POST("/myplants/:id/light", h.CycleMyPlantLight)
			authed.POST("/myplants/:id/humidity", h.CycleMyPlantHumidity)

			authed.POST("/chat", h.Chat)
			authed.GET("/chat/:session_id", h.GetChatHistory)
			authed.DELETE("/chat/:session_id", h.DeleteChatSession)
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Create a deadline for server shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
