package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/puntoventa/backend/config"
	httpDelivery "github.com/puntoventa/backend/internal/delivery/http"
	"github.com/puntoventa/backend/internal/infrastructure/extract"
	"github.com/puntoventa/backend/internal/infrastructure/llm"
	mysqlstore "github.com/puntoventa/backend/internal/infrastructure/mysql"
	"github.com/puntoventa/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting PuntoVenta Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// Open the database connection pool
	db, err := sql.Open("mysql", cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to reach database: %v", err)
	}
	defer db.Close()

	store := mysqlstore.NewStore(db)

	// Model backend client
	modelClient := llm.NewClient(llm.Config{
		BaseURL:       cfg.Model.BaseURL,
		APIKey:        cfg.Model.APIKey,
		Model:         cfg.Model.Name,
		Temperature:   cfg.Model.Temperature,
		MaxTokens:     cfg.Model.MaxTokens,
		TopP:          cfg.Model.TopP,
		TopK:          cfg.Model.TopK,
		RepeatPenalty: cfg.Model.RepeatPenalty,
		StopSequences: cfg.Model.StopSequences,
		Timeout:       cfg.Model.Timeout,
	})

	// Enable debug mode in development environment
	debug := cfg.Server.Environment == "development"
	if debug {
		modelClient.SetDebug(true)
		log.Printf("Model client debug mode enabled")
	}

	log.Printf("Model backend: %s (model: %s, timeout: %s)",
		cfg.Model.BaseURL, cfg.Model.Name, cfg.Model.Timeout)

	// Initialize usecase layer
	interpreterService := usecase.NewInterpreterService(
		modelClient,
		extract.NewExtractor(),
		usecase.InterpreterConfig{EnableDebugLogging: debug},
	)
	productService := usecase.NewProductService(store)
	saleService := usecase.NewSaleService(store)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(interpreterService, productService, saleService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
