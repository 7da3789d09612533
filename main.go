package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"flightnet/config"
	"flightnet/handlers"
	"flightnet/loader"
	"flightnet/middleware"
	"flightnet/store"
)

func main() {
	startTime := time.Now()
	log.Printf("Starting server initialization at %s", startTime.Format(time.RFC3339))

	// Load environment variables first
	config.LoadEnv()
	cfg := config.Load()

	// Build the in-memory dataset
	st := store.New()
	log.Printf("Ingesting reference data from source: %s", cfg.DataSource)
	if err := ingest(st, cfg); err != nil {
		log.Fatalf("Failed to load reference data: %v", err)
	}
	airlines, airports, routes := st.Counts()
	log.Printf("Dataset ready: %d airlines, %d airports, %d routes (took %v)",
		airlines, airports, routes, time.Since(startTime))

	config.InitCache()
	handlers.Init(st)

	r := mux.NewRouter()

	// CORS configuration
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{
			"GET", "POST", "PUT", "DELETE", "OPTIONS",
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"X-Requested-With",
			"Origin",
		},
		AllowCredentials: false,
		MaxAge:           86400,
	})

	// Apply middlewares in correct order
	r.Use(corsHandler.Handler)
	r.Use(middleware.RecoveryMiddleware)
	r.Use(middleware.LoggingMiddleware)
	r.Use(gorillahandlers.CompressHandler)

	// API routes
	api := r.PathPrefix("/api/v1").Subrouter()
	registerRoutes(api)
	log.Println("Routes registered successfully")

	// Static frontend
	r.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		http.ServeFile(w, req, filepath.Join(cfg.StaticDir, "index.html"))
	}).Methods("GET")
	r.PathPrefix("/static/").Handler(
		http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir))))

	srv := &http.Server{
		Handler:           r,
		Addr:              ":" + cfg.Port,
		WriteTimeout:      15 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	serverErrors := make(chan error, 1)

	go func() {
		log.Printf("Starting server on port %s...", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
			serverErrors <- err
		}
	}()

	// Handle graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("Shutdown signal received")
	case err := <-serverErrors:
		log.Printf("Server error received: %v", err)
	}

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	} else {
		log.Println("Server shutdown completed successfully")
	}
}

func ingest(st *store.Store, cfg config.Config) error {
	switch cfg.DataSource {
	case "postgres":
		db, err := loader.OpenPostgres(cfg.Postgres, 5)
		if err != nil {
			return err
		}
		defer db.Close()
		return loader.LoadPostgres(context.Background(), st, db)
	default:
		return loader.LoadFiles(st, cfg.AirlinesFile, cfg.AirportsFile, cfg.RoutesFile)
	}
}

func registerRoutes(api *mux.Router) {
	// Airline routes
	api.HandleFunc("/airline", handlers.GetAirline).Methods("GET")
	api.HandleFunc("/airline-routes", handlers.GetAirlineRoutes).Methods("GET")
	api.HandleFunc("/airlines-by-iata", handlers.GetAirlinesByIATA).Methods("GET")
	api.HandleFunc("/airline-add", handlers.AddAirline).Methods("POST")
	api.HandleFunc("/airline-update", handlers.UpdateAirline).Methods("POST")

	// Airport routes
	api.HandleFunc("/airport", handlers.GetAirport).Methods("GET")
	api.HandleFunc("/airport-routes", handlers.GetAirportRoutes).Methods("GET")
	api.HandleFunc("/airports-by-iata", handlers.GetAirportsByIATA).Methods("GET")
	api.HandleFunc("/airport-add", handlers.AddAirport).Methods("POST")
	api.HandleFunc("/airport-update", handlers.UpdateAirport).Methods("POST")

	// Route + connection search
	api.HandleFunc("/route-add", handlers.AddRoute).Methods("POST")
	api.HandleFunc("/one-hop", handlers.GetOneHop).Methods("GET")

	// Health check
	api.HandleFunc("/health", handlers.HealthCheck).Methods("GET")
}
