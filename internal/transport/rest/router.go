package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"gayish/internal/service"
	"gayish/internal/transport/rest/handler"
	"gayish/internal/transport/rest/middleware"
	"gayish/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService     *service.AuthService
	AnalysisService *service.AnalysisService
	StatsService    *service.StatsService
	WSHub           *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	analyzeHandler := handler.NewAnalyzeHandler(c.AnalysisService)
	statsHandler := handler.NewStatsHandler(c.StatsService)
	wsHandler := ws.NewHandler(c.WSHub)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/device", authHandler.RegisterDevice).Methods("POST", "OPTIONS")
	v1.HandleFunc("/scoreboard", statsHandler.GetScoreboard).Methods("GET", "OPTIONS")

	// WebSocket routes
	v1.HandleFunc("/ws/feed", wsHandler.Feed).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Device routes (require device auth)
	deviceRoutes := v1.NewRoute().Subrouter()
	deviceRoutes.Use(authMW.RequireDevice)

	deviceRoutes.HandleFunc("/analyze", analyzeHandler.Analyze).Methods("POST", "OPTIONS")
	deviceRoutes.HandleFunc("/analyses", analyzeHandler.History).Methods("GET", "OPTIONS")
	deviceRoutes.HandleFunc("/stats", statsHandler.GetStats).Methods("GET", "OPTIONS")
	deviceRoutes.HandleFunc("/share", statsHandler.RecordShare).Methods("POST", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
