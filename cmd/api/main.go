package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"privatepartyy/cmd/app"
	"privatepartyy/internal/config"
	"privatepartyy/internal/database"
	handlers "privatepartyy/internal/handler"
	"privatepartyy/internal/logger"
	"privatepartyy/internal/middleware"
	"privatepartyy/internal/ratelimit"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	logg := logger.InitLogger(cfg.LogLevel)

	db, repo, services := app.App(cfg)
	defer func(db *database.DB) {
		if err := db.CloseDB(); err != nil {
			logg.Error().Err(err).Msg("ошибка при закрытии БД")
		}
	}(db)

	limiter := ratelimit.NewLimiter(cfg.RateLimit, cfg.RateLimitWindow)

	handler := handlers.NewHandlers(repo, services, limiter, db, cfg)

	router := mux.NewRouter()

	// setting up routes
	router.HandleFunc("/", handlers.HomeHandler).Methods("GET")
	router.HandleFunc("/health", handler.HealthHandler).Methods("GET")

	router.HandleFunc("/api/events", handler.CreateEvent).Methods("POST")
	router.HandleFunc("/api/cleanup-events", handler.CleanupEvents).Methods("POST")
	router.HandleFunc("/api/events/{id}/qr", handler.EventQR).Methods("POST")
	router.HandleFunc("/api/events/{idOrToken}", handler.GetEvent).Methods("GET")

	router.HandleFunc("/api/events/{idOrToken}/posts", handler.GetPosts).Methods("GET")
	router.HandleFunc("/api/events/{idOrToken}/posts", handler.CreatePost).Methods("POST")

	router.HandleFunc("/api/posts/{id}/likes", handler.GetLikes).Methods("GET")
	router.HandleFunc("/api/posts/{id}/likes", handler.CreateLike).Methods("POST")
	router.HandleFunc("/api/posts/{id}/likes", handler.DeleteLike).Methods("DELETE")

	router.HandleFunc("/api/posts/{id}/comments", handler.GetComments).Methods("GET")
	router.HandleFunc("/api/posts/{id}/comments", handler.CreateComment).Methods("POST")
	router.HandleFunc("/api/posts/{id}/comments/{commentId}", handler.UpdateComment).Methods("PUT")
	router.HandleFunc("/api/posts/{id}/comments/{commentId}", handler.DeleteComment).Methods("DELETE")

	router.HandleFunc("/api/events/{idOrToken}/dm-threads", handler.GetThreads).Methods("GET")
	router.HandleFunc("/api/events/{idOrToken}/dm-threads", handler.CreateThread).Methods("POST")
	router.HandleFunc("/api/dm-threads/{threadId}/messages", handler.GetMessages).Methods("GET")
	router.HandleFunc("/api/dm-threads/{threadId}/messages", handler.SendMessage).Methods("POST")

	router.HandleFunc("/api/uploads", handler.RequestUpload).Methods("POST")

	router.HandleFunc("/api/users/profile", handler.Profile).Methods("GET", "POST")

	handlerChain := middleware.Chain(
		router,
		middleware.OptionalAuthMiddleware(cfg),
		middleware.CORSMiddleware,
		middleware.LoggingMiddleware(logg),
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	logg.Info().Str("addr", addr).Str("db", cfg.DB.DbNAME).Msg("сервер запущен")

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
