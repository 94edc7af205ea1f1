package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/akumar-dev/tweetpulse-be/internal/api/handlers"
	"github.com/akumar-dev/tweetpulse-be/internal/auth"
	"github.com/akumar-dev/tweetpulse-be/internal/services"
	"github.com/akumar-dev/tweetpulse-be/internal/websocket"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	tokens *auth.TokenService,
	hub *websocket.Hub,
	authService services.AuthServiceProvider,
	analysisService services.AnalysisServiceProvider,
	batchService services.BatchServiceProvider,
	eventService services.EventServiceProvider,
	prober handlers.Snapshotter,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration for the dashboard frontend
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, tokens, eventService)
	sentimentHandler := handlers.NewSentimentHandler(analysisService)
	batchHandler := handlers.NewBatchHandler(batchService, eventService)
	eventHandler := handlers.NewEventHandler(eventService)
	monitorHandler := handlers.NewMonitorHandler(prober)
	wsHandler := handlers.NewWebSocketHandler(hub)

	// Status check
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("Tweet Sentiment API"))
	})

	// Activity feed connection endpoint
	r.Get("/ws", wsHandler.Serve)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authHandler.Signup)
			r.Post("/login", authHandler.Login)
		})

		// Everything below requires a bearer token.
		r.Group(func(r chi.Router) {
			r.Use(tokens.Middleware())

			r.Route("/sentiment", func(r chi.Router) {
				r.Post("/analyze", sentimentHandler.Analyze)
				r.Post("/analyze-batch", sentimentHandler.AnalyzeBatch)
				r.Get("/tweets/{username}", sentimentHandler.TweetsByUser)
				r.Get("/hashtag/{hashtag}", sentimentHandler.TweetsByHashtag)
				r.Get("/tweetanalysis/{username}", sentimentHandler.TweetAnalysis)
				r.Post("/save-analyzed-tweets", batchHandler.SaveUserBatch)
				r.Post("/save-analyzed-hashtag-tweets", batchHandler.SaveHashtagBatch)
				r.Get("/saved-tweets", batchHandler.ListUserBatches)
				r.Get("/saved-hashtag-tweets", batchHandler.ListHashtagBatches)
			})

			r.Get("/events", eventHandler.GetRecent)
			r.Get("/monitor/stats", monitorHandler.Stats)
		})
	})

	return r
}
