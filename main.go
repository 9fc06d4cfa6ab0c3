package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/belindamak/japan-trip-chat/internal/api"
	"github.com/belindamak/japan-trip-chat/internal/auth"
	"github.com/belindamak/japan-trip-chat/internal/config"
	"github.com/belindamak/japan-trip-chat/internal/redis"
	"github.com/belindamak/japan-trip-chat/internal/search/places"
	"github.com/belindamak/japan-trip-chat/internal/search/web"
	"github.com/belindamak/japan-trip-chat/internal/service/ai"
	"github.com/belindamak/japan-trip-chat/internal/service/planner"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	rdb, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatalf("create redis client: %v", err)
	}
	defer rdb.Close()

	authService, err := auth.NewService(cfg.Users, rdb, cfg.SessionTTL)
	if err != nil {
		log.Fatalf("init auth service: %v", err)
	}

	var retrieval *ai.RetrievalSource
	if cfg.SearchEndpoint != "" && cfg.SearchIndex != "" {
		retrieval = &ai.RetrievalSource{
			Endpoint:  cfg.SearchEndpoint,
			IndexName: cfg.SearchIndex,
			Auth:      ai.ResolveSearchAuth(cfg.SearchAPIKey),
		}
	}
	completer, err := ai.NewClient(cfg.AzureOpenAIEndpoint, cfg.AzureOpenAIAPIKey,
		cfg.DeploymentName, cfg.CompletionTimeout, retrieval)
	if err != nil {
		log.Fatalf("init completion client: %v", err)
	}

	placeClient := places.NewClient(context.Background(), cfg.PlacesAPIKey)
	webClient := web.NewClient(context.Background(), cfg.WebSearchAPIKey, cfg.WebSearchEngineID)

	plannerService := planner.NewService(placeClient, webClient, completer)
	handlers := api.NewHandler(plannerService, authService, cfg.RateLimit, cfg.RateWindow)

	router := gin.Default()
	handlers.RegisterRoutes(router)

	addr := cfg.ServerAddress
	if addr == "" {
		addr = ":8000"
	}

	if err := router.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
