package container

import (
	"context"
	"log/slog"

	"github.com/FACorreiaa/go-trip-planner/config"
	generativeAI "github.com/FACorreiaa/go-trip-planner/internal/api/generative_ai"
	"github.com/FACorreiaa/go-trip-planner/internal/api/trips"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *slog.Logger
	AIClient    *generativeAI.AIClient
	TripStore   *trips.Store
	TripHandler *trips.HandlerImpl
}

// NewContainer initializes and returns a new dependency container
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) *Container {
	aiClient := generativeAI.NewAIClient(ctx, cfg, logger)

	fallback := trips.ImageFallback{
		BaseURL: cfg.Images.FallbackBaseURL,
		Width:   cfg.Images.FallbackWidth,
		Height:  cfg.Images.FallbackHeight,
	}
	tripStore := trips.NewStore(aiClient, fallback, logger)
	tripHandler := trips.NewHandlerImpl(tripStore, logger)

	return &Container{
		Config:      cfg,
		Logger:      logger,
		AIClient:    aiClient,
		TripStore:   tripStore,
		TripHandler: tripHandler,
	}
}
