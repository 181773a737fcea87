package generativeAI

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"

	"github.com/FACorreiaa/go-trip-planner/config"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

// ErrNotConfigured is returned by every generation call when the Gemini
// client could not be constructed at startup (missing or bad credential).
var ErrNotConfigured = errors.New("gemini client is not initialized, check GOOGLE_GEMINI_API_KEY")

// AIClient wraps the two generative capabilities the trip planner needs:
// structured itinerary generation and image generation. A missing API key
// leaves the client unconfigured instead of killing the process; calls then
// fail explicitly with ErrNotConfigured.
type AIClient struct {
	client      *genai.Client
	model       string
	imageModel  string
	temperature float32
	cache       *cache.Cache
	logger      *slog.Logger
}

func NewAIClient(ctx context.Context, cfg *config.Config, logger *slog.Logger) *AIClient {
	ai := &AIClient{
		model:       cfg.Gemini.Model,
		imageModel:  cfg.Gemini.ImageModel,
		temperature: cfg.Gemini.Temperature,
		cache:       cache.New(cfg.Gemini.CacheTTL, cfg.Gemini.CacheTTL/4),
		logger:      logger,
	}

	apiKey := os.Getenv("GOOGLE_GEMINI_API_KEY")
	if apiKey == "" {
		logger.Warn("GOOGLE_GEMINI_API_KEY environment variable is not set, AI client disabled")
		return ai
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		logger.Error("Failed to create Gemini client", slog.Any("error", err))
		return ai
	}

	ai.client = client
	return ai
}

// IsConfigured reports whether the underlying Gemini client was successfully
// constructed. It gates UI affordances only; calls made anyway fail explicitly.
func (ai *AIClient) IsConfigured() bool {
	return ai.client != nil
}

// GenerateItinerary issues a single structured-output request for a trip plan.
// One attempt, fail fast; no retry.
func (ai *AIClient) GenerateItinerary(ctx context.Context, location string, days int, budget types.BudgetTier) (*types.GeneratedItinerary, error) {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "GenerateItinerary", trace.WithAttributes(
		attribute.String("trip.location", location),
		attribute.Int("trip.days", days),
		attribute.String("trip.budget", string(budget)),
		attribute.String("model", ai.model),
	))
	defer span.End()

	if ai.client == nil {
		span.RecordError(ErrNotConfigured)
		span.SetStatus(codes.Error, "Client not configured")
		return nil, ErrNotConfigured
	}

	cacheKey := itineraryCacheKey(location, days, budget)
	if cached, found := ai.cache.Get(cacheKey); found {
		if itinerary, ok := cached.(*types.GeneratedItinerary); ok {
			ai.logger.DebugContext(ctx, "Itinerary cache hit", slog.String("key", cacheKey))
			span.SetStatus(codes.Ok, "Itinerary served from cache")
			return itinerary, nil
		}
	}

	genConfig := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   itinerarySchema(),
		Temperature:      genai.Ptr[float32](ai.temperature),
	}

	result, err := ai.client.Models.GenerateContent(ctx, ai.model, genai.Text(itineraryPrompt(location, days, budget)), genConfig)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to generate itinerary")
		return nil, fmt.Errorf("failed to generate trip itinerary, the model might be overloaded: %w", err)
	}

	itinerary, err := parseItinerary(result.Text())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Model returned invalid structured output")
		return nil, err
	}
	if err := validateItinerary(itinerary); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Model response failed validation")
		return nil, err
	}

	ai.cache.SetDefault(cacheKey, itinerary)
	span.SetAttributes(attribute.Int("plan.days", len(itinerary.Plan)))
	span.SetStatus(codes.Ok, "Itinerary generated")
	return itinerary, nil
}

// GenerateTripImage issues a single image-generation request and returns the
// raw JPEG bytes. Exactly one image per call; no retries.
func (ai *AIClient) GenerateTripImage(ctx context.Context, prompt string) ([]byte, error) {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "GenerateTripImage", trace.WithAttributes(
		attribute.Int("prompt.length", len(prompt)),
		attribute.String("model", ai.imageModel),
	))
	defer span.End()

	if ai.client == nil {
		span.RecordError(ErrNotConfigured)
		span.SetStatus(codes.Error, "Client not configured")
		return nil, ErrNotConfigured
	}

	resp, err := ai.client.Models.GenerateImages(ctx, ai.imageModel, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		OutputMIMEType: "image/jpeg",
		AspectRatio:    "4:3",
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to generate image")
		return nil, fmt.Errorf("failed to generate trip image: %w", err)
	}

	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil || len(resp.GeneratedImages[0].Image.ImageBytes) == 0 {
		err := errors.New("no image was generated by the API")
		span.RecordError(err)
		span.SetStatus(codes.Error, "Empty image response")
		return nil, err
	}

	span.SetStatus(codes.Ok, "Image generated")
	return resp.GeneratedImages[0].Image.ImageBytes, nil
}

func itineraryCacheKey(location string, days int, budget types.BudgetTier) string {
	return fmt.Sprintf("itinerary:%s:%d:%s", location, days, budget)
}
