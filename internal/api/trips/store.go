package trips

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-trip-planner/app/observability/metrics"
	generativeAI "github.com/FACorreiaa/go-trip-planner/internal/api/generative_ai"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

var (
	// ErrGenerationInProgress is returned when a create/update is invoked
	// while another generation request has not settled yet. Overlapping
	// requests are rejected rather than interleaved.
	ErrGenerationInProgress = errors.New("a trip generation request is already in progress")

	// ErrTripNotFound is returned by UpdateTrip when the target id is not in
	// the list at commit time. The list and lastError are left untouched.
	ErrTripNotFound = errors.New("trip not found")

	// ErrInvalidRequest wraps user-input validation failures.
	ErrInvalidRequest = errors.New("invalid trip request")
)

// Generator abstracts the generative backend so the store can be exercised
// with fakes in tests.
type Generator interface {
	GenerateItinerary(ctx context.Context, location string, days int, budget types.BudgetTier) (*types.GeneratedItinerary, error)
	GenerateTripImage(ctx context.Context, prompt string) ([]byte, error)
	IsConfigured() bool
}

var _ Generator = (*generativeAI.AIClient)(nil)

// ImageFallback configures the deterministic placeholder used when image
// generation fails. The seed is a fresh UUID per request so distinct
// fallbacks do not collide visually.
type ImageFallback struct {
	BaseURL string
	Width   int
	Height  int
}

func (f ImageFallback) url(seed string) string {
	return fmt.Sprintf("%s/%s/%d/%d", strings.TrimRight(f.BaseURL, "/"), seed, f.Width, f.Height)
}

// Store owns the process-wide trip list plus the loading/error/selection
// flags, and orchestrates the generation workflow on top of a Generator.
// It is the single writer; any number of readers may observe it.
type Store struct {
	mu                sync.Mutex
	trips             []types.Trip
	isLoading         bool
	lastError         string
	mapSelectedTripID string

	generator Generator
	fallback  ImageFallback
	logger    *slog.Logger

	subMu       sync.Mutex
	subscribers map[int]chan StoreEvent
	nextSubID   int
}

func NewStore(generator Generator, fallback ImageFallback, logger *slog.Logger) *Store {
	return &Store{
		generator:   generator,
		fallback:    fallback,
		logger:      logger,
		subscribers: make(map[int]chan StoreEvent),
	}
}

// IsConfigured exposes the generator's configuration check for the UI.
func (s *Store) IsConfigured() bool {
	return s.generator.IsConfigured()
}

// Trips returns the current list, newest first.
func (s *Store) Trips() []types.Trip {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneTrips(s.trips)
}

func (s *Store) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isLoading
}

func (s *Store) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

func (s *Store) MapSelectedTripID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mapSelectedTripID
}

// SelectedTrip resolves the map selection against the current list. A
// selection pointing at an id that is not in the list yields nothing.
func (s *Store) SelectedTrip() (types.Trip, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mapSelectedTripID == "" {
		return types.Trip{}, false
	}
	for _, trip := range s.trips {
		if trip.ID == s.mapSelectedTripID {
			return trip, true
		}
	}
	return types.Trip{}, false
}

// TripByID returns the trip with the given id, if present.
func (s *Store) TripByID(id string) (types.Trip, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, trip := range s.trips {
		if trip.ID == id {
			return trip, true
		}
	}
	return types.Trip{}, false
}

// Snapshot returns the full reactive read model in one consistent view.
func (s *Store) Snapshot() types.TripStateResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return types.TripStateResponse{
		Trips:             cloneTrips(s.trips),
		IsLoading:         s.isLoading,
		LastError:         s.lastError,
		MapSelectedTripID: s.mapSelectedTripID,
		IsConfigured:      s.generator.IsConfigured(),
	}
}

// SelectTripFromMap records which trip was picked on the map. Pure state
// setter; an empty id clears the selection. Any view-switching or scrolling
// is a presentation reaction to the published event.
func (s *Store) SelectTripFromMap(id string) {
	s.mu.Lock()
	s.mapSelectedTripID = id
	s.mu.Unlock()
	s.publish(StoreEvent{Type: EventSelectionChanged, TripID: id})
}

// CreateTrip runs one generation request and prepends the resulting trip,
// making it the most recent entry.
func (s *Store) CreateTrip(ctx context.Context, location string, days int, budget types.BudgetTier) (*types.Trip, error) {
	return s.generate(ctx, "", location, days, budget)
}

// UpdateTrip regenerates an existing trip and replaces it in place at the
// same position, keeping its id. An unknown id leaves the list unchanged.
func (s *Store) UpdateTrip(ctx context.Context, id, location string, days int, budget types.BudgetTier) (*types.Trip, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: trip id is required", ErrInvalidRequest)
	}
	return s.generate(ctx, id, location, days, budget)
}

// generate is the shared create/update workflow: loading set, itinerary call
// (fatal on failure), image call (absorbed on failure), assemble, commit.
func (s *Store) generate(ctx context.Context, existingID, location string, days int, budget types.BudgetTier) (*types.Trip, error) {
	operation := "create"
	if existingID != "" {
		operation = "update"
	}

	ctx, span := otel.Tracer("TripStore").Start(ctx, "GenerateTrip", trace.WithAttributes(
		attribute.String("trip.operation", operation),
		attribute.String("trip.location", location),
		attribute.Int("trip.days", days),
		attribute.String("trip.budget", string(budget)),
	))
	defer span.End()

	if err := validateRequest(location, days, budget); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid request")
		return nil, err
	}

	if err := s.begin(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Generation already in progress")
		return nil, err
	}
	s.publish(StoreEvent{Type: EventGenerationStarted, TripID: existingID})

	start := time.Now()
	m := metrics.Get()
	m.GenerationRequestsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", operation)))

	itinerary, err := s.generator.GenerateItinerary(ctx, location, days, budget)
	if err != nil {
		s.fail(err)
		s.publish(StoreEvent{Type: EventGenerationFailed, TripID: existingID, Error: err.Error()})
		m.GenerationFailuresTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", operation)))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Itinerary generation failed")
		return nil, err
	}

	imageURL := s.resolveImage(ctx, itinerary)

	trip := types.Trip{
		ID:          existingID,
		Title:       itinerary.Title,
		Description: itinerary.Description,
		Location:    itinerary.Location,
		BudgetTier:  budget,
		TotalDays:   days,
		Coordinates: itinerary.Coordinates,
		Plan:        itinerary.Plan,
		ImageURL:    imageURL,
	}
	if trip.ID == "" {
		trip.ID = uuid.NewString()
	}

	committed := s.commit(trip, existingID != "")
	m.GenerationDurationSeconds.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(attribute.String("operation", operation)))

	if !committed {
		// The update target disappeared between invocation and commit. The
		// list stays untouched and this is not surfaced as a store error.
		s.logger.WarnContext(ctx, "Update target no longer in trip list, discarding result",
			slog.String("tripID", existingID))
		span.SetStatus(codes.Ok, "Update target missing, list unchanged")
		return nil, ErrTripNotFound
	}

	eventType := EventTripCreated
	if existingID != "" {
		eventType = EventTripUpdated
	}
	s.publish(StoreEvent{Type: eventType, TripID: trip.ID})

	span.SetAttributes(attribute.String("trip.id", trip.ID))
	span.SetStatus(codes.Ok, "Trip generated")
	return &trip, nil
}

// resolveImage turns the itinerary into a displayable image reference. Image
// generation failing is non-fatal: it is logged and replaced with the
// deterministic placeholder, never surfaced through lastError.
func (s *Store) resolveImage(ctx context.Context, itinerary *types.GeneratedItinerary) string {
	prompt := generativeAI.ImagePrompt(itinerary.Title, itinerary.Location)
	imageBytes, err := s.generator.GenerateTripImage(ctx, prompt)
	if err != nil {
		s.logger.WarnContext(ctx, "Could not generate trip image, using fallback",
			slog.String("location", itinerary.Location), slog.Any("error", err))
		metrics.Get().ImageFallbacksTotal.Add(ctx, 1)
		return s.fallback.url(uuid.NewString())
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(imageBytes)
}

// begin moves the store from Idle to Generating, rejecting overlap.
func (s *Store) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isLoading {
		return ErrGenerationInProgress
	}
	s.isLoading = true
	s.lastError = ""
	return nil
}

// fail records the itinerary failure and returns the store to Idle without
// touching the trip list.
func (s *Store) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = err.Error()
	s.isLoading = false
}

// commit mutates the trip list and returns the store to Idle. Create
// prepends; update replaces in place and reports whether the target existed.
func (s *Store) commit(trip types.Trip, isUpdate bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isLoading = false

	if !isUpdate {
		s.trips = append([]types.Trip{trip}, s.trips...)
		return true
	}
	for i := range s.trips {
		if s.trips[i].ID == trip.ID {
			s.trips[i] = trip
			return true
		}
	}
	return false
}

func validateRequest(location string, days int, budget types.BudgetTier) error {
	if strings.TrimSpace(location) == "" {
		return fmt.Errorf("%w: location is required", ErrInvalidRequest)
	}
	if days < 1 {
		return fmt.Errorf("%w: days must be a positive integer", ErrInvalidRequest)
	}
	if !budget.Valid() {
		return fmt.Errorf("%w: unknown budget tier %q", ErrInvalidRequest, budget)
	}
	return nil
}

func cloneTrips(trips []types.Trip) []types.Trip {
	out := make([]types.Trip, len(trips))
	copy(out, trips)
	return out
}
