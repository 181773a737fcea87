package trips

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-trip-planner/internal/api"
	generativeAI "github.com/FACorreiaa/go-trip-planner/internal/api/generative_ai"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

// HandlerImpl exposes the store's presentation-facing surface over HTTP.
type HandlerImpl struct {
	store  *Store
	logger *slog.Logger
}

func NewHandlerImpl(store *Store, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		store:  store,
		logger: logger,
	}
}

// CreateTrip generates a new itinerary and prepends it to the feed.
func (h *HandlerImpl) CreateTrip(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("TripHandler").Start(r.Context(), "CreateTrip", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/trips"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "CreateTrip"))
	l.DebugContext(ctx, "Create trip handler invoked")

	var req types.CreateTripRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.ErrorContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	trip, err := h.store.CreateTrip(ctx, req.Location, req.Days, req.Budget)
	if err != nil {
		l.ErrorContext(ctx, "Failed to create trip", slog.Any("error", err))
		api.ErrorResponse(w, r, statusForError(err), err.Error())
		return
	}

	l.InfoContext(ctx, "Trip created", slog.String("tripID", trip.ID), slog.String("location", trip.Location))
	api.WriteJSONResponse(w, r, http.StatusCreated, trip)
}

// UpdateTrip regenerates an existing trip in place, keeping its id.
func (h *HandlerImpl) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("TripHandler").Start(r.Context(), "UpdateTrip", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/trips/{tripID}"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "UpdateTrip"))

	tripID := chi.URLParam(r, "tripID")
	if tripID == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Trip ID is required")
		return
	}
	l = l.With(slog.String("tripID", tripID))

	var req types.UpdateTripRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.ErrorContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	trip, err := h.store.UpdateTrip(ctx, tripID, req.Location, req.Days, req.Budget)
	if err != nil {
		l.ErrorContext(ctx, "Failed to update trip", slog.Any("error", err))
		api.ErrorResponse(w, r, statusForError(err), err.Error())
		return
	}

	l.InfoContext(ctx, "Trip updated", slog.String("location", trip.Location))
	api.WriteJSONResponse(w, r, http.StatusOK, trip)
}

// GetTrips lists trips, newest first, with the feed's optional budget sort
// and the map's optional budget filter.
func (h *HandlerImpl) GetTrips(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("TripHandler").Start(r.Context(), "GetTrips", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/trips"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "GetTrips"))

	direction, ok := ParseSortDirection(r.URL.Query().Get("sort"))
	if !ok {
		api.ErrorResponse(w, r, http.StatusBadRequest, "sort must be one of none, asc, desc")
		return
	}

	budget := types.BudgetTier(r.URL.Query().Get("budget"))
	if budget != "" && !budget.Valid() {
		api.ErrorResponse(w, r, http.StatusBadRequest, fmt.Sprintf("unknown budget tier %q", budget))
		return
	}

	trips := SortByBudget(FilterByBudget(h.store.Trips(), budget), direction)
	l.DebugContext(ctx, "Listing trips", slog.Int("count", len(trips)))
	api.WriteJSONResponse(w, r, http.StatusOK, trips)
}

// GetTrip returns a single trip by id.
func (h *HandlerImpl) GetTrip(w http.ResponseWriter, r *http.Request) {
	_, span := otel.Tracer("TripHandler").Start(r.Context(), "GetTrip", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/trips/{tripID}"),
	))
	defer span.End()

	tripID := chi.URLParam(r, "tripID")
	trip, found := h.store.TripByID(tripID)
	if !found {
		api.ErrorResponse(w, r, http.StatusNotFound, "Trip not found")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, trip)
}

// GetState returns the full reactive read model the UI renders from.
func (h *HandlerImpl) GetState(w http.ResponseWriter, r *http.Request) {
	_, span := otel.Tracer("TripHandler").Start(r.Context(), "GetState", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/trips/state"),
	))
	defer span.End()

	api.WriteJSONResponse(w, r, http.StatusOK, h.store.Snapshot())
}

// SelectTrip records a map-pin click.
func (h *HandlerImpl) SelectTrip(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("TripHandler").Start(r.Context(), "SelectTrip", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/trips/selection"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "SelectTrip"))

	var req types.SelectTripRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.ErrorContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.TripID == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "trip_id is required")
		return
	}

	h.store.SelectTripFromMap(req.TripID)
	l.DebugContext(ctx, "Map selection recorded", slog.String("tripID", req.TripID))
	api.WriteJSONResponse(w, r, http.StatusNoContent, nil)
}

// ClearSelection clears the map selection (feed interaction resets it).
func (h *HandlerImpl) ClearSelection(w http.ResponseWriter, r *http.Request) {
	_, span := otel.Tracer("TripHandler").Start(r.Context(), "ClearSelection", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/trips/selection"),
	))
	defer span.End()

	h.store.SelectTripFromMap("")
	api.WriteJSONResponse(w, r, http.StatusNoContent, nil)
}

// GetMapPins projects the (optionally filtered) trip list onto the
// destination map: markers colored by budget tier plus bounds or center.
func (h *HandlerImpl) GetMapPins(w http.ResponseWriter, r *http.Request) {
	_, span := otel.Tracer("TripHandler").Start(r.Context(), "GetMapPins", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/trips/pins"),
	))
	defer span.End()

	budget := types.BudgetTier(r.URL.Query().Get("budget"))
	if budget != "" && !budget.Valid() {
		api.ErrorResponse(w, r, http.StatusBadRequest, fmt.Sprintf("unknown budget tier %q", budget))
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, BuildMapView(FilterByBudget(h.store.Trips(), budget)))
}

// GetActivityPins returns one trip's per-day emoji markers.
func (h *HandlerImpl) GetActivityPins(w http.ResponseWriter, r *http.Request) {
	_, span := otel.Tracer("TripHandler").Start(r.Context(), "GetActivityPins", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/trips/{tripID}/pins"),
	))
	defer span.End()

	trip, found := h.store.TripByID(chi.URLParam(r, "tripID"))
	if !found {
		api.ErrorResponse(w, r, http.StatusNotFound, "Trip not found")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, ActivityPins(trip))
}

// ShareTrip builds the share title/text for a trip. Actual delivery (Web
// Share API, clipboard) happens client side.
func (h *HandlerImpl) ShareTrip(w http.ResponseWriter, r *http.Request) {
	_, span := otel.Tracer("TripHandler").Start(r.Context(), "ShareTrip", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/trips/{tripID}/share"),
	))
	defer span.End()

	trip, found := h.store.TripByID(chi.URLParam(r, "tripID"))
	if !found {
		api.ErrorResponse(w, r, http.StatusNotFound, "Trip not found")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, BuildShareContent(trip))
}

// StreamEvents streams store change notifications as server-sent events so
// the UI can react (switch view, clear sort, scroll the card into view)
// without the store knowing about any of that.
func (h *HandlerImpl) StreamEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "StreamEvents"))

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, ok := w.(http.Flusher)
	if !ok {
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Streaming unsupported")
		return
	}

	events, cancel := h.store.Subscribe()
	defer cancel()

	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-ctx.Done():
			l.DebugContext(ctx, "Event stream client disconnected")
			return
		case event, open := <-events:
			if !open {
				return
			}
			payload, err := json.Marshal(event)
			if err != nil {
				l.ErrorContext(ctx, "Failed to marshal store event", slog.Any("error", err))
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", payload)
			flusher.Flush()
		}
	}
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrGenerationInProgress):
		return http.StatusConflict
	case errors.Is(err, ErrTripNotFound):
		return http.StatusNotFound
	case errors.Is(err, generativeAI.ErrNotConfigured):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}
