package trips

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

func newTestRouter(store *Store) chi.Router {
	h := NewHandlerImpl(store, slog.Default())
	r := chi.NewRouter()
	r.Route("/trips", func(r chi.Router) {
		r.Get("/", h.GetTrips)
		r.Post("/", h.CreateTrip)
		r.Get("/state", h.GetState)
		r.Get("/pins", h.GetMapPins)
		r.Post("/selection", h.SelectTrip)
		r.Delete("/selection", h.ClearSelection)
		r.Route("/{tripID}", func(r chi.Router) {
			r.Get("/", h.GetTrip)
			r.Put("/", h.UpdateTrip)
			r.Get("/pins", h.GetActivityPins)
			r.Get("/share", h.ShareTrip)
		})
	})
	return r
}

func seedTrip(t *testing.T, mockGen *MockGenerator, store *Store, location string, budget types.BudgetTier) types.Trip {
	t.Helper()
	mockGen.On("GenerateItinerary", mock.Anything, location, 3, budget).
		Return(itineraryFor(location, 3), nil).Once()
	mockGen.On("GenerateTripImage", mock.Anything, mock.Anything).
		Return([]byte{0x01}, nil).Once()
	trip, err := store.CreateTrip(context.Background(), location, 3, budget)
	require.NoError(t, err)
	return *trip
}

func TestCreateTripHandler(t *testing.T) {
	t.Run("Returns 201 with the new trip", func(t *testing.T) {
		mockGen := new(MockGenerator)
		store := newTestStore(mockGen)
		router := newTestRouter(store)

		mockGen.On("GenerateItinerary", mock.Anything, "Lisboa", 3, types.BudgetMedium).
			Return(itineraryFor("Lisboa", 3), nil).Once()
		mockGen.On("GenerateTripImage", mock.Anything, mock.Anything).
			Return([]byte{0x01}, nil).Once()

		body := `{"ubicacion":"Lisboa","dias":3,"presupuesto":"Medio"}`
		req := httptest.NewRequest(http.MethodPost, "/trips", strings.NewReader(body))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code)
		var trip types.Trip
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &trip))
		assert.NotEmpty(t, trip.ID)
		assert.Equal(t, "Lisboa", trip.Location)
		assert.Equal(t, types.BudgetMedium, trip.BudgetTier)
	})

	t.Run("Returns 400 on malformed body", func(t *testing.T) {
		store := newTestStore(new(MockGenerator))
		router := newTestRouter(store)

		req := httptest.NewRequest(http.MethodPost, "/trips", strings.NewReader(`{not json`))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Returns 400 on invalid budget", func(t *testing.T) {
		store := newTestStore(new(MockGenerator))
		router := newTestRouter(store)

		body := `{"ubicacion":"Lisboa","dias":3,"presupuesto":"Gratis"}`
		req := httptest.NewRequest(http.MethodPost, "/trips", strings.NewReader(body))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Returns 502 when generation fails", func(t *testing.T) {
		mockGen := new(MockGenerator)
		store := newTestStore(mockGen)
		router := newTestRouter(store)

		mockGen.On("GenerateItinerary", mock.Anything, "Lisboa", 3, types.BudgetMedium).
			Return(nil, errors.New("model overloaded")).Once()

		body := `{"ubicacion":"Lisboa","dias":3,"presupuesto":"Medio"}`
		req := httptest.NewRequest(http.MethodPost, "/trips", strings.NewReader(body))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadGateway, rr.Code)
	})
}

func TestUpdateTripHandler(t *testing.T) {
	t.Run("Returns 200 with the regenerated trip", func(t *testing.T) {
		mockGen := new(MockGenerator)
		store := newTestStore(mockGen)
		router := newTestRouter(store)
		trip := seedTrip(t, mockGen, store, "Lisboa", types.BudgetMedium)

		mockGen.On("GenerateItinerary", mock.Anything, "Lisboa", 5, types.BudgetHigh).
			Return(itineraryFor("Lisboa", 5), nil).Once()
		mockGen.On("GenerateTripImage", mock.Anything, mock.Anything).
			Return([]byte{0x01}, nil).Once()

		body := `{"ubicacion":"Lisboa","dias":5,"presupuesto":"Alto"}`
		req := httptest.NewRequest(http.MethodPut, "/trips/"+trip.ID, strings.NewReader(body))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var updated types.Trip
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &updated))
		assert.Equal(t, trip.ID, updated.ID)
		assert.Equal(t, 5, updated.TotalDays)
	})

	t.Run("Returns 404 for an unknown trip", func(t *testing.T) {
		mockGen := new(MockGenerator)
		store := newTestStore(mockGen)
		router := newTestRouter(store)

		mockGen.On("GenerateItinerary", mock.Anything, "Lisboa", 3, types.BudgetMedium).
			Return(itineraryFor("Lisboa", 3), nil).Once()
		mockGen.On("GenerateTripImage", mock.Anything, mock.Anything).
			Return([]byte{0x01}, nil).Once()

		body := `{"ubicacion":"Lisboa","dias":3,"presupuesto":"Medio"}`
		req := httptest.NewRequest(http.MethodPut, "/trips/nope", strings.NewReader(body))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestGetTripsHandler(t *testing.T) {
	mockGen := new(MockGenerator)
	store := newTestStore(mockGen)
	router := newTestRouter(store)

	seedTrip(t, mockGen, store, "Lisboa", types.BudgetHigh)
	seedTrip(t, mockGen, store, "Porto", types.BudgetLow)

	t.Run("Default order is newest first", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/trips", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var trips []types.Trip
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &trips))
		require.Len(t, trips, 2)
		assert.Equal(t, "Porto", trips[0].Location)
	})

	t.Run("Ascending budget sort", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/trips?sort=asc", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var trips []types.Trip
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &trips))
		require.Len(t, trips, 2)
		assert.Equal(t, types.BudgetLow, trips[0].BudgetTier)
		assert.Equal(t, types.BudgetHigh, trips[1].BudgetTier)
	})

	t.Run("Budget filter", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/trips?budget=Alto", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var trips []types.Trip
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &trips))
		require.Len(t, trips, 1)
		assert.Equal(t, "Lisboa", trips[0].Location)
	})

	t.Run("Invalid sort is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/trips?sort=price", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Invalid budget is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/trips?budget=Gratis", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestGetStateHandler(t *testing.T) {
	mockGen := new(MockGenerator)
	mockGen.On("IsConfigured").Return(false)
	store := newTestStore(mockGen)
	router := newTestRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/trips/state", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var state types.TripStateResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &state))
	assert.False(t, state.IsConfigured)
	assert.False(t, state.IsLoading)
	assert.Empty(t, state.Trips)
}

func TestSelectionHandlers(t *testing.T) {
	mockGen := new(MockGenerator)
	store := newTestStore(mockGen)
	router := newTestRouter(store)
	trip := seedTrip(t, mockGen, store, "Lisboa", types.BudgetMedium)

	t.Run("Select records the trip id", func(t *testing.T) {
		body := `{"trip_id":"` + trip.ID + `"}`
		req := httptest.NewRequest(http.MethodPost, "/trips/selection", strings.NewReader(body))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Equal(t, trip.ID, store.MapSelectedTripID())
	})

	t.Run("Select without an id is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/trips/selection", strings.NewReader(`{"trip_id":""}`))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Delete clears the selection", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/trips/selection", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Empty(t, store.MapSelectedTripID())
	})
}

func TestMapPinsHandler(t *testing.T) {
	mockGen := new(MockGenerator)
	store := newTestStore(mockGen)
	router := newTestRouter(store)
	seedTrip(t, mockGen, store, "Lisboa", types.BudgetLow)

	req := httptest.NewRequest(http.MethodGet, "/trips/pins", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var view MapView
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
	require.Len(t, view.Pins, 1)
	assert.Equal(t, "#10B981", view.Pins[0].PinColor)
	require.NotNil(t, view.Center)
	assert.Equal(t, singleTripZoom, view.Zoom)
}

func TestActivityPinsHandler(t *testing.T) {
	mockGen := new(MockGenerator)
	store := newTestStore(mockGen)
	router := newTestRouter(store)
	trip := seedTrip(t, mockGen, store, "Lisboa", types.BudgetMedium)

	req := httptest.NewRequest(http.MethodGet, "/trips/"+trip.ID+"/pins", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var pins []ActivityPin
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &pins))
	assert.Len(t, pins, 6) // 3 days, 2 activities each

	req = httptest.NewRequest(http.MethodGet, "/trips/nope/pins", nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestShareTripHandler(t *testing.T) {
	mockGen := new(MockGenerator)
	store := newTestStore(mockGen)
	router := newTestRouter(store)
	trip := seedTrip(t, mockGen, store, "Lisboa", types.BudgetMedium)

	req := httptest.NewRequest(http.MethodGet, "/trips/"+trip.ID+"/share", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var content ShareContent
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &content))
	assert.Equal(t, "Mi viaje: Aventura en Lisboa", content.Title)
	assert.Contains(t, content.Text, "Lisboa")

	req = httptest.NewRequest(http.MethodGet, "/trips/nope/share", nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
