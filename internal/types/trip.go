package types

import "math"

// BudgetTier is the fixed budget enumeration driving both prompt content and
// map-pin color. The wire values are the Spanish labels the UI was built around.
type BudgetTier string

const (
	BudgetLow    BudgetTier = "Bajo"
	BudgetMedium BudgetTier = "Medio"
	BudgetHigh   BudgetTier = "Alto"
)

// Valid reports whether b is one of the three known tiers.
func (b BudgetTier) Valid() bool {
	switch b {
	case BudgetLow, BudgetMedium, BudgetHigh:
		return true
	}
	return false
}

// Rank gives the total order Bajo < Medio < Alto used by the budget sort.
// Unknown tiers rank below everything.
func (b BudgetTier) Rank() int {
	switch b {
	case BudgetLow:
		return 1
	case BudgetMedium:
		return 2
	case BudgetHigh:
		return 3
	}
	return 0
}

// PinColor returns the map marker background for the tier.
func (b BudgetTier) PinColor() string {
	switch b {
	case BudgetLow:
		return "#10B981" // Green-500
	case BudgetMedium:
		return "#F59E0B" // Amber-500
	case BudgetHigh:
		return "#EF4444" // Red-500
	default:
		return "#3B82F6" // Blue-500
	}
}

// Coordinates is a latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// InRange reports whether both components are finite and within the
// valid geographic range.
func (c Coordinates) InRange() bool {
	if math.IsNaN(c.Lat) || math.IsInf(c.Lat, 0) || math.IsNaN(c.Lng) || math.IsInf(c.Lng, 0) {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

type Restaurant struct {
	Name        string `json:"nombre"`
	CuisineType string `json:"tipo_cocina"`
	MapURL      string `json:"mapa_url,omitempty"`
}

type Activity struct {
	Name        string      `json:"nombre"`
	Coordinates Coordinates `json:"coordenadas"`
	Emoji       string      `json:"emoji"`
}

type DayPlan struct {
	DayNumber   int          `json:"dia"`
	DayTitle    string       `json:"titulo_dia"`
	Activities  []Activity   `json:"actividades"`
	Restaurants []Restaurant `json:"restaurantes,omitempty"`
}

// GeneratedItinerary is the decoded structured output of one itinerary
// generation call, before it is assembled into a Trip.
type GeneratedItinerary struct {
	Title       string      `json:"titulo"`
	Description string      `json:"descripcion"`
	Location    string      `json:"ubicacion"`
	Coordinates Coordinates `json:"coordenadas"`
	Plan        []DayPlan   `json:"plan"`
}

// Trip is a generated itinerary record. ID is assigned locally at creation
// time and stays stable across edits; BudgetTier and TotalDays come from the
// user request, not from the model response.
type Trip struct {
	ID          string      `json:"id"`
	Title       string      `json:"titulo"`
	Description string      `json:"descripcion"`
	Location    string      `json:"ubicacion"`
	BudgetTier  BudgetTier  `json:"presupuesto"`
	TotalDays   int         `json:"dias_totales"`
	Coordinates Coordinates `json:"coordenadas"`
	Plan        []DayPlan   `json:"plan"`
	ImageURL    string      `json:"imageUrl"`
}

// CreateTripRequest is the JSON body for creating a trip.
type CreateTripRequest struct {
	Location string     `json:"ubicacion"`
	Days     int        `json:"dias"`
	Budget   BudgetTier `json:"presupuesto"`
}

// UpdateTripRequest is the JSON body for regenerating an existing trip.
// The target id comes from the URL.
type UpdateTripRequest struct {
	Location string     `json:"ubicacion"`
	Days     int        `json:"dias"`
	Budget   BudgetTier `json:"presupuesto"`
}

// SelectTripRequest records which trip was picked on the map.
type SelectTripRequest struct {
	TripID string `json:"trip_id"`
}

// TripStateResponse is the reactive read model the UI renders from.
type TripStateResponse struct {
	Trips             []Trip `json:"trips"`
	IsLoading         bool   `json:"is_loading"`
	LastError         string `json:"last_error,omitempty"`
	MapSelectedTripID string `json:"map_selected_trip_id,omitempty"`
	IsConfigured      bool   `json:"is_configured"`
}
