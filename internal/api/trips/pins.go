package trips

import "github.com/FACorreiaa/go-trip-planner/internal/types"

// TripPin is the marker the destination map renders for one trip.
type TripPin struct {
	ID          string            `json:"id"`
	Title       string            `json:"titulo"`
	Location    string            `json:"ubicacion"`
	Coordinates types.Coordinates `json:"coordenadas"`
	BudgetTier  types.BudgetTier  `json:"presupuesto"`
	PinColor    string            `json:"pin_color"`
	ImageURL    string            `json:"imageUrl"`
}

// Bounds is the box the map renderer auto-fits to (with its own padding).
type Bounds struct {
	South float64 `json:"south"`
	West  float64 `json:"west"`
	North float64 `json:"north"`
	East  float64 `json:"east"`
}

// MapView is the full destination-map projection: one pin per trip plus
// either a bounding box (several trips) or a center and zoom (single trip).
type MapView struct {
	Pins   []TripPin          `json:"pins"`
	Bounds *Bounds            `json:"bounds,omitempty"`
	Center *types.Coordinates `json:"center,omitempty"`
	Zoom   int                `json:"zoom,omitempty"`
}

const singleTripZoom = 12

// BuildMapView projects trips onto the destination map.
func BuildMapView(trips []types.Trip) MapView {
	view := MapView{Pins: make([]TripPin, 0, len(trips))}
	for _, trip := range trips {
		view.Pins = append(view.Pins, TripPin{
			ID:          trip.ID,
			Title:       trip.Title,
			Location:    trip.Location,
			Coordinates: trip.Coordinates,
			BudgetTier:  trip.BudgetTier,
			PinColor:    trip.BudgetTier.PinColor(),
			ImageURL:    trip.ImageURL,
		})
	}

	switch len(trips) {
	case 0:
	case 1:
		center := trips[0].Coordinates
		view.Center = &center
		view.Zoom = singleTripZoom
	default:
		bounds := Bounds{
			South: trips[0].Coordinates.Lat,
			North: trips[0].Coordinates.Lat,
			West:  trips[0].Coordinates.Lng,
			East:  trips[0].Coordinates.Lng,
		}
		for _, trip := range trips[1:] {
			c := trip.Coordinates
			if c.Lat < bounds.South {
				bounds.South = c.Lat
			}
			if c.Lat > bounds.North {
				bounds.North = c.Lat
			}
			if c.Lng < bounds.West {
				bounds.West = c.Lng
			}
			if c.Lng > bounds.East {
				bounds.East = c.Lng
			}
		}
		view.Bounds = &bounds
	}
	return view
}

// ActivityPin is the emoji marker the per-trip activity map renders.
type ActivityPin struct {
	DayNumber   int               `json:"dia"`
	Name        string            `json:"nombre"`
	Emoji       string            `json:"emoji"`
	Coordinates types.Coordinates `json:"coordenadas"`
}

// ActivityPins flattens one trip's plan into ordered activity markers,
// preserving day order and the activity order within each day.
func ActivityPins(trip types.Trip) []ActivityPin {
	var pins []ActivityPin
	for _, day := range trip.Plan {
		for _, activity := range day.Activities {
			pins = append(pins, ActivityPin{
				DayNumber:   day.DayNumber,
				Name:        activity.Name,
				Emoji:       activity.Emoji,
				Coordinates: activity.Coordinates,
			})
		}
	}
	return pins
}
