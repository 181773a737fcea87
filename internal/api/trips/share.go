package trips

import (
	"fmt"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

// ShareContent is the payload the UI hands to the Web Share API or copies to
// the clipboard. Delivery failures stay a presentation concern.
type ShareContent struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

func BuildShareContent(trip types.Trip) ShareContent {
	return ShareContent{
		Title: fmt.Sprintf("Mi viaje: %s", trip.Title),
		Text: fmt.Sprintf("¡Mira este increíble itinerario para un viaje a %s que he creado con IA!\n\n%s",
			trip.Location, trip.Description),
	}
}
