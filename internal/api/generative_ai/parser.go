package generativeAI

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

func parseItinerary(jsonStr string) (*types.GeneratedItinerary, error) {
	var itinerary types.GeneratedItinerary
	if err := json.Unmarshal([]byte(strings.TrimSpace(jsonStr)), &itinerary); err != nil {
		return nil, fmt.Errorf("failed to parse itinerary JSON: %w", err)
	}
	return &itinerary, nil
}

// validateItinerary rejects structured output that is schema-shaped but
// semantically broken: empty title/location, an empty plan, non-positive day
// numbers, or coordinates outside the valid geographic range.
func validateItinerary(itinerary *types.GeneratedItinerary) error {
	if strings.TrimSpace(itinerary.Title) == "" {
		return fmt.Errorf("itinerary response missing title")
	}
	if strings.TrimSpace(itinerary.Location) == "" {
		return fmt.Errorf("itinerary response missing location")
	}
	if !itinerary.Coordinates.InRange() {
		return fmt.Errorf("itinerary coordinates out of range: %+v", itinerary.Coordinates)
	}
	if len(itinerary.Plan) == 0 {
		return fmt.Errorf("itinerary response contains no day plans")
	}
	for i, day := range itinerary.Plan {
		if day.DayNumber < 1 {
			return fmt.Errorf("day plan %d has invalid day number %d", i+1, day.DayNumber)
		}
		for _, activity := range day.Activities {
			if !activity.Coordinates.InRange() {
				return fmt.Errorf("activity %q on day %d has coordinates out of range", activity.Name, day.DayNumber)
			}
		}
	}
	return nil
}
