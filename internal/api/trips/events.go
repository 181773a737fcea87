package trips

import "time"

// StoreEvent notifies subscribers that the store changed. Presentation
// reactions (switching to the feed, clearing the sort, scrolling the card
// into view) hang off these events instead of living inside the store.
type StoreEvent struct {
	Type      string    `json:"type"`
	TripID    string    `json:"trip_id,omitempty"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	EventGenerationStarted = "generation_started"
	EventTripCreated       = "trip_created"
	EventTripUpdated       = "trip_updated"
	EventGenerationFailed  = "generation_failed"
	EventSelectionChanged  = "selection_changed"
)

// Subscribe registers a change listener. The returned cancel func must be
// called when the consumer goes away. Slow consumers have events dropped
// rather than blocking the store.
func (s *Store) Subscribe() (<-chan StoreEvent, func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	ch := make(chan StoreEvent, 16)
	s.subscribers[id] = ch

	cancel := func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		if existing, ok := s.subscribers[id]; ok {
			delete(s.subscribers, id)
			close(existing)
		}
	}
	return ch, cancel
}

func (s *Store) publish(event StoreEvent) {
	event.Timestamp = time.Now()

	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}
