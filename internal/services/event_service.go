package services

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/akumar-dev/tweetpulse-be/internal/models"
	ws "github.com/akumar-dev/tweetpulse-be/internal/websocket"
)

// EventServiceProvider defines the interface for activity-event services.
type EventServiceProvider interface {
	CreateEvent(eventType, level, message string, username *string) error
	GetRecentEvents(limit int) ([]models.Event, error)
}

// EventService records activity events and pushes them to connected
// dashboard clients.
type EventService struct {
	db  *sql.DB
	hub *ws.Hub
}

// NewEventService creates a new EventService. hub may be nil in tests.
func NewEventService(db *sql.DB, hub *ws.Hub) *EventService {
	return &EventService{db: db, hub: hub}
}

// CreateEvent logs a new event and broadcasts it over the activity feed.
func (s *EventService) CreateEvent(eventType, level, message string, username *string) error {
	event := models.Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Level:     level,
		Message:   message,
		Username:  username,
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.db.Exec("INSERT INTO events (id, type, level, message, username, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		event.ID, event.Type, event.Level, event.Message, event.Username, event.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return err
	}

	if s.hub != nil {
		select {
		case s.hub.Broadcast <- ws.NewEventMessage(event):
		default:
			// Feed full; the event is already persisted.
		}
	}
	return nil
}

// GetRecentEvents retrieves the most recent events from the database.
func (s *EventService) GetRecentEvents(limit int) ([]models.Event, error) {
	rows, err := s.db.Query("SELECT id, type, level, message, username, created_at FROM events ORDER BY created_at DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var event models.Event
		var createdAt string
		if err := rows.Scan(&event.ID, &event.Type, &event.Level, &event.Message, &event.Username, &createdAt); err != nil {
			return nil, err
		}
		event.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		events = append(events, event)
	}
	return events, rows.Err()
}
