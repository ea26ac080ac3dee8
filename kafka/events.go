package kafka

import "time"

// ActivityLoggedEvent mirrors one activity log entry onto the bus.
type ActivityLoggedEvent struct {
	EventID     string    `json:"event_id"`
	EventType   string    `json:"event_type"`
	LogID       uint      `json:"log_id"`
	UserID      uint      `json:"user_id"`
	ActionType  string    `json:"action_type"`
	Description string    `json:"description"`
	LoggedAt    time.Time `json:"logged_at"`
	PublishedAt time.Time `json:"published_at"`
}

// Event types
const (
	EventTypeActivityLogged = "activity.logged"
)

// Kafka topics
const (
	DefaultTopicActivityLogs = "cafe-activity-logs"
)
