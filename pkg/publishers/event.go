package publishers

import (
	"time"

	"github.com/Adda-Baaj/fivem-status/internal/domain"
)

// EventStatusChanged is the only event type emitted today.
const EventStatusChanged = "server.status_changed"

// Event is the payload published downstream when a server's status changes.
type Event struct {
	Type        string              `json:"type"`
	ServerID    string              `json:"server_id"`
	ServerName  string              `json:"server_name"`
	Status      domain.ServerStatus `json:"status"`
	Fingerprint string              `json:"fingerprint"`
	PublishedAt time.Time           `json:"published_at"`
}

// NewEvent builds a status-changed event for the given server.
func NewEvent(serverID, serverName string, status domain.ServerStatus) Event {
	return Event{
		Type:        EventStatusChanged,
		ServerID:    serverID,
		ServerName:  serverName,
		Status:      status,
		Fingerprint: status.Fingerprint(),
		PublishedAt: time.Now().UTC(),
	}
}

// attributes are attached as message attributes by the queue/topic sinks.
func (e Event) attributes() map[string]string {
	return map[string]string{
		"event_type": e.Type,
		"server_id":  e.ServerID,
	}
}
