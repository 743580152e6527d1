package push

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shenikar/rescue_dashboard/internal/models"
)

// Имена событий, которые рассылает бэкенд
const (
	EventNewIncident      = "new_incident"
	EventIncidentUpdated  = "incident_updated"
	EventIncidentVerified = "incident_verified"
	EventIncidentDeleted  = "incident_deleted"
)

var (
	ErrUnknownEvent   = errors.New("push: unknown event")
	ErrMalformedEvent = errors.New("push: malformed event payload")
)

// Event - типизированное событие. Конкретный тип определяется через type switch.
type Event interface {
	EventName() string
}

// NewIncident - создан новый инцидент
type NewIncident struct {
	Incident models.Incident
}

// IncidentUpdated приходит в двух формах: полная запись или {incident_id, update}.
// Во второй форме Incident равен nil, а Update содержит только измененные поля.
type IncidentUpdated struct {
	IncidentID string
	Incident   *models.Incident
	Update     map[string]json.RawMessage
	Archived   bool
}

// IncidentVerified - инцидент подтвержден
type IncidentVerified struct {
	ID string
}

// IncidentDeleted - инцидент удален на бэкенде
type IncidentDeleted struct {
	ID string
}

func (NewIncident) EventName() string      { return EventNewIncident }
func (IncidentUpdated) EventName() string  { return EventIncidentUpdated }
func (IncidentVerified) EventName() string { return EventIncidentVerified }
func (IncidentDeleted) EventName() string  { return EventIncidentDeleted }

// DecodeEvent разбирает полезную нагрузку события по его имени
func DecodeEvent(name string, data json.RawMessage) (Event, error) {
	switch name {
	case EventNewIncident:
		var incident models.Incident
		if err := json.Unmarshal(data, &incident); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrMalformedEvent, name, err)
		}
		if incident.ID == "" {
			return nil, fmt.Errorf("%w: %s: id is missing", ErrMalformedEvent, name)
		}
		return NewIncident{Incident: incident}, nil
	case EventIncidentUpdated:
		return decodeUpdated(data)
	case EventIncidentVerified, EventIncidentDeleted:
		id, err := decodeID(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrMalformedEvent, name, err)
		}
		if name == EventIncidentVerified {
			return IncidentVerified{ID: id}, nil
		}
		return IncidentDeleted{ID: id}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownEvent, name)
}

func decodeUpdated(data json.RawMessage) (Event, error) {
	var probe struct {
		IncidentID string                     `json:"incident_id"`
		Update     map[string]json.RawMessage `json:"update"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformedEvent, EventIncidentUpdated, err)
	}

	if probe.Update != nil {
		if probe.IncidentID == "" {
			return nil, fmt.Errorf("%w: %s: incident_id is missing", ErrMalformedEvent, EventIncidentUpdated)
		}
		ev := IncidentUpdated{IncidentID: probe.IncidentID, Update: probe.Update}
		if raw, ok := probe.Update["archived"]; ok {
			_ = json.Unmarshal(raw, &ev.Archived)
		}
		return ev, nil
	}

	var incident models.Incident
	if err := json.Unmarshal(data, &incident); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformedEvent, EventIncidentUpdated, err)
	}
	if incident.ID == "" {
		return nil, fmt.Errorf("%w: %s: id is missing", ErrMalformedEvent, EventIncidentUpdated)
	}
	return IncidentUpdated{IncidentID: incident.ID, Incident: &incident, Archived: incident.Archived}, nil
}

// decodeID принимает как {id}, так и {incident_id}
func decodeID(data json.RawMessage) (string, error) {
	var payload struct {
		ID         string `json:"id"`
		IncidentID string `json:"incident_id"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", err
	}
	if payload.ID != "" {
		return payload.ID, nil
	}
	if payload.IncidentID != "" {
		return payload.IncidentID, nil
	}
	return "", errors.New("id is missing")
}
