package models

import (
	"strings"
	"time"
)

// IncidentType - тип происшествия
type IncidentType string

const (
	TypeFire             IncidentType = "fire"
	TypeFlood            IncidentType = "flood"
	TypePeopleTrapped    IncidentType = "people_trapped"
	TypeBuildingCollapse IncidentType = "building_collapse"
	TypeMedical          IncidentType = "medical"
	TypeEarthquake       IncidentType = "earthquake"
	TypeLandslide        IncidentType = "landslide"
	TypeOther            IncidentType = "other"
)

// Urgency - уровень срочности
type Urgency string

const (
	UrgencyHigh   Urgency = "high"
	UrgencyMedium Urgency = "medium"
	UrgencyLow    Urgency = "low"
)

// IncidentStatus - статус обработки инцидента
type IncidentStatus string

const (
	StatusPending    IncidentStatus = "pending"
	StatusInProgress IncidentStatus = "in_progress"
	StatusResolved   IncidentStatus = "resolved"
	StatusFalseAlarm IncidentStatus = "false_alarm"
)

// LocalImageScheme помечает изображения, которые не были загружены в хранилище и не должны запрашиваться по сети
const LocalImageScheme = "local://"

var incidentTypes = map[IncidentType]struct{}{
	TypeFire: {}, TypeFlood: {}, TypePeopleTrapped: {}, TypeBuildingCollapse: {},
	TypeMedical: {}, TypeEarthquake: {}, TypeLandslide: {}, TypeOther: {},
}

// Valid проверяет, что тип входит в закрытое перечисление
func (t IncidentType) Valid() bool {
	_, ok := incidentTypes[t]
	return ok
}

func (u Urgency) Valid() bool {
	return u == UrgencyHigh || u == UrgencyMedium || u == UrgencyLow
}

// Rank возвращает позицию в перечислении high, medium, low. Неизвестные значения идут последними.
func (u Urgency) Rank() int {
	switch u {
	case UrgencyHigh:
		return 0
	case UrgencyMedium:
		return 1
	case UrgencyLow:
		return 2
	}
	return 3
}

func (s IncidentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved, StatusFalseAlarm:
		return true
	}
	return false
}

// Incident - запись о происшествии, полученная от бэкенда
type Incident struct {
	ID             string         `json:"id"`
	Type           IncidentType   `json:"type"`
	Latitude       float64        `json:"latitude"`
	Longitude      float64        `json:"longitude"`
	Urgency        Urgency        `json:"urgency"`
	Confidence     float64        `json:"confidence"`
	Timestamp      string         `json:"timestamp"`
	Description    string         `json:"description"`
	Location       string         `json:"location"`
	PeopleAffected *int           `json:"people_affected,omitempty"`
	ImageURL       string         `json:"image_url,omitempty"`
	Verified       *bool          `json:"verified,omitempty"`
	VerifiedBy     string         `json:"verified_by,omitempty"`
	Status         IncidentStatus `json:"status,omitempty"`
	Archived       bool           `json:"archived,omitempty"`
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// ParsedTimestamp разбирает ISO-8601 метку. Метки без зоны считаются UTC.
func (i *Incident) ParsedTimestamp() (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, i.Timestamp); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// IsVerified трактует отсутствующее значение как false
func (i *Incident) IsVerified() bool {
	return i.Verified != nil && *i.Verified
}

// HasRemoteImage сообщает, можно ли запрашивать ImageURL по сети
func (i *Incident) HasRemoteImage() bool {
	return i.ImageURL != "" && !strings.HasPrefix(i.ImageURL, LocalImageScheme)
}

// Clone возвращает копию без общих указателей
func (i Incident) Clone() Incident {
	if i.PeopleAffected != nil {
		v := *i.PeopleAffected
		i.PeopleAffected = &v
	}
	if i.Verified != nil {
		v := *i.Verified
		i.Verified = &v
	}
	return i
}

// DashboardStats - агрегированная статистика по коллекции
type DashboardStats struct {
	TotalIncidents   int     `json:"total_incidents"`
	HighUrgency      int     `json:"high_urgency"`
	ActiveResponders int     `json:"active_responders"`
	AvgResponseTime  float64 `json:"avg_response_time"`
}

// Snapshot - полный срез инцидентов и статистики
type Snapshot struct {
	Incidents []Incident      `json:"incidents"`
	Stats     *DashboardStats `json:"stats,omitempty"`
}

// FilterState - набор структурных фильтров. Nil означает отсутствие фильтра.
type FilterState struct {
	Type     *IncidentType `json:"type,omitempty"`
	Urgency  *Urgency      `json:"urgency,omitempty"`
	Verified *bool         `json:"verified,omitempty"`
}

// Empty сообщает, что ни один фильтр не задан
func (f FilterState) Empty() bool {
	return f.Type == nil && f.Urgency == nil && f.Verified == nil
}
