package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/rescue_dashboard/internal/models"
)

const (
	alertQueueKey = "dashboard_alerts"
)

// AlertEvent - оповещение о новом срочном инциденте, полученном по push-каналу
type AlertEvent struct {
	IncidentID  string              `json:"incident_id"`
	Type        models.IncidentType `json:"type"`
	Urgency     models.Urgency      `json:"urgency"`
	Latitude    float64             `json:"latitude"`
	Longitude   float64             `json:"longitude"`
	Location    string              `json:"location"`
	Description string              `json:"description"`
	ReceivedAt  time.Time           `json:"received_at"`
}

// NewAlertEvent собирает оповещение из инцидента
func NewAlertEvent(incident models.Incident, receivedAt time.Time) AlertEvent {
	return AlertEvent{
		IncidentID:  incident.ID,
		Type:        incident.Type,
		Urgency:     incident.Urgency,
		Latitude:    incident.Latitude,
		Longitude:   incident.Longitude,
		Location:    incident.Location,
		Description: incident.Description,
		ReceivedAt:  receivedAt.UTC(),
	}
}

// AlertPublisher - интерфейс для публикации оповещений
type AlertPublisher interface {
	Publish(ctx context.Context, event AlertEvent) error
}

// RedisAlertPublisher - реализация AlertPublisher, использующая список Redis как очередь
type RedisAlertPublisher struct {
	redisClient *redis.Client
}

// NewRedisAlertPublisher создает новый RedisAlertPublisher
func NewRedisAlertPublisher(client *redis.Client) *RedisAlertPublisher {
	return &RedisAlertPublisher{
		redisClient: client,
	}
}

// Publish кладет оповещение в очередь Redis
func (p *RedisAlertPublisher) Publish(ctx context.Context, event AlertEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal alert event: %w", err)
	}

	// LPUSH + BRPOP в воркере дают FIFO
	if err := p.redisClient.LPush(ctx, alertQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish alert event to Redis: %w", err)
	}
	return nil
}
