package webhook

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/rescue_dashboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func TestNewAlertEvent(t *testing.T) {
	receivedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.FixedZone("X", 3*3600))
	incident := models.Incident{
		ID:          "42",
		Type:        models.TypeFire,
		Urgency:     models.UrgencyHigh,
		Latitude:    40.7,
		Longitude:   -74,
		Location:    "Downtown",
		Description: "Fire at the mall",
	}

	event := NewAlertEvent(incident, receivedAt)

	assert.Equal(t, "42", event.IncidentID)
	assert.Equal(t, models.UrgencyHigh, event.Urgency)
	assert.Equal(t, "Downtown", event.Location)
	assert.Equal(t, time.UTC, event.ReceivedAt.Location())
	assert.True(t, receivedAt.Equal(event.ReceivedAt))
}

func TestRedisAlertPublisher_PublishIsFIFO(t *testing.T) {
	client, mr := newTestRedis(t)
	publisher := NewRedisAlertPublisher(client)
	ctx := context.Background()

	require.NoError(t, publisher.Publish(ctx, AlertEvent{IncidentID: "1"}))
	require.NoError(t, publisher.Publish(ctx, AlertEvent{IncidentID: "2"}))

	items, err := mr.List(alertQueueKey)
	require.NoError(t, err)
	require.Len(t, items, 2)

	// BRPOP забирает с правого края
	first, err := client.RPop(ctx, alertQueueKey).Result()
	require.NoError(t, err)
	var event AlertEvent
	require.NoError(t, json.Unmarshal([]byte(first), &event))
	assert.Equal(t, "1", event.IncidentID)
}

func TestRedisAlertPublisher_RedisDown(t *testing.T) {
	client, mr := newTestRedis(t)
	publisher := NewRedisAlertPublisher(client)
	mr.Close()

	err := publisher.Publish(context.Background(), AlertEvent{IncidentID: "1"})

	assert.Error(t, err)
}
