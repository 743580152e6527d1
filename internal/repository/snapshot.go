package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/rescue_dashboard/internal/models"
	"github.com/shenikar/rescue_dashboard/internal/service"
)

const snapshotKey = "dashboard:snapshot"

// SnapshotRepository хранит последний срез дашборда в Redis
type SnapshotRepository struct {
	redisClient *redis.Client
	ttl         time.Duration
}

func NewSnapshotRepository(redisClient *redis.Client, ttl time.Duration) service.SnapshotCache {
	return &SnapshotRepository{
		redisClient: redisClient,
		ttl:         ttl,
	}
}

// cachedSnapshot - срез с временем сохранения
type cachedSnapshot struct {
	models.Snapshot
	SavedAt time.Time `json:"saved_at"`
}

// SaveSnapshot сохраняет срез в Redis
func (r *SnapshotRepository) SaveSnapshot(ctx context.Context, snapshot *models.Snapshot) error {
	val, err := json.Marshal(cachedSnapshot{Snapshot: *snapshot, SavedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot for cache: %w", err)
	}
	// ttl 0 означает хранение без срока
	if err := r.redisClient.Set(ctx, snapshotKey, val, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set snapshot in cache: %w", err)
	}
	return nil
}

// LoadSnapshot пытается получить срез из Redis. Отсутствие среза - не ошибка.
func (r *SnapshotRepository) LoadSnapshot(ctx context.Context) (*models.Snapshot, error) {
	val, err := r.redisClient.Get(ctx, snapshotKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get snapshot from cache: %w", err)
	}

	cached := &cachedSnapshot{}
	if err := json.Unmarshal(val, cached); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot from cache: %w", err)
	}
	if cached.Incidents == nil {
		cached.Incidents = []models.Incident{}
	}
	return &cached.Snapshot, nil
}
