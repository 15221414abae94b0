package utils

import (
	"context"
	"sync"
	"time"

	"bcal/config"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus names each backing service the API cannot run without. The
// reminder queue is the redis database asynq delivers booking reminders from.
type HealthStatus struct {
	Mongo         bool      `json:"mongo"`
	Cache         bool      `json:"cache"`
	AuthCache     bool      `json:"auth_cache"`
	ReminderQueue bool      `json:"reminder_queue"`
	CheckedAt     time.Time `json:"checkedAt"`
}

// Healthy reports whether every dependency answered the last probe.
func (h HealthStatus) Healthy() bool {
	return h.Mongo && h.Cache && h.AuthCache && h.ReminderQueue
}

var (
	currentHealth HealthStatus
	mu            sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	mu.RLock()
	defer mu.RUnlock()
	return currentHealth
}

// StartHealthMonitor probes mongo and each redis database periodically and
// updates the in-memory snapshot the health endpoint serves.
func StartHealthMonitor(cache, authCache *redis.Client, mongoClient *mongo.Client) {
	// The worker owns its asynq connection, so health gets its own client
	// against the same database.
	reminderQueue := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})

	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()

		ctx := context.Background()

		for range ticker.C {
			snapshot := HealthStatus{
				Mongo:         mongoClient.Ping(ctx, nil) == nil,
				Cache:         cache.Ping(ctx).Err() == nil,
				AuthCache:     authCache.Ping(ctx).Err() == nil,
				ReminderQueue: reminderQueue.Ping(ctx).Err() == nil,
				CheckedAt:     time.Now(),
			}

			mu.Lock()
			currentHealth = snapshot
			mu.Unlock()
		}
	}()
}
