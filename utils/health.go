package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Mongo     bool      `json:"mongo"`
	Redis     bool      `json:"redis"`
	CheckedAt time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

// StartHealthMonitor performs periodic health checks and updates in-memory state.
func StartHealthMonitor(redisClient *redis.Client, mongoClient *mongo.Client) {
	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()

		ctx := context.Background()

		for range ticker.C {
			status := HealthStatus{CheckedAt: time.Now()}

			pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
			if mongoClient != nil && mongoClient.Ping(pingCtx, nil) == nil {
				status.Mongo = true
			}
			cancel()

			pingCtx, cancel = context.WithTimeout(ctx, 2*time.Second)
			if redisClient != nil && redisClient.Ping(pingCtx).Err() == nil {
				status.Redis = true
			}
			cancel()

			healthMu.Lock()
			currentHealth = status
			healthMu.Unlock()
		}
	}()
}
