package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Mongo     bool      `json:"mongo"`
	Redis     *bool     `json:"redis,omitempty"`
	CheckedAt time.Time `json:"checkedAt"`
}

// Healthy reports whether every configured dependency answered.
func (s HealthStatus) Healthy() bool {
	return s.Mongo && (s.Redis == nil || *s.Redis)
}

// HealthMonitor pings MongoDB and, if configured, Redis on a fixed interval.
type HealthMonitor struct {
	mongoClient *mongo.Client
	redisClient *redis.Client
	interval    time.Duration
	logger      *zap.Logger

	mu      sync.RWMutex
	current HealthStatus
}

func NewHealthMonitor(mongoClient *mongo.Client, redisClient *redis.Client, interval time.Duration, logger *zap.Logger) *HealthMonitor {
	if interval <= 0 {
		interval = 60 * time.Second
	}
	return &HealthMonitor{
		mongoClient: mongoClient,
		redisClient: redisClient,
		interval:    interval,
		logger:      logger,
	}
}

// Status returns latest stored health snapshot.
func (m *HealthMonitor) Status() HealthStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Check runs one round of pings and stores the result.
func (m *HealthMonitor) Check(ctx context.Context) HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, HealthCheckTimeout)
	defer cancel()

	status := HealthStatus{CheckedAt: time.Now()}
	if m.mongoClient != nil {
		status.Mongo = m.mongoClient.Ping(ctx, nil) == nil
	}
	if m.redisClient != nil {
		ok := m.redisClient.Ping(ctx).Err() == nil
		status.Redis = &ok
	}
	if !status.Healthy() {
		m.logger.Warn("health check failed", zap.Bool("mongo", status.Mongo), zap.Any("redis", status.Redis))
	}

	m.mu.Lock()
	m.current = status
	m.mu.Unlock()
	return status
}

// Start performs an initial check and then re-checks until ctx is done.
func (m *HealthMonitor) Start(ctx context.Context) {
	m.Check(ctx)
	go func() {
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.Check(ctx)
			}
		}
	}()
}
