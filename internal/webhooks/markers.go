package webhooks

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Markers remembers recently processed webhook deliveries in Redis so
// gateway re-deliveries can be acknowledged without touching the
// database. It is strictly best-effort: the database handlers are
// idempotent on their own, and any Redis failure just disables the
// short-circuit.
type Markers struct {
	client *redis.Client
	ttl    time.Duration
}

func NewMarkers(client *redis.Client, ttl time.Duration) *Markers {
	return &Markers{client: client, ttl: ttl}
}

// Seen reports whether this delivery was already fully processed.
func (m *Markers) Seen(ctx context.Context, key string) bool {
	if m == nil || m.client == nil {
		return false
	}
	n, err := m.client.Exists(ctx, key).Result()
	if err != nil {
		return false
	}
	return n > 0
}

// Mark records a processed delivery. Called only after the database
// transaction committed, so a crash in between re-processes instead of
// skipping.
func (m *Markers) Mark(ctx context.Context, key string) {
	if m == nil || m.client == nil {
		return
	}
	m.client.Set(ctx, key, "1", m.ttl)
}
