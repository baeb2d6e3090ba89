package storage

import (
	"context"
	"fmt"
	"time"

	redis2 "RoomChat/service/storage/redis"

	"github.com/redis/go-redis/v9"
)

// OnlineManager mirrors per-connection online state into redis so operators
// can see who is connected to which gateway node. The gateway treats it as
// fire-and-forget; a nil manager disables the mirror entirely.
type OnlineManager struct {
	node string
	ttl  time.Duration
	rdb  *redis.Client
}

func NewOnlineManager(node string, ttl time.Duration) *OnlineManager {
	if !redis2.Ready() {
		return nil
	}
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &OnlineManager{node: node, ttl: ttl, rdb: redis2.GetRedis()}
}

func (m *OnlineManager) key(user, connID string) string {
	return fmt.Sprintf("online:%s:u:%s:c:%s", m.node, user, connID)
}

// Online marks a connection as live. Safe on a nil receiver.
func (m *OnlineManager) Online(ctx context.Context, user, connID string) error {
	if m == nil || m.rdb == nil {
		return nil
	}
	return m.rdb.Set(ctx, m.key(user, connID), time.Now().Unix(), m.ttl).Err()
}

// Offline drops the mark. Safe on a nil receiver.
func (m *OnlineManager) Offline(ctx context.Context, user, connID string) error {
	if m == nil || m.rdb == nil {
		return nil
	}
	return m.rdb.Del(ctx, m.key(user, connID)).Err()
}
