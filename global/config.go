package global

import (
	"os"
	"strconv"
	"sync"
	"time"

	"RoomChat/logger"
	redis "RoomChat/service/storage/redis"
	ids "RoomChat/tools/ids"
)

// AppConfig is the process-wide configuration, loaded once from the
// environment with workable defaults for local development.
type AppConfig struct {
	ListenAddr    string
	GatewayID     string
	NodeID        int64
	JWTSecret     string
	AdminPassword string
	UserPassword  string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	AuditLogPath  string
	OnlineTTL     time.Duration
}

var (
	appCfg  *AppConfig
	cfgOnce sync.Once
)

func Config() *AppConfig {
	cfgOnce.Do(func() {
		appCfg = &AppConfig{
			ListenAddr:    getenv("LISTEN_ADDR", ":8080"),
			GatewayID:     getenv("GATEWAY_ID", "room_gw-1"),
			NodeID:        getenvInt64("NODE_ID", 100),
			JWTSecret:     getenv("JWT_SECRET", "your-secret-key"),
			AdminPassword: getenv("ADMIN_PASSWORD", "admin"),
			UserPassword:  getenv("USER_PASSWORD", "user"),
			RedisAddr:     getenv("REDIS_ADDR", ""),
			RedisPassword: getenv("REDIS_PASSWORD", ""),
			RedisDB:       int(getenvInt64("REDIS_DB", 0)),
			AuditLogPath:  getenv("AUDIT_LOG_PATH", "./chat-websocket.log"),
			OnlineTTL:     2 * time.Hour,
		}
	})
	return appCfg
}

func GetJwtSecret() []byte {
	return []byte(Config().JWTSecret)
}

func ConfigIds() {
	ids.SetNodeID(Config().NodeID)
}

// ConfigRedis connects the optional presence mirror. A missing REDIS_ADDR or
// an unreachable server downgrades the gateway to local-only presence.
func ConfigRedis() bool {
	cfg := Config()
	if cfg.RedisAddr == "" {
		logger.Info("[Redis] no REDIS_ADDR, presence mirror disabled")
		return false
	}
	err := redis.InitRedis(redis.Config{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		logger.Warnf("[Redis] init failed, presence mirror disabled: %v", err)
		return false
	}
	return true
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt64(key string, def int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		logger.Warnf("[Config] bad %s=%q, using %d", key, v, def)
		return def
	}
	return n
}
