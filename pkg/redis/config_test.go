package redis

import (
	"testing"
	"time"

	"github.com/melbooking/melbooking_backend/config"
)

func TestFromCentralConfigDefaults(t *testing.T) {
	cfg := FromCentralConfig(config.RedisConfig{Addr: "cache:6379", DB: 2})

	if cfg.PoolSize != 10 || cfg.MinIdleConns != 2 {
		t.Errorf("pool = %d/%d, want 10/2", cfg.PoolSize, cfg.MinIdleConns)
	}
	if cfg.DialTimeout() != 5*time.Second {
		t.Errorf("DialTimeout() = %v", cfg.DialTimeout())
	}

	opt := cfg.AsynqOpt()
	if opt.Addr != "cache:6379" || opt.DB != 2 {
		t.Errorf("AsynqOpt() = %+v", opt)
	}
}

func TestFromCentralConfigOverrides(t *testing.T) {
	cfg := FromCentralConfig(config.RedisConfig{Addr: "x", PoolSize: 50, ReadTimeoutSeconds: 9})

	if cfg.PoolSize != 50 {
		t.Errorf("PoolSize = %d, want 50", cfg.PoolSize)
	}
	if cfg.ReadTimeout() != 9*time.Second {
		t.Errorf("ReadTimeout() = %v, want 9s", cfg.ReadTimeout())
	}
}

func TestNewRedisRejectsEmptyAddr(t *testing.T) {
	if _, err := NewRedis(Config{}); err == nil {
		t.Fatal("expected error for empty addr")
	}
}
