package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/evelahealth/evela-backend/internal/platform/logger"
)

// StatusEvent is published whenever a report's pipeline status transitions.
// Consumers (a websocket gateway, a notification worker) are outside this
// process; the bus is pure fan-out.
type StatusEvent struct {
	ReportID string    `json:"report_id"`
	Status   string    `json:"status"`
	At       time.Time `json:"at"`
}

type StatusBus interface {
	Publish(ctx context.Context, evt StatusEvent) error
	Close() error
}

type statusBus struct {
	log     *logger.Logger
	rdb     *goredis.Client
	channel string
}

// IsConfigured reports whether REDIS_ADDR is set. The bus is optional; the
// pipeline runs without it.
func IsConfigured() bool {
	return strings.TrimSpace(os.Getenv("REDIS_ADDR")) != ""
}

func NewStatusBus(log *logger.Logger) (StatusBus, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	ch := strings.TrimSpace(os.Getenv("REDIS_CHANNEL"))
	if ch == "" {
		ch = "report-status"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &statusBus{
		log:     log.With("service", "RedisStatusBus"),
		rdb:     rdb,
		channel: ch,
	}, nil
}

func (b *statusBus) Publish(ctx context.Context, evt StatusEvent) error {
	if b == nil || b.rdb == nil {
		return fmt.Errorf("redis status bus not initialized")
	}
	if evt.At.IsZero() {
		evt.At = time.Now()
	}
	raw, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, b.channel, raw).Err()
}

func (b *statusBus) Close() error {
	if b == nil || b.rdb == nil {
		return nil
	}
	return b.rdb.Close()
}
