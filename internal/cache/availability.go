package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/salonkit/salon-scheduler/internal/config"
	"github.com/salonkit/salon-scheduler/internal/domain/scheduling"
)

// TTL curto: a disponibilidade muda a cada agendamento e o cache só
// amortece rajadas de consulta na página pública.
const availabilityTTL = 30 * time.Second

// AvailabilityCache guarda o resultado do cálculo de disponibilidade
// por (salão, profissional, data). Sem Redis configurado, todas as
// operações viram no-op e o cálculo roda sempre ao vivo.
type AvailabilityCache struct {
	rdb *redis.Client
}

func NewAvailabilityCache(cfg *config.Config) *AvailabilityCache {
	if cfg.RedisAddr == "" {
		return &AvailabilityCache{}
	}

	return &AvailabilityCache{
		rdb: redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		}),
	}
}

func key(businessID uint, staffID *uint, date string) string {
	staff := "any"
	if staffID != nil {
		staff = fmt.Sprintf("%d", *staffID)
	}
	return fmt.Sprintf("avail:%d:%s:%s", businessID, staff, date)
}

func (c *AvailabilityCache) Get(
	ctx context.Context,
	businessID uint,
	staffID *uint,
	date string,
) (*scheduling.Availability, bool) {

	if c == nil || c.rdb == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, key(businessID, staffID, date)).Result()
	if err != nil {
		return nil, false
	}

	var av scheduling.Availability
	if err := json.Unmarshal([]byte(raw), &av); err != nil {
		return nil, false
	}
	return &av, true
}

func (c *AvailabilityCache) Set(
	ctx context.Context,
	businessID uint,
	staffID *uint,
	date string,
	av *scheduling.Availability,
) {
	if c == nil || c.rdb == nil || av == nil {
		return
	}

	raw, err := json.Marshal(av)
	if err != nil {
		return
	}

	// erro de cache nunca afeta a resposta
	c.rdb.Set(ctx, key(businessID, staffID, date), raw, availabilityTTL)
}

// Invalidate limpa a data inteira do salão, inclusive a visão "any".
func (c *AvailabilityCache) Invalidate(
	ctx context.Context,
	businessID uint,
	staffID *uint,
	date string,
) {
	if c == nil || c.rdb == nil {
		return
	}

	keys := []string{key(businessID, nil, date)}
	if staffID != nil {
		keys = append(keys, key(businessID, staffID, date))
	}
	c.rdb.Del(ctx, keys...)
}
