package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// keyCheckoutIdem maps a spent nonce to the order it produced:
// idem:checkout:{nonce} -> order_id
const keyCheckoutIdem = "idem:checkout:%s"

var ttlCheckoutIdem = 24 * time.Hour

// RedisIdemCache is the fast-path idempotency lookup in front of the
// intent ledger. The database stays the source of truth; cache errors are
// never fatal to a checkout.
type RedisIdemCache struct {
	rdb *redis.Client
}

func NewRedisIdemCache(rdb *redis.Client) *RedisIdemCache {
	return &RedisIdemCache{
		rdb: rdb,
	}
}

func (c *RedisIdemCache) GetOrderID(ctx context.Context, nonce string) (uuid.UUID, bool) {
	val, err := c.rdb.Get(ctx, fmt.Sprintf(keyCheckoutIdem, nonce)).Result()
	if err != nil {
		// a miss and a cache outage read the same; the intent ledger is
		// the source of truth either way
		return uuid.Nil, false
	}

	orderID, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, false
	}

	return orderID, true
}

func (c *RedisIdemCache) SetOrderID(ctx context.Context, nonce string, orderID uuid.UUID) {
	_ = c.rdb.Set(
		ctx,
		fmt.Sprintf(keyCheckoutIdem, nonce),
		orderID.String(),
		ttlCheckoutIdem,
	).Err()
}
