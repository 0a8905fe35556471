package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"geekynerds/internal/cart"
)

// cartChangedChannel is the pub/sub channel announcing snapshot writes, the
// storage-event analog for redis-backed deployments.
const cartChangedChannel = "cart:changed"

type CartRedis struct {
	rdb *redis.Client
}

func NewCartRedis(rdb *redis.Client) *CartRedis {
	return &CartRedis{rdb: rdb}
}

func (r *CartRedis) Load(ctx context.Context) ([]cart.Line, error) {
	raw, err := r.rdb.Get(ctx, snapshotKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cart snapshot get: %w", err)
	}

	var lines []cart.Line
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, fmt.Errorf("cart snapshot decode: %w", err)
	}
	return lines, nil
}

func (r *CartRedis) Save(ctx context.Context, lines []cart.Line) error {
	if lines == nil {
		lines = []cart.Line{}
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("cart snapshot encode: %w", err)
	}

	if err := r.rdb.Set(ctx, snapshotKey, raw, 0).Err(); err != nil {
		return fmt.Errorf("cart snapshot set: %w", err)
	}
	// Best effort: a missed publish only delays observers until the next
	// write.
	r.rdb.Publish(ctx, cartChangedChannel, "")
	return nil
}

// Watch subscribes to the cart-changed channel and invokes onChange per
// message. Blocks until ctx is done.
func (r *CartRedis) Watch(ctx context.Context, onChange func()) error {
	sub := r.rdb.Subscribe(ctx, cartChangedChannel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-ch:
			if !ok {
				return nil
			}
			onChange()
		}
	}
}
