// Package cache holds Redis-backed read caches.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const (
	salaryKeyPrefix     = "employee-service:avg-salary:"
	generationKeyPrefix = "employee-service:avg-salary-gen:"
)

// SalaryCache stores per-department salary averages.
type SalaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSalaryCache builds a cache whose entries expire after ttl.
func NewSalaryCache(client *redis.Client, ttl time.Duration) *SalaryCache {
	return &SalaryCache{client: client, ttl: ttl}
}

// Get returns the cached average and whether it was present.
func (c *SalaryCache) Get(ctx context.Context, departmentID int64) (decimal.Decimal, bool, error) {
	raw, err := c.client.Get(ctx, salaryKey(departmentID)).Result()
	if errors.Is(err, redis.Nil) {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, err
	}
	avg, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("decode cached average %q: %w", raw, err)
	}
	return avg, true, nil
}

// Generation returns the department's invalidation counter. Read it before
// computing an average and hand it back to Set.
func (c *SalaryCache) Generation(ctx context.Context, departmentID int64) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey(departmentID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// Set stores the average for a department unless an invalidation happened
// since gen was read. It reports whether the value was stored.
func (c *SalaryCache) Set(ctx context.Context, departmentID int64, gen int64, avg decimal.Decimal) (bool, error) {
	stored := false
	genKey := generationKey(departmentID)
	err := c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != gen {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, salaryKey(departmentID), avg.String(), c.ttl)
			return nil
		})
		if err != nil {
			return err
		}
		stored = true
		return nil
	}, genKey)
	if errors.Is(err, redis.TxFailedErr) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return stored, nil
}

// Invalidate drops the cached averages of the given departments and bumps
// their generations in one transaction.
func (c *SalaryCache) Invalidate(ctx context.Context, departmentIDs ...int64) error {
	if len(departmentIDs) == 0 {
		return nil
	}
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range departmentIDs {
			pipe.Incr(ctx, generationKey(id))
			pipe.Del(ctx, salaryKey(id))
		}
		return nil
	})
	return err
}

func salaryKey(departmentID int64) string {
	return salaryKeyPrefix + strconv.FormatInt(departmentID, 10)
}

func generationKey(departmentID int64) string {
	return generationKeyPrefix + strconv.FormatInt(departmentID, 10)
}
