package resource

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds resource limits.
type Config struct {
	// MemoryLimitBytes is the hard limit for managed memory
	// (aggregator-owned arrays and overflow maps).
	// If 0, no hard limit is enforced (only tracking).
	MemoryLimitBytes int64

	// MaxConcurrentQueries is the maximum number of query executions
	// running at once. If 0, defaults to 1.
	MaxConcurrentQueries int64

	// QueriesPerSec is the query admission rate.
	// If 0, unlimited.
	QueriesPerSec float64
}

// Controller manages global resources (memory, query concurrency, admission).
// It is the memory pool backing aggregator-owned arrays: every large
// allocation is acquired here and released back on aggregator close.
type Controller struct {
	cfg Config

	// Memory
	memSem  *semaphore.Weighted // nil if unlimited
	memUsed atomic.Int64

	// Concurrency
	querySem *semaphore.Weighted

	// Admission
	queryLimiter *rate.Limiter
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	if cfg.MaxConcurrentQueries <= 0 {
		cfg.MaxConcurrentQueries = 1
	}

	c := &Controller{
		cfg:      cfg,
		querySem: semaphore.NewWeighted(cfg.MaxConcurrentQueries),
	}

	if cfg.MemoryLimitBytes > 0 {
		c.memSem = semaphore.NewWeighted(cfg.MemoryLimitBytes)
	}

	if cfg.QueriesPerSec > 0 {
		c.queryLimiter = rate.NewLimiter(rate.Limit(cfg.QueriesPerSec), 1)
	}

	return c
}

// AcquireMemory attempts to reserve memory.
// If a hard limit is configured and usage would exceed it,
// this blocks until memory is available or ctx is canceled.
func (c *Controller) AcquireMemory(ctx context.Context, bytes int64) error {
	if c == nil {
		return nil
	}
	if bytes <= 0 {
		return nil
	}

	if c.memSem != nil {
		if err := c.memSem.Acquire(ctx, bytes); err != nil {
			return err
		}
	}

	c.memUsed.Add(bytes)
	return nil
}

// TryAcquireMemory attempts to reserve memory without blocking.
// Returns true if acquired, false if the limit would be exceeded.
func (c *Controller) TryAcquireMemory(bytes int64) bool {
	if c == nil {
		return true
	}
	if bytes <= 0 {
		return true
	}

	if c.memSem != nil {
		if !c.memSem.TryAcquire(bytes) {
			return false
		}
	}

	c.memUsed.Add(bytes)
	return true
}

// ReleaseMemory releases reserved memory.
func (c *Controller) ReleaseMemory(bytes int64) {
	if c == nil {
		return
	}
	if bytes <= 0 {
		return
	}

	if c.memSem != nil {
		c.memSem.Release(bytes)
	}
	c.memUsed.Add(-bytes)
}

// MemoryUsage returns the current memory usage in bytes.
func (c *Controller) MemoryUsage() int64 {
	return c.memUsed.Load()
}

// AcquireQuery reserves a query execution slot, waiting for admission if a
// rate limit is configured. Blocks if all slots are busy.
func (c *Controller) AcquireQuery(ctx context.Context) error {
	if c.queryLimiter != nil {
		if err := c.queryLimiter.Wait(ctx); err != nil {
			return err
		}
	}
	return c.querySem.Acquire(ctx, 1)
}

// TryAcquireQuery attempts to reserve a query slot without blocking.
// The admission limiter is consulted but not waited on.
func (c *Controller) TryAcquireQuery() bool {
	if c.queryLimiter != nil && !c.queryLimiter.Allow() {
		return false
	}
	return c.querySem.TryAcquire(1)
}

// ReleaseQuery releases a query execution slot.
func (c *Controller) ReleaseQuery() {
	c.querySem.Release(1)
}
