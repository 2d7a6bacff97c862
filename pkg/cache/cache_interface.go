package cache

import (
	"context"
	"time"
)

// Cache interface định nghĩa contract cho cache layer
// Cho phép swap implementation (Redis, no-op)
type Cache interface {
	// Get lấy data từ cache và unmarshal vào dest
	// Returns: (found bool, error)
	// - found = true: cache hit, data đã unmarshal vào dest
	// - found = false: cache miss, dest không bị thay đổi
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set lưu data vào cache với TTL
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete xóa các keys khỏi cache
	Delete(ctx context.Context, keys ...string) error

	// Ping kiểm tra connection
	Ping(ctx context.Context) error
}

// Nop is a Cache that never stores anything. Used when Redis is disabled
// or unreachable at startup, so repositories always read through to the store.
type Nop struct{}

func (Nop) Get(context.Context, string, interface{}) (bool, error) { return false, nil }

func (Nop) Set(context.Context, string, interface{}, time.Duration) error { return nil }

func (Nop) Delete(context.Context, ...string) error { return nil }

func (Nop) Ping(context.Context) error { return nil }
