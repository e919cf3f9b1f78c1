package persistence

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/finance-tracker/zfinance/internal/integration/persistence/model"
)

var (
	// ErrKeyNotFound is returned by KeyValue.Get for an absent key.
	ErrKeyNotFound = errors.New("key not found")

	// ErrQuotaExceeded is returned by KeyValue.Set when the value does not fit.
	ErrQuotaExceeded = errors.New("storage quota exceeded")
)

// KeyValue is the byte store behind the key-value transaction store.
type KeyValue interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

type redisKeyValue struct {
	client redis.Cmdable
}

// NewRedisKeyValue stores values as plain redis strings without expiry.
func NewRedisKeyValue(client redis.Cmdable) KeyValue {
	return &redisKeyValue{client: client}
}

func (r *redisKeyValue) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, nil
}

func (r *redisKeyValue) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (r *redisKeyValue) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

// MemoryKeyValue keeps values in process memory with an optional total size quota.
type MemoryKeyValue struct {
	mu     sync.RWMutex
	values map[string][]byte
	quota  int
}

// NewMemoryKeyValue creates an empty store. A quota of zero means unlimited.
func NewMemoryKeyValue(quota int) *MemoryKeyValue {
	return &MemoryKeyValue{
		values: make(map[string][]byte),
		quota:  quota,
	}
}

func (m *MemoryKeyValue) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.values[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return append([]byte(nil), value...), nil
}

func (m *MemoryKeyValue) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.quota > 0 {
		used := len(key) + len(value)
		for k, v := range m.values {
			if k != key {
				used += len(k) + len(v)
			}
		}
		if used > m.quota {
			return fmt.Errorf("%w: %d bytes requested, quota is %d", ErrQuotaExceeded, used, m.quota)
		}
	}

	m.values[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryKeyValue) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.values, key)
	m.mu.Unlock()
	return nil
}

type gormKeyValue struct {
	db *gorm.DB
}

// NewGormKeyValue stores values in the key_values table.
func NewGormKeyValue(db *gorm.DB) KeyValue {
	return &gormKeyValue{db: db}
}

func (g *gormKeyValue) Get(ctx context.Context, key string) ([]byte, error) {
	var row model.KeyValueModel
	err := g.db.WithContext(ctx).Where("key = ?", key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read key %s: %w", key, err)
	}
	return row.Value, nil
}

func (g *gormKeyValue) Set(ctx context.Context, key string, value []byte) error {
	row := model.KeyValueModel{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	err := g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	return nil
}

func (g *gormKeyValue) Delete(ctx context.Context, key string) error {
	if err := g.db.WithContext(ctx).Where("key = ?", key).Delete(&model.KeyValueModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}
