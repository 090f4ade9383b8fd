// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"studyflow_backend/internal/feature/tarefa/domain/entity"
	"studyflow_backend/internal/feature/tarefa/usecase"
	"studyflow_backend/internal/platform/logger"
)

const (
	defaultTTL       = 5 * time.Minute
	defaultNamespace = "tarefas"
	scanCount        = 200
)

// CachingTarefaRepository decorates a TarefaRepository with Redis caching.
// Keys always contain the owner id, so one user's entries can never answer another user's query.
type CachingTarefaRepository struct {
	inner     usecase.TarefaRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.TarefaRepository = (*CachingTarefaRepository)(nil)

// NewCachingTarefaRepository decorates a TarefaRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "tarefas".
// A nil rdb disables caching and every call goes straight to inner.
func NewCachingTarefaRepository(rdb *redis.Client, ttl time.Duration, inner usecase.TarefaRepository, namespace string) *CachingTarefaRepository {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if namespace == "" {
		namespace = defaultNamespace
	}
	return &CachingTarefaRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// List returns owner's tasks, from cache when possible.
func (c *CachingTarefaRepository) List(ctx context.Context, owner uint) ([]entity.Tarefa, error) {
	if c.rdb == nil {
		return c.inner.List(ctx, owner)
	}
	key := c.listKey(owner)

	var cached []entity.Tarefa
	if c.load(ctx, key, &cached) {
		for i := range cached {
			cached[i].IDUsuario = owner
		}
		return cached, nil
	}

	out, err := c.inner.List(ctx, owner)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, out)
	return out, nil
}

// Get returns one of owner's tasks, from cache when possible.
func (c *CachingTarefaRepository) Get(ctx context.Context, owner, id uint) (*entity.Tarefa, error) {
	if c.rdb == nil {
		return c.inner.Get(ctx, owner, id)
	}
	key := c.itemKey(owner, id)

	var cached entity.Tarefa
	if c.load(ctx, key, &cached) {
		cached.IDUsuario = owner
		return &cached, nil
	}

	out, err := c.inner.Get(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, out)
	return out, nil
}

// ListByFilter is not cached.
func (c *CachingTarefaRepository) ListByFilter(ctx context.Context, owner uint, f entity.Filtro) ([]entity.Tarefa, error) {
	return c.inner.ListByFilter(ctx, owner, f)
}

// Exists is not cached.
func (c *CachingTarefaRepository) Exists(ctx context.Context, owner, id uint) (bool, error) {
	return c.inner.Exists(ctx, owner, id)
}

// Create inserts a task and invalidates owner's entries.
func (c *CachingTarefaRepository) Create(ctx context.Context, owner uint, d entity.Dados) (*entity.Tarefa, error) {
	out, err := c.inner.Create(ctx, owner, d)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, owner)
	return out, nil
}

// Update rewrites a task and invalidates owner's entries when a row changed.
func (c *CachingTarefaRepository) Update(ctx context.Context, owner, id uint, d entity.Dados) (bool, error) {
	ok, err := c.inner.Update(ctx, owner, id, d)
	if err == nil && ok {
		c.invalidate(ctx, owner)
	}
	return ok, err
}

// Delete removes a task and invalidates owner's entries when a row changed.
func (c *CachingTarefaRepository) Delete(ctx context.Context, owner, id uint) (bool, error) {
	ok, err := c.inner.Delete(ctx, owner, id)
	if err == nil && ok {
		c.invalidate(ctx, owner)
	}
	return ok, err
}

// Complete stamps the completion time and invalidates owner's entries when a row changed.
func (c *CachingTarefaRepository) Complete(ctx context.Context, owner, id uint, at time.Time) (bool, error) {
	ok, err := c.inner.Complete(ctx, owner, id, at)
	if err == nil && ok {
		c.invalidate(ctx, owner)
	}
	return ok, err
}

// load reads key into dst. A corrupted entry is deleted and reported as a miss.
func (c *CachingTarefaRepository) load(ctx context.Context, key string, dst any) bool {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil || len(b) == 0 {
		return false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		_ = c.rdb.Del(ctx, key).Err()
		return false
	}
	return true
}

// store writes v under key (best effort).
func (c *CachingTarefaRepository) store(ctx context.Context, key string, v any) {
	if b, err := json.Marshal(v); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
}

func (c *CachingTarefaRepository) invalidate(ctx context.Context, owner uint) {
	if c.rdb == nil {
		return
	}
	if err := c.deleteByPattern(ctx, c.ownerPrefix(owner)+"*"); err != nil {
		logger.FromContext(ctx).Warn("cache invalidation failed", "owner", owner, "error", err)
	}
}

func (c *CachingTarefaRepository) ownerPrefix(owner uint) string {
	return fmt.Sprintf("%s:%d:", c.namespace, owner)
}

func (c *CachingTarefaRepository) listKey(owner uint) string {
	return c.ownerPrefix(owner) + "lista"
}

func (c *CachingTarefaRepository) itemKey(owner, id uint) string {
	return fmt.Sprintf("%s%d", c.ownerPrefix(owner), id)
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingTarefaRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, scanCount).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}
