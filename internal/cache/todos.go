package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/awessel/todo-api/internal/models"
)

const (
	todosKey = "todos:all"
	todosTTL = 30 * time.Second
)

// TodoCache keeps the todo list response in redis for a short TTL.
// A nil *TodoCache (or one built from an empty address) is valid and
// turns every operation into a no-op, so the API runs without redis.
type TodoCache struct {
	client *redis.Client
}

// New connects to redis at addr. Returns nil when addr is empty.
func New(ctx context.Context, addr string) (*TodoCache, error) {
	if addr == "" {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &TodoCache{client: client}, nil
}

// GetList returns the cached todo list, or ok=false on miss or any
// redis error. Cache errors never fail a request.
func (c *TodoCache) GetList(ctx context.Context) ([]models.Todo, bool) {
	if c == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, todosKey).Bytes()
	if err != nil {
		return nil, false
	}
	var todos []models.Todo
	if err := json.Unmarshal(data, &todos); err != nil {
		return nil, false
	}
	return todos, true
}

// SetList stores the todo list. Errors are dropped: the cache is advisory.
func (c *TodoCache) SetList(ctx context.Context, todos []models.Todo) {
	if c == nil {
		return
	}
	data, err := json.Marshal(todos)
	if err != nil {
		return
	}
	c.client.Set(ctx, todosKey, data, todosTTL)
}

// Invalidate drops the cached list. Call after any write to the todos table.
func (c *TodoCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	c.client.Del(ctx, todosKey)
}

// Close releases the redis connection.
func (c *TodoCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
