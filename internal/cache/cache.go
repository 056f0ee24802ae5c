package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/trendovo/trendovo-golang/internal/models"
)

const categoryTreeKey = "categories:tree"

// Cache wraps the redis client used for the category navigation tree.
// A nil *Cache is valid and degrades to a no-op, so the application
// keeps working when redis is unavailable.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New connects to redis using a redis:// URL. Returns nil (not an error)
// when the connection cannot be established; callers fall back to the DB.
func New(redisURL string, ttl time.Duration) *Cache {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("WARNING: invalid REDIS_URL, category cache disabled: %v", err)
		return nil
	}

	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("WARNING: redis unreachable, category cache disabled: %v", err)
		return nil
	}

	log.Println("Redis connection established")
	return &Cache{rdb: rdb, ttl: ttl}
}

// GetCategoryTree returns the cached tree and true on a hit.
func (c *Cache) GetCategoryTree(ctx context.Context) ([]models.Category, bool) {
	if c == nil {
		return nil, false
	}

	payload, err := c.rdb.Get(ctx, categoryTreeKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Redis read failed for %s: %v", categoryTreeKey, err)
		}
		return nil, false
	}

	var tree []models.Category
	if err := json.Unmarshal(payload, &tree); err != nil {
		log.Printf("Corrupt cache payload for %s: %v", categoryTreeKey, err)
		return nil, false
	}
	return tree, true
}

// SetCategoryTree stores the tree with the configured TTL. Failures are
// logged and ignored.
func (c *Cache) SetCategoryTree(ctx context.Context, tree []models.Category) {
	if c == nil {
		return
	}

	payload, err := json.Marshal(tree)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, categoryTreeKey, payload, c.ttl).Err(); err != nil {
		log.Printf("Redis write failed for %s: %v", categoryTreeKey, err)
	}
}

// InvalidateCategoryTree drops the cached tree. Called after any
// category mutation and after imports that created categories.
func (c *Cache) InvalidateCategoryTree(ctx context.Context) {
	if c == nil {
		return
	}
	if err := c.rdb.Del(ctx, categoryTreeKey).Err(); err != nil {
		log.Printf("Redis delete failed for %s: %v", categoryTreeKey, err)
	}
}
