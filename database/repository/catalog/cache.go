package catalogRepo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"voyago/models"

	"github.com/go-redis/redis/v8"
)

// catalogCacheTTL bounds how stale a quoted base rate can be.
const catalogCacheTTL = 5 * time.Minute

// itemCache is a Redis read-through cache for catalog entries. Lookups that
// miss or fail fall through to Mongo; cache errors are never surfaced.
type itemCache struct {
	client *redis.Client
}

// NewItemCache wraps a Redis client for catalog caching. Returns nil for a
// nil client so the repository can skip caching entirely.
func NewItemCache(client *redis.Client) *itemCache {
	if client == nil {
		return nil
	}
	return &itemCache{client: client}
}

func cacheKey(itemType models.ItemType, itemID string) string {
	return fmt.Sprintf("catalog:%s:%s", itemType, itemID)
}

func (c *itemCache) get(ctx context.Context, itemType models.ItemType, itemID string) (models.Item, bool) {
	data, err := c.client.Get(ctx, cacheKey(itemType, itemID)).Bytes()
	if err != nil {
		return nil, false
	}
	switch itemType {
	case models.ItemTypeRealEstate:
		var doc models.RealEstate
		if json.Unmarshal(data, &doc) == nil {
			return doc, true
		}
	case models.ItemTypeTransport:
		var doc models.Transport
		if json.Unmarshal(data, &doc) == nil {
			return doc, true
		}
	case models.ItemTypeTour:
		var doc models.Tour
		if json.Unmarshal(data, &doc) == nil {
			return doc, true
		}
	}
	return nil, false
}

func (c *itemCache) put(ctx context.Context, item models.Item) {
	data, err := json.Marshal(item)
	if err != nil {
		return
	}
	c.client.Set(ctx, cacheKey(item.GetType(), item.GetID()), data, catalogCacheTTL)
}
