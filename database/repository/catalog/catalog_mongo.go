package catalogRepo

import (
	"context"
	"fmt"
	"time"

	"voyago/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoCatalogRepo implements CatalogRepository over one collection per item
// type, fronted by an optional Redis read-through cache.
type MongoCatalogRepo struct {
	properties *mongo.Collection
	vehicles   *mongo.Collection
	tours      *mongo.Collection
	cache      *itemCache
}

// NewMongoCatalogRepo creates the catalog repository. cache may be nil.
func NewMongoCatalogRepo(db *mongo.Database, cache *itemCache) *MongoCatalogRepo {
	return &MongoCatalogRepo{
		properties: db.Collection("properties"),
		vehicles:   db.Collection("vehicles"),
		tours:      db.Collection("tours"),
		cache:      cache,
	}
}

// newContext creates a context with the given timeout.
func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

func (r *MongoCatalogRepo) collection(itemType models.ItemType) *mongo.Collection {
	switch itemType {
	case models.ItemTypeRealEstate:
		return r.properties
	case models.ItemTypeTransport:
		return r.vehicles
	case models.ItemTypeTour:
		return r.tours
	}
	return nil
}

// GetItem resolves a catalog entry, consulting the cache first.
func (r *MongoCatalogRepo) GetItem(ctx context.Context, itemType models.ItemType, itemID string) (models.Item, error) {
	if !itemType.Valid() {
		return nil, ErrItemNotFound
	}
	if r.cache != nil {
		if item, ok := r.cache.get(ctx, itemType, itemID); ok {
			return item, nil
		}
	}

	coll := r.collection(itemType)
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": itemID}
	var item models.Item
	var err error
	switch itemType {
	case models.ItemTypeRealEstate:
		var doc models.RealEstate
		err = coll.FindOne(ctx, filter).Decode(&doc)
		item = doc
	case models.ItemTypeTransport:
		var doc models.Transport
		err = coll.FindOne(ctx, filter).Decode(&doc)
		item = doc
	case models.ItemTypeTour:
		var doc models.Tour
		err = coll.FindOne(ctx, filter).Decode(&doc)
		item = doc
	}
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to fetch %s item %s: %w", itemType, itemID, err)
	}

	if r.cache != nil {
		r.cache.put(ctx, item)
	}
	return item, nil
}

// Exists reports whether the entry is present without decoding it.
func (r *MongoCatalogRepo) Exists(ctx context.Context, itemType models.ItemType, itemID string) (bool, error) {
	if !itemType.Valid() {
		return false, nil
	}
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	count, err := r.collection(itemType).CountDocuments(ctx, bson.M{"id": itemID})
	if err != nil {
		return false, fmt.Errorf("failed to check %s item %s: %w", itemType, itemID, err)
	}
	return count > 0, nil
}
