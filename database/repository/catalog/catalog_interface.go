package catalogRepo

import (
	"context"
	"errors"

	"voyago/models"
)

// ErrItemNotFound is returned when no catalog entry matches the requested
// type and id.
var ErrItemNotFound = errors.New("catalog: item not found")

// CatalogRepository is the read-only view of the inventory catalog the
// reservation core consumes. Catalog authoring lives elsewhere.
type CatalogRepository interface {
	// GetItem resolves a catalog entry by its type tag and id.
	GetItem(ctx context.Context, itemType models.ItemType, itemID string) (models.Item, error)
	// Exists reports whether the entry is present without decoding it.
	Exists(ctx context.Context, itemType models.ItemType, itemID string) (bool, error)
}
