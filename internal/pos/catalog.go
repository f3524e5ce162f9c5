package pos

import (
	"context"

	"github.com/google/uuid"
)

// Catalog is the register's snapshot of sellable items. It is refreshed
// from the catalog service on demand; a failed refresh degrades to an
// empty snapshot so the register stays usable.
type Catalog struct {
	items []Item
	byID  map[uuid.UUID]Item
}

// NewCatalog creates an empty catalog snapshot.
func NewCatalog() *Catalog {
	return &Catalog{byID: make(map[uuid.UUID]Item)}
}

// Refresh replaces the snapshot with the current sellable items. On load
// failure the snapshot is emptied and a LoadError is returned; callers
// may surface the error but keep operating.
func (c *Catalog) Refresh(ctx context.Context, svc CatalogService, operatorID uuid.UUID) error {
	items, err := svc.SellableItems(ctx, operatorID)
	if err != nil {
		c.items = nil
		c.byID = make(map[uuid.UUID]Item)
		return &LoadError{Resource: "catalog", Err: err}
	}

	c.items = items
	c.byID = make(map[uuid.UUID]Item, len(items))
	for _, it := range items {
		c.byID[it.ID] = it
	}
	return nil
}

// Items returns a copy of the snapshot items.
func (c *Catalog) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Get looks up an item by ID in the snapshot.
func (c *Catalog) Get(id uuid.UUID) (Item, bool) {
	it, ok := c.byID[id]
	return it, ok
}
