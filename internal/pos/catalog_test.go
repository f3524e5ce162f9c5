package pos

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogItemsReturnsACopy(t *testing.T) {
	c := NewCatalog()
	svc := &mockCatalog{items: []Item{
		{ID: uuid.New(), Name: "Widget", Price: 1000, Stock: 5},
	}}
	require.NoError(t, c.Refresh(context.Background(), svc, uuid.New()))

	got := c.Items()
	got[0].Name = "Mutated"
	got[0].Stock = 0

	fresh := c.Items()
	assert.Equal(t, "Widget", fresh[0].Name)
	assert.Equal(t, 5, fresh[0].Stock)
}
