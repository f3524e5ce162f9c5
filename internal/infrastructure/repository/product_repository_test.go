package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductSortColumnAllowsKnownColumns(t *testing.T) {
	for _, col := range []string{"name", "number", "price", "stock", "created_at", "updated_at"} {
		assert.Equal(t, col, productSortColumn(col))
	}
}

func TestProductSortColumnFallsBackOnArbitraryInput(t *testing.T) {
	assert.Equal(t, "created_at", productSortColumn(""))
	assert.Equal(t, "created_at", productSortColumn("user_id"))
	assert.Equal(t, "created_at", productSortColumn("price; DROP TABLE products--"))
}
