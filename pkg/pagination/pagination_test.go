package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateClampsParams(t *testing.T) {
	p := &PaginationParams{Page: 0, PerPage: 500}
	p.Validate()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 100, p.PerPage)

	p = &PaginationParams{Page: 3, PerPage: 0}
	p.Validate()
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 20, p.PerPage)
}

func TestOffset(t *testing.T) {
	p := &PaginationParams{Page: 3, PerPage: 20}
	assert.Equal(t, 40, p.Offset())
}

func TestNewPagination(t *testing.T) {
	pg := NewPagination(2, 20, 45)
	assert.Equal(t, 3, pg.TotalPages)
	assert.True(t, pg.HasNext)
	assert.True(t, pg.HasPrev)

	pg = NewPagination(1, 20, 10)
	assert.Equal(t, 1, pg.TotalPages)
	assert.False(t, pg.HasNext)
	assert.False(t, pg.HasPrev)
}
