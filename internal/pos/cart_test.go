package pos

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItem(name string, price int64, stock int) Item {
	return Item{ID: uuid.New(), Name: name, Price: price, Stock: stock}
}

func TestCartAddIncrementsExistingLine(t *testing.T) {
	cart := NewCart()
	widget := testItem("Widget", 1000, 5)

	require.NoError(t, cart.Add(widget))
	require.NoError(t, cart.Add(widget))
	require.NoError(t, cart.Add(widget))

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.Equal(t, int64(3000), lines[0].LineTotal())
}

func TestCartAddRejectsOutOfStock(t *testing.T) {
	cart := NewCart()
	gone := testItem("Gone", 500, 0)

	err := cart.Add(gone)

	var oos *OutOfStockError
	require.ErrorAs(t, err, &oos)
	assert.Equal(t, gone.ID, oos.ItemID)
	assert.True(t, cart.IsEmpty())
}

func TestCartAddAccumulatesPastSnapshotStock(t *testing.T) {
	cart := NewCart()
	scarce := testItem("Scarce", 500, 2)

	// The snapshot stock gates only the first unit; the server owns the
	// real check at checkout.
	for i := 0; i < 5; i++ {
		require.NoError(t, cart.Add(scarce))
	}

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
}

func TestCartPreservesInsertionOrder(t *testing.T) {
	cart := NewCart()
	a := testItem("A", 100, 10)
	b := testItem("B", 200, 10)
	c := testItem("C", 300, 10)

	require.NoError(t, cart.Add(a))
	require.NoError(t, cart.Add(b))
	require.NoError(t, cart.Add(c))
	require.NoError(t, cart.Add(a))

	lines := cart.Lines()
	require.Len(t, lines, 3)
	assert.Equal(t, "A", lines[0].Item.Name)
	assert.Equal(t, "B", lines[1].Item.Name)
	assert.Equal(t, "C", lines[2].Item.Name)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestCartRemoveReindexesRemainingLines(t *testing.T) {
	cart := NewCart()
	a := testItem("A", 100, 10)
	b := testItem("B", 200, 10)
	c := testItem("C", 300, 10)

	require.NoError(t, cart.Add(a))
	require.NoError(t, cart.Add(b))
	require.NoError(t, cart.Add(c))

	cart.Remove(b.ID)

	lines := cart.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "A", lines[0].Item.Name)
	assert.Equal(t, "C", lines[1].Item.Name)

	// C must still be addressable after the shift
	require.NoError(t, cart.Add(c))
	assert.Equal(t, 2, cart.Lines()[1].Quantity)
}

func TestCartRemoveAbsentItemIsNoOp(t *testing.T) {
	cart := NewCart()
	require.NoError(t, cart.Add(testItem("A", 100, 10)))

	cart.Remove(uuid.New())

	assert.Equal(t, 1, cart.Len())
}

func TestCartSubtotal(t *testing.T) {
	cart := NewCart()
	a := testItem("A", 1550, 10)
	b := testItem("B", 200, 10)

	require.NoError(t, cart.Add(a))
	require.NoError(t, cart.Add(a))
	require.NoError(t, cart.Add(b))

	assert.Equal(t, int64(3300), cart.Subtotal())

	cart.Clear()
	assert.True(t, cart.IsEmpty())
	assert.Equal(t, int64(0), cart.Subtotal())
}
