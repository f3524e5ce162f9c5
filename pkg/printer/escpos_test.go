package printer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocumentStartsWithInit(t *testing.T) {
	doc := NewDocument(32)
	assert.Equal(t, []byte{ESC, '@'}, doc.Bytes()[:2])
}

func TestDocumentZeroWidthDefaultsTo32(t *testing.T) {
	doc := NewDocument(0)
	doc.Separator('-')
	assert.Contains(t, string(doc.Bytes()), strings.Repeat("-", 32))
}

func TestKeyValueRightAlignsValue(t *testing.T) {
	doc := NewDocument(32)
	doc.KeyValue("Total", "Ksh 100.00")

	line := "Total" + strings.Repeat(" ", 32-len("Total")-len("Ksh 100.00")) + "Ksh 100.00"
	assert.Contains(t, string(doc.Bytes()), line)
}

func TestItemLineFormatsQuantityPrefix(t *testing.T) {
	doc := NewDocument(32)
	doc.ItemLine(2, "Chips", "Ksh 200.00")
	assert.Contains(t, string(doc.Bytes()), "2 x Chips")
}

func TestItemLineKeepsOneSpaceWhenOverflowing(t *testing.T) {
	doc := NewDocument(16)
	doc.ItemLine(10, "A very long product name", "Ksh 9999.00")
	assert.Contains(t, string(doc.Bytes()), "A very long product name Ksh 9999.00")
}

func TestCutCommand(t *testing.T) {
	doc := NewDocument(32)
	doc.Cut()
	raw := doc.Bytes()
	assert.Equal(t, []byte{GS, 'V', 0x00}, raw[len(raw)-3:])
}
