package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// KeyValueBlock
// ---------------------------------------------------------------------------

func TestKeyValueBlockContainsTitleAndPairs(t *testing.T) {
	result := KeyValueBlock("Deployed", [][2]string{
		{"Contract", "Token"},
		{"Fee", "0.0021"},
	})
	assert.Contains(t, result, "Deployed")
	assert.Contains(t, result, "Contract")
	assert.Contains(t, result, "Token")
	assert.Contains(t, result, "Fee")
	assert.Contains(t, result, "0.0021")
}

func TestKeyValueBlockEmptyTitle(t *testing.T) {
	result := KeyValueBlock("", [][2]string{{"Key", "Value"}})
	assert.Contains(t, result, "Key")
	assert.Contains(t, result, "Value")
}

func TestKeyValueBlockPreservesOrder(t *testing.T) {
	result := KeyValueBlock("Config", [][2]string{
		{"First", "AAA"},
		{"Second", "BBB"},
		{"Third", "CCC"},
	})
	idxFirst := strings.Index(result, "First")
	idxSecond := strings.Index(result, "Second")
	idxThird := strings.Index(result, "Third")
	require.Greater(t, idxFirst, -1)
	assert.Less(t, idxFirst, idxSecond)
	assert.Less(t, idxSecond, idxThird)
}

func TestKeyValueBlockHasBorder(t *testing.T) {
	result := KeyValueBlock("Bordered", [][2]string{{"Key", "Val"}})
	assert.Contains(t, result, "╭")
	assert.Contains(t, result, "╰")
}

// ---------------------------------------------------------------------------
// Table
// ---------------------------------------------------------------------------

func TestTableRenderContainsHeadersAndRows(t *testing.T) {
	tbl := NewTable(Column{Title: "Network"}, Column{Title: "Status"})
	tbl.AddRow("hardhat", "simulated")
	tbl.AddRow("localhost", "down")

	result := tbl.Render()
	for _, s := range []string{"Network", "Status", "hardhat", "simulated", "localhost", "down"} {
		assert.Contains(t, result, s)
	}
}

func TestTableAutoWidthFitsWidestCell(t *testing.T) {
	tbl := NewTable(Column{Title: "A"})
	tbl.AddRow("abcdefgh")

	assert.Equal(t, []int{8}, tbl.widths())
	assert.Contains(t, tbl.Render(), "--------")
}

func TestTableFixedWidthClips(t *testing.T) {
	tbl := NewTable(Column{Title: "Hash", Width: 6})
	tbl.AddRow("0xdeadbeef")

	result := tbl.Render()
	assert.Contains(t, result, "0xdea…")
	assert.NotContains(t, result, "0xdeadbeef")
}

func TestTableRowShorterThanColumns(t *testing.T) {
	tbl := NewTable(Column{Title: "A"}, Column{Title: "B"}, Column{Title: "C"})
	tbl.AddRow("only1")
	assert.Contains(t, tbl.Render(), "only1")
}

func TestTablePreservesRowOrder(t *testing.T) {
	tbl := NewTable(Column{Title: "Item"})
	tbl.AddRow("first")
	tbl.AddRow("second")
	tbl.AddRow("third")

	result := tbl.Render()
	assert.Less(t, strings.Index(result, "first"), strings.Index(result, "second"))
	assert.Less(t, strings.Index(result, "second"), strings.Index(result, "third"))
}

// ---------------------------------------------------------------------------
// padR / clip
// ---------------------------------------------------------------------------

func TestPadR(t *testing.T) {
	assert.Equal(t, "hi        ", padR("hi", 10))
	assert.Equal(t, "hello", padR("hello", 5))
	assert.Equal(t, "toolongstring", padR("toolongstring", 5))
	assert.Equal(t, "    ", padR("", 4))
}

func TestClip(t *testing.T) {
	assert.Equal(t, "short", clip("short", 10))
	assert.Equal(t, "abcd…", clip("abcdefgh", 5))
	assert.Equal(t, "…", clip("abc", 1))
	assert.Equal(t, "abc", clip("abc", 0))
}
