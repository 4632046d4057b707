package workbook

import (
	"strings"
	"testing"

	"github.com/klytics/csvbook/internal/table"
)

func TestAutoWidthsFloorsAtMinimum(t *testing.T) {
	tbl := &table.Table{
		Columns: []string{"id", "name"},
		Records: [][]string{{"1", "Bob"}},
	}

	widths := AutoWidths(tbl, DefaultLayout())
	for i, w := range widths {
		if w != 12 {
			t.Errorf("column %d: expected floor width 12, got %d", i, w)
		}
	}
}

func TestAutoWidthsEmptyTable(t *testing.T) {
	// No data rows: max cell length counts as zero, width floors at the
	// minimum plus padding.
	tbl := &table.Table{Columns: []string{"value"}}

	widths := AutoWidths(tbl, DefaultLayout())
	if len(widths) != 1 || widths[0] != 12 {
		t.Errorf("expected [12], got %v", widths)
	}
}

func TestAutoWidthsCapsAtMaximum(t *testing.T) {
	tbl := &table.Table{
		Columns: []string{"notes"},
		Records: [][]string{{strings.Repeat("x", 200)}},
	}

	widths := AutoWidths(tbl, DefaultLayout())
	if widths[0] != 52 {
		t.Errorf("expected cap width 52, got %d", widths[0])
	}
}

func TestAutoWidthsUsesHeaderLength(t *testing.T) {
	tbl := &table.Table{
		Columns: []string{strings.Repeat("h", 20)},
		Records: [][]string{{"x"}},
	}

	widths := AutoWidths(tbl, DefaultLayout())
	if widths[0] != 22 {
		t.Errorf("expected 22, got %d", widths[0])
	}
}

func TestAutoWidthsUsesLongestCell(t *testing.T) {
	tbl := &table.Table{
		Columns: []string{"city"},
		Records: [][]string{
			{"Rome"},
			{"San Francisco Bay Area"},
			{"Oslo"},
		},
	}

	widths := AutoWidths(tbl, DefaultLayout())
	if widths[0] != 24 {
		t.Errorf("expected 24 (22 chars + padding), got %d", widths[0])
	}
}
