package workbook

import (
	"unicode/utf8"

	"github.com/klytics/csvbook/internal/table"
)

// AutoWidths derives a display width for every column of a table:
// the longest of header and cell text, floored at MinWidth, capped at
// MaxWidth, plus padding. A table with no data rows floors at MinWidth.
func AutoWidths(t *table.Table, layout Layout) []int {
	widths := make([]int, t.ColumnCount())
	for i, name := range t.Columns {
		maxLen := utf8.RuneCountInString(name)
		for _, record := range t.Records {
			if i >= len(record) {
				continue
			}
			if n := utf8.RuneCountInString(record[i]); n > maxLen {
				maxLen = n
			}
		}
		if maxLen < layout.MinWidth {
			maxLen = layout.MinWidth
		}
		if maxLen > layout.MaxWidth {
			maxLen = layout.MaxWidth
		}
		widths[i] = maxLen + layout.WidthPadding
	}
	return widths
}
