// Package workbook assembles a multi-sheet .xlsx file from loaded tables.
package workbook

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/klytics/csvbook/internal/table"
)

// MaxSheetNameLen is the sheet name limit imposed by the xlsx format.
const MaxSheetNameLen = 31

// IndexSheetName is the name of the trailing summary sheet.
const IndexSheetName = "Index"

var indexColumns = []string{"sheet", "rows", "columns", "source_file"}

// Summary describes one written sheet, for the Index page and run reports.
type Summary struct {
	Sheet      string `json:"sheet"`
	Rows       int    `json:"rows"`
	Columns    int    `json:"columns"`
	SourceFile string `json:"sourceFile"`
}

// Layout holds the presentation knobs applied to every sheet.
type Layout struct {
	MinWidth     int
	MaxWidth     int
	WidthPadding int
	DateFormat   string // excel number format for inferred date cells
	HeaderFill   string
	IndexFill    string
}

// DefaultLayout returns the standard presentation settings.
func DefaultLayout() Layout {
	return Layout{
		MinWidth:     10,
		MaxWidth:     50,
		WidthPadding: 2,
		DateFormat:   "yyyy-mm-dd",
		HeaderFill:   "#DCE6F1",
		IndexFill:    "#F2F2F2",
	}
}

// Builder accumulates sheets into a single workbook.
type Builder struct {
	f      *excelize.File
	layout Layout

	summaries []Summary
	used      map[string]bool
	sheets    int

	headerStyle int
	indexStyle  int
	dateStyle   int
}

// NewBuilder creates an empty workbook builder. The Index name is reserved
// up front so a source that happens to be called "Index" cannot collide
// with the summary sheet.
func NewBuilder(layout Layout) *Builder {
	return &Builder{
		f:      excelize.NewFile(),
		layout: layout,
		used:   map[string]bool{IndexSheetName: true},
	}
}

// Summaries returns one entry per data sheet written so far, in write order.
func (b *Builder) Summaries() []Summary { return b.summaries }

// AddSheet writes a table as a new sheet and applies the standard
// formatting. The name is truncated to the format's 31-character limit and
// disambiguated with a numeric suffix if a previous sheet already claimed
// it. Returns the summary recorded for the Index page.
func (b *Builder) AddSheet(name string, t *table.Table) (Summary, error) {
	sheetName := b.uniqueName(name)

	if err := b.writeSheet(sheetName, t, false); err != nil {
		return Summary{}, err
	}

	s := Summary{
		Sheet:      sheetName,
		Rows:       t.RowCount(),
		Columns:    t.ColumnCount(),
		SourceFile: filepath.Base(t.Source),
	}
	b.summaries = append(b.summaries, s)
	return s, nil
}

// WriteIndex appends the Index sheet summarizing every sheet written so
// far. It does nothing when no sheets were written (reported via the
// returned bool).
func (b *Builder) WriteIndex() (bool, error) {
	if len(b.summaries) == 0 {
		return false, nil
	}

	t := &table.Table{Columns: indexColumns}
	for _, s := range b.summaries {
		t.Records = append(t.Records, []string{
			s.Sheet,
			strconv.Itoa(s.Rows),
			strconv.Itoa(s.Columns),
			s.SourceFile,
		})
	}

	if err := b.writeSheet(IndexSheetName, t, true); err != nil {
		return false, err
	}
	return true, nil
}

// Save flushes the workbook to disk. This is the terminal operation:
// failure here is fatal to the run.
func (b *Builder) Save(path string) error {
	if err := b.f.SaveAs(path); err != nil {
		return fmt.Errorf("could not save %s: %w", path, err)
	}
	return nil
}

// Close releases the underlying file resources.
func (b *Builder) Close() error {
	return b.f.Close()
}

func (b *Builder) writeSheet(sheetName string, t *table.Table, index bool) error {
	if b.sheets == 0 {
		// Reuse the default sheet created by excelize.
		if err := b.f.SetSheetName(b.f.GetSheetName(0), sheetName); err != nil {
			return fmt.Errorf("could not rename sheet: %w", err)
		}
	} else {
		if _, err := b.f.NewSheet(sheetName); err != nil {
			return fmt.Errorf("could not create sheet %q: %w", sheetName, err)
		}
	}
	b.sheets++
	b.used[sheetName] = true

	// Bulk write: header row then data rows. The header style is applied
	// afterwards so it covers the cells regardless of how they were set.
	for col, name := range t.Columns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("invalid cell coordinates: %w", err)
		}
		if err := b.f.SetCellValue(sheetName, cell, name); err != nil {
			return fmt.Errorf("could not set cell %s: %w", cell, err)
		}
	}
	for row, record := range t.Records {
		for col, raw := range record {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return fmt.Errorf("invalid cell coordinates: %w", err)
			}
			val, kind := table.Infer(raw)
			if err := b.f.SetCellValue(sheetName, cell, val); err != nil {
				return fmt.Errorf("could not set cell %s: %w", cell, err)
			}
			if kind == table.KindTime {
				style, err := b.dateStyleID()
				if err != nil {
					return err
				}
				if err := b.f.SetCellStyle(sheetName, cell, cell, style); err != nil {
					return fmt.Errorf("could not style cell %s: %w", cell, err)
				}
			}
		}
	}

	if t.ColumnCount() > 0 {
		style, err := b.headerStyleID(index)
		if err != nil {
			return err
		}
		lastCol, err := excelize.ColumnNumberToName(t.ColumnCount())
		if err != nil {
			return fmt.Errorf("invalid column number: %w", err)
		}
		if err := b.f.SetCellStyle(sheetName, "A1", lastCol+"1", style); err != nil {
			return fmt.Errorf("could not style header: %w", err)
		}
	}

	if err := b.applyFilterAndFreeze(sheetName, t); err != nil {
		return err
	}
	return b.applyWidths(sheetName, t)
}

// applyFilterAndFreeze places the autofilter over the full written extent
// (column A only for a zero-column table) and freezes the header row.
func (b *Builder) applyFilterAndFreeze(sheetName string, t *table.Table) error {
	cols := t.ColumnCount()
	if cols == 0 {
		cols = 1
	}
	lastCol, err := excelize.ColumnNumberToName(cols)
	if err != nil {
		return fmt.Errorf("invalid column number: %w", err)
	}
	ref := fmt.Sprintf("A1:%s%d", lastCol, t.RowCount()+1)
	if err := b.f.AutoFilter(sheetName, ref, nil); err != nil {
		return fmt.Errorf("could not set autofilter on %q: %w", sheetName, err)
	}

	if err := b.f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("could not freeze header row on %q: %w", sheetName, err)
	}
	return nil
}

func (b *Builder) applyWidths(sheetName string, t *table.Table) error {
	for i, w := range AutoWidths(t, b.layout) {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("invalid column number: %w", err)
		}
		if err := b.f.SetColWidth(sheetName, col, col, float64(w)); err != nil {
			return fmt.Errorf("could not set width of column %s: %w", col, err)
		}
	}
	return nil
}

// uniqueName truncates a candidate sheet name to the format limit and, on
// collision with an earlier sheet, retries with a numeric suffix until the
// name is free.
func (b *Builder) uniqueName(name string) string {
	base := truncate(name, MaxSheetNameLen)
	if !b.used[base] {
		return base
	}
	for n := 2; ; n++ {
		suffix := "_" + strconv.Itoa(n)
		candidate := truncate(name, MaxSheetNameLen-len(suffix)) + suffix
		if !b.used[candidate] {
			return candidate
		}
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func (b *Builder) headerStyleID(index bool) (int, error) {
	cached := &b.headerStyle
	fill := b.layout.HeaderFill
	if index {
		cached = &b.indexStyle
		fill = b.layout.IndexFill
	}
	if *cached != 0 {
		return *cached, nil
	}

	id, err := b.f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{fill}, Pattern: 1},
		Border: thinBorder(),
	})
	if err != nil {
		return 0, fmt.Errorf("could not create header style: %w", err)
	}
	*cached = id
	return id, nil
}

func (b *Builder) dateStyleID() (int, error) {
	if b.dateStyle != 0 {
		return b.dateStyle, nil
	}
	format := b.layout.DateFormat
	id, err := b.f.NewStyle(&excelize.Style{CustomNumFmt: &format})
	if err != nil {
		return 0, fmt.Errorf("could not create date style: %w", err)
	}
	b.dateStyle = id
	return id, nil
}

func thinBorder() []excelize.Border {
	sides := []string{"left", "right", "top", "bottom"}
	borders := make([]excelize.Border, 0, len(sides))
	for _, s := range sides {
		borders = append(borders, excelize.Border{Type: s, Color: "808080", Style: 1})
	}
	return borders
}
