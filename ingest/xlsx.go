package ingest

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"video-analytics/models"
)

// XLSXReader reads one worksheet of an Excel workbook. Sheet defaults to the
// first sheet. Numeric cells come back as float64 raw values (date cells as
// serials); text cells stay strings.
type XLSXReader struct {
	Sheet string
}

func (r *XLSXReader) ReadRows(path string) ([]models.RawRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("xlsx: open %q: %w", path, err)
	}
	defer f.Close()
	return r.read(f)
}

// Read parses workbook content from src.
func (r *XLSXReader) Read(src io.Reader) ([]models.RawRow, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("xlsx: open: %w", err)
	}
	defer f.Close()
	return r.read(f)
}

func (r *XLSXReader) read(f *excelize.File) ([]models.RawRow, error) {
	sheet := r.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	grid, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("xlsx: rows of %q: %w", sheet, err)
	}
	if len(grid) == 0 {
		return []models.RawRow{}, nil
	}

	data := make([][]any, 0, len(grid)-1)
	for y, cols := range grid[1:] {
		cells := make([]any, len(cols))
		for x, v := range cols {
			axis, err := excelize.CoordinatesToCellName(x+1, y+2)
			if err != nil {
				return nil, fmt.Errorf("xlsx: cell name: %w", err)
			}
			cells[x] = cellValue(f, sheet, axis, v)
		}
		data = append(data, cells)
	}
	return rowsFromGrid(grid[0], data), nil
}

func cellValue(f *excelize.File, sheet, axis, raw string) any {
	typ, err := f.GetCellType(sheet, axis)
	if err != nil {
		return raw
	}
	switch typ {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeBool, excelize.CellTypeError:
		return raw
	}
	return typedCell(raw)
}
