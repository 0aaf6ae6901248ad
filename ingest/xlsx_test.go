package ingest

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, path, sheet string, grid [][]any) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
	}
	for y, row := range grid {
		for x, v := range row {
			cell, err := excelize.CoordinatesToCellName(x+1, y+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, v))
		}
	}
	require.NoError(t, f.SaveAs(path))
}

func TestXLSXReaderFirstSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "videos.xlsx")
	writeWorkbook(t, path, "Sheet1", [][]any{
		{"日期", "视频标题", "视频播放量", "视频完播率"},
		{45658, "First", 1200, 0.45},
		{"2024年3月5日", "Second", "1,300", "45%"},
	})

	rows, err := (&XLSXReader{}).ReadRows(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 45658.0, rows[0]["日期"])
	assert.Equal(t, "First", rows[0]["视频标题"])
	assert.Equal(t, 1200.0, rows[0]["视频播放量"])
	assert.Equal(t, 0.45, rows[0]["视频完播率"])

	assert.Equal(t, "2024年3月5日", rows[1]["日期"])
	assert.Equal(t, "1,300", rows[1]["视频播放量"])
	assert.Equal(t, "45%", rows[1]["视频完播率"])
}

func TestXLSXReaderNamedSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "videos.xlsx")
	writeWorkbook(t, path, "数据", [][]any{
		{"Date", "Views"},
		{"2024-01-02", 7},
	})

	rows, err := (&XLSXReader{Sheet: "数据"}).ReadRows(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 7.0, rows[0]["Views"])

	_, err = (&XLSXReader{Sheet: "missing"}).ReadRows(path)
	assert.Error(t, err)
}
