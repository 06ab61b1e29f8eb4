package extraction_engine

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"github.com/markdave123-py/docsight/internal/core"
)

var (
	_ core.Extractor = (*XLSXExtractor)(nil)
	_ core.Extractor = (*XLSExtractor)(nil)
)

// sheetWriter accumulates the "--- Sheet: name ---" header and row lines of a
// workbook. Both spreadsheet formats normalize through it.
type sheetWriter struct {
	lines []string
}

func (w *sheetWriter) sheet(name string) {
	w.lines = append(w.lines, fmt.Sprintf("--- Sheet: %s ---", name))
}

// row joins the present cell values with single spaces. Empty cells are
// absent and a row that ends up blank is dropped.
func (w *sheetWriter) row(cells []string) {
	values := make([]string, 0, len(cells))
	for _, c := range cells {
		if c == "" {
			continue
		}
		values = append(values, c)
	}
	line := strings.Join(values, " ")
	if strings.TrimSpace(line) == "" {
		return
	}
	w.lines = append(w.lines, line)
}

func (w *sheetWriter) String() string {
	return strings.Join(w.lines, "\n")
}

// XLSXExtractor reads Office Open XML workbooks. Cells yield their stored value
// with no number format applied; formula cells yield their cached result.
type XLSXExtractor struct{}

func NewXLSXExtractor() *XLSXExtractor { return &XLSXExtractor{} }

func (e *XLSXExtractor) Extract(_ context.Context, data []byte) (string, error) {
	text, err := readXLSX(data)
	if err != nil {
		slog.Error("xlsx parse failed", "err", err)
		return "", core.NewExtractionError(http.StatusBadRequest, "xlsx parse failed: "+err.Error(), err)
	}
	return text, nil
}

func readXLSX(data []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	defer f.Close()

	var w sheetWriter
	for _, name := range f.GetSheetList() {
		w.sheet(name)
		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return "", fmt.Errorf("sheet %q: %w", name, err)
		}
		for _, cells := range rows {
			w.row(cells)
		}
	}
	return w.String(), nil
}

// XLSExtractor reads legacy BIFF workbooks.
type XLSExtractor struct{}

func NewXLSExtractor() *XLSExtractor { return &XLSExtractor{} }

func (e *XLSExtractor) Extract(_ context.Context, data []byte) (string, error) {
	text, err := readXLS(data)
	if err != nil {
		slog.Error("xls parse failed", "err", err)
		return "", core.NewExtractionError(http.StatusBadRequest, "xls parse failed: "+err.Error(), err)
	}
	return text, nil
}

func readXLS(data []byte) (text string, err error) {
	// The BIFF decoder panics on some truncated files.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("corrupt workbook: %v", r)
		}
	}()

	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return "", err
	}

	var w sheetWriter
	for i := 0; i < wb.NumSheets(); i++ {
		sheet := wb.GetSheet(i)
		if sheet == nil {
			continue
		}
		w.sheet(sheet.Name)
		for r := 0; r <= int(sheet.MaxRow); r++ {
			row := sheetRow(sheet, r)
			if row == nil {
				continue
			}
			cells := make([]string, 0, max(row.LastCol()-row.FirstCol(), 0))
			for c := row.FirstCol(); c < row.LastCol(); c++ {
				cells = append(cells, row.Col(c))
			}
			w.row(cells)
		}
	}
	return w.String(), nil
}

// sheetRow returns nil for a row the sheet holds no record of. WorkSheet.Row
// dereferences the missing entry instead.
func sheetRow(sheet *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return sheet.Row(i)
}
