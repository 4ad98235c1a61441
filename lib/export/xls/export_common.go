package xlsexport

import (
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	fontFamily  = "Times New Roman"
	columnWidth = 25
)

func formatDate(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.Format("02.01.2006 15:04")
}

// sheetWriter построчная запись таблицы в лист xlsx
type sheetWriter struct {
	f     *excelize.File
	sheet string
	cols  int
	row   int
}

func newSheetWriter(f *excelize.File, sheet string, cols int) *sheetWriter {
	return &sheetWriter{f: f, sheet: sheet, cols: cols}
}

func (w *sheetWriter) writeRow(values []interface{}) error {
	w.row++
	for idx, value := range values {
		cell, err := excelize.CoordinatesToCellName(idx+1, w.row)
		if err != nil {
			return err
		}
		if err = w.f.SetCellValue(w.sheet, cell, value); err != nil {
			return err
		}
	}
	return nil
}

func (w *sheetWriter) writeHeader(headers []string) error {
	lastCol, err := excelize.ColumnNumberToName(w.cols)
	if err != nil {
		return err
	}
	if err = w.f.SetColWidth(w.sheet, "A", lastCol, columnWidth); err != nil {
		return err
	}
	values := make([]interface{}, 0, len(headers))
	for _, header := range headers {
		values = append(values, header)
	}
	if err = w.writeRow(values); err != nil {
		return err
	}
	return w.styleRows(w.row, w.row, &excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Font:      &excelize.Font{Bold: true, Family: fontFamily, Size: 11},
	})
}

// styleDataRows стиль строк данных, записанных после заголовка
func (w *sheetWriter) styleDataRows() error {
	if w.row < 2 {
		return nil
	}
	return w.styleRows(2, w.row, &excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
		Font:      &excelize.Font{Family: fontFamily, Size: 11},
	})
}

func (w *sheetWriter) styleRows(fromRow, toRow int, style *excelize.Style) error {
	styleID, err := w.f.NewStyle(style)
	if err != nil {
		return err
	}
	cellFirst, err := excelize.CoordinatesToCellName(1, fromRow)
	if err != nil {
		return err
	}
	cellLast, err := excelize.CoordinatesToCellName(w.cols, toRow)
	if err != nil {
		return err
	}
	return w.f.SetCellStyle(w.sheet, cellFirst, cellLast, styleID)
}
