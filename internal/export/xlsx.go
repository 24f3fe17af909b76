package export

import (
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/fayssalzakaria/data-analysis-on-an-HTML-file/internal/analysis"
	"github.com/fayssalzakaria/data-analysis-on-an-HTML-file/internal/dataset"
)

// Sheet names written by WriteXLSX.
const (
	SheetRawData     = "Raw Data"
	SheetStatistics  = "Statistics"
	SheetAdvanced    = "Advanced Statistics"
	SheetCorrelation = "Correlation"
)

const timeLayout = "2006-01-02 15:04:05"

// WriteXLSX saves the enriched dataset and both results to a workbook at path.
// The correlation sheet is only written when the advanced result has a matrix.
func WriteXLSX(path string, ds *dataset.Dataset, basic, advanced analysis.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetRawData); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeRawData(f, ds); err != nil {
		return err
	}
	if err := writeMetrics(f, SheetStatistics, basic); err != nil {
		return err
	}
	if err := writeMetrics(f, SheetAdvanced, advanced); err != nil {
		return err
	}
	if m, ok := advanced.Lookup(analysis.MetricCorrelation); ok && m.Matrix != nil {
		if err := writeMatrix(f, m.Matrix); err != nil {
			return err
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeRawData(f *excelize.File, ds *dataset.Dataset) error {
	if ds == nil {
		return nil
	}
	for j, name := range ds.Columns() {
		if err := setCell(f, SheetRawData, j, 0, name); err != nil {
			return err
		}
		col, _ := ds.Column(name)
		for i, c := range col.Cells {
			v, ok := cellValue(col.Kind, c)
			if !ok {
				continue
			}
			if err := setCell(f, SheetRawData, j, i+1, v); err != nil {
				return err
			}
		}
	}
	return nil
}

// cellValue returns the workbook value of c; missing and non-finite cells are left blank.
func cellValue(kind dataset.Kind, c dataset.Cell) (any, bool) {
	if !c.Valid {
		return nil, false
	}
	switch kind {
	case dataset.KindNumeric:
		if math.IsNaN(c.Num) || math.IsInf(c.Num, 0) {
			return nil, false
		}
		return c.Num, true
	case dataset.KindTime:
		return c.Time.Format(timeLayout), true
	default:
		return c.Text, true
	}
}

func writeMetrics(f *excelize.File, sheet string, r analysis.Result) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}
	if err := setCell(f, sheet, 0, 0, "Metric"); err != nil {
		return err
	}
	if err := setCell(f, sheet, 1, 0, "Value"); err != nil {
		return err
	}
	for i, m := range r.Metrics {
		if err := setCell(f, sheet, 0, i+1, m.Name); err != nil {
			return err
		}
		var v any = m.String()
		if m.Kind == analysis.ScalarValue {
			if math.IsNaN(m.Scalar) {
				continue
			}
			v = m.Scalar
		}
		if err := setCell(f, sheet, 1, i+1, v); err != nil {
			return err
		}
	}
	return nil
}

func writeMatrix(f *excelize.File, m *analysis.CorrMatrix) error {
	if _, err := f.NewSheet(SheetCorrelation); err != nil {
		return fmt.Errorf("create sheet %s: %w", SheetCorrelation, err)
	}
	for i, name := range m.Columns {
		if err := setCell(f, SheetCorrelation, i+1, 0, name); err != nil {
			return err
		}
		if err := setCell(f, SheetCorrelation, 0, i+1, name); err != nil {
			return err
		}
		for j, v := range m.Values[i] {
			if math.IsNaN(v) {
				continue
			}
			if err := setCell(f, SheetCorrelation, j+1, i+1, v); err != nil {
				return err
			}
		}
	}
	return nil
}

// setCell writes v at zero-based column col and row row.
func setCell(f *excelize.File, sheet string, col, row int, v any) error {
	cell, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	if err := f.SetCellValue(sheet, cell, v); err != nil {
		return fmt.Errorf("write %s!%s: %w", sheet, cell, err)
	}
	return nil
}
