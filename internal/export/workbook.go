// Package export writes an evaluated sample and its summary as an xlsx workbook.
package export

import (
	"fmt"
	"io"
	"math"

	"github.com/xuri/excelize/v2"

	"distviz/domain/distribution"
	"distviz/internal/engine"
	"distviz/internal/errors"
)

const (
	SampleSheet  = "Sample"
	SummarySheet = "Summary"
)

// WriteWorkbook writes the sample values to one sheet and the family, parameters
// and statistics to another
func WriteWorkbook(w io.Writer, d *distribution.Descriptor, values []float64, res engine.Result) error {
	if !res.Valid() {
		return errors.InvalidInput("nothing to export: " + res.Message)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SampleSheet); err != nil {
		return errors.Wrap(err, "rename sample sheet")
	}
	if err := writeSample(f, res.Values); err != nil {
		return errors.Wrap(err, "write sample sheet")
	}

	idx, err := f.NewSheet(SummarySheet)
	if err != nil {
		return errors.Wrap(err, "create summary sheet")
	}
	if err := writeSummary(f, d, values, res); err != nil {
		return errors.Wrap(err, "write summary sheet")
	}
	f.SetActiveSheet(idx)

	if err := f.Write(w); err != nil {
		return errors.Wrap(err, "write workbook")
	}
	return nil
}

func writeSample(f *excelize.File, sample []float64) error {
	if err := f.SetCellValue(SampleSheet, "A1", "value"); err != nil {
		return err
	}
	for i, v := range sample {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetCellValue(SampleSheet, cell, cellValue(v)); err != nil {
			return err
		}
	}
	return nil
}

func writeSummary(f *excelize.File, d *distribution.Descriptor, values []float64, res engine.Result) error {
	rows := [][2]interface{}{
		{"distribution", d.Name},
		{"class", string(d.Class)},
	}
	for i, p := range d.Params {
		if i < len(values) {
			rows = append(rows, [2]interface{}{p.Name, cellValue(values[i])})
		}
	}
	for _, q := range res.Quantiles.Labeled() {
		rows = append(rows, [2]interface{}{q.Label, cellValue(q.Value)})
	}
	rows = append(rows,
		[2]interface{}{"mean", cellValue(res.Mean)},
		[2]interface{}{"std", cellValue(res.StdDev)},
		[2]interface{}{"size", len(res.Values)},
	)

	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
			if err := f.SetCellValue(SummarySheet, cell, v); err != nil {
				return fmt.Errorf("cell %s: %w", cell, err)
			}
		}
	}
	return nil
}

// cellValue keeps finite numbers numeric; infinities and NaN become text
func cellValue(v float64) interface{} {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return distribution.FormatNumber(v)
	}
	return v
}
