package excel

import (
	"fmt"
	"io"
	"sort"

	"probcalc/domain/distribution"
	"probcalc/internal/render"

	"github.com/xuri/excelize/v2"
)

const (
	// ResultSheet holds parameters, probability, moments and steps
	ResultSheet = "Result"
	// SamplesSheet holds the plotted points
	SamplesSheet = "Samples"
)

// Report is one evaluation as exported to a workbook
type Report struct {
	Request distribution.Request
	Result  *distribution.Result
	Moments distribution.Moments
	Samples []distribution.SamplePoint
}

// WriteXLSX saves report as a workbook at path
func WriteXLSX(path string, report Report) error {
	f, err := build(report)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

// Write streams report as a workbook to w
func Write(w io.Writer, report Report) error {
	f, err := build(report)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteTo(w)
	return err
}

func build(report Report) (*excelize.File, error) {
	if report.Request == nil || report.Result == nil {
		return nil, fmt.Errorf("report needs a request and a result")
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", ResultSheet); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeResult(f, report); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write %s sheet: %w", ResultSheet, err)
	}

	if _, err := f.NewSheet(SamplesSheet); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeSamples(f, report.Samples); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write %s sheet: %w", SamplesSheet, err)
	}

	return f, nil
}

func writeResult(f *excelize.File, report Report) error {
	req := report.Request
	rows := [][]interface{}{
		{"Distribution", req.Kind().Title()},
	}
	if n, ok := req.(distribution.Normal); ok {
		rows = append(rows, []interface{}{"Mode", n.Mode.Label()})
	}

	params := req.Params()
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		rows = append(rows, []interface{}{name, params[name]})
	}

	rows = append(rows,
		[]interface{}{"Event", render.Event(req)},
		[]interface{}{"Probability", report.Result.Probability},
		[]interface{}{"Mean", report.Moments.Mean},
		[]interface{}{"Variance", report.Moments.Variance},
		[]interface{}{"Standard deviation", report.Moments.StdDev},
	)

	if len(report.Result.Steps) > 0 {
		rows = append(rows, []interface{}{}, []interface{}{"Step", "Expression", "LaTeX"})
		for _, s := range report.Result.Steps {
			rows = append(rows, []interface{}{s.Label, s.Text(), s.TeX()})
		}
	}

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(ResultSheet, cell, &row); err != nil {
			return err
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	last, _ := excelize.CoordinatesToCellName(1, len(rows))
	if err := f.SetCellStyle(ResultSheet, "A1", last, bold); err != nil {
		return err
	}
	return f.SetColWidth(ResultSheet, "A", "B", 24)
}

func writeSamples(f *excelize.File, points []distribution.SamplePoint) error {
	header := []interface{}{"x", "density", "shaded"}
	if err := f.SetSheetRow(SamplesSheet, "A1", &header); err != nil {
		return err
	}
	for i, p := range points {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{p.X, p.Density, p.Shaded}
		if err := f.SetSheetRow(SamplesSheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
