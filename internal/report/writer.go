package report

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

var ErrReportWrite = errors.New("report write failed")

const defaultSheet = "Sheet1"

var labelFont = &excelize.Font{Family: "Times New Roman", Bold: true, Size: 20}

// WriteXLSX serializes doc into a new workbook at path, overwriting any existing file.
func WriteXLSX(doc *Document, path string) error {
	if len(doc.Sheets()) == 0 {
		return fmt.Errorf("%w: document has no sheets", ErrReportWrite)
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("[Report] Failed to close workbook", slog.String("error", err.Error()))
		}
	}()

	labelStyle, err := f.NewStyle(&excelize.Style{Font: labelFont})
	if err != nil {
		return fmt.Errorf("%w: label style: %v", ErrReportWrite, err)
	}

	for i, sheet := range doc.Sheets() {
		if i == 0 {
			err = f.SetSheetName(defaultSheet, sheet.Name)
		} else {
			_, err = f.NewSheet(sheet.Name)
		}
		if err != nil {
			return fmt.Errorf("%w: sheet %q: %v", ErrReportWrite, sheet.Name, err)
		}

		if err := writeSheet(f, sheet, labelStyle); err != nil {
			return fmt.Errorf("%w: sheet %q: %v", ErrReportWrite, sheet.Name, err)
		}
	}
	f.SetActiveSheet(0)

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: %v", ErrReportWrite, err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("%w: save %s: %v", ErrReportWrite, path, err)
	}

	slog.Info("[Report] Wrote workbook",
		slog.String("path", path),
		slog.Int("sheets", len(doc.Sheets())))

	return nil
}

func writeSheet(f *excelize.File, sheet *Sheet, labelStyle int) error {
	for _, anchor := range sheet.LabelAnchors() {
		text, _ := sheet.Label(anchor)
		if err := f.SetCellValue(sheet.Name, anchor, text); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet.Name, anchor, anchor, labelStyle); err != nil {
			return err
		}
	}

	for _, anchor := range sheet.TableAnchors() {
		table, _ := sheet.Table(anchor)
		if err := writeTable(f, sheet.Name, anchor, table); err != nil {
			return err
		}
	}

	for _, anchor := range sheet.ImageAnchors() {
		img, _ := sheet.Image(anchor)
		err := f.AddPictureFromBytes(sheet.Name, anchor, &excelize.Picture{
			Extension: filepath.Ext(img.Name),
			File:      img.PNG,
			Format:    &excelize.GraphicOptions{AltText: img.Name},
		})
		if err != nil {
			return fmt.Errorf("image %s at %s: %w", img.Name, anchor, err)
		}
	}

	return nil
}

func writeTable(f *excelize.File, sheet, anchor string, t Table) error {
	col, row, err := excelize.CellNameToCoordinates(anchor)
	if err != nil {
		return err
	}

	header := make([]any, len(t.Header))
	for i, h := range t.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, anchor, &header); err != nil {
		return err
	}

	for i, r := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(col, row+1+i)
		if err != nil {
			return err
		}
		values := make([]any, len(r))
		for j, v := range r {
			values[j] = cellValue(v)
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	return nil
}

// cellValue truncates text longer than a cell can hold; self posts may run past it.
func cellValue(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	runes := []rune(s)
	if len(runes) > excelize.TotalCellChars {
		return string(runes[:excelize.TotalCellChars])
	}
	return s
}
