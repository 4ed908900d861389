package images

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ExportFormat is the output format of Export.
type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatXLSX ExportFormat = "xlsx"
)

// FormatFromPath picks an export format from a file extension.
func FormatFromPath(path string) (ExportFormat, error) {
	switch {
	case strings.HasSuffix(strings.ToLower(path), ".csv"):
		return FormatCSV, nil
	case strings.HasSuffix(strings.ToLower(path), ".xlsx"):
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("output %q must end with .csv or .xlsx", path)
	}
}

var exportHeader = []string{"slot", "url", "alt", "remote_filename", "local_filename"}

// exportRows flattens the registry into one row per slot.
func exportRows(r *Registry) [][]string {
	var rows [][]string
	for _, slot := range r.Slots() {
		d, _ := r.descriptor(slot)
		res, _ := r.Lookup(slot)
		rows = append(rows, []string{slot.String(), res.URL, res.AltText, d.RemoteFragment, d.LocalFragment})
	}
	return rows
}

// Export writes every slot of the registry to w.
func Export(w io.Writer, r *Registry, format ExportFormat) error {
	switch format {
	case FormatCSV:
		return writeCSV(w, exportRows(r))
	case FormatXLSX:
		return writeXLSX(w, exportRows(r))
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

func writeCSV(out io.Writer, rows [][]string) error {
	w := csv.NewWriter(out)
	if err := w.Write(exportHeader); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

const exportSheet = "Sheet1"

func writeXLSX(out io.Writer, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	sw, err := f.NewStreamWriter(exportSheet)
	if err != nil {
		return err
	}
	if err := sw.SetRow("A1", toCells(exportHeader)); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, toCells(row)); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}
	return f.Write(out)
}

func toCells(row []string) []interface{} {
	cells := make([]interface{}, len(row))
	for i, v := range row {
		cells[i] = v
	}
	return cells
}
