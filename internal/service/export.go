package service

import (
	"encoding/csv"
	"fmt"
	"io"
)

// ExportColumn maps a CSV header to the record field backing it.
type ExportColumn struct {
	Header   string
	Selector string // JMESPath expression into a Record
}

// BusExportColumns is the column set for the bus listing download.
func BusExportColumns() []ExportColumn {
	return []ExportColumn{
		{Header: "Bus Number", Selector: "busNumber"},
		{Header: "Capacity", Selector: "capacity"},
		{Header: "Assigned School", Selector: "schoolName"},
		{Header: "Driver", Selector: "driverName"},
	}
}

// StudentExportColumns is the column set for the student listing download.
func StudentExportColumns() []ExportColumn {
	return []ExportColumn{
		{Header: "Name", Selector: "name"},
		{Header: "Class", Selector: "className"},
		{Header: "Roll No", Selector: "rollNo"},
		{Header: "Pass Status", Selector: "passStatus"},
	}
}

// ExportCSV writes the records to w as CSV with the given columns. It is a
// pure data-to-file transform over the already filtered in-memory
// collection; no network round trip happens here.
func ExportCSV(w io.Writer, columns []ExportColumn, records []Record) error {
	cw := csv.NewWriter(w)

	headers := make([]string, len(columns))
	for i, col := range columns {
		headers[i] = col.Header
	}
	if err := cw.Write(headers); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	row := make([]string, len(columns))
	for _, rec := range records {
		for i, col := range columns {
			row[i] = fieldString(col.Selector, rec)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
