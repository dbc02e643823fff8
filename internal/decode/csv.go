package decode

import (
	"bytes"
	"encoding/csv"
	"io"

	"dataprep/pkg/table"
)

// decodeCSV reads delimited text with a header row. Quoting errors are
// structural and abort the decode; width mismatches are tolerated because
// buildTable pads short rows with nil and drops extra cells.
func decodeCSV(buf []byte, filename string, comma rune) (table.Table, error) {
	cr := csv.NewReader(bytes.NewReader(buf))
	cr.Comma = comma
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1 // width is enforced against the header later

	headers, err := cr.Read()
	if err == io.EOF {
		return table.Table{}, &ParseError{Filename: filename, Format: "csv", Reason: "no header row"}
	}
	if err != nil {
		return table.Table{}, &ParseError{Filename: filename, Format: "csv", Reason: "malformed header", Err: err}
	}

	var body [][]string
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// encoding/csv only fails here on structural problems
			// (unbalanced quotes, bare quotes in fields). Fatal per the
			// decode contract.
			return table.Table{}, &ParseError{Filename: filename, Format: "csv", Reason: "malformed record", Err: err}
		}
		body = append(body, row)
	}

	return buildTable(headers, body, filename, "csv")
}
