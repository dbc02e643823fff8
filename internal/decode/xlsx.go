package decode

import (
	"bytes"

	"github.com/xuri/excelize/v2"

	"dataprep/pkg/table"
)

// decodeXLSX reads the first sheet of a workbook. The first row is the
// header; remaining rows are data. excelize already returns cells as
// strings, and trailing short rows are common in real workbooks, so the
// shared buildTable padding handles the ragged shape.
func decodeXLSX(buf []byte, filename string) (table.Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(buf))
	if err != nil {
		return table.Table{}, &ParseError{Filename: filename, Format: "xlsx", Reason: "cannot open workbook", Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return table.Table{}, &ParseError{Filename: filename, Format: "xlsx", Reason: "workbook has no sheets"}
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return table.Table{}, &ParseError{Filename: filename, Format: "xlsx", Reason: "cannot read first sheet", Err: err}
	}
	if len(rows) == 0 {
		return table.Table{}, &ParseError{Filename: filename, Format: "xlsx", Reason: "no header row"}
	}

	return buildTable(rows[0], rows[1:], filename, "xlsx")
}
