package domain

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseCSV reads header-keyed rows from UTF-8 CSV text. A leading BOM is
// ignored, rows may have fewer or more cells than the header, and blank lines
// are skipped. Empty input yields no rows. Each row remembers the line its
// record starts on, which differs from its index once a quoted cell spans
// lines or blank lines are skipped.
func ParseCSV(data []byte) ([]Row, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1 // spreadsheet exports trim trailing empty cells

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		row := NewRow(header, record)
		row.line, _ = reader.FieldPos(0)
		rows = append(rows, row)
	}
	return rows, nil
}
