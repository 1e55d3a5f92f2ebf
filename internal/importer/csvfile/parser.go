// Package csvfile parses generic expense CSV exports: any file with a header
// row naming date, description, and amount columns (English or French),
// semicolon- or comma-delimited, in any common charset.
package csvfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	enc "github.com/akablan/wari/internal/encoding"
)

// Row is one parsed data line. Amount is always positive: sign conveys
// debit/credit in bank exports, but everything imported here is spend.
type Row struct {
	Amount      float64
	Description string
	Category    string
	Date        time.Time
}

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]Row, error) {
	utf8r, err := enc.ToUTF8(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	raw, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	reader := csv.NewReader(strings.NewReader(string(raw)))
	reader.Comma = detectDelimiter(string(raw))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	cols, headerIdx, ok := detectHeader(rows)
	if !ok {
		return nil, fmt.Errorf("no header row with date, description, and amount columns found")
	}

	return parseRows(cols, rows[headerIdx+1:], headerIdx+1)
}

// detectDelimiter picks ';' when the file contains more semicolons than
// commas, ',' otherwise. Counting the whole content rather than the first
// line matters: bank exports often open with a delimiter-free title line.
func detectDelimiter(content string) rune {
	if strings.Count(content, ";") > strings.Count(content, ",") {
		return ';'
	}

	return ','
}

func parseRows(cols colIndex, rows [][]string, headerRowNum int) ([]Row, error) {
	var out []Row

	for i, row := range rows {
		rowNum := headerRowNum + i + 2 // 1-based, past the header

		date, ok := parseDate(cellValue(row, cols.date))
		if !ok {
			// Footer lines, subtotals, blank padding.
			continue
		}

		desc := cellValue(row, cols.description)
		if desc == "" {
			return nil, fmt.Errorf("row %d: missing description", rowNum)
		}

		amount, err := parseAmount(cellValue(row, cols.amount))
		if err != nil || amount == 0 {
			continue
		}

		if amount < 0 {
			amount = -amount
		}

		out = append(out, Row{
			Amount:      amount,
			Description: desc,
			Category:    cellValue(row, cols.category),
			Date:        date,
		})
	}

	return out, nil
}

var dateLayouts = []string{"2006-01-02", "02/01/2006", "02-01-2006"}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
