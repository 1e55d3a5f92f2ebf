package importer

import (
	"fmt"
	"io"
	"time"

	"github.com/akablan/wari/internal/importer/csvfile"
)

// Row is one imported expense candidate. Category carries the raw category
// label from the file, when present; resolving it to a category id is the
// caller's job.
type Row struct {
	Amount      float64
	Description string
	Category    string
	Date        time.Time
}

type Format string

const FormatCSV Format = "csv"

type Parser interface {
	Parse(r io.Reader) ([]csvfile.Row, error)
}

type Service struct {
	csvParser Parser
}

func NewService() *Service {
	return &Service{csvParser: csvfile.NewParser()}
}

func (s *Service) Import(format Format, r io.Reader) ([]Row, error) {
	var parser Parser

	switch format {
	case FormatCSV:
		parser = s.csvParser
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}

	parsed, err := parser.Parse(r)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, len(parsed))
	for i, p := range parsed {
		rows[i] = Row{
			Amount:      p.Amount,
			Description: p.Description,
			Category:    p.Category,
			Date:        p.Date,
		}
	}

	return rows, nil
}
