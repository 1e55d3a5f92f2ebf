// Package export writes filtered expense sets to CSV files and renders
// plain-text spending summaries.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/akablan/wari/internal/category"
	"github.com/akablan/wari/internal/daterange"
	"github.com/akablan/wari/internal/expense"
	"github.com/akablan/wari/internal/report"
	"github.com/akablan/wari/internal/settings"
)

type Service struct {
	expenses   *expense.Service
	categories *category.Service
}

func NewService(expenses *expense.Service, categories *category.Service) *Service {
	return &Service{expenses: expenses, categories: categories}
}

var csvHeader = []string{"date", "description", "category", "amount"}

// Export writes every expense inside r (optionally restricted to one
// category) to a CSV file under outputDir and returns its path.
func (s *Service) Export(ctx context.Context, r daterange.Range, categoryID, outputDir string) (string, error) {
	all, err := s.expenses.List(ctx)
	if err != nil {
		return "", fmt.Errorf("listing expenses: %w", err)
	}

	filtered := report.Filter(all, daterange.Normalize(r), categoryID)

	names, err := s.categoryNames(ctx)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(outputDir, fileName(r))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return "", fmt.Errorf("writing header: %w", err)
	}

	for _, e := range filtered {
		record := []string{
			e.Date.Format("2006-01-02"),
			e.Description,
			categoryName(names, e.CategoryID),
			strconv.FormatFloat(e.Amount, 'f', 2, 64),
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("writing record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flushing csv: %w", err)
	}

	return path, nil
}

// Summary renders a text block with the range label, the total, and one line
// per category sorted by amount, formatted with the user's currency.
func (s *Service) Summary(ctx context.Context, r daterange.Range, cfg settings.Settings) (string, error) {
	all, err := s.expenses.List(ctx)
	if err != nil {
		return "", fmt.Errorf("listing expenses: %w", err)
	}

	filtered := report.Filter(all, daterange.Normalize(r), "")
	rows := report.Breakdown(report.ByCategory(filtered))

	names, err := s.categoryNames(ctx)
	if err != nil {
		return "", err
	}

	var sb strings.Builder

	sb.WriteString(daterange.Label(r, string(cfg.Language)))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Total: %s\n", cfg.FormatAmount(report.Total(filtered))))

	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("* %s | %s | %.1f%%\n",
			categoryName(names, row.CategoryID),
			cfg.FormatAmount(row.Amount),
			row.Share,
		))
	}

	return sb.String(), nil
}

func (s *Service) categoryNames(ctx context.Context) (map[string]string, error) {
	cats, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}

	names := make(map[string]string, len(cats))
	for _, c := range cats {
		names[c.ID] = c.Name
	}

	return names, nil
}

// categoryName resolves an id for display; dangling references render as
// "Other".
func categoryName(names map[string]string, id string) string {
	if name, ok := names[id]; ok {
		return name
	}

	return "Other"
}

func fileName(r daterange.Range) string {
	return fmt.Sprintf("expenses_%s_%s.csv",
		r.Start.Format("20060102"),
		r.End.Format("20060102"),
	)
}
