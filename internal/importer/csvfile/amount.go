package csvfile

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parseAmount parses a monetary cell in either European ("1 234,56",
// "1.234,56") or plain ("1234.56", "1,234.56") form.
func parseAmount(s string) (float64, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	clean = strings.ReplaceAll(clean, " ", "")

	if i := strings.LastIndexAny(clean, ",."); i >= 0 && clean[i] == ',' {
		// Comma decimal separator: drop dot thousands separators first.
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	} else {
		clean = strings.ReplaceAll(clean, ",", "")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, err
	}

	return d.InexactFloat64(), nil
}
