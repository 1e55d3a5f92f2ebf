package csvfile

import "strings"

// Column synonyms accepted in header rows, covering English and French
// exports. Comparison is case-insensitive on the trimmed header cell.
var (
	dateCols        = []string{"date", "data", "date mov."}
	descriptionCols = []string{"description", "libellé", "libelle", "label", "intitulé"}
	amountCols      = []string{"amount", "montant", "valeur", "value"}
	categoryCols    = []string{"category", "catégorie", "categorie"}
)

// colIndex maps a logical field to its position in the row; -1 means absent.
type colIndex struct {
	date        int
	description int
	amount      int
	category    int
}

func matchColumn(cell string, names []string) bool {
	cell = strings.ToLower(strings.TrimSpace(cell))
	for _, n := range names {
		if cell == n {
			return true
		}
	}

	return false
}

// detectHeader scans rows for one containing date, description, and amount
// columns. Returns the index map and the header's row index, or ok=false.
func detectHeader(rows [][]string) (colIndex, int, bool) {
	for rowIdx, row := range rows {
		cols := colIndex{date: -1, description: -1, amount: -1, category: -1}

		for i, cell := range row {
			switch {
			case cols.date < 0 && matchColumn(cell, dateCols):
				cols.date = i
			case cols.description < 0 && matchColumn(cell, descriptionCols):
				cols.description = i
			case cols.amount < 0 && matchColumn(cell, amountCols):
				cols.amount = i
			case cols.category < 0 && matchColumn(cell, categoryCols):
				cols.category = i
			}
		}

		if cols.date >= 0 && cols.description >= 0 && cols.amount >= 0 {
			return cols, rowIdx, true
		}
	}

	return colIndex{}, 0, false
}
