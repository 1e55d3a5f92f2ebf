package expense

import (
	"time"

	"github.com/google/uuid"

	"github.com/akablan/wari/internal/expense"
)

type expenseResponse struct {
	ID          uuid.UUID `json:"id"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toResponse(e *expense.Expense) expenseResponse {
	return expenseResponse{
		ID:          e.ID,
		Amount:      e.Amount,
		Description: e.Description,
		Category:    e.CategoryID,
		Date:        e.Date,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func toResponseList(es []*expense.Expense) []expenseResponse {
	out := make([]expenseResponse, 0, len(es))
	for _, e := range es {
		out = append(out, toResponse(e))
	}

	return out
}
