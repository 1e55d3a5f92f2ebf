package expense

import (
	"time"

	"github.com/google/uuid"
)

// Expense represents a single dated monetary transaction.
// Records are value snapshots; updates replace the state kept under the same ID.
type Expense struct {
	ID          uuid.UUID `json:"id"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	CategoryID  string    `json:"category"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
