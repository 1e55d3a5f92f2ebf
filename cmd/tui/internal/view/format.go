package view

import (
	"context"
	"time"

	"github.com/akablan/wari/internal/settings"
)

const opTimeout = 5 * time.Second

// FormatAmount renders an amount with the active currency and locale.
func FormatAmount(cfg settings.Settings, amount float64) string {
	return cfg.FormatAmount(amount)
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// OpCtx returns a context with a standard timeout for service operations.
func OpCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), opTimeout)
}
