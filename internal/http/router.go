package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/akablan/wari/internal/http/budget"
	"github.com/akablan/wari/internal/http/category"
	"github.com/akablan/wari/internal/http/expense"
	"github.com/akablan/wari/internal/http/export"
	"github.com/akablan/wari/internal/http/importcsv"
	"github.com/akablan/wari/internal/http/report"
	"github.com/akablan/wari/internal/http/settings"
)

func New(
	expensesV1 *expense.Handler,
	categoriesV1 *category.Handler,
	budgetsV1 *budget.Handler,
	reportsV1 *report.Handler,
	settingsV1 *settings.Handler,
	importV1 *importcsv.Handler,
	exportV1 *export.Handler,
	allowedOrigins []string,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/expenses", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			expensesV1.Routes(r)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			categoriesV1.Routes(r)
		})

		r.Route("/budgets", budgetsV1.Routes)

		r.Route("/reports", reportsV1.Routes)

		r.Route("/settings", settingsV1.Routes)

		r.Route("/import", importV1.Routes)

		r.Route("/export", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			exportV1.Routes(r)
		})
	})

	return router
}
