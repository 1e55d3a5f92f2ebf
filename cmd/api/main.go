package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/akablan/wari/internal/budget"
	budgetStore "github.com/akablan/wari/internal/budget/store"
	"github.com/akablan/wari/internal/category"
	categoryStore "github.com/akablan/wari/internal/category/store"
	"github.com/akablan/wari/internal/config"
	"github.com/akablan/wari/internal/database"
	"github.com/akablan/wari/internal/expense"
	expenseStore "github.com/akablan/wari/internal/expense/store"
	"github.com/akablan/wari/internal/export"
	wariHttp "github.com/akablan/wari/internal/http"
	budgetHandler "github.com/akablan/wari/internal/http/budget"
	categoryHandler "github.com/akablan/wari/internal/http/category"
	expenseHandler "github.com/akablan/wari/internal/http/expense"
	exportHandler "github.com/akablan/wari/internal/http/export"
	importHandler "github.com/akablan/wari/internal/http/importcsv"
	reportHandler "github.com/akablan/wari/internal/http/report"
	settingsHandler "github.com/akablan/wari/internal/http/settings"
	"github.com/akablan/wari/internal/importer"
	"github.com/akablan/wari/internal/rules"
	rulesStore "github.com/akablan/wari/internal/rules/store"
	"github.com/akablan/wari/internal/settings"
	settingsStore "github.com/akablan/wari/internal/settings/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.Data.Path)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	onError := func(err error) {
		slog.Error("failed to persist snapshot", "error", err)
	}

	expenses, err := expenseStore.New(db, onError)
	if err != nil {
		slog.Error("failed to load expenses", "error", err)
		os.Exit(1)
	}
	defer expenses.Close()

	categories, err := categoryStore.New(db, onError)
	if err != nil {
		slog.Error("failed to load categories", "error", err)
		os.Exit(1)
	}
	defer categories.Close()

	budgets, err := budgetStore.New(db, onError)
	if err != nil {
		slog.Error("failed to load budgets", "error", err)
		os.Exit(1)
	}
	defer budgets.Close()

	settingsSt, err := settingsStore.New(db, onError)
	if err != nil {
		slog.Error("failed to load settings", "error", err)
		os.Exit(1)
	}
	defer settingsSt.Close()

	rulesSt, err := rulesStore.New(db, onError)
	if err != nil {
		slog.Error("failed to load rules", "error", err)
		os.Exit(1)
	}
	defer rulesSt.Close()

	var (
		expenseService  = expense.NewService(expenses)
		categoryService = category.NewService(categories)
		budgetService   = budget.NewService(budgets)
		settingsService = settings.NewService(settingsSt)
		rulesService    = rules.NewService(rulesSt)
		importService   = importer.NewService()
		exportService   = export.NewService(expenseService, categoryService)
	)

	var (
		expenseH  = expenseHandler.NewHandler(expenseService)
		categoryH = categoryHandler.NewHandler(categoryService, expenseService)
		budgetH   = budgetHandler.NewHandler(budgetService)
		reportH   = reportHandler.NewHandler(expenseService, categoryService, budgetService, settingsService)
		settingsH = settingsHandler.NewHandler(settingsService)
		importH   = importHandler.NewHandler(importService, expenseService, categoryService, rulesService)
		exportH   = exportHandler.NewHandler(exportService, settingsService, cfg.Export.Dir)
	)

	router := wariHttp.New(expenseH, categoryH, budgetH, reportH, settingsH, importH, exportH, cfg.Server.AllowedOrigins)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "app", cfg.App.Name, "addr", addr)

	if err := http.ListenAndServe(addr, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
