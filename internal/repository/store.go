// Package repository defines the persistence contract the rest of the
// application depends on. The memory implementation is the default demo
// backend and test double; the mongodb implementation targets the managed
// backend. Both validate at the boundary and freeze sale revenue at
// creation time.
package repository

import (
	"context"

	"github.com/abiwaumi/tablewater/internal/domain/models"
)

// Store is the full persistence surface. List results are ordered
// newest-first by date; range queries are inclusive on both ends and compare
// ISO date strings lexicographically.
type Store interface {
	ListProduction(ctx context.Context) ([]models.Production, error)
	ListProductionInRange(ctx context.Context, start, end string) ([]models.Production, error)
	CreateProduction(ctx context.Context, rec models.Production) (models.Production, error)

	ListSales(ctx context.Context) ([]models.Sale, error)
	ListSalesInRange(ctx context.Context, start, end string) ([]models.Sale, error)
	CreateSale(ctx context.Context, rec models.Sale) (models.Sale, error)

	ListExpenses(ctx context.Context) ([]models.Expense, error)
	ListExpensesInRange(ctx context.Context, start, end string) ([]models.Expense, error)
	CreateExpense(ctx context.Context, rec models.Expense) (models.Expense, error)

	ListResources(ctx context.Context) ([]models.Resource, error)
	CreateResource(ctx context.Context, rec models.Resource) (models.Resource, error)
	UpdateResource(ctx context.Context, id string, patch models.ResourcePatch) (models.Resource, error)
	DeleteResource(ctx context.Context, id string) error

	UserByEmail(ctx context.Context, email string) (models.User, error)

	SaveDailyReport(ctx context.Context, report models.DailyReport) error
	ListDailyReports(ctx context.Context, limit int) ([]models.DailyReport, error)
}
