// Package reporting computes the dashboard, revenue, and daily report
// summaries. Aggregation itself is pure; the service only fetches records
// and delegates to the pure functions.
package reporting

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/abiwaumi/tablewater/internal/domain/models"
	"github.com/abiwaumi/tablewater/internal/repository"
)

// Service exposes summary views over the record store.
type Service struct {
	store  repository.Store
	logger *zap.Logger
}

// NewService wires a new reporting service instance.
func NewService(store repository.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

func monthStartOf(now time.Time) string {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Format(models.DateLayout)
}

// DashboardStats returns today's figures and month-to-date totals as of now.
// The three month-range fetches are independent, so they run concurrently
// and are joined before aggregation.
func (s *Service) DashboardStats(ctx context.Context, now time.Time) (models.DashboardStats, error) {
	today := now.Format(models.DateLayout)
	monthStart := monthStartOf(now)

	var (
		wg         sync.WaitGroup
		production []models.Production
		sales      []models.Sale
		expenses   []models.Expense
		errs       [3]error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		production, errs[0] = s.store.ListProductionInRange(ctx, monthStart, today)
	}()
	go func() {
		defer wg.Done()
		sales, errs[1] = s.store.ListSalesInRange(ctx, monthStart, today)
	}()
	go func() {
		defer wg.Done()
		expenses, errs[2] = s.store.ListExpensesInRange(ctx, monthStart, today)
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return models.DashboardStats{}, fmt.Errorf("load dashboard records: %w", err)
		}
	}

	bagsProduced := func(p models.Production) float64 { return float64(p.BagsProduced) }
	bagsSold := func(sa models.Sale) float64 { return float64(sa.BagsSold) }
	revenue := func(sa models.Sale) float64 { return sa.Revenue }
	amount := func(e models.Expense) float64 { return e.Amount }

	revenueToday := DailyTotal(sales, today, revenue)
	expensesToday := DailyTotal(expenses, today, amount)

	return models.DashboardStats{
		TotalProductionToday: int(DailyTotal(production, today, bagsProduced)),
		TotalSalesToday:      int(DailyTotal(sales, today, bagsSold)),
		TotalRevenueToday:    revenueToday,
		TotalExpensesToday:   expensesToday,
		NetProfitToday:       NetProfit(revenueToday, expensesToday),
		TotalProductionMonth: int(MonthToDateTotal(production, monthStart, bagsProduced)),
		TotalSalesMonth:      int(MonthToDateTotal(sales, monthStart, bagsSold)),
		TotalRevenueMonth:    MonthToDateTotal(sales, monthStart, revenue),
	}, nil
}

// RevenueSummary returns the month-to-date sales and expense records with
// totals computed over that same range.
func (s *Service) RevenueSummary(ctx context.Context, now time.Time) (models.RevenueSummary, error) {
	today := now.Format(models.DateLayout)
	monthStart := monthStartOf(now)

	sales, err := s.store.ListSalesInRange(ctx, monthStart, today)
	if err != nil {
		return models.RevenueSummary{}, fmt.Errorf("load sales range: %w", err)
	}
	expenses, err := s.store.ListExpensesInRange(ctx, monthStart, today)
	if err != nil {
		return models.RevenueSummary{}, fmt.Errorf("load expenses range: %w", err)
	}

	totalRevenue := TotalFor(sales, func(models.Sale) bool { return true }, func(sa models.Sale) float64 { return sa.Revenue })
	totalExpenses := TotalFor(expenses, func(models.Expense) bool { return true }, func(e models.Expense) float64 { return e.Amount })

	return models.RevenueSummary{
		Start:         monthStart,
		End:           today,
		Sales:         sales,
		Expenses:      expenses,
		TotalRevenue:  totalRevenue,
		TotalExpenses: totalExpenses,
		NetProfit:     NetProfit(totalRevenue, totalExpenses),
	}, nil
}

// BuildDailyReport assembles the end-of-day snapshot for the given day.
func (s *Service) BuildDailyReport(ctx context.Context, now time.Time) (models.DailyReport, error) {
	day := now.Format(models.DateLayout)

	production, err := s.store.ListProductionInRange(ctx, day, day)
	if err != nil {
		return models.DailyReport{}, fmt.Errorf("load production for %s: %w", day, err)
	}
	sales, err := s.store.ListSalesInRange(ctx, day, day)
	if err != nil {
		return models.DailyReport{}, fmt.Errorf("load sales for %s: %w", day, err)
	}
	expenses, err := s.store.ListExpensesInRange(ctx, day, day)
	if err != nil {
		return models.DailyReport{}, fmt.Errorf("load expenses for %s: %w", day, err)
	}
	resources, err := s.store.ListResources(ctx)
	if err != nil {
		return models.DailyReport{}, fmt.Errorf("load resources: %w", err)
	}

	revenue := DailyTotal(sales, day, func(sa models.Sale) float64 { return sa.Revenue })
	spent := DailyTotal(expenses, day, func(e models.Expense) float64 { return e.Amount })

	return models.DailyReport{
		Date:          day,
		BagsProduced:  int(DailyTotal(production, day, func(p models.Production) float64 { return float64(p.BagsProduced) })),
		BagsSold:      int(DailyTotal(sales, day, func(sa models.Sale) float64 { return float64(sa.BagsSold) })),
		Revenue:       revenue,
		Expenses:      spent,
		NetProfit:     NetProfit(revenue, spent),
		LowStockCount: len(LowStock(resources)),
	}, nil
}
