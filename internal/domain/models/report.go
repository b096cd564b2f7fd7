package models

import "time"

// DashboardStats is the summary block rendered on the dashboard: today's
// figures plus month-to-date running totals.
type DashboardStats struct {
	TotalProductionToday int     `json:"total_production_today"`
	TotalSalesToday      int     `json:"total_sales_today"`
	TotalRevenueToday    float64 `json:"total_revenue_today"`
	TotalExpensesToday   float64 `json:"total_expenses_today"`
	NetProfitToday       float64 `json:"net_profit_today"`
	TotalProductionMonth int     `json:"total_production_month"`
	TotalSalesMonth      int     `json:"total_sales_month"`
	TotalRevenueMonth    float64 `json:"total_revenue_month"`
}

// RevenueSummary is the month-to-date revenue view: the underlying sales and
// expense records plus their totals over the same range.
type RevenueSummary struct {
	Start         string    `json:"start"`
	End           string    `json:"end"`
	Sales         []Sale    `json:"sales"`
	Expenses      []Expense `json:"expenses"`
	TotalRevenue  float64   `json:"total_revenue"`
	TotalExpenses float64   `json:"total_expenses"`
	NetProfit     float64   `json:"net_profit"`
}

// DailyReport is the end-of-day snapshot persisted by the scheduler.
type DailyReport struct {
	Date          string    `bson:"date" json:"date"`
	BagsProduced  int       `bson:"bags_produced" json:"bags_produced"`
	BagsSold      int       `bson:"bags_sold" json:"bags_sold"`
	Revenue       float64   `bson:"revenue" json:"revenue"`
	Expenses      float64   `bson:"expenses" json:"expenses"`
	NetProfit     float64   `bson:"net_profit" json:"net_profit"`
	LowStockCount int       `bson:"low_stock_count" json:"low_stock_count"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
}
