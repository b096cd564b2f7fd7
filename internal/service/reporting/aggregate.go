package reporting

import "github.com/abiwaumi/tablewater/internal/domain/models"

// Dated is any record carrying a calendar day.
type Dated interface {
	RecordDate() string
}

// TotalFor sums value(r) over the records matching the predicate. An empty
// match set totals to zero; it never fails.
func TotalFor[T any](records []T, match func(T) bool, value func(T) float64) float64 {
	var total float64
	for _, r := range records {
		if match(r) {
			total += value(r)
		}
	}
	return total
}

// DailyTotal sums value over records dated exactly date.
func DailyTotal[T Dated](records []T, date string, value func(T) float64) float64 {
	return TotalFor(records, func(r T) bool { return r.RecordDate() == date }, value)
}

// MonthToDateTotal sums value over records dated on or after monthStart.
func MonthToDateTotal[T Dated](records []T, monthStart string, value func(T) float64) float64 {
	return TotalFor(records, func(r T) bool { return r.RecordDate() >= monthStart }, value)
}

// NetProfit combines a revenue total and an expense total. The caller must
// compute both over matching date ranges; that contract is not checked here.
func NetProfit(revenue, expenses float64) float64 {
	return revenue - expenses
}

// LowStock filters resources below the restock threshold, preserving input
// order.
func LowStock(resources []models.Resource) []models.Resource {
	out := make([]models.Resource, 0, len(resources))
	for _, r := range resources {
		if r.LowStock() {
			out = append(out, r)
		}
	}
	return out
}
