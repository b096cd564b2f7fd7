package reporting

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abiwaumi/tablewater/internal/domain/models"
)

func TestTotalForEmptyIsZero(t *testing.T) {
	total := TotalFor(nil, func(models.Sale) bool { return true }, func(s models.Sale) float64 { return s.Revenue })
	assert.Zero(t, total)

	none := TotalFor([]models.Sale{{Date: "2024-03-01", Revenue: 400}},
		func(models.Sale) bool { return false },
		func(s models.Sale) float64 { return s.Revenue })
	assert.Zero(t, none)
}

func TestDailyTotal(t *testing.T) {
	records := []models.Production{
		{Date: "2024-03-01", BagsProduced: 50},
		{Date: "2024-03-02", BagsProduced: 30},
	}
	value := func(p models.Production) float64 { return float64(p.BagsProduced) }

	assert.Equal(t, 50.0, DailyTotal(records, "2024-03-01", value))
	assert.Equal(t, 0.0, DailyTotal(records, "2024-03-05", value))
}

func TestMonthToDateRevenue(t *testing.T) {
	sales := []models.Sale{
		{Date: "2024-03-10", BagsSold: 10, Revenue: models.RevenueFor(10)},
		{Date: "2024-03-10", BagsSold: 5, Revenue: models.RevenueFor(5)},
		{Date: "2024-02-28", BagsSold: 100, Revenue: models.RevenueFor(100)},
	}

	total := MonthToDateTotal(sales, "2024-03-01", func(s models.Sale) float64 { return s.Revenue })
	assert.Equal(t, 6000.0, total)
}

func TestNetProfit(t *testing.T) {
	assert.Equal(t, 2500.0, NetProfit(6000, 3500))
	assert.Equal(t, -500.0, NetProfit(0, 500))
}

func TestLowStockPreservesOrderAndThreshold(t *testing.T) {
	resources := []models.Resource{
		{Name: "Nylon", Quantity: 99.5},
		{Name: "Chlorine", Quantity: 100},
		{Name: "Diesel", Quantity: 12},
		{Name: "Filters", Quantity: 350},
	}

	low := LowStock(resources)
	assert.Len(t, low, 2)
	assert.Equal(t, "Nylon", low[0].Name)
	assert.Equal(t, "Diesel", low[1].Name)

	assert.Empty(t, LowStock(nil))
}
