package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abiwaumi/tablewater/internal/config"
	"github.com/abiwaumi/tablewater/internal/domain/models"
	"github.com/abiwaumi/tablewater/internal/repository/memory"
	"github.com/abiwaumi/tablewater/internal/service/reporting"
)

type captureExporter struct {
	reports []models.DailyReport
}

func (c *captureExporter) AppendDailyReport(_ context.Context, report models.DailyReport) error {
	c.reports = append(c.reports, report)
	return nil
}

type captureAlerts struct {
	messages []string
}

func (c *captureAlerts) Send(_ context.Context, text string) error {
	c.messages = append(c.messages, text)
	return nil
}

func TestRunDailyReport(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	today := time.Now().Format(models.DateLayout)

	_, err := store.CreateProduction(ctx, models.Production{Date: today, BagsProduced: 80})
	require.NoError(t, err)
	_, err = store.CreateSale(ctx, models.Sale{Date: today, BagsSold: 60})
	require.NoError(t, err)
	_, err = store.CreateResource(ctx, models.Resource{
		Name: "Nylon Roll", Category: models.ResourceNylon, Quantity: 20, Unit: "rolls",
	})
	require.NoError(t, err)

	exporter := &captureExporter{}
	alerts := &captureAlerts{}
	cfg := config.ReportingConfig{CronSchedule: "0 20 * * *", Timezone: "Africa/Lagos"}
	sched := NewScheduler(cfg, reporting.NewService(store, nil), store, exporter, alerts, nil)

	sched.runDailyReport()

	reports, err := store.ListDailyReports(ctx, 0)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, today, reports[0].Date)
	assert.Equal(t, 80, reports[0].BagsProduced)
	assert.Equal(t, float64(60*models.BagPrice), reports[0].Revenue)
	assert.Equal(t, 1, reports[0].LowStockCount)

	require.Len(t, exporter.reports, 1)
	require.Len(t, alerts.messages, 1)
	assert.Contains(t, alerts.messages[0], "80 bags produced")
	assert.Contains(t, alerts.messages[0], "below the restock threshold")
}

func TestNewSchedulerUnknownTimezoneFallsBack(t *testing.T) {
	cfg := config.ReportingConfig{CronSchedule: "0 20 * * *", Timezone: "Mars/Olympus"}
	store := memory.NewStore()
	sched := NewScheduler(cfg, reporting.NewService(store, nil), store, nil, nil, nil)
	require.NotNil(t, sched)

	sched.Start()
	sched.Stop()
}
