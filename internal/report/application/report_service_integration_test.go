package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"salesmart/internal/report/domain"
	"salesmart/internal/testhelpers"
)

func setupIntegrationService(tb testing.TB) (*ReportService, *testhelpers.TestContext) {
	tb.Helper()

	testhelpers.SkipIfNoDatabase(tb)

	tc := testhelpers.SetupTestContext(tb)
	service := NewReportService(tc.SalesQueryRepo, tc.Cache, zap.NewNop(), nil)
	return service, tc
}

func TestCustomerReportIntegration(t *testing.T) {
	service, tc := setupIntegrationService(t)
	defer tc.Cleanup()

	result, err := service.GetCustomerReport(context.Background())
	require.NoError(t, err)

	// Les lignes sont triées par clé client
	for i := 1; i < len(result.Rows); i++ {
		assert.Less(t, result.Rows[i-1].CustomerKey, result.Rows[i].CustomerKey)
	}

	for _, row := range result.Rows {
		assert.Positive(t, row.TotalOrders)
		assert.GreaterOrEqual(t, row.LifespanMonths, 0)
		assert.GreaterOrEqual(t, row.RecencyMonths, 0)
		assert.Contains(t, []string{domain.SegmentVIP, domain.SegmentRegular, domain.SegmentNew}, row.CustomerSegment)
	}

	// Deuxième appel servi du cache: résultat identique
	cached, err := service.GetCustomerReport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, result.Rows, cached.Rows)
	assert.Equal(t, result.Stats, cached.Stats)
}

func TestProductReportIntegration(t *testing.T) {
	service, tc := setupIntegrationService(t)
	defer tc.Cleanup()

	thresholds := domain.RevenueThresholds{Mid: 1000, High: 5000}
	result, err := service.GetProductReport(context.Background(), thresholds)
	require.NoError(t, err)

	for i := 1; i < len(result.Rows); i++ {
		assert.Less(t, result.Rows[i-1].ProductKey, result.Rows[i].ProductKey)
	}

	for _, row := range result.Rows {
		assert.Contains(t, []string{domain.BandHigh, domain.BandMid, domain.BandLow}, row.RevenueBand)
		assert.NotEmpty(t, row.CostRange)
	}

	assert.Equal(t, thresholds, result.Thresholds)
}

func TestProductReportIntegrationBadThresholds(t *testing.T) {
	service, tc := setupIntegrationService(t)
	defer tc.Cleanup()

	_, err := service.GetProductReport(context.Background(), domain.RevenueThresholds{Mid: 5000, High: 1000})
	require.Error(t, err)
}

func BenchmarkCustomerReportIntegration(b *testing.B) {
	service, tc := setupIntegrationService(b)
	defer tc.Cleanup()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tc.ClearCache()
		if _, err := service.GetCustomerReport(context.Background()); err != nil {
			b.Fatal(err)
		}
	}
}
