package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	salesdomain "salesmart/internal/sales/domain"
	shareddomain "salesmart/internal/shared/domain"
)

func testCustomer(t *testing.T, key int64, number, name string, birth *time.Time) *salesdomain.Customer {
	t.Helper()
	customer, err := salesdomain.NewCustomer(salesdomain.CustomerKey(key), number, name, birth)
	require.NoError(t, err)
	return customer
}

func testProduct(t *testing.T, key int64, name, category, subcategory string, cost float64) *salesdomain.Product {
	t.Helper()
	money, err := shareddomain.NewMoney(cost, shareddomain.ReportingCurrency)
	require.NoError(t, err)
	product, err := salesdomain.NewProduct(salesdomain.ProductKey(key), name, category, subcategory, money)
	require.NoError(t, err)
	return product
}

func TestBuildCustomerReport_VIPScenario(t *testing.T) {
	// Client avec commandes au 2023-01-10 et 2024-06-20, total 6000,
	// référence 2024-07-01: ancienneté 17 mois, récence 0, segment VIP
	birth := time.Date(1985, time.April, 2, 0, 0, 0, 0, time.UTC)
	customers := []*salesdomain.Customer{
		testCustomer(t, 1, "CU-1001", "Ada Lovelace", &birth),
	}
	facts := []salesdomain.Fact{
		fact("SO-1", orderDate(2023, time.January, 10), 1, 100, 2, 1000),
		fact("SO-2", orderDate(2024, time.June, 20), 1, 101, 5, 5000),
	}
	now := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)

	rows, stats := BuildCustomerReport(facts, customers, now)

	require.Len(t, rows, 1)
	row := rows[0]
	assert.Equal(t, int64(1), row.CustomerKey)
	assert.Equal(t, "CU-1001", row.CustomerNumber)
	assert.Equal(t, 17, row.LifespanMonths)
	assert.Equal(t, 0, row.RecencyMonths)
	assert.Equal(t, SegmentVIP, row.CustomerSegment)
	assert.Equal(t, 2, row.TotalOrders)
	assert.Equal(t, 6000.0, row.TotalSales)
	assert.Equal(t, 2, row.TotalProducts)
	assert.Equal(t, 39, row.Age)
	assert.Equal(t, "30-39", row.AgeGroup)
	assert.Equal(t, time.Date(2024, time.June, 20, 0, 0, 0, 0, time.UTC), row.LastOrderDate)
	assert.InDelta(t, 3000.0, row.AvgOrderValue, 1e-9)
	assert.InDelta(t, 6000.0/17.0, row.AvgMonthlySpend, 1e-9)
	assert.Equal(t, 0, stats.ExcludedRows())
}

func TestBuildCustomerReport_NewCustomerScenario(t *testing.T) {
	// Une seule commande de 500, référence 30 jours plus tard:
	// ancienneté 0, dépense mensuelle = total, segment New
	customers := []*salesdomain.Customer{
		testCustomer(t, 7, "CU-1007", "Grace Hopper", nil),
	}
	day := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	facts := []salesdomain.Fact{
		fact("SO-9", &day, 7, 100, 1, 500),
	}

	rows, _ := BuildCustomerReport(facts, customers, day.AddDate(0, 0, 30))

	require.Len(t, rows, 1)
	row := rows[0]
	assert.Equal(t, 0, row.LifespanMonths)
	assert.InDelta(t, 500.0, row.AvgMonthlySpend, 1e-9)
	assert.Equal(t, SegmentNew, row.CustomerSegment)
}

func TestBuildCustomerReport_NoQualifyingRowsNoReportRow(t *testing.T) {
	customers := []*salesdomain.Customer{
		testCustomer(t, 1, "CU-1001", "Active", nil),
		testCustomer(t, 2, "CU-1002", "Silent", nil),
	}
	facts := []salesdomain.Fact{
		fact("SO-1", orderDate(2024, time.March, 1), 1, 100, 1, 50),
		fact("SO-2", nil, 2, 100, 1, 50), // seule ligne du client 2, sans date
	}

	rows, stats := BuildCustomerReport(facts, customers, time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC))

	require.Len(t, rows, 1)
	assert.Equal(t, int64(1), rows[0].CustomerKey)
	assert.Equal(t, 1, stats.NullDateRows)
}

func TestBuildCustomerReport_SortedByKey(t *testing.T) {
	customers := []*salesdomain.Customer{
		testCustomer(t, 3, "CU-3", "C", nil),
		testCustomer(t, 1, "CU-1", "A", nil),
		testCustomer(t, 2, "CU-2", "B", nil),
	}
	facts := []salesdomain.Fact{
		fact("SO-3", orderDate(2024, time.March, 3), 3, 100, 1, 30),
		fact("SO-1", orderDate(2024, time.March, 1), 1, 100, 1, 10),
		fact("SO-2", orderDate(2024, time.March, 2), 2, 100, 1, 20),
	}

	rows, _ := BuildCustomerReport(facts, customers, time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC))

	require.Len(t, rows, 3)
	assert.Equal(t, int64(1), rows[0].CustomerKey)
	assert.Equal(t, int64(2), rows[1].CustomerKey)
	assert.Equal(t, int64(3), rows[2].CustomerKey)
}

func TestBuildCustomerReport_Idempotent(t *testing.T) {
	customers := []*salesdomain.Customer{
		testCustomer(t, 1, "CU-1", "A", nil),
		testCustomer(t, 2, "CU-2", "B", nil),
	}
	facts := []salesdomain.Fact{
		fact("SO-1", orderDate(2023, time.May, 1), 1, 100, 2, 150),
		fact("SO-2", orderDate(2024, time.January, 15), 1, 101, 1, 80),
		fact("SO-3", orderDate(2024, time.February, 2), 2, 100, 4, 320),
	}
	now := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)

	first, firstStats := BuildCustomerReport(facts, customers, now)
	second, secondStats := BuildCustomerReport(facts, customers, now)

	assert.Equal(t, first, second)
	assert.Equal(t, firstStats, secondStats)
}

func TestBuildProductReport_HighBandAtBoundary(t *testing.T) {
	// total_sales égal au seuil haut tombe dans High (borne inclusive)
	products := []*salesdomain.Product{
		testProduct(t, 100, "Mountain-200", "Bikes", "Mountain Bikes", 1251.98),
	}
	facts := []salesdomain.Fact{
		fact("SO-1", orderDate(2024, time.January, 10), 1, 100, 2, 3000),
		fact("SO-2", orderDate(2024, time.April, 3), 2, 100, 1, 2000),
	}
	now := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)

	rows, stats, err := BuildProductReport(facts, products, now, RevenueThresholds{Mid: 1000, High: 5000})
	require.NoError(t, err)

	require.Len(t, rows, 1)
	row := rows[0]
	assert.Equal(t, int64(100), row.ProductKey)
	assert.Equal(t, BandHigh, row.RevenueBand)
	assert.Equal(t, "Above 1000", row.CostRange)
	assert.Equal(t, 2, row.TotalOrders)
	assert.Equal(t, 5000.0, row.TotalSales)
	assert.Equal(t, 2, row.TotalCustomers)
	assert.Equal(t, 3, row.LifespanMonths)
	assert.InDelta(t, 5000.0/3.0, row.AvgSellingPrice, 1e-9)
	assert.InDelta(t, 2500.0, row.AvgOrderRevenue, 1e-9)
	assert.Equal(t, time.Date(2024, time.April, 3, 0, 0, 0, 0, time.UTC), row.LastSaleDate)
	assert.Equal(t, 0, stats.ExcludedRows())
}

func TestBuildProductReport_AllNullDatesProducesNoRow(t *testing.T) {
	products := []*salesdomain.Product{
		testProduct(t, 100, "Phantom", "Accessories", "Lights", 20),
	}
	facts := []salesdomain.Fact{
		fact("SO-1", nil, 1, 100, 1, 100),
		fact("SO-2", nil, 2, 100, 2, 200),
	}

	rows, stats, err := BuildProductReport(facts, products,
		time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC),
		RevenueThresholds{Mid: 1000, High: 5000})
	require.NoError(t, err)

	assert.Empty(t, rows)
	assert.Equal(t, 2, stats.NullDateRows)
}

func TestBuildProductReport_InvalidThresholdsFailFast(t *testing.T) {
	products := []*salesdomain.Product{
		testProduct(t, 100, "Any", "Bikes", "Road Bikes", 500),
	}
	facts := []salesdomain.Fact{
		fact("SO-1", orderDate(2024, time.January, 10), 1, 100, 1, 100),
	}

	_, _, err := BuildProductReport(facts, products,
		time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC),
		RevenueThresholds{Mid: 5000, High: 1000})

	require.Error(t, err)
	var thresholdErr *ThresholdError
	assert.ErrorAs(t, err, &thresholdErr)
}
