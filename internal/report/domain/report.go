package domain

import (
	"sort"
	"time"

	salesdomain "salesmart/internal/sales/domain"
)

// CustomerReportRow ligne publiée du rapport clients.
// L'ordre et le nommage des champs font partie du contrat externe:
// les consommateurs peuvent s'y fier.
type CustomerReportRow struct {
	CustomerKey     int64     `json:"customer_key"`
	CustomerNumber  string    `json:"customer_number"`
	CustomerName    string    `json:"customer_name"`
	Age             int       `json:"age"`
	AgeGroup        string    `json:"age_group"`
	CustomerSegment string    `json:"customer_segment"`
	TotalOrders     int       `json:"total_orders"`
	TotalSales      float64   `json:"total_sales"`
	TotalQuantity   int       `json:"total_quantity"`
	TotalProducts   int       `json:"total_products"`
	LastOrderDate   time.Time `json:"last_order_date"`
	LifespanMonths  int       `json:"lifespan_months"`
	RecencyMonths   int       `json:"recency_months"`
	AvgOrderValue   float64   `json:"avg_order_value"`
	AvgMonthlySpend float64   `json:"avg_monthly_spend"`
}

// ProductReportRow ligne publiée du rapport produits
type ProductReportRow struct {
	ProductKey        int64     `json:"product_key"`
	ProductName       string    `json:"product_name"`
	Category          string    `json:"category"`
	Subcategory       string    `json:"subcategory"`
	Cost              float64   `json:"cost"`
	CostRange         string    `json:"cost_range"`
	RevenueBand       string    `json:"revenue_band"`
	TotalOrders       int       `json:"total_orders"`
	TotalSales        float64   `json:"total_sales"`
	TotalQuantity     int       `json:"total_quantity"`
	TotalCustomers    int       `json:"total_customers"`
	AvgSellingPrice   float64   `json:"avg_selling_price"`
	LastSaleDate      time.Time `json:"last_sale_date"`
	LifespanMonths    int       `json:"lifespan_months"`
	AvgOrderRevenue   float64   `json:"avg_order_revenue"`
	AvgMonthlyRevenue float64   `json:"avg_monthly_revenue"`
}

// BuildCustomerReport assemble le rapport clients: agrégation, métriques
// dérivées, segmentation, puis jointure interne avec la dimension clients.
// Fonction pure: mêmes entrées, même sortie; la date de référence est
// injectée. Les lignes sont triées par clé client pour qu'un rebuild sur
// un snapshot inchangé produise une sortie identique octet pour octet.
func BuildCustomerReport(
	facts []salesdomain.Fact,
	customers []*salesdomain.Customer,
	now time.Time,
) ([]CustomerReportRow, BuildStats) {
	index := make(map[EntityKey]*salesdomain.Customer, len(customers))
	keys := make(map[EntityKey]struct{}, len(customers))
	for _, customer := range customers {
		key := EntityKey(customer.Key())
		index[key] = customer
		keys[key] = struct{}{}
	}

	aggregates, stats := AggregateFacts(facts, keys, CustomerKeyOf, ProductKeyOf)

	rows := make([]CustomerReportRow, 0, len(aggregates))
	for key, aggregate := range aggregates {
		// Jointure interne garantie: la clé d'un agrégat provient
		// toujours de la dimension (les orphelins sont déjà écartés)
		customer := index[key]
		metrics := DeriveMetrics(aggregate, now)
		age := customer.Age(now)

		rows = append(rows, CustomerReportRow{
			CustomerKey:     int64(customer.Key()),
			CustomerNumber:  customer.Number(),
			CustomerName:    customer.Name(),
			Age:             age,
			AgeGroup:        AgeGroup(age),
			CustomerSegment: ClassifyCustomerSegment(metrics),
			TotalOrders:     aggregate.TotalOrders(),
			TotalSales:      aggregate.TotalSales().Amount(),
			TotalQuantity:   aggregate.TotalQuantity().Value(),
			TotalProducts:   aggregate.CrossCount(),
			LastOrderDate:   aggregate.Span().End(),
			LifespanMonths:  metrics.LifespanMonths(),
			RecencyMonths:   metrics.RecencyMonths(),
			AvgOrderValue:   metrics.AvgPerOrder(),
			AvgMonthlySpend: metrics.AvgPerMonth(),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].CustomerKey < rows[j].CustomerKey
	})

	return rows, stats
}

// BuildProductReport assemble le rapport produits. Les seuils de bandes
// de revenus sont validés avant tout calcul: des seuils mal ordonnés sont
// une erreur de configuration fatale.
func BuildProductReport(
	facts []salesdomain.Fact,
	products []*salesdomain.Product,
	now time.Time,
	thresholds RevenueThresholds,
) ([]ProductReportRow, BuildStats, error) {
	if err := thresholds.Validate(); err != nil {
		return nil, BuildStats{}, err
	}

	index := make(map[EntityKey]*salesdomain.Product, len(products))
	keys := make(map[EntityKey]struct{}, len(products))
	for _, product := range products {
		key := EntityKey(product.Key())
		index[key] = product
		keys[key] = struct{}{}
	}

	aggregates, stats := AggregateFacts(facts, keys, ProductKeyOf, CustomerKeyOf)

	rows := make([]ProductReportRow, 0, len(aggregates))
	for key, aggregate := range aggregates {
		product := index[key]
		metrics := DeriveMetrics(aggregate, now)
		cost := product.Cost().Amount()

		rows = append(rows, ProductReportRow{
			ProductKey:        int64(product.Key()),
			ProductName:       product.Name(),
			Category:          product.Category(),
			Subcategory:       product.Subcategory(),
			Cost:              cost,
			CostRange:         CostRange(cost),
			RevenueBand:       ClassifyRevenueBand(thresholds, metrics),
			TotalOrders:       aggregate.TotalOrders(),
			TotalSales:        aggregate.TotalSales().Amount(),
			TotalQuantity:     aggregate.TotalQuantity().Value(),
			TotalCustomers:    aggregate.CrossCount(),
			AvgSellingPrice:   metrics.AvgPerUnit(),
			LastSaleDate:      aggregate.Span().End(),
			LifespanMonths:    metrics.LifespanMonths(),
			AvgOrderRevenue:   metrics.AvgPerOrder(),
			AvgMonthlyRevenue: metrics.AvgPerMonth(),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].ProductKey < rows[j].ProductKey
	})

	return rows, stats, nil
}
