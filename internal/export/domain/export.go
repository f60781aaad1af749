package domain

import (
	"strconv"

	reportdomain "salesmart/internal/report/domain"
)

// ExportFormat représente le format d'export
type ExportFormat string

const (
	ExportFormatCSV     ExportFormat = "csv"
	ExportFormatParquet ExportFormat = "parquet"
)

const dateLayout = "2006-01-02"

// CustomerCSVHeaders retourne les en-têtes CSV du rapport clients,
// dans l'ordre contractuel des champs publiés
func CustomerCSVHeaders() []string {
	return []string{
		"customer_key",
		"customer_number",
		"customer_name",
		"age",
		"age_group",
		"customer_segment",
		"total_orders",
		"total_sales",
		"total_quantity",
		"total_products",
		"last_order_date",
		"lifespan_months",
		"recency_months",
		"avg_order_value",
		"avg_monthly_spend",
	}
}

// CustomerCSVRow convertit une ligne de rapport clients en ligne CSV
func CustomerCSVRow(row reportdomain.CustomerReportRow) []string {
	return []string{
		strconv.FormatInt(row.CustomerKey, 10),
		row.CustomerNumber,
		row.CustomerName,
		strconv.Itoa(row.Age),
		row.AgeGroup,
		row.CustomerSegment,
		strconv.Itoa(row.TotalOrders),
		strconv.FormatFloat(row.TotalSales, 'f', 2, 64),
		strconv.Itoa(row.TotalQuantity),
		strconv.Itoa(row.TotalProducts),
		row.LastOrderDate.Format(dateLayout),
		strconv.Itoa(row.LifespanMonths),
		strconv.Itoa(row.RecencyMonths),
		strconv.FormatFloat(row.AvgOrderValue, 'f', 2, 64),
		strconv.FormatFloat(row.AvgMonthlySpend, 'f', 2, 64),
	}
}

// ProductCSVHeaders retourne les en-têtes CSV du rapport produits
func ProductCSVHeaders() []string {
	return []string{
		"product_key",
		"product_name",
		"category",
		"subcategory",
		"cost",
		"cost_range",
		"revenue_band",
		"total_orders",
		"total_sales",
		"total_quantity",
		"total_customers",
		"avg_selling_price",
		"last_sale_date",
		"lifespan_months",
		"avg_order_revenue",
		"avg_monthly_revenue",
	}
}

// ProductCSVRow convertit une ligne de rapport produits en ligne CSV
func ProductCSVRow(row reportdomain.ProductReportRow) []string {
	return []string{
		strconv.FormatInt(row.ProductKey, 10),
		row.ProductName,
		row.Category,
		row.Subcategory,
		strconv.FormatFloat(row.Cost, 'f', 2, 64),
		row.CostRange,
		row.RevenueBand,
		strconv.Itoa(row.TotalOrders),
		strconv.FormatFloat(row.TotalSales, 'f', 2, 64),
		strconv.Itoa(row.TotalQuantity),
		strconv.Itoa(row.TotalCustomers),
		strconv.FormatFloat(row.AvgSellingPrice, 'f', 2, 64),
		row.LastSaleDate.Format(dateLayout),
		strconv.Itoa(row.LifespanMonths),
		strconv.FormatFloat(row.AvgOrderRevenue, 'f', 2, 64),
		strconv.FormatFloat(row.AvgMonthlyRevenue, 'f', 2, 64),
	}
}

// CustomerReportParquet ligne du rapport clients pour l'export Parquet
type CustomerReportParquet struct {
	CustomerKey     int64   `parquet:"name=customer_key, type=INT64"`
	CustomerNumber  string  `parquet:"name=customer_number, type=BYTE_ARRAY, convertedtype=UTF8"`
	CustomerName    string  `parquet:"name=customer_name, type=BYTE_ARRAY, convertedtype=UTF8"`
	Age             int32   `parquet:"name=age, type=INT32"`
	AgeGroup        string  `parquet:"name=age_group, type=BYTE_ARRAY, convertedtype=UTF8"`
	CustomerSegment string  `parquet:"name=customer_segment, type=BYTE_ARRAY, convertedtype=UTF8"`
	TotalOrders     int32   `parquet:"name=total_orders, type=INT32"`
	TotalSales      float64 `parquet:"name=total_sales, type=DOUBLE"`
	TotalQuantity   int32   `parquet:"name=total_quantity, type=INT32"`
	TotalProducts   int32   `parquet:"name=total_products, type=INT32"`
	LastOrderDate   string  `parquet:"name=last_order_date, type=BYTE_ARRAY, convertedtype=UTF8"`
	LifespanMonths  int32   `parquet:"name=lifespan_months, type=INT32"`
	RecencyMonths   int32   `parquet:"name=recency_months, type=INT32"`
	AvgOrderValue   float64 `parquet:"name=avg_order_value, type=DOUBLE"`
	AvgMonthlySpend float64 `parquet:"name=avg_monthly_spend, type=DOUBLE"`
}

// NewCustomerReportParquet convertit une ligne de rapport clients
func NewCustomerReportParquet(row reportdomain.CustomerReportRow) CustomerReportParquet {
	return CustomerReportParquet{
		CustomerKey:     row.CustomerKey,
		CustomerNumber:  row.CustomerNumber,
		CustomerName:    row.CustomerName,
		Age:             int32(row.Age),
		AgeGroup:        row.AgeGroup,
		CustomerSegment: row.CustomerSegment,
		TotalOrders:     int32(row.TotalOrders),
		TotalSales:      row.TotalSales,
		TotalQuantity:   int32(row.TotalQuantity),
		TotalProducts:   int32(row.TotalProducts),
		LastOrderDate:   row.LastOrderDate.Format(dateLayout),
		LifespanMonths:  int32(row.LifespanMonths),
		RecencyMonths:   int32(row.RecencyMonths),
		AvgOrderValue:   row.AvgOrderValue,
		AvgMonthlySpend: row.AvgMonthlySpend,
	}
}

// ProductReportParquet ligne du rapport produits pour l'export Parquet
type ProductReportParquet struct {
	ProductKey        int64   `parquet:"name=product_key, type=INT64"`
	ProductName       string  `parquet:"name=product_name, type=BYTE_ARRAY, convertedtype=UTF8"`
	Category          string  `parquet:"name=category, type=BYTE_ARRAY, convertedtype=UTF8"`
	Subcategory       string  `parquet:"name=subcategory, type=BYTE_ARRAY, convertedtype=UTF8"`
	Cost              float64 `parquet:"name=cost, type=DOUBLE"`
	CostRange         string  `parquet:"name=cost_range, type=BYTE_ARRAY, convertedtype=UTF8"`
	RevenueBand       string  `parquet:"name=revenue_band, type=BYTE_ARRAY, convertedtype=UTF8"`
	TotalOrders       int32   `parquet:"name=total_orders, type=INT32"`
	TotalSales        float64 `parquet:"name=total_sales, type=DOUBLE"`
	TotalQuantity     int32   `parquet:"name=total_quantity, type=INT32"`
	TotalCustomers    int32   `parquet:"name=total_customers, type=INT32"`
	AvgSellingPrice   float64 `parquet:"name=avg_selling_price, type=DOUBLE"`
	LastSaleDate      string  `parquet:"name=last_sale_date, type=BYTE_ARRAY, convertedtype=UTF8"`
	LifespanMonths    int32   `parquet:"name=lifespan_months, type=INT32"`
	AvgOrderRevenue   float64 `parquet:"name=avg_order_revenue, type=DOUBLE"`
	AvgMonthlyRevenue float64 `parquet:"name=avg_monthly_revenue, type=DOUBLE"`
}

// NewProductReportParquet convertit une ligne de rapport produits
func NewProductReportParquet(row reportdomain.ProductReportRow) ProductReportParquet {
	return ProductReportParquet{
		ProductKey:        row.ProductKey,
		ProductName:       row.ProductName,
		Category:          row.Category,
		Subcategory:       row.Subcategory,
		Cost:              row.Cost,
		CostRange:         row.CostRange,
		RevenueBand:       row.RevenueBand,
		TotalOrders:       int32(row.TotalOrders),
		TotalSales:        row.TotalSales,
		TotalQuantity:     int32(row.TotalQuantity),
		TotalCustomers:    int32(row.TotalCustomers),
		AvgSellingPrice:   row.AvgSellingPrice,
		LastSaleDate:      row.LastSaleDate.Format(dateLayout),
		LifespanMonths:    int32(row.LifespanMonths),
		AvgOrderRevenue:   row.AvgOrderRevenue,
		AvgMonthlyRevenue: row.AvgMonthlyRevenue,
	}
}
