package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	reportapp "salesmart/internal/report/application"
	reportdomain "salesmart/internal/report/domain"
)

type stubReportService struct {
	customer   *reportapp.CustomerReportResult
	product    *reportapp.ProductReportResult
	err        error
	thresholds reportdomain.RevenueThresholds
}

func (s *stubReportService) GetCustomerReport(ctx context.Context) (*reportapp.CustomerReportResult, error) {
	return s.customer, s.err
}

func (s *stubReportService) GetProductReport(ctx context.Context, thresholds reportdomain.RevenueThresholds) (*reportapp.ProductReportResult, error) {
	s.thresholds = thresholds
	if err := thresholds.Validate(); err != nil {
		return nil, err
	}
	return s.product, s.err
}

type stubExportService struct {
	data []byte
	err  error
}

func (s *stubExportService) ExportCustomersCSV(ctx context.Context) ([]byte, error) {
	return s.data, s.err
}

func (s *stubExportService) ExportCustomersParquet(ctx context.Context) ([]byte, error) {
	return s.data, s.err
}

func (s *stubExportService) ExportProductsCSV(ctx context.Context, thresholds reportdomain.RevenueThresholds) ([]byte, error) {
	return s.data, s.err
}

func (s *stubExportService) ExportProductsParquet(ctx context.Context, thresholds reportdomain.RevenueThresholds) ([]byte, error) {
	return s.data, s.err
}

func newTestHandlers(report *stubReportService, export *stubExportService) *Handlers {
	return NewHandlers(report, export, zap.NewNop())
}

func TestGetCustomerReport(t *testing.T) {
	report := &stubReportService{
		customer: &reportapp.CustomerReportResult{
			Rows: []reportdomain.CustomerReportRow{
				{
					CustomerKey:     7,
					CustomerName:    "Alice Martin",
					CustomerSegment: "VIP",
					LastOrderDate:   time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC),
				},
			},
			Stats: reportdomain.BuildStats{QualifiedRows: 3, NullDateRows: 1},
		},
	}
	handlers := newTestHandlers(report, &stubExportService{})

	rec := httptest.NewRecorder()
	handlers.GetCustomerReport(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reports/customers", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var decoded reportapp.CustomerReportResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	require.Len(t, decoded.Rows, 1)
	assert.Equal(t, int64(7), decoded.Rows[0].CustomerKey)
	assert.Equal(t, "VIP", decoded.Rows[0].CustomerSegment)
	assert.Equal(t, 1, decoded.Stats.NullDateRows)
}

func TestGetProductReportDefaultThresholds(t *testing.T) {
	report := &stubReportService{
		product: &reportapp.ProductReportResult{
			Rows: []reportdomain.ProductReportRow{{ProductKey: 1, RevenueBand: "High"}},
		},
	}
	handlers := newTestHandlers(report, &stubExportService{})

	rec := httptest.NewRecorder()
	handlers.GetProductReport(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reports/products", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1000.0, report.thresholds.Mid)
	assert.Equal(t, 5000.0, report.thresholds.High)
}

func TestGetProductReportCustomThresholds(t *testing.T) {
	report := &stubReportService{product: &reportapp.ProductReportResult{}}
	handlers := newTestHandlers(report, &stubExportService{})

	rec := httptest.NewRecorder()
	handlers.GetProductReport(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reports/products?mid=200&high=900", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 200.0, report.thresholds.Mid)
	assert.Equal(t, 900.0, report.thresholds.High)
}

func TestGetProductReportInvalidThresholds(t *testing.T) {
	handlers := newTestHandlers(&stubReportService{}, &stubExportService{})

	rec := httptest.NewRecorder()
	handlers.GetProductReport(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reports/products?mid=900&high=200", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "strictly ordered")
}

func TestGetProductReportMalformedThreshold(t *testing.T) {
	handlers := newTestHandlers(&stubReportService{}, &stubExportService{})

	rec := httptest.NewRecorder()
	handlers.GetProductReport(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reports/products?mid=abc", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportCustomersCSV(t *testing.T) {
	export := &stubExportService{data: []byte("customer_key,customer_number\n")}
	handlers := newTestHandlers(&stubReportService{}, export)

	rec := httptest.NewRecorder()
	handlers.ExportCustomers(rec, httptest.NewRequest(http.MethodGet, "/api/v1/export/customers", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=customer_report.csv", rec.Header().Get("Content-Disposition"))
	assert.Equal(t, export.data, rec.Body.Bytes())
}

func TestExportProductsParquet(t *testing.T) {
	export := &stubExportService{data: []byte{0x50, 0x41, 0x52, 0x31}}
	handlers := newTestHandlers(&stubReportService{}, export)

	rec := httptest.NewRecorder()
	handlers.ExportProducts(rec, httptest.NewRequest(http.MethodGet, "/api/v1/export/products?format=parquet", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/octet-stream", rec.Header().Get("Content-Type"))
	assert.Equal(t, export.data, rec.Body.Bytes())
}

func TestExportCustomersUnsupportedFormat(t *testing.T) {
	handlers := newTestHandlers(&stubReportService{}, &stubExportService{})

	rec := httptest.NewRecorder()
	handlers.ExportCustomers(rec, httptest.NewRequest(http.MethodGet, "/api/v1/export/customers?format=xml", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterRoutes(t *testing.T) {
	handlers := newTestHandlers(&stubReportService{}, &stubExportService{})
	mux := http.NewServeMux()
	handlers.RegisterRoutes(mux)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}
