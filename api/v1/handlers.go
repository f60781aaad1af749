package v1

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	exportdomain "salesmart/internal/export/domain"
	reportapp "salesmart/internal/report/application"
	reportdomain "salesmart/internal/report/domain"
)

// Seuils de bandes de revenus appliqués quand la requête n'en fournit pas
const (
	defaultMidThreshold  = 1000.0
	defaultHighThreshold = 5000.0
)

// ReportService expose la construction des rapports
type ReportService interface {
	GetCustomerReport(ctx context.Context) (*reportapp.CustomerReportResult, error)
	GetProductReport(ctx context.Context, thresholds reportdomain.RevenueThresholds) (*reportapp.ProductReportResult, error)
}

// ExportService expose les rapports sous forme de fichiers
type ExportService interface {
	ExportCustomersCSV(ctx context.Context) ([]byte, error)
	ExportCustomersParquet(ctx context.Context) ([]byte, error)
	ExportProductsCSV(ctx context.Context, thresholds reportdomain.RevenueThresholds) ([]byte, error)
	ExportProductsParquet(ctx context.Context, thresholds reportdomain.RevenueThresholds) ([]byte, error)
}

// Handlers contient tous les handlers de l'API V1
type Handlers struct {
	reportService ReportService
	exportService ExportService
	logger        *zap.Logger
}

// NewHandlers crée une nouvelle instance des handlers
func NewHandlers(reportService ReportService, exportService ExportService, logger *zap.Logger) *Handlers {
	return &Handlers{
		reportService: reportService,
		exportService: exportService,
		logger:        logger,
	}
}

// RegisterRoutes enregistre les routes de l'API sur le mux
func (h *Handlers) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/health", h.Health)
	mux.HandleFunc("/api/v1/reports/customers", h.GetCustomerReport)
	mux.HandleFunc("/api/v1/reports/products", h.GetProductReport)
	mux.HandleFunc("/api/v1/export/customers", h.ExportCustomers)
	mux.HandleFunc("/api/v1/export/products", h.ExportProducts)
}

// Health handler pour GET /api/health
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// GetCustomerReport handler pour GET /api/v1/reports/customers
func (h *Handlers) GetCustomerReport(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.GetCustomerReport(r.Context())
	if err != nil {
		h.logger.Error("customer report failed", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// GetProductReport handler pour GET /api/v1/reports/products
// Paramètres optionnels mid et high pour les seuils de bandes de revenus
func (h *Handlers) GetProductReport(w http.ResponseWriter, r *http.Request) {
	thresholds, err := thresholdsFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.reportService.GetProductReport(r.Context(), thresholds)
	if err != nil {
		var thresholdErr *reportdomain.ThresholdError
		if errors.As(err, &thresholdErr) {
			http.Error(w, thresholdErr.Error(), http.StatusBadRequest)
			return
		}
		h.logger.Error("product report failed", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// ExportCustomers handler pour GET /api/v1/export/customers?format=csv|parquet
func (h *Handlers) ExportCustomers(w http.ResponseWriter, r *http.Request) {
	switch exportFormat(r) {
	case exportdomain.ExportFormatParquet:
		data, err := h.exportService.ExportCustomersParquet(r.Context())
		if err != nil {
			h.logger.Error("customer parquet export failed", zap.Error(err))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		writeAttachment(w, "application/octet-stream", "customer_report.parquet", data)
	case exportdomain.ExportFormatCSV:
		data, err := h.exportService.ExportCustomersCSV(r.Context())
		if err != nil {
			h.logger.Error("customer csv export failed", zap.Error(err))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		writeAttachment(w, "text/csv", "customer_report.csv", data)
	default:
		http.Error(w, "unsupported format, expected csv or parquet", http.StatusBadRequest)
	}
}

// ExportProducts handler pour GET /api/v1/export/products?format=csv|parquet
func (h *Handlers) ExportProducts(w http.ResponseWriter, r *http.Request) {
	thresholds, err := thresholdsFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	switch exportFormat(r) {
	case exportdomain.ExportFormatParquet:
		data, err := h.exportService.ExportProductsParquet(r.Context(), thresholds)
		if err != nil {
			h.handleExportError(w, "product parquet export failed", err)
			return
		}
		writeAttachment(w, "application/octet-stream", "product_report.parquet", data)
	case exportdomain.ExportFormatCSV:
		data, err := h.exportService.ExportProductsCSV(r.Context(), thresholds)
		if err != nil {
			h.handleExportError(w, "product csv export failed", err)
			return
		}
		writeAttachment(w, "text/csv", "product_report.csv", data)
	default:
		http.Error(w, "unsupported format, expected csv or parquet", http.StatusBadRequest)
	}
}

func (h *Handlers) handleExportError(w http.ResponseWriter, msg string, err error) {
	var thresholdErr *reportdomain.ThresholdError
	if errors.As(err, &thresholdErr) {
		http.Error(w, thresholdErr.Error(), http.StatusBadRequest)
		return
	}
	h.logger.Error(msg, zap.Error(err))
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

// thresholdsFromQuery lit les seuils mid et high de la query string,
// avec repli sur les valeurs par défaut
func thresholdsFromQuery(r *http.Request) (reportdomain.RevenueThresholds, error) {
	thresholds := reportdomain.RevenueThresholds{
		Mid:  defaultMidThreshold,
		High: defaultHighThreshold,
	}

	if raw := r.URL.Query().Get("mid"); raw != "" {
		mid, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return thresholds, errors.New("invalid mid threshold, expected a number")
		}
		thresholds.Mid = mid
	}
	if raw := r.URL.Query().Get("high"); raw != "" {
		high, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return thresholds, errors.New("invalid high threshold, expected a number")
		}
		thresholds.High = high
	}

	return thresholds, nil
}

// exportFormat lit le format demandé, CSV par défaut
func exportFormat(r *http.Request) exportdomain.ExportFormat {
	format := r.URL.Query().Get("format")
	if format == "" {
		return exportdomain.ExportFormatCSV
	}
	return exportdomain.ExportFormat(format)
}

func writeAttachment(w http.ResponseWriter, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.Write(data)
}
