package application

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/xitongsys/parquet-go-source/buffer"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"
	"go.uber.org/zap"

	"salesmart/internal/export/domain"
	reportapp "salesmart/internal/report/application"
	reportdomain "salesmart/internal/report/domain"
	sharedinfra "salesmart/internal/shared/infrastructure"
)

// ExportService produit les rapports sous forme de fichiers CSV ou
// Parquet entièrement construits en mémoire, prêts à servir en HTTP
type ExportService struct {
	reportService *reportapp.ReportService
	workerPool    *sharedinfra.WorkerPool
	logger        *zap.Logger
	batchSize     int
}

// NewExportService crée une nouvelle instance de ExportService
func NewExportService(reportService *reportapp.ReportService, logger *zap.Logger) *ExportService {
	wp := sharedinfra.NewWorkerPool(4)
	wp.Start()

	return &ExportService{
		reportService: reportService,
		workerPool:    wp,
		logger:        logger,
		batchSize:     1000,
	}
}

// ExportCustomersCSV génère le rapport clients en CSV, en RAM
func (s *ExportService) ExportCustomersCSV(ctx context.Context) ([]byte, error) {
	result, err := s.reportService.GetCustomerReport(ctx)
	if err != nil {
		return nil, err
	}

	return s.writeCSV(domain.CustomerCSVHeaders(), len(result.Rows), func(i int) []string {
		return domain.CustomerCSVRow(result.Rows[i])
	})
}

// ExportProductsCSV génère le rapport produits en CSV, en RAM
func (s *ExportService) ExportProductsCSV(ctx context.Context, thresholds reportdomain.RevenueThresholds) ([]byte, error) {
	result, err := s.reportService.GetProductReport(ctx, thresholds)
	if err != nil {
		return nil, err
	}

	return s.writeCSV(domain.ProductCSVHeaders(), len(result.Rows), func(i int) []string {
		return domain.ProductCSVRow(result.Rows[i])
	})
}

// writeCSV écrit en-têtes puis lignes dans un buffer pré-alloué.
// Flush par batch pour limiter la pression mémoire sur les gros rapports.
func (s *ExportService) writeCSV(headers []string, count int, rowAt func(int) []string) ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, 1024*1024)) // 1 MB initial
	w := csv.NewWriter(buf)

	if err := w.Write(headers); err != nil {
		return nil, err
	}

	for i := 0; i < count; i++ {
		if err := w.Write(rowAt(i)); err != nil {
			return nil, err
		}
		if (i+1)%s.batchSize == 0 {
			w.Flush()
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// ExportCustomersParquet génère le rapport clients en Parquet.
// La conversion des lignes est répartie par lots sur le worker pool,
// l'écriture Parquet elle-même reste séquentielle.
func (s *ExportService) ExportCustomersParquet(ctx context.Context) ([]byte, error) {
	result, err := s.reportService.GetCustomerReport(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	records := make([]domain.CustomerReportParquet, len(result.Rows))
	s.workerPool.MapBatches(len(result.Rows), s.batchSize, func(i int) {
		records[i] = domain.NewCustomerReportParquet(result.Rows[i])
	})

	data, err := writeParquet(new(domain.CustomerReportParquet), len(records), func(i int) interface{} {
		return records[i]
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("customer parquet export complete",
		zap.Int("rows", len(records)),
		zap.Int("bytes", len(data)),
		zap.Duration("duration", time.Since(start)),
	)

	return data, nil
}

// ExportProductsParquet génère le rapport produits en Parquet
func (s *ExportService) ExportProductsParquet(ctx context.Context, thresholds reportdomain.RevenueThresholds) ([]byte, error) {
	result, err := s.reportService.GetProductReport(ctx, thresholds)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	records := make([]domain.ProductReportParquet, len(result.Rows))
	s.workerPool.MapBatches(len(result.Rows), s.batchSize, func(i int) {
		records[i] = domain.NewProductReportParquet(result.Rows[i])
	})

	data, err := writeParquet(new(domain.ProductReportParquet), len(records), func(i int) interface{} {
		return records[i]
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("product parquet export complete",
		zap.Int("rows", len(records)),
		zap.Int("bytes", len(data)),
		zap.Duration("duration", time.Since(start)),
	)

	return data, nil
}

// writeParquet sérialise count enregistrements dans un fichier Parquet
// en mémoire et retourne ses octets. Le constructeur retourne l'interface
// source.ParquetFile; le contenu écrit se lit sur le type concret
// buffer.BufferFile.
func writeParquet(schema interface{}, count int, recordAt func(int) interface{}) ([]byte, error) {
	fw, err := buffer.NewBufferFile(nil)
	if err != nil {
		return nil, fmt.Errorf("create parquet buffer: %w", err)
	}
	defer fw.Close()

	pw, err := writer.NewParquetWriter(fw, schema, 2)
	if err != nil {
		return nil, fmt.Errorf("create parquet writer: %w", err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for i := 0; i < count; i++ {
		if err := pw.Write(recordAt(i)); err != nil {
			return nil, fmt.Errorf("write parquet row: %w", err)
		}
	}
	if err := pw.WriteStop(); err != nil {
		return nil, fmt.Errorf("finalize parquet file: %w", err)
	}

	return fw.(buffer.BufferFile).Bytes(), nil
}

// Cleanup arrête le worker pool
func (s *ExportService) Cleanup() {
	s.workerPool.Stop()
}
