package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"salesmart/internal/report/domain"
	salesdomain "salesmart/internal/sales/domain"
	salesinfra "salesmart/internal/sales/infrastructure"
	sharedinfra "salesmart/internal/shared/infrastructure"
)

// CustomerReportResult rapport clients assemblé, avec les comptes de
// lignes écartées rendus à l'appelant
type CustomerReportResult struct {
	Rows  []domain.CustomerReportRow `json:"rows"`
	Stats domain.BuildStats          `json:"build_stats"`
}

// ProductReportResult rapport produits assemblé, seuils de bandes inclus
// pour que les points de coupure publiés soient explicites
type ProductReportResult struct {
	Rows       []domain.ProductReportRow `json:"rows"`
	Stats      domain.BuildStats         `json:"build_stats"`
	Thresholds domain.RevenueThresholds  `json:"revenue_band_thresholds"`
}

// ReportService orchestre les builds de rapports: lecture du snapshot,
// pipeline pur du domaine, cache des résultats
type ReportService struct {
	salesRepo *salesinfra.SalesQueryRepository
	cache     sharedinfra.Cache
	logger    *zap.Logger
	now       func() time.Time
	cacheTTL  time.Duration
}

// NewReportService crée une nouvelle instance de ReportService.
// L'horloge est injectée pour garder les builds déterministes en test;
// nil vaut time.Now.
func NewReportService(
	salesRepo *salesinfra.SalesQueryRepository,
	cache sharedinfra.Cache,
	logger *zap.Logger,
	now func() time.Time,
) *ReportService {
	if now == nil {
		now = time.Now
	}
	return &ReportService{
		salesRepo: salesRepo,
		cache:     cache,
		logger:    logger,
		now:       now,
		cacheTTL:  5 * time.Minute,
	}
}

// GetCustomerReport construit (ou sert du cache) le rapport clients
func (s *ReportService) GetCustomerReport(ctx context.Context) (*CustomerReportResult, error) {
	cacheKey := sharedinfra.NewCacheKeyBuilder().
		Add("report").
		Add("customers").
		Build()

	if cached, found := s.cache.Get(cacheKey); found {
		return cached.(*CustomerReportResult), nil
	}

	// Lectures indépendantes du snapshot en parallèle
	var (
		facts     []salesdomain.Fact
		customers []*salesdomain.Customer
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		facts, err = s.salesRepo.ListFacts(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		customers, err = s.salesRepo.ListCustomers(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load customer report snapshot: %w", err)
	}

	started := time.Now()
	reference := s.now()
	rows, stats := domain.BuildCustomerReport(facts, customers, reference)

	s.logger.Info("customer report built",
		zap.String("run_id", uuid.NewString()),
		zap.Time("reference_date", reference),
		zap.Int("fact_rows", len(facts)),
		zap.Int("report_rows", len(rows)),
		zap.Int("excluded_rows", stats.ExcludedRows()),
		zap.Int("missing_ref_rows", stats.MissingRefRows),
		zap.Duration("elapsed", time.Since(started)),
	)

	result := &CustomerReportResult{Rows: rows, Stats: stats}
	s.cache.Set(cacheKey, result, s.cacheTTL)

	return result, nil
}

// GetProductReport construit (ou sert du cache) le rapport produits.
// Les seuils invalides échouent avant toute lecture de données.
func (s *ReportService) GetProductReport(ctx context.Context, thresholds domain.RevenueThresholds) (*ProductReportResult, error) {
	if err := thresholds.Validate(); err != nil {
		return nil, err
	}

	// Les seuils font partie de la clé: deux configurations ne
	// partagent jamais une entrée de cache
	cacheKey := sharedinfra.NewCacheKeyBuilder().
		Add("report").
		Add("products").
		AddFloat(thresholds.Mid).
		AddFloat(thresholds.High).
		Build()

	if cached, found := s.cache.Get(cacheKey); found {
		return cached.(*ProductReportResult), nil
	}

	var (
		facts    []salesdomain.Fact
		products []*salesdomain.Product
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		facts, err = s.salesRepo.ListFacts(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		products, err = s.salesRepo.ListProducts(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load product report snapshot: %w", err)
	}

	started := time.Now()
	reference := s.now()
	rows, stats, err := domain.BuildProductReport(facts, products, reference, thresholds)
	if err != nil {
		return nil, err
	}

	s.logger.Info("product report built",
		zap.String("run_id", uuid.NewString()),
		zap.Time("reference_date", reference),
		zap.Float64("mid_threshold", thresholds.Mid),
		zap.Float64("high_threshold", thresholds.High),
		zap.Int("fact_rows", len(facts)),
		zap.Int("report_rows", len(rows)),
		zap.Int("excluded_rows", stats.ExcludedRows()),
		zap.Duration("elapsed", time.Since(started)),
	)

	result := &ProductReportResult{Rows: rows, Stats: stats, Thresholds: thresholds}
	s.cache.Set(cacheKey, result, s.cacheTTL)

	return result, nil
}

// ClearCache vide le cache des rapports
func (s *ReportService) ClearCache() {
	s.cache.Clear()
}
