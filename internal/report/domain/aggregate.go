package domain

import (
	"time"

	salesdomain "salesmart/internal/sales/domain"
	shareddomain "salesmart/internal/shared/domain"
)

// EntityKey clé générique d'entité agrégée (client ou produit).
// Les deux pipelines sont identiques au choix de clé près: l'extracteur
// de clé est la seule différence entre le rapport clients et produits.
type EntityKey int64

// KeyFunc extrait une clé d'entité d'une ligne de vente
type KeyFunc func(f salesdomain.Fact) EntityKey

// CustomerKeyOf stratégie de groupement du rapport clients
func CustomerKeyOf(f salesdomain.Fact) EntityKey {
	return EntityKey(f.CustomerKey)
}

// ProductKeyOf stratégie de groupement du rapport produits
func ProductKeyOf(f salesdomain.Fact) EntityKey {
	return EntityKey(f.ProductKey)
}

// BuildStats compte les lignes écartées pendant un build.
// L'exclusion est une tolérance de panne partielle: une ligne douteuse
// n'échoue jamais le build entier, mais son compte est rendu à l'appelant.
type BuildStats struct {
	QualifiedRows  int `json:"qualified_rows"`
	NullDateRows   int `json:"null_date_rows"`
	InvalidRows    int `json:"invalid_rows"`
	MissingRefRows int `json:"missing_ref_rows"`
}

// ExcludedRows retourne le total des lignes écartées
func (s BuildStats) ExcludedRows() int {
	return s.NullDateRows + s.InvalidRows + s.MissingRefRows
}

// Aggregate représente l'agrégat brut d'une entité: sommes, comptes
// distincts et bornes de dates, sans aucune métrique dérivée
type Aggregate struct {
	key           EntityKey
	totalOrders   int
	totalSales    shareddomain.Money
	totalQuantity shareddomain.Quantity
	span          shareddomain.DateRange
	crossCount    int
}

// NewAggregate crée un agrégat d'entité
func NewAggregate(
	key EntityKey,
	totalOrders int,
	totalSales shareddomain.Money,
	totalQuantity shareddomain.Quantity,
	span shareddomain.DateRange,
	crossCount int,
) *Aggregate {
	return &Aggregate{
		key:           key,
		totalOrders:   totalOrders,
		totalSales:    totalSales,
		totalQuantity: totalQuantity,
		span:          span,
		crossCount:    crossCount,
	}
}

// Key retourne la clé de l'entité
func (a *Aggregate) Key() EntityKey {
	return a.key
}

// TotalOrders retourne le nombre de commandes distinctes
func (a *Aggregate) TotalOrders() int {
	return a.totalOrders
}

// TotalSales retourne le chiffre d'affaires total
func (a *Aggregate) TotalSales() shareddomain.Money {
	return a.totalSales
}

// TotalQuantity retourne la quantité totale vendue
func (a *Aggregate) TotalQuantity() shareddomain.Quantity {
	return a.totalQuantity
}

// Span retourne la période entre première et dernière commande
func (a *Aggregate) Span() shareddomain.DateRange {
	return a.span
}

// CrossCount retourne le compte distinct croisé: produits distincts
// achetés (rapport clients) ou clients distincts acheteurs (rapport produits)
func (a *Aggregate) CrossCount() int {
	return a.crossCount
}

// accumulator état intermédiaire d'agrégation pour une entité
type accumulator struct {
	orders      map[string]struct{}
	cross       map[EntityKey]struct{}
	salesAmount float64
	quantity    int
	firstOrder  time.Time
	lastOrder   time.Time
}

// AggregateFacts groupe les lignes de vente qualifiées par clé d'entité.
// Politique d'exclusion, dans l'ordre: date de commande nulle (la ligne ne
// porte aucune information temporelle et ses montants sont ignorés pour
// rester cohérent), montant ou quantité négatif, clé absente de la
// dimension. Une entité sans aucune ligne qualifiée est simplement absente
// du résultat.
func AggregateFacts(
	facts []salesdomain.Fact,
	dimensionKeys map[EntityKey]struct{},
	keyOf KeyFunc,
	crossOf KeyFunc,
) (map[EntityKey]*Aggregate, BuildStats) {
	accums := make(map[EntityKey]*accumulator)
	var stats BuildStats

	for _, fact := range facts {
		if !fact.HasOrderDate() {
			stats.NullDateRows++
			continue
		}
		if !fact.IsValid() {
			stats.InvalidRows++
			continue
		}

		key := keyOf(fact)
		if _, ok := dimensionKeys[key]; !ok {
			stats.MissingRefRows++
			continue
		}
		stats.QualifiedRows++

		acc, ok := accums[key]
		if !ok {
			acc = &accumulator{
				orders:     make(map[string]struct{}),
				cross:      make(map[EntityKey]struct{}),
				firstOrder: *fact.OrderDate,
				lastOrder:  *fact.OrderDate,
			}
			accums[key] = acc
		}

		acc.orders[fact.OrderNumber] = struct{}{}
		acc.cross[crossOf(fact)] = struct{}{}
		acc.salesAmount += fact.SalesAmount
		acc.quantity += fact.Quantity

		if fact.OrderDate.Before(acc.firstOrder) {
			acc.firstOrder = *fact.OrderDate
		}
		if fact.OrderDate.After(acc.lastOrder) {
			acc.lastOrder = *fact.OrderDate
		}
	}

	aggregates := make(map[EntityKey]*Aggregate, len(accums))
	for key, acc := range accums {
		sales, _ := shareddomain.NewMoney(acc.salesAmount, shareddomain.ReportingCurrency)
		quantity, _ := shareddomain.NewQuantity(acc.quantity)
		span, _ := shareddomain.NewDateRange(acc.firstOrder, acc.lastOrder)

		aggregates[key] = NewAggregate(
			key,
			len(acc.orders),
			sales,
			quantity,
			span,
			len(acc.cross),
		)
	}

	return aggregates, stats
}
