package domain

import (
	"time"

	shareddomain "salesmart/internal/shared/domain"
)

// DerivedMetrics métriques dérivées posées sur un agrégat: ancienneté,
// récence et ratios gardés. Les noms sont agnostiques de l'entité; le
// rapport clients et le rapport produits lisent les mêmes métriques sous
// leurs propres intitulés. Lecture seule: l'agrégat n'est jamais modifié.
type DerivedMetrics struct {
	aggregate      *Aggregate
	lifespanMonths int
	recencyMonths  int
	avgPerOrder    float64
	avgPerMonth    float64
	avgPerUnit     float64
}

// DeriveMetrics calcule les métriques dérivées d'un agrégat à une date de
// référence injectée. La date n'est jamais lue de l'horloge ambiante ici:
// c'est ce qui rend le pipeline déterministe et testable.
func DeriveMetrics(aggregate *Aggregate, reference time.Time) DerivedMetrics {
	lifespan := aggregate.Span().Months()
	recency := shareddomain.MonthsElapsed(aggregate.Span().End(), reference)

	sales := aggregate.TotalSales().Amount()

	return DerivedMetrics{
		aggregate:      aggregate,
		lifespanMonths: lifespan,
		recencyMonths:  recency,
		avgPerOrder:    safeDivide(sales, float64(aggregate.TotalOrders())),
		avgPerMonth:    safeDivide(sales, float64(lifespan)),
		avgPerUnit:     safeDivide(sales, float64(aggregate.TotalQuantity().Value())),
	}
}

// safeDivide division gardée: un dénominateur nul retourne le numérateur
// tel quel (aucun temps écoulé, le taux vaut le total), jamais une erreur
func safeDivide(numerator, denominator float64) float64 {
	if denominator == 0 {
		return numerator
	}
	return numerator / denominator
}

// Aggregate retourne l'agrégat sous-jacent
func (m DerivedMetrics) Aggregate() *Aggregate {
	return m.aggregate
}

// LifespanMonths retourne l'ancienneté en mois calendaires entiers
// entre première et dernière commande
func (m DerivedMetrics) LifespanMonths() int {
	return m.lifespanMonths
}

// RecencyMonths retourne les mois entiers écoulés depuis la dernière commande
func (m DerivedMetrics) RecencyMonths() int {
	return m.recencyMonths
}

// AvgPerOrder retourne le ratio ventes/commandes
// (avg_order_value côté clients, avg_order_revenue côté produits)
func (m DerivedMetrics) AvgPerOrder() float64 {
	return m.avgPerOrder
}

// AvgPerMonth retourne le ratio ventes/mois d'ancienneté
// (avg_monthly_spend côté clients, avg_monthly_revenue côté produits)
func (m DerivedMetrics) AvgPerMonth() float64 {
	return m.avgPerMonth
}

// AvgPerUnit retourne le ratio ventes/quantité (avg_selling_price)
func (m DerivedMetrics) AvgPerUnit() float64 {
	return m.avgPerUnit
}

// TotalSalesAmount raccourci vers le montant total des ventes
func (m DerivedMetrics) TotalSalesAmount() float64 {
	return m.aggregate.TotalSales().Amount()
}
