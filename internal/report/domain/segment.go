package domain

import "fmt"

// Étiquettes de segment client
const (
	SegmentVIP     = "VIP"
	SegmentRegular = "Regular"
	SegmentNew     = "New"
)

// Étiquettes de bande de revenus produit
const (
	BandHigh = "High"
	BandMid  = "Mid"
	BandLow  = "Low"
)

// SegmentRule règle ordonnée (prédicat, étiquette) sur les métriques
// dérivées. Les règles s'évaluent de haut en bas, première correspondance
// gagnante; la dernière règle est un attrape-tout inconditionnel, donc la
// classification est totale et chaque entité reçoit exactement une étiquette.
type SegmentRule struct {
	Label string
	Match func(m DerivedMetrics) bool
}

// classify parcourt les règles dans l'ordre et retourne la première étiquette
func classify(rules []SegmentRule, m DerivedMetrics) string {
	for _, rule := range rules {
		if rule.Match(m) {
			return rule.Label
		}
	}
	// Inatteignable tant que la dernière règle est un attrape-tout
	return rules[len(rules)-1].Label
}

// customerSegmentRules table des règles de segment client.
// Seuils métier: 12 mois d'ancienneté, 5000 de chiffre d'affaires.
var customerSegmentRules = []SegmentRule{
	{
		Label: SegmentVIP,
		Match: func(m DerivedMetrics) bool {
			return m.LifespanMonths() >= 12 && m.TotalSalesAmount() > 5000
		},
	},
	{
		Label: SegmentRegular,
		Match: func(m DerivedMetrics) bool {
			return m.LifespanMonths() >= 12
		},
	},
	{
		Label: SegmentNew,
		Match: func(m DerivedMetrics) bool { return true },
	},
}

// ClassifyCustomerSegment assigne le segment client d'après les métriques
func ClassifyCustomerSegment(m DerivedMetrics) string {
	return classify(customerSegmentRules, m)
}

// RevenueThresholds seuils de bandes de revenus produit. Ce sont des
// paramètres de conception fournis par l'appelant, pas des constantes
// universelles; ils doivent être strictement ordonnés (mid < high).
type RevenueThresholds struct {
	Mid  float64 `json:"mid"`
	High float64 `json:"high"`
}

// ThresholdError signale des seuils de bandes mal ordonnés.
// Fatal: levé avant tout calcul.
type ThresholdError struct {
	Mid  float64
	High float64
}

// Error implémente error
func (e *ThresholdError) Error() string {
	return fmt.Sprintf("revenue band thresholds must be strictly ordered: mid=%v high=%v", e.Mid, e.High)
}

// Validate vérifie l'ordre strict des seuils
func (t RevenueThresholds) Validate() error {
	if t.Mid < 0 || t.Mid >= t.High {
		return &ThresholdError{Mid: t.Mid, High: t.High}
	}
	return nil
}

// Rules construit la table de règles de bandes pour ces seuils.
// La borne haute est inclusive: total_sales égal au seuil haut tombe
// dans High, la première règle gagnant.
func (t RevenueThresholds) Rules() []SegmentRule {
	return []SegmentRule{
		{
			Label: BandHigh,
			Match: func(m DerivedMetrics) bool { return m.TotalSalesAmount() >= t.High },
		},
		{
			Label: BandMid,
			Match: func(m DerivedMetrics) bool { return m.TotalSalesAmount() >= t.Mid },
		},
		{
			Label: BandLow,
			Match: func(m DerivedMetrics) bool { return true },
		},
	}
}

// ClassifyRevenueBand assigne la bande de revenus d'un produit
func ClassifyRevenueBand(t RevenueThresholds, m DerivedMetrics) string {
	return classify(t.Rules(), m)
}

// BucketRule règle de tranche nommée sur une valeur scalaire,
// même motif premier-match que les segments
type BucketRule struct {
	Label string
	Match func(v float64) bool
}

// bucket parcourt les tranches dans l'ordre
func bucket(rules []BucketRule, v float64) string {
	for _, rule := range rules {
		if rule.Match(v) {
			return rule.Label
		}
	}
	return rules[len(rules)-1].Label
}

// ageGroupRules tranches d'âge de 10 ans, attrape-tout final
var ageGroupRules = []BucketRule{
	{Label: "Under 20", Match: func(v float64) bool { return v < 20 }},
	{Label: "20-29", Match: func(v float64) bool { return v < 30 }},
	{Label: "30-39", Match: func(v float64) bool { return v < 40 }},
	{Label: "40-49", Match: func(v float64) bool { return v < 50 }},
	{Label: "50 and above", Match: func(v float64) bool { return true }},
}

// AgeGroup assigne la tranche d'âge d'un client
func AgeGroup(age int) string {
	return bucket(ageGroupRules, float64(age))
}

// costRangeRules tranches de coût unitaire produit
var costRangeRules = []BucketRule{
	{Label: "Below 100", Match: func(v float64) bool { return v < 100 }},
	{Label: "100-500", Match: func(v float64) bool { return v < 500 }},
	{Label: "500-1000", Match: func(v float64) bool { return v < 1000 }},
	{Label: "Above 1000", Match: func(v float64) bool { return true }},
}

// CostRange assigne la tranche de coût d'un produit
func CostRange(cost float64) string {
	return bucket(costRangeRules, cost)
}
