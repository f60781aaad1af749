package domain

// ReportingCurrency devise unique du mart: toutes les valeurs monétaires
// sont déjà conformées dans cette devise en amont.
const ReportingCurrency = "USD"
