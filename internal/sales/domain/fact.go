package domain

import "time"

// CustomerKey représente la clé de substitution d'un client
type CustomerKey int64

// ProductKey représente la clé de substitution d'un produit
type ProductKey int64

// Fact représente une ligne de vente (le grain: une ligne de commande).
// Une commande peut porter plusieurs lignes: OrderNumber n'est pas unique.
// OrderDate nil signifie que la date est inconnue; la ligne est alors
// exclue de toute agrégation.
type Fact struct {
	OrderNumber string
	OrderDate   *time.Time
	CustomerKey CustomerKey
	ProductKey  ProductKey
	Quantity    int
	SalesAmount float64
}

// HasOrderDate vérifie si la ligne porte une date de commande
func (f Fact) HasOrderDate() bool {
	return f.OrderDate != nil
}

// IsValid vérifie les invariants de base d'une ligne de vente
func (f Fact) IsValid() bool {
	return f.Quantity >= 0 && f.SalesAmount >= 0
}
