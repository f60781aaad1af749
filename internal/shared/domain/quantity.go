package domain

import (
	"errors"
	"fmt"
)

// Quantity représente un nombre d'unités vendues.
// Les lignes de vente à quantité négative sont écartées en amont de
// l'agrégation: une Quantity construite est toujours positive ou nulle.
type Quantity struct {
	units int
}

// NewQuantity crée une Quantity validée
func NewQuantity(units int) (Quantity, error) {
	if units < 0 {
		return Quantity{}, errors.New("quantity cannot be negative")
	}
	return Quantity{units: units}, nil
}

// MustNewQuantity crée une Quantity en paniquant si invalide
func MustNewQuantity(units int) Quantity {
	q, err := NewQuantity(units)
	if err != nil {
		panic(fmt.Sprintf("invalid quantity: %v", err))
	}
	return q
}

// Value retourne le nombre d'unités
func (q Quantity) Value() int {
	return q.units
}

// Add cumule les unités de deux quantités
func (q Quantity) Add(other Quantity) Quantity {
	return Quantity{units: q.units + other.units}
}

// IsZero vérifie qu'aucune unité n'a été vendue
func (q Quantity) IsZero() bool {
	return q.units == 0
}
