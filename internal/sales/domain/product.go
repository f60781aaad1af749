package domain

import (
	"errors"

	shareddomain "salesmart/internal/shared/domain"
)

// Product représente un produit de la dimension produits
type Product struct {
	key         ProductKey
	name        string
	category    string
	subcategory string
	cost        shareddomain.Money
}

// NewProduct crée une nouvelle instance de Product avec validation
func NewProduct(key ProductKey, name, category, subcategory string, cost shareddomain.Money) (*Product, error) {
	if key <= 0 {
		return nil, errors.New("invalid product key")
	}
	if name == "" {
		return nil, errors.New("product name cannot be empty")
	}

	return &Product{
		key:         key,
		name:        name,
		category:    category,
		subcategory: subcategory,
		cost:        cost,
	}, nil
}

// Key retourne la clé du produit
func (p *Product) Key() ProductKey {
	return p.key
}

// Name retourne le nom du produit
func (p *Product) Name() string {
	return p.name
}

// Category retourne la catégorie
func (p *Product) Category() string {
	return p.category
}

// Subcategory retourne la sous-catégorie
func (p *Product) Subcategory() string {
	return p.subcategory
}

// Cost retourne le coût unitaire
func (p *Product) Cost() shareddomain.Money {
	return p.cost
}
