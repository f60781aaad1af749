package domain

import (
	"errors"
	"time"
)

// Customer représente un client de la dimension clients
type Customer struct {
	key       CustomerKey
	number    string
	name      string
	birthDate *time.Time
}

// NewCustomer crée une nouvelle instance de Customer avec validation
func NewCustomer(key CustomerKey, number, name string, birthDate *time.Time) (*Customer, error) {
	if key <= 0 {
		return nil, errors.New("invalid customer key")
	}
	if number == "" {
		return nil, errors.New("customer number cannot be empty")
	}

	return &Customer{
		key:       key,
		number:    number,
		name:      name,
		birthDate: birthDate,
	}, nil
}

// Key retourne la clé du client
func (c *Customer) Key() CustomerKey {
	return c.key
}

// Number retourne le numéro client
func (c *Customer) Number() string {
	return c.number
}

// Name retourne le nom du client
func (c *Customer) Name() string {
	return c.name
}

// BirthDate retourne la date de naissance (nil si inconnue)
func (c *Customer) BirthDate() *time.Time {
	return c.birthDate
}

// Age calcule l'âge en années entières à la date de référence.
// Retourne 0 si la date de naissance est inconnue.
func (c *Customer) Age(ref time.Time) int {
	if c.birthDate == nil {
		return 0
	}

	years := ref.Year() - c.birthDate.Year()
	anniversary := time.Date(ref.Year(), c.birthDate.Month(), c.birthDate.Day(), 0, 0, 0, 0, time.UTC)
	if ref.Before(anniversary) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}
