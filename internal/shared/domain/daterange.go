package domain

import (
	"errors"
	"time"
)

// DateRange représente une période observée entre deux dates de commande
// Value Object immutable: pas de setters, validation au constructeur
type DateRange struct {
	start time.Time
	end   time.Time
}

// NewDateRange crée un DateRange validé (end ne peut précéder start)
func NewDateRange(start, end time.Time) (DateRange, error) {
	if end.Before(start) {
		return DateRange{}, errors.New("end date cannot precede start date")
	}
	return DateRange{start: start, end: end}, nil
}

// Start retourne la date de début
func (dr DateRange) Start() time.Time {
	return dr.start
}

// End retourne la date de fin
func (dr DateRange) End() time.Time {
	return dr.end
}

// Months retourne l'écart en mois calendaires entre début et fin
func (dr DateRange) Months() int {
	return MonthsBetween(dr.start, dr.end)
}

// MonthsBetween calcule la différence de mois calendaires entre deux dates.
// La granularité est le mois: les jours sont ignorés (15 jan → 3 mars = 2).
// Jamais négatif.
func MonthsBetween(a, b time.Time) int {
	months := (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
	if months < 0 {
		return 0
	}
	return months
}

// MonthsElapsed calcule le nombre de mois entiers écoulés entre deux dates.
// Contrairement à MonthsBetween, un mois ne compte que s'il est entièrement
// écoulé (20 juin → 1er juillet = 0). Jamais négatif.
func MonthsElapsed(from, to time.Time) int {
	months := MonthsBetween(from, to)
	if months > 0 && to.Day() < from.Day() {
		months--
	}
	return months
}
