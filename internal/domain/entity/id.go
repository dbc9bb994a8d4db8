package entity

import "github.com/google/uuid"

// NewID genera un identificador nuevo (UUID v4).
func NewID() string { return uuid.NewString() }

// ValidID indica si s es un UUID bien formado. Un ID mal formado se trata como inexistente.
func ValidID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
