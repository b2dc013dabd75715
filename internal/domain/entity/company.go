package entity

import "time"

// Company representa un restaurante/tenant del sistema. Su ID se propaga como
// filtro opaco en toda consulta de persistencia.
type Company struct {
	ID        string
	Name      string
	TaxID     string
	Address   string
	Phone     string
	Email     string
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
