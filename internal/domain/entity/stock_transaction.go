package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción de stock.
const (
	TxTypeIn     = "in"         // entrada: compra o carga inicial
	TxTypeOut    = "out"        // salida: consumo por orden completada
	TxTypeAdjust = "adjustment" // corrección manual al valor objetivo
	TxTypeCount  = "count"      // conteo físico de inventario
)

// ValidTxType indica si el tipo de transacción es uno de los soportados.
func ValidTxType(t string) bool {
	switch t {
	case TxTypeIn, TxTypeOut, TxTypeAdjust, TxTypeCount:
		return true
	}
	return false
}

// StockTransaction es el registro inmutable de una mutación de stock: se crea
// junto con la actualización del ingrediente en el mismo commit y nunca se
// actualiza ni se borra. Quantity es magnitud (>= 0); la dirección la da Type.
type StockTransaction struct {
	ID              string
	CompanyID       string
	IngredientID    string
	Type            string          // ver constantes TxType*
	Quantity        decimal.Decimal // magnitud, >= 0
	PreviousStock   decimal.Decimal
	NewStock        decimal.Decimal
	OrderID         string // vacío si no proviene de una orden
	SupplierOrderID string // vacío si no proviene de una orden de compra
	UnitCost        *decimal.Decimal
	TotalCost       *decimal.Decimal
	Notes           string
	PerformedBy     string // UserID, requerido
	CreatedAt       time.Time
}
