package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock fila de almacén: existencia actual de un producto (una fila por producto).
type Stock struct {
	ID        int64
	ProductID int64
	Quantity  decimal.Decimal
	UpdatedAt time.Time
	Product   *Product // opcional, cargado en listados
}
