package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// WasteLog registro de merma de un ítem (vencimiento, daño, sobreproducción...).
type WasteLog struct {
	ID         string
	CompanyID  string
	ItemID     string
	Quantity   decimal.Decimal
	UnitCost   decimal.Decimal
	TotalCost  decimal.Decimal
	Reason     string
	RecordedAt time.Time
	RecordedBy string
}

// Cost devuelve TotalCost o, si no se registró, Quantity × UnitCost.
func (w WasteLog) Cost() decimal.Decimal {
	if !w.TotalCost.IsZero() {
		return w.TotalCost
	}
	return w.Quantity.Mul(w.UnitCost)
}
