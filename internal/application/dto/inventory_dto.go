package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemListRequest filtros de GET /api/inventory/items.
type ItemListRequest struct {
	Category   string `query:"category"`
	LocationID string `query:"location_id"`
	SupplierID string `query:"supplier_id"`
	Status     string `query:"status"` // out_of_stock | low_stock | overstock | in_stock
	Search     string `query:"q"`
	PageRequest
}

// ItemDTO ítem de inventario con su estado derivado.
type ItemDTO struct {
	ID              string          `json:"id"`
	SKU             string          `json:"sku"`
	Barcode         string          `json:"barcode,omitempty"`
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	LocationID      string          `json:"location_id"`
	SupplierID      string          `json:"supplier_id,omitempty"`
	Unit            string          `json:"unit"`
	CurrentStock    decimal.Decimal `json:"current_stock"`
	MinStock        decimal.Decimal `json:"min_stock"`
	MaxStock        decimal.Decimal `json:"max_stock"`
	ReorderPoint    decimal.Decimal `json:"reorder_point"`
	ReorderQuantity decimal.Decimal `json:"reorder_quantity"`
	UnitCost        decimal.Decimal `json:"unit_cost"`   // costo efectivo
	StockValue      decimal.Decimal `json:"stock_value"` // CurrentStock * UnitCost
	Status          string          `json:"status"`
	NeedsReorder    bool            `json:"needs_reorder"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ItemListResponse respuesta paginada de ítems.
type ItemListResponse struct {
	Items      []ItemDTO    `json:"items"`
	Categories []string     `json:"categories"`
	Page       PageResponse `json:"page"`
}

// RegisterMovementRequest body para POST /api/inventory/movements.
type RegisterMovementRequest struct {
	ItemID    string           `json:"item_id"`
	Type      string           `json:"type"` // purchase, sale, consumption, waste, adjustment, return, transfer
	Quantity  decimal.Decimal  `json:"quantity"`
	UnitCost  *decimal.Decimal `json:"unit_cost,omitempty"` // obligatorio en purchase
	Reference string           `json:"reference,omitempty"`
	Notes     string           `json:"notes,omitempty"`
	Reason    string           `json:"reason,omitempty"` // motivo de merma (waste)
}

// MovementResponse resultado de registrar un movimiento.
type MovementResponse struct {
	ID          string          `json:"id"`
	ItemID      string          `json:"item_id"`
	Type        string          `json:"type"`
	Quantity    decimal.Decimal `json:"quantity"`
	TotalCost   decimal.Decimal `json:"total_cost"`
	StockAfter  decimal.Decimal `json:"stock_after"`
	AverageCost decimal.Decimal `json:"average_cost"`
	WasteLogID  string          `json:"waste_log_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ReplenishmentSuggestionDTO sugerencia de pedido para un ítem que alcanzó su punto de reorden.
type ReplenishmentSuggestionDTO struct {
	ItemID             string          `json:"item_id"`
	SKU                string          `json:"sku"`
	Name               string          `json:"name"`
	SupplierID         string          `json:"supplier_id,omitempty"`
	CurrentStock       decimal.Decimal `json:"current_stock"`
	ReorderPoint       decimal.Decimal `json:"reorder_point"`
	AverageDailyUsage  decimal.Decimal `json:"average_daily_usage"`
	DaysOfStock        decimal.Decimal `json:"days_of_stock"` // -1 = sin consumo
	SuggestedOrderQty  decimal.Decimal `json:"suggested_order_qty"`
	UnitCost           decimal.Decimal `json:"unit_cost"`
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"` // SuggestedOrderQty * UnitCost
	ABCClass           string          `json:"abc_class"`
	Priority           int             `json:"priority"` // 1 = más urgente
}

// StockCountRequest body para POST /api/inventory/items/:id/count.
// Si OpeningStock/Since no vienen, el teórico es el stock registrado del ítem.
type StockCountRequest struct {
	CountedQuantity decimal.Decimal  `json:"counted_quantity"`
	OpeningStock    *decimal.Decimal `json:"opening_stock,omitempty"`
	Since           *time.Time       `json:"since,omitempty"`
	Apply           bool             `json:"apply"` // registra un ajuste por la diferencia
}

// StockCountResultDTO varianza de un conteo físico.
type StockCountResultDTO struct {
	ItemID             string          `json:"item_id"`
	Counted            decimal.Decimal `json:"counted"`
	Theoretical        decimal.Decimal `json:"theoretical"`
	QuantityVariance   decimal.Decimal `json:"quantity_variance"`
	ValueVariance      decimal.Decimal `json:"value_variance"`
	PercentageVariance decimal.Decimal `json:"percentage_variance"`
	AdjustmentID       string          `json:"adjustment_id,omitempty"`
}
