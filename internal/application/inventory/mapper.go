package inventory

import (
	"github.com/jhoicas/Inventario-analytics/internal/application/dto"
	"github.com/jhoicas/Inventario-analytics/internal/domain/entity"
	domaininv "github.com/jhoicas/Inventario-analytics/internal/domain/inventory"
)

// ToItemDTO convierte el ítem en su representación HTTP con estado y valor derivados.
func ToItemDTO(item *entity.InventoryItem) dto.ItemDTO {
	cost := item.EffectiveCost()
	return dto.ItemDTO{
		ID:              item.ID,
		SKU:             item.SKU,
		Barcode:         item.Barcode,
		Name:            item.Name,
		Category:        item.Category,
		LocationID:      item.LocationID,
		SupplierID:      item.SupplierID,
		Unit:            item.Unit,
		CurrentStock:    item.CurrentStock,
		MinStock:        item.MinStock,
		MaxStock:        item.MaxStock,
		ReorderPoint:    item.ReorderPoint,
		ReorderQuantity: item.ReorderQuantity,
		UnitCost:        cost,
		StockValue:      domaininv.StockValue([]entity.InventoryItem{*item}).Round(2),
		Status:          domaininv.StockStatus(*item),
		NeedsReorder:    domaininv.NeedsReorder(*item),
		UpdatedAt:       item.UpdatedAt,
	}
}

// DerefItems copia los ítems para las funciones de dominio que trabajan por valor.
func DerefItems(items []*entity.InventoryItem) []entity.InventoryItem {
	out := make([]entity.InventoryItem, 0, len(items))
	for _, it := range items {
		out = append(out, *it)
	}
	return out
}
