package inventory

import (
	"github.com/jhoicas/lotes-api/internal/application/dto"
	"github.com/jhoicas/lotes-api/internal/domain/entity"
)

// ToMovementResponse adapta un movimiento al DTO de salida.
func ToMovementResponse(m *entity.Movement) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	lines := make([]dto.MovementLineResponse, 0, len(m.Lines))
	for _, l := range m.Lines {
		lines = append(lines, dto.MovementLineResponse{
			LotID:     l.LotID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
		})
	}
	return &dto.MovementResponse{
		MovementID: m.ID,
		StockID:    m.StockID,
		Timestamp:  m.Timestamp,
		Type:       string(m.Type),
		CreatedBy:  m.CreatedBy,
		Lines:      lines,
	}
}

// ToMovementListResponse adapta un historial.
func ToMovementListResponse(list []*entity.Movement) *dto.MovementListResponse {
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *ToMovementResponse(m))
	}
	return &dto.MovementListResponse{Items: items, Total: len(items)}
}

// ToLotResponse adapta un lote al DTO de salida.
func ToLotResponse(l *entity.Lot) *dto.LotResponse {
	if l == nil {
		return nil
	}
	return &dto.LotResponse{
		ID:              l.ID,
		ProductID:       l.ProductID,
		StockID:         l.StockID,
		BatchCode:       l.BatchCode,
		ExpiryDate:      l.ExpiryDate.Format("2006-01-02"),
		InitialQuantity: l.InitialQuantity,
		Quantity:        l.Quantity,
		UnitCost:        l.UnitCost,
		CreatedAt:       l.CreatedAt,
	}
}
