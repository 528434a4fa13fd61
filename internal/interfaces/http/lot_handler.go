package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/lotes-api/internal/application/dto"
	"github.com/jhoicas/lotes-api/internal/application/inventory"
)

// LotHandler alta y consulta de lotes (protegido).
type LotHandler struct {
	uc *inventory.LotUseCase
}

// NewLotHandler construye el handler.
func NewLotHandler(uc *inventory.LotUseCase) *LotHandler {
	return &LotHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar lote (movimiento ENTRADA)
// @Tags         lots
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLotRequest  true  "stock_id, product_id, batch_code, expiry_date (YYYY-MM-DD), quantity, unit_cost"
// @Success      201   {object}  dto.CreateLotResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/lots [post]
func (h *LotHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.CreateLotRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	expiry, err := time.Parse(time.DateOnly, in.ExpiryDate)
	if err != nil {
		return badRequest(c, "VALIDATION", "expiry_date debe tener formato YYYY-MM-DD")
	}
	lot, mov, err := h.uc.CreateLot(c.UserContext(), inventory.CreateLotInput{
		UserID:     userID,
		StockID:    in.StockID,
		ProductID:  in.ProductID,
		BatchCode:  in.BatchCode,
		ExpiryDate: expiry,
		Quantity:   in.Quantity,
		UnitCost:   in.UnitCost,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreateLotResponse{
		Lot:      *inventory.ToLotResponse(lot),
		Movement: *inventory.ToMovementResponse(mov),
	})
}

// ListByProduct godoc
// @Summary      Lotes de un producto en orden FEFO
// @Tags         lots
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {array}  dto.LotResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/lots [get]
func (h *LotHandler) ListByProduct(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	lots, err := h.uc.ListByProduct(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.LotResponse, 0, len(lots))
	for _, l := range lots {
		out = append(out, *inventory.ToLotResponse(l))
	}
	return c.JSON(out)
}
