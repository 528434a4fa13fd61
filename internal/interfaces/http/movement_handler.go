package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/lotes-api/internal/application/dto"
	"github.com/jhoicas/lotes-api/internal/application/inventory"
)

// MovementHandler retiros FEFO, historial y reporte de movimientos (protegido).
type MovementHandler struct {
	withdrawal *inventory.WithdrawalUseCase
	history    *inventory.HistoryUseCase
	report     *inventory.ReportUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(
	withdrawal *inventory.WithdrawalUseCase,
	history *inventory.HistoryUseCase,
	report *inventory.ReportUseCase,
) *MovementHandler {
	return &MovementHandler{withdrawal: withdrawal, history: history, report: report}
}

// Withdraw godoc
// @Summary      Registrar retiro (SAIDA) por FEFO
// @Description  Descuenta la cantidad de los lotes que vencen primero. Falla completo si no alcanza el saldo.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.WithdrawalRequest  true  "stock_id, product_id, quantity"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/movements/withdrawals [post]
func (h *MovementHandler) Withdraw(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.WithdrawalRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	mov, err := h.withdrawal.RegisterWithdrawal(c.UserContext(), inventory.WithdrawalInput{
		UserID:    userID,
		StockID:   in.StockID,
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(inventory.ToMovementResponse(mov))
}

// History godoc
// @Summary      Historial de movimientos de un stock
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        stock_id    query  string  true   "ID del stock"
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Param        from        query  string  false  "Desde (YYYY-MM-DD, inclusive)"
// @Param        to          query  string  false  "Hasta (YYYY-MM-DD, inclusive)"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *MovementHandler) History(c *fiber.Ctx) error {
	f, ok, err := h.filter(c)
	if !ok {
		return err
	}
	list, err := h.history.List(c.UserContext(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(inventory.ToMovementListResponse(list))
}

// Report godoc
// @Summary      Reporte PDF de movimientos y valorización
// @Tags         movements
// @Security     Bearer
// @Produce      application/pdf
// @Param        stock_id    query  string  true   "ID del stock"
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Param        from        query  string  false  "Desde (YYYY-MM-DD, inclusive)"
// @Param        to          query  string  false  "Hasta (YYYY-MM-DD, inclusive)"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements/report [get]
func (h *MovementHandler) Report(c *fiber.Ctx) error {
	f, ok, err := h.filter(c)
	if !ok {
		return err
	}
	pdfBytes, filename, err := h.report.Generate(c.UserContext(), f)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

// filter arma el filtro del historial desde la query. Si falla ya respondió.
func (h *MovementHandler) filter(c *fiber.Ctx) (inventory.HistoryFilter, bool, error) {
	userID := GetUserID(c)
	if userID == "" {
		return inventory.HistoryFilter{}, false, unauthorized(c)
	}
	var q dto.MovementHistoryQuery
	if ok, err := bindQuery(c, &q); !ok {
		return inventory.HistoryFilter{}, false, err
	}
	f := inventory.HistoryFilter{UserID: userID, StockID: q.StockID, ProductID: q.ProductID}
	var err error
	if f.From, err = parseDay(q.From); err != nil {
		return f, false, badRequest(c, "VALIDATION", "from debe tener formato YYYY-MM-DD")
	}
	if f.To, err = parseDay(q.To); err != nil {
		return f, false, badRequest(c, "VALIDATION", "to debe tener formato YYYY-MM-DD")
	}
	return f, true, nil
}

func parseDay(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
