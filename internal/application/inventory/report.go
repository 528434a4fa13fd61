package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/lotes-api/internal/domain/entity"
	dominv "github.com/jhoicas/lotes-api/internal/domain/inventory"
	"github.com/jhoicas/lotes-api/internal/domain/repository"
)

// MovementReport datos del reporte PDF: historial filtrado más valorización del saldo vivo.
type MovementReport struct {
	Stock        *entity.Stock
	From         *time.Time
	To           *time.Time
	GeneratedAt  time.Time
	Movements    []*entity.Movement
	ProductNames map[string]string // product id -> nombre
	BatchCodes   map[string]string // lot id -> lote del fabricante
	Valuation    []ProductValuation
	TotalValue   decimal.Decimal
}

// ProductValuation saldo y valor de un producto.
type ProductValuation struct {
	ProductID   string
	ProductName string
	Quantity    int
	Value       decimal.Decimal
}

// ReportUseCase genera el reporte PDF de movimientos de un stock.
type ReportUseCase struct {
	history     *HistoryUseCase
	productRepo repository.ProductRepository
	lotRepo     repository.LotRepository
	generator   ReportGenerator
	now         func() time.Time
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	history *HistoryUseCase,
	productRepo repository.ProductRepository,
	lotRepo repository.LotRepository,
	generator ReportGenerator,
) *ReportUseCase {
	return &ReportUseCase{
		history:     history,
		productRepo: productRepo,
		lotRepo:     lotRepo,
		generator:   generator,
		now:         time.Now,
	}
}

// Build arma los datos del reporte sin generar el PDF.
func (uc *ReportUseCase) Build(ctx context.Context, f HistoryFilter) (*MovementReport, error) {
	repoFilter, err := uc.history.repoFilter(ctx, f)
	if err != nil {
		return nil, err
	}
	stock, err := uc.history.resolver.stockRepo.GetByID(ctx, repoFilter.StockID)
	if err != nil {
		return nil, fmt.Errorf("reporte: obtener stock: %w", err)
	}
	movements, err := uc.history.movRepo.List(ctx, repoFilter)
	if err != nil {
		return nil, fmt.Errorf("reporte: listar movimientos: %w", err)
	}
	products, err := uc.productRepo.ListByStock(ctx, stock.ID)
	if err != nil {
		return nil, fmt.Errorf("reporte: listar productos: %w", err)
	}

	report := &MovementReport{
		Stock:        stock,
		From:         f.From,
		To:           f.To,
		GeneratedAt:  uc.now(),
		Movements:    movements,
		ProductNames: make(map[string]string, len(products)),
		BatchCodes:   make(map[string]string),
		TotalValue:   decimal.Zero,
	}
	for _, p := range products {
		report.ProductNames[p.ID] = p.Name
		if f.ProductID != "" && p.ID != f.ProductID {
			continue
		}
		lots, err := uc.lotRepo.ListByProduct(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("reporte: listar lotes: %w", err)
		}
		for _, l := range lots {
			report.BatchCodes[l.ID] = l.BatchCode
		}
		value := dominv.Valuation(lots)
		report.Valuation = append(report.Valuation, ProductValuation{
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    dominv.TotalQuantity(lots),
			Value:       value,
		})
		report.TotalValue = report.TotalValue.Add(value)
	}
	return report, nil
}

// Generate arma el reporte y devuelve el PDF con un nombre de archivo sugerido.
func (uc *ReportUseCase) Generate(ctx context.Context, f HistoryFilter) (pdfBytes []byte, filename string, err error) {
	report, err := uc.Build(ctx, f)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.generator.GenerateMovementReport(ctx, report)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: generación fallida: %w", err)
	}
	filename = fmt.Sprintf("movimientos_%s_%s.pdf", report.Stock.ID, report.GeneratedAt.Format("20060102"))
	return pdfBytes, filename, nil
}
