// Package pdf implementa el reporte PDF de movimientos de un stock.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del stock │ Período + Fecha de emisión      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Tipo | Producto | Lote | Cantidad           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  VALORIZACIÓN: Producto | Saldo | Valor + TOTAL             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/lotes-api/internal/application/inventory"
	"github.com/jhoicas/lotes-api/internal/domain/entity"
)

var _ inventory.ReportGenerator = (*MarotoReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorOut     = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa inventory.ReportGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateMovementReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateMovementReport(_ context.Context, rep *inventory.MovementReport) ([]byte, error) {
	if rep == nil || rep.Stock == nil {
		return nil, fmt.Errorf("pdf: reporte sin stock")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de movimientos", true).
		WithAuthor(rep.Stock.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(rep))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	// Movimientos
	m.AddRows(sectionRow("MOVIMIENTOS"))
	m.AddRows(movementHeaderRow())
	m.AddRows(movementRows(rep)...)

	// Valorización
	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(sectionRow("VALORIZACIÓN DEL SALDO"))
	m.AddRows(valuationRows(rep)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del stock (izq) y período + emisión (der).
func headerRow(rep *inventory.MovementReport) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(rep.Stock.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Stock: "+rep.Stock.ID, props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("REPORTE DE MOVIMIENTOS", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Período: "+period(rep), props.Text{
				Size: 8, Align: align.Right, Top: 7,
			}),
			text.New("Emitido: "+rep.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

func sectionRow(title string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	))
}

func movementHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(7).Add(
		h("Fecha", 2, align.Left),
		h("Tipo", 2, align.Center),
		h("Producto", 4, align.Left),
		h("Lote", 2, align.Left),
		h("Cantidad", 2, align.Right),
	)
}

// movementRows: una fila por línea de movimiento; las salidas van en negativo.
func movementRows(rep *inventory.MovementReport) []core.Row {
	if len(rep.Movements) == 0 {
		return []core.Row{row.New(8).Add(col.New(12).Add(
			text.New("Sin movimientos en el período.", props.Text{
				Size: 8, Align: align.Center, Color: colorGray, Top: 2,
			}),
		))}
	}
	var rows []core.Row
	for _, mv := range rep.Movements {
		for _, ln := range mv.Lines {
			qty := fmt.Sprintf("%d", ln.Quantity)
			qtyProps := props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1}
			if mv.Type == entity.MovementTypeSaida {
				qty = "-" + qty
				qtyProps.Color = colorOut
			}
			rows = append(rows, row.New(6).Add(
				col.New(2).Add(text.New(mv.Timestamp.Format("02/01/2006 15:04"),
					props.Text{Size: 8, Top: 1, Left: 1})),
				col.New(2).Add(text.New(string(mv.Type),
					props.Text{Size: 8, Align: align.Center, Top: 1})),
				col.New(4).Add(text.New(nonEmpty(rep.ProductNames[ln.ProductID], ln.ProductID),
					props.Text{Size: 8, Top: 1, Left: 1})),
				col.New(2).Add(text.New(nonEmpty(rep.BatchCodes[ln.LotID], "—"),
					props.Text{Size: 8, Top: 1, Left: 1})),
				col.New(2).Add(text.New(qty, qtyProps)),
			))
		}
	}
	return rows
}

// valuationRows: saldo y valor por producto más el total del stock.
func valuationRows(rep *inventory.MovementReport) []core.Row {
	rows := make([]core.Row, 0, len(rep.Valuation)+1)
	for _, v := range rep.Valuation {
		rows = append(rows, row.New(6).Add(
			col.New(6).Add(text.New(v.ProductName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(formatMoney(fmt.Sprintf("%d", v.Quantity)),
				props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(3).Add(text.New("$"+formatMoney(v.Value.StringFixed(2)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	rows = append(rows, row.New(9).Add(
		col.New(6),
		col.New(3).Add(text.New("VALOR TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2,
		})),
		col.New(3).Add(text.New("$"+formatMoney(rep.TotalValue.StringFixed(2)), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 1,
		})),
	))
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func period(rep *inventory.MovementReport) string {
	from, to := "inicio", "hoy"
	if rep.From != nil {
		from = rep.From.Format("02/01/2006")
	}
	if rep.To != nil {
		to = rep.To.Format("02/01/2006")
	}
	return from + " - " + to
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney inserta puntos de miles y usa coma decimal.
// Ej: "25000" → "25.000", "1234.50" → "1.234,50"
func formatMoney(s string) string {
	intPart, frac, hasFrac := strings.Cut(s, ".")
	neg := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")

	n := len(intPart)
	buf := make([]byte, 0, n+n/3+len(frac)+2)
	if neg {
		buf = append(buf, '-')
	}
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	if hasFrac {
		buf = append(buf, ',')
		buf = append(buf, frac...)
	}
	return string(buf)
}
