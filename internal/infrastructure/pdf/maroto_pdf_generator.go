// Package pdf implementa la generación del comprobante de orden de venta.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Concesionario  │  Código de orden + Fecha          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + Teléfono                                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Motocicleta | Precio Unit. | Subtotal        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL                                                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Estado de la orden + leyenda                               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tu-usuario/motostock-api/internal/application/sales"
	"github.com/tu-usuario/motostock-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 160, Green: 30, Blue: 30}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// copPrinter formatea montos con separador de miles es-CO (puntos).
var copPrinter = message.NewPrinter(language.MustParse("es-CO"))

var _ sales.VoucherGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa sales.VoucherGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	dealerName string
}

// NewMarotoPDFGenerator construye el generador con el nombre del
// concesionario que encabeza el comprobante.
func NewMarotoPDFGenerator(dealerName string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{dealerName: dealerName}
}

// GenerateOrderVoucher genera el PDF del comprobante y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateOrderVoucher(
	_ context.Context,
	order *entity.SalesOrder,
	variants map[string]*entity.Variant,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de orden "+order.Code, true).
		WithAuthor(g.dealerName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(order, g.dealerName))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	total := decimal.Zero
	for _, l := range order.Lines {
		m.AddRows(lineRow(l, variants[l.VariantID]))
		total = total.Add(l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity)))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(total))

	m.AddRows(line.NewRow(3))
	m.AddRows(statusFooterRow(order))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar comprobante: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: concesionario (izq) y código + fecha de la orden (der).
func headerRow(order *entity.SalesOrder, dealerName string) core.Row {
	fecha := order.CreatedAt.Format("02/01/2006")
	return row.New(18).Add(
		col.New(7).Add(
			text.New(dealerName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Comprobante de orden de venta", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(order.Code, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 3,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 11, Color: colorGray,
			}),
		),
	)
}

// customerRow: datos del cliente.
func customerRow(order *entity.SalesOrder) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(order.CustomerName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New("Tel: "+nonEmpty(order.CustomerPhone, "—"), props.Text{
				Size: 8, Top: 12, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Motocicleta", 6, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

// lineRow: una fila por línea de la orden. Si la variante no está (caso
// límite: catálogo inconsistente), se muestra el ID.
func lineRow(l *entity.OrderLine, v *entity.Variant) core.Row {
	desc := l.VariantID
	if v != nil {
		desc = fmt.Sprintf("%s (%s)", v.Name, v.SKU)
	}
	subtotal := l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity))
	return row.New(7).Add(
		col.New(1).Add(text.New(
			fmt.Sprintf("%d", l.Quantity),
			props.Text{Size: 8, Align: align.Center, Top: 1},
		)),
		col.New(6).Add(text.New(
			desc,
			props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
		)),
		col.New(2).Add(text.New(
			formatCOP(l.UnitPrice),
			props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
		)),
		col.New(3).Add(text.New(
			formatCOP(subtotal),
			props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
		)),
	)
}

// totalRow: total de la orden alineado a la derecha.
func totalRow(total decimal.Decimal) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(3).Add(text.New(formatCOP(total), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}

// statusFooterRow: estado actual + leyenda.
func statusFooterRow(order *entity.SalesOrder) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("Estado de la orden: "+order.Status, props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 1,
			}),
			text.New(
				"Este comprobante no es una factura de venta. Los precios quedaron "+
					"congelados al crear la orden y están expresados en pesos colombianos (COP).",
				props.Text{Size: 6.5, Color: colorGray, Top: 7},
			),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatCOP formatea un monto COP sin decimales con separador de miles
// es-CO. Ej: 1000000 → "$1.000.000".
func formatCOP(d decimal.Decimal) string {
	return copPrinter.Sprintf("$%d", d.Round(0).IntPart())
}
