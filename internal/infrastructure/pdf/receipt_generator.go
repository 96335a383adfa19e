// Package pdf genera el recibo de venta en PDF que se entrega al cliente.
//
// Layout de la página A5:
//
//	┌───────────────────────────────────────────────┐
//	│  HEADER: Nombre del negocio │ N° Recibo+Fecha │
//	│  ───────────────────────────────────────────  │
//	│  CLIENTE: nombre + método de pago             │
//	│  ───────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | Tipo | P.U | Subt   │
//	│  ───────────────────────────────────────────  │
//	│  TOTALES: Total / Pagado / Saldo pendiente    │
//	└───────────────────────────────────────────────┘
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

	"github.com/jhoicas/mumi-pos-api/internal/domain/entity"
	"github.com/jhoicas/mumi-pos-api/internal/domain/profit"
)

var (
	colorPrimary = &props.Color{Red: 120, Green: 47, Blue: 95}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ReceiptGenerator genera recibos de venta con Maroto v2.
type ReceiptGenerator struct {
	businessName string
}

// NewReceiptGenerator construye el generador con el nombre que encabeza el recibo.
func NewReceiptGenerator(businessName string) *ReceiptGenerator {
	return &ReceiptGenerator{businessName: businessName}
}

// GenerateSaleReceipt genera el PDF del recibo y devuelve sus bytes.
func (g *ReceiptGenerator) GenerateSaleReceipt(_ context.Context, sale *entity.Sale) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("Recibo de venta #%d", sale.ID), true).
		WithAuthor(g.businessName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(itemsHeaderRow())
	for _, r := range itemRows(sale.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(sale))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar recibo: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *ReceiptGenerator) headerRow(sale *entity.Sale) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(g.businessName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Perfumes y decants", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(fmt.Sprintf("RECIBO #%d", sale.ID), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1,
			}),
			text.New("Fecha: "+sale.SaleDate.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func customerRow(sale *entity.Sale) core.Row {
	name := "Consumidor final"
	if sale.CustomerName != nil && *sale.CustomerName != "" {
		name = *sale.CustomerName
	}
	method := sale.PaymentMethod
	if method == "" {
		method = "—"
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   Pago: %s", name, method), props.Text{
				Size: 9, Top: 7,
			}),
		),
	)
}

func itemsHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Producto", 5, align.Left),
		h("Tipo", 2, align.Center),
		h("P. Unit.", 2, align.Right),
		h("Subtotal", 2, align.Right),
	)
}

func itemRows(items []entity.SaleItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", it.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				it.PerfumeName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				saleTypeLabel(it.SaleType),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				"$"+profit.FormatAmount(it.UnitPrice),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				"$"+profit.FormatAmount(it.Subtotal),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

func totalsRow(sale *entity.Sale) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := text.New("TOTAL:", props.Text{
		Style: fontstyle.Bold, Size: 11, Align: align.Right,
		Color: colorPrimary, Right: 2,
	})
	grandValue := text.New("$"+profit.FormatAmount(sale.TotalAmount), props.Text{
		Style: fontstyle.Bold, Size: 11, Align: align.Right,
		Color: colorPrimary, Right: 1,
	})

	return row.New(26).Add(
		col.New(4),
		col.New(4).Add(
			grandLabel,
			label("Pagado:"),
			label("Saldo pendiente:"),
		),
		col.New(4).Add(
			grandValue,
			value("$"+profit.FormatAmount(sale.AmountPaid)),
			value("$"+profit.FormatAmount(sale.DebtAmount)),
		),
	)
}

func saleTypeLabel(t string) string {
	switch t {
	case entity.SaleTypeFullBottle:
		return "Botella"
	case entity.SaleTypeDecant:
		return "Decant"
	default:
		return t
	}
}
