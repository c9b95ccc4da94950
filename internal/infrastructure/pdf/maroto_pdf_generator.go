// Package pdf genera la representación imprimible de las facturas de venta y compra.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Anbar + tipo de factura │ N° Factura + Fechas      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CONTRAPARTE: Nombre + contacto                             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | P.Unit | Desc% | Total            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Bruto / Descuentos / TOTAL                        │
//	│  FOOTER: Notas + QR (número y total)                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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

	"github.com/anbar/anbar-api/internal/application/billing"
	"github.com/anbar/anbar-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var _ billing.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa billing.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	company string
}

// NewMarotoPDFGenerator construye el generador. company aparece en la cabecera.
func NewMarotoPDFGenerator(company string) *MarotoPDFGenerator {
	if strings.TrimSpace(company) == "" {
		company = "Anbar"
	}
	return &MarotoPDFGenerator{company: company}
}

// Generate genera el PDF y devuelve sus bytes. customer puede ser nil.
func (g *MarotoPDFGenerator) Generate(invoice *entity.Invoice, customer *entity.Customer) ([]byte, error) {
	if invoice == nil {
		return nil, fmt.Errorf("pdf: factura nula")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(kindTitle(invoice.Kind)+" "+invoice.InvoiceNumber, true).
		WithAuthor(g.company, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.company, invoice))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(counterpartRow(invoice, customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(invoice.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(invoice))

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRows(invoice)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func kindTitle(kind entity.InvoiceKind) string {
	if kind == entity.InvoicePurchase {
		return "FACTURA DE COMPRA"
	}
	return "FACTURA DE VENTA"
}

// headerRow: empresa y tipo (izq), número y fechas (der).
func headerRow(company string, invoice *entity.Invoice) core.Row {
	status := "Borrador"
	if invoice.IsActive {
		status = "Activa"
	}
	return row.New(22).Add(
		col.New(7).Add(
			text.New(company, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(kindTitle(invoice.Kind), props.Text{
				Style: fontstyle.Bold, Size: 8, Top: 9, Color: colorGray,
			}),
			text.New("Estado: "+status, props.Text{
				Size: 8, Top: 14, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(invoice.InvoiceNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1,
			}),
			text.New("Fecha: "+formatDate(invoice.InvoiceDate), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
			text.New("Pago: "+formatDate(invoice.PaymentDate), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// counterpartRow: comprador (venta) o proveedor (compra).
func counterpartRow(invoice *entity.Invoice, customer *entity.Customer) core.Row {
	label := "COMPRADOR"
	if invoice.Kind == entity.InvoicePurchase {
		label = "PROVEEDOR"
	}
	name := invoice.CustomerName
	details := "-"
	if customer != nil {
		name = customer.Name
		details = fmt.Sprintf("Tel: %s   |   Email: %s   |   Dirección: %s",
			nonEmpty(customer.Phone, "-"),
			nonEmpty(customer.Email, "-"),
			nonEmpty(customer.Address, "-"),
		)
	}
	return row.New(16).Add(
		col.New(12).Add(
			text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(&name, "Sin contraparte"), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(details, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Producto", 5, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Desc%", 1, align.Center),
		h("Total", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableDetailRows: una fila por línea de factura.
func tableDetailRows(items []entity.InvoiceItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		name := it.ProductName
		if name == "" {
			name = "(producto eliminado)"
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				it.Quantity.String(),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				formatMoney(it.UnitPrice),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				it.DiscountAuto.Add(it.DiscountManual).String()+"%",
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(3).Add(text.New(
				formatMoney(it.TotalPrice),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: bruto (cantidad × precio), descuentos y total.
func totalsRow(invoice *entity.Invoice) core.Row {
	gross := decimal.Zero
	for _, it := range invoice.Items {
		gross = gross.Add(it.Quantity.Mul(it.UnitPrice))
	}
	discounts := gross.Sub(invoice.TotalAmount)
	if discounts.IsNegative() {
		discounts = decimal.Zero
	}

	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}

	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("Bruto:"),
			text.New("Descuentos:", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 6}),
			text.New("TOTAL:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 12,
			}),
		),
		col.New(3).Add(
			value(formatMoney(gross), 0),
			value(formatMoney(discounts), 6),
			text.New(formatMoney(invoice.TotalAmount), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 12,
			}),
		),
	)
}

// footerRows: notas y QR con número y total para verificación rápida.
func footerRows(invoice *entity.Invoice) []core.Row {
	rows := []core.Row{line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3})}
	if invoice.Notes != nil && strings.TrimSpace(*invoice.Notes) != "" {
		rows = append(rows, row.New(12).Add(col.New(12).Add(
			text.New("Notas:", props.Text{Style: fontstyle.Bold, Size: 8, Top: 1}),
			text.New(*invoice.Notes, props.Text{Size: 8, Top: 5, Color: colorGray}),
		)))
	}
	qr := fmt.Sprintf("%s|%s", invoice.InvoiceNumber, invoice.TotalAmount.StringFixed(2))
	rows = append(rows, row.New(35).Add(
		col.New(3).Add(code.NewQr(qr, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New(fmt.Sprintf("%d líneas", len(invoice.Items)), props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
		),
	))
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s *string, fallback string) string {
	if s != nil && strings.TrimSpace(*s) != "" {
		return *s
	}
	return fallback
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("02/01/2006")
}

// formatMoney redondea a 2 decimales e inserta separador de miles.
// Ej: 25000.5 → "25 000.50"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ' ')
		}
		buf = append(buf, c)
	}
	return sign + string(buf) + "." + frac
}
