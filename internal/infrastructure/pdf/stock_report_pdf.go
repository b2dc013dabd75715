// Package pdf genera la representación imprimible del reporte de stock:
// cabecera con la empresa y la fecha, tabla de ingredientes con stock y
// valorización, y el bloque de totales. Los ingredientes bajo mínimo van
// resaltados.
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

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 90, Blue: 60}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// StockReportGenerator genera el PDF del reporte de stock usando Maroto v2.
type StockReportGenerator struct{}

// NewStockReportGenerator construye el generador.
func NewStockReportGenerator() *StockReportGenerator { return &StockReportGenerator{} }

// Render arma el PDF del reporte y devuelve sus bytes.
func (g *StockReportGenerator) Render(
	_ context.Context,
	company *entity.Company,
	report *dto.StockReportResponse,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Stock", true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(company, report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, r := range tableRows(report.Ingredients) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(report))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: nombre de la empresa (izq) y fecha del reporte (der).
func headerRow(company *entity.Company, report *dto.StockReportResponse) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Reporte de stock de ingredientes", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Fecha: "+report.ReportDate.Format("02/01/2006 15:04"), props.Text{
				Size: 9, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New(fmt.Sprintf("Ingredientes: %d", report.TotalItems), props.Text{
				Size: 9, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de ingredientes.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Ingrediente", 4, align.Left),
		h("Stock", 2, align.Right),
		h("Mínimo", 2, align.Right),
		h("Costo unit.", 2, align.Right),
		h("Valor", 2, align.Right),
	)
}

// tableRows: una fila por ingrediente; los que están bajo mínimo van en rojo.
func tableRows(ingredients []dto.IngredientResponse) []core.Row {
	result := make([]core.Row, 0, len(ingredients))
	for _, ing := range ingredients {
		color := colorGray
		if ing.LowStock {
			color = colorAlert
		}
		cell := func(s string, size int, a align.Type) core.Col {
			return col.New(size).Add(text.New(s, props.Text{
				Size: 8, Align: a, Top: 1, Left: 1, Right: 1, Color: color,
			}))
		}
		value := ing.CurrentStock.Mul(ing.CostPerUnit)
		result = append(result, row.New(6).Add(
			cell(fmt.Sprintf("%s (%s)", ing.Name, ing.Unit), 4, align.Left),
			cell(ing.CurrentStock.String(), 2, align.Right),
			cell(ing.MinStockLevel.String(), 2, align.Right),
			cell("$"+ing.CostPerUnit.StringFixed(2), 2, align.Right),
			cell("$"+value.StringFixed(2), 2, align.Right),
		))
	}
	return result
}

// totalsRow: valorización total y conteo bajo mínimo.
func totalsRow(report *dto.StockReportResponse) core.Row {
	return row.New(14).Add(
		col.New(6).Add(
			text.New(fmt.Sprintf("Bajo mínimo: %d", report.LowStockCount), props.Text{
				Style: fontstyle.Bold, Size: 9, Color: colorAlert, Top: 2,
			}),
		),
		col.New(6).Add(
			text.New("VALOR TOTAL: $"+report.TotalValue.StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right,
				Color: colorPrimary, Top: 2,
			}),
		),
	)
}
