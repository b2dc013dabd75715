// Package xmlreport exporta el reporte de stock como documento XML, pensado
// para integraciones contables que no consumen JSON.
package xmlreport

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/beevik/etree"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
)

// Exporter serializa un StockReportResponse a XML con etree.
type Exporter struct{}

// NewExporter construye el exportador.
func NewExporter() *Exporter { return &Exporter{} }

// Render arma el documento XML del reporte y devuelve sus bytes.
func (e *Exporter) Render(
	_ context.Context,
	company *entity.Company,
	report *dto.StockReportResponse,
) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("StockReport")
	root.CreateAttr("generatedAt", report.ReportDate.Format(time.RFC3339))

	comp := root.CreateElement("Company")
	comp.CreateElement("ID").SetText(company.ID)
	comp.CreateElement("Name").SetText(company.Name)

	summary := root.CreateElement("Summary")
	summary.CreateElement("TotalItems").SetText(fmt.Sprintf("%d", report.TotalItems))
	summary.CreateElement("TotalValue").SetText(report.TotalValue.StringFixed(2))
	summary.CreateElement("LowStockCount").SetText(fmt.Sprintf("%d", report.LowStockCount))

	items := root.CreateElement("Ingredients")
	for _, ing := range report.Ingredients {
		el := items.CreateElement("Ingredient")
		el.CreateAttr("id", ing.ID)
		el.CreateAttr("lowStock", fmt.Sprintf("%t", ing.LowStock))
		el.CreateElement("Name").SetText(ing.Name)
		el.CreateElement("Unit").SetText(ing.Unit)
		el.CreateElement("Category").SetText(ing.Category)
		el.CreateElement("CurrentStock").SetText(ing.CurrentStock.String())
		el.CreateElement("MinStockLevel").SetText(ing.MinStockLevel.String())
		el.CreateElement("CostPerUnit").SetText(ing.CostPerUnit.StringFixed(2))
		el.CreateElement("Value").SetText(ing.CurrentStock.Mul(ing.CostPerUnit).StringFixed(2))
		if ing.ExpiryDate != nil {
			el.CreateElement("ExpiryDate").SetText(ing.ExpiryDate.Format("2006-01-02"))
		}
	}

	doc.Indent(2)
	var out bytes.Buffer
	if _, err := doc.WriteTo(&out); err != nil {
		return nil, fmt.Errorf("xmlreport: serializar reporte: %w", err)
	}
	return out.Bytes(), nil
}
