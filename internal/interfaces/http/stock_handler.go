package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/application/stock"
	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

// ReportRenderer es el contrato mínimo para renderizar el reporte de stock en
// un formato binario. Lo implementan pdf.StockReportGenerator y
// xmlreport.Exporter; el uso de interfaz evita acoplar el handler a ambos paquetes.
type ReportRenderer interface {
	Render(ctx context.Context, company *entity.Company, report *dto.StockReportResponse) ([]byte, error)
}

// StockHandler maneja movimientos, historial, disponibilidad y reportes de stock (protegido).
type StockHandler struct {
	movement    *stock.MovementUseCase
	reconcile   *stock.ReconcileUseCase
	report      *stock.ReportUseCase
	companyRepo repository.CompanyRepository
	pdfRenderer ReportRenderer
	xmlRenderer ReportRenderer
}

// NewStockHandler construye el handler. Los renderers son opcionales: con nil,
// el formato correspondiente responde 406.
func NewStockHandler(
	movement *stock.MovementUseCase,
	reconcile *stock.ReconcileUseCase,
	report *stock.ReportUseCase,
	companyRepo repository.CompanyRepository,
	pdfRenderer, xmlRenderer ReportRenderer,
) *StockHandler {
	return &StockHandler{
		movement:    movement,
		reconcile:   reconcile,
		report:      report,
		companyRepo: companyRepo,
		pdfRenderer: pdfRenderer,
		xmlRenderer: xmlRenderer,
	}
}

// ApplyMovement godoc
// @Summary      Registrar movimiento de stock
// @Description  Tipos: `in` suma, `out` resta (falla si queda negativo),
// @Description  `adjustment`/`count` fijan el valor absoluto y registran |delta|.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ApplyMovementRequest  true  "ingredient_id, type, quantity"
// @Success      201   {object}  dto.StockTransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/movements [post]
func (h *StockHandler) ApplyMovement(c *fiber.Ctx) error {
	var in dto.ApplyMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	txn, err := h.movement.Apply(c.Context(), GetCompanyID(c), in.IngredientID, in.Quantity, in.Type, GetUserID(c), stock.MovementOptions{
		Notes:           in.Notes,
		SupplierOrderID: in.SupplierOrderID,
	})
	if err != nil {
		return respondError(c, err)
	}
	if txn == nil {
		// Ajuste sin delta: no se escribió transacción.
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "sin cambios de stock"})
	}
	return c.Status(fiber.StatusCreated).JSON(stock.ToTransactionResponse(txn))
}

// RecordEntry godoc
// @Summary      Registrar entrada de compra
// @Description  Movimiento `in` con costo unitario; actualiza además el costo
// @Description  por unidad del ingrediente.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "Ingredient ID"
// @Param        body  body  dto.StockEntryRequest  true  "quantity y unit_cost"
// @Success      201   {object}  dto.StockTransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ingredients/{id}/entries [post]
func (h *StockHandler) RecordEntry(c *fiber.Ctx) error {
	var in dto.StockEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	txn, err := h.movement.RecordStockEntry(c.Context(), GetCompanyID(c), c.Params("id"),
		in.Quantity, in.UnitCost, GetUserID(c), in.SupplierOrderID, in.Notes)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(stock.ToTransactionResponse(txn))
}

// Adjust godoc
// @Summary      Corregir stock a un valor absoluto
// @Description  Registra la magnitud de la corrección en el log; con delta cero
// @Description  no se escribe nada.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "Ingredient ID"
// @Param        body  body  dto.AdjustStockRequest  true  "new_stock objetivo"
// @Success      200   {object}  dto.StockTransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ingredients/{id}/adjust [put]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	txn, err := h.movement.AdjustStock(c.Context(), GetCompanyID(c), c.Params("id"), in.NewStock, GetUserID(c), in.Notes)
	if err != nil {
		return respondError(c, err)
	}
	if txn == nil {
		return c.JSON(fiber.Map{"message": "sin cambios de stock"})
	}
	return c.JSON(stock.ToTransactionResponse(txn))
}

// History godoc
// @Summary      Historial de transacciones de stock
// @Description  Página del log append-only, de la más reciente a la más antigua.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        ingredient_id  query  string  false  "Filtrar por ingrediente"
// @Param        type           query  string  false  "in | out | adjustment | count"
// @Param        start_date     query  string  false  "RFC3339"
// @Param        end_date       query  string  false  "RFC3339"
// @Param        page           query  int     false  "Página (default 1)"
// @Param        limit          query  int     false  "Tamaño de página (default 20, máx 100)"
// @Success      200  {object}  dto.StockHistoryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/history [get]
func (h *StockHandler) History(c *fiber.Ctx) error {
	in := dto.StockHistoryRequest{
		IngredientID: c.Query("ingredient_id"),
		Type:         c.Query("type"),
		PageRequest:  dto.PageRequest{Page: c.QueryInt("page"), Limit: c.QueryInt("limit")},
	}
	// Las fechas van como RFC3339; el QueryParser de Fiber no decodifica *time.Time.
	for q, dst := range map[string]**time.Time{"start_date": &in.StartDate, "end_date": &in.EndDate} {
		raw := c.Query(q)
		if raw == "" {
			continue
		}
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: q + " debe ser RFC3339"})
		}
		*dst = &ts
	}
	out, err := h.report.GetStockHistory(c.Context(), GetCompanyID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CheckAvailability godoc
// @Summary      Verificar disponibilidad de stock
// @Description  Chequeo consultivo (sin escrituras) de si hay stock para
// @Description  preparar los items dados. Los ingredientes opcionales no bloquean.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckAvailabilityRequest  true  "items a verificar"
// @Success      200   {object}  dto.AvailabilityResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock/check-availability [post]
func (h *StockHandler) CheckAvailability(c *fiber.Ctx) error {
	var in dto.CheckAvailabilityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.reconcile.CheckAvailability(c.Context(), GetCompanyID(c), in.Items)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Reporte del stock actual
// @Description  Valorización y conteos del stock vigente. Con `Accept:
// @Description  application/pdf` o `application/xml` devuelve el documento
// @Description  renderizado en ese formato.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Produce      application/pdf
// @Produce      application/xml
// @Param        category   query  string  false  "Filtrar por categoría"
// @Param        low_stock  query  bool    false  "Solo ingredientes en o bajo su mínimo"
// @Success      200  {object}  dto.StockReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/report [get]
func (h *StockHandler) Report(c *fiber.Ctx) error {
	var in dto.StockReportRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros de consulta inválidos"})
	}
	companyID := GetCompanyID(c)
	out, err := h.report.GetStockReport(c.Context(), companyID, in)
	if err != nil {
		return respondError(c, err)
	}

	switch c.Accepts(fiber.MIMEApplicationJSON, "application/pdf", fiber.MIMEApplicationXML) {
	case "application/pdf":
		return h.render(c, companyID, out, h.pdfRenderer, "application/pdf", "stock-report.pdf")
	case fiber.MIMEApplicationXML:
		return h.render(c, companyID, out, h.xmlRenderer, fiber.MIMEApplicationXML, "stock-report.xml")
	default:
		return c.JSON(out)
	}
}

func (h *StockHandler) render(c *fiber.Ctx, companyID string, report *dto.StockReportResponse, renderer ReportRenderer, contentType, filename string) error {
	if renderer == nil {
		return c.Status(fiber.StatusNotAcceptable).JSON(dto.ErrorResponse{Code: "FORMAT_UNAVAILABLE", Message: "formato no disponible"})
	}
	company, err := h.companyRepo.GetByID(companyID)
	if err != nil {
		return respondError(c, err)
	}
	if company == nil {
		return respondError(c, domain.ErrNotFound)
	}
	data, err := renderer.Render(c.Context(), company, report)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
