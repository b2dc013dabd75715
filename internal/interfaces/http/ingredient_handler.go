package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/application/ingredient"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

// IngredientHandler maneja las peticiones HTTP del catálogo de ingredientes (protegido).
type IngredientHandler struct {
	uc *ingredient.UseCase
}

// NewIngredientHandler construye el handler.
func NewIngredientHandler(uc *ingredient.UseCase) *IngredientHandler {
	return &IngredientHandler{uc: uc}
}

// Create godoc
// @Summary      Crear ingrediente
// @Description  Si initial_stock es mayor que cero, se registra además una
// @Description  transacción `in` de carga inicial en el log de stock.
// @Tags         ingredients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateIngredientRequest  true  "name, unit y category requeridos"
// @Success      201   {object}  dto.IngredientResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ingredients [post]
func (h *IngredientHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateIngredientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener ingrediente por ID
// @Tags         ingredients
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Ingredient ID"
// @Success      200  {object}  dto.IngredientResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ingredients/{id} [get]
func (h *IngredientHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar ingrediente
// @Description  Si el cuerpo trae current_stock, la diferencia contra el valor
// @Description  vigente se registra como ajuste en el log de stock.
// @Tags         ingredients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "Ingredient ID"
// @Param        body  body  dto.UpdateIngredientRequest  true  "solo los campos presentes se actualizan"
// @Success      200   {object}  dto.IngredientResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ingredients/{id} [put]
func (h *IngredientHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateIngredientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), GetCompanyID(c), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar ingrediente
// @Description  Falla con 409 si el ingrediente está referenciado por alguna receta.
// @Tags         ingredients
// @Security     Bearer
// @Param        id  path  string  true  "Ingredient ID"
// @Success      204  "sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/ingredients/{id} [delete]
func (h *IngredientHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetCompanyID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List godoc
// @Summary      Listar ingredientes
// @Tags         ingredients
// @Security     Bearer
// @Produce      json
// @Param        category   query  string  false  "Filtrar por categoría"
// @Param        low_stock  query  bool    false  "Solo ingredientes en o bajo su mínimo"
// @Param        search     query  string  false  "Búsqueda por nombre (case-insensitive)"
// @Success      200  {object}  dto.IngredientListResponse
// @Router       /api/ingredients [get]
func (h *IngredientHandler) List(c *fiber.Ctx) error {
	filter := repository.IngredientFilter{
		Category:     c.Query("category"),
		OnlyLowStock: c.QueryBool("low_stock"),
		OnlyActive:   true,
		Search:       c.Query("search"),
	}
	out, err := h.uc.List(c.Context(), GetCompanyID(c), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListExpiringSoon godoc
// @Summary      Ingredientes próximos a vencer
// @Description  Devuelve los ingredientes activos cuya fecha de vencimiento cae
// @Description  dentro del horizonte configurado (7 días por defecto).
// @Tags         ingredients
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.IngredientListResponse
// @Router       /api/ingredients/expiring [get]
func (h *IngredientHandler) ListExpiringSoon(c *fiber.Ctx) error {
	out, err := h.uc.ListExpiringSoon(c.Context(), GetCompanyID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
