package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/application/recipe"
)

// RecipeHandler maneja las relaciones producto-ingrediente (protegido).
type RecipeHandler struct {
	uc *recipe.UseCase
}

// NewRecipeHandler construye el handler.
func NewRecipeHandler(uc *recipe.UseCase) *RecipeHandler {
	return &RecipeHandler{uc: uc}
}

// Link godoc
// @Summary      Vincular ingrediente a producto
// @Tags         recipes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRecipeLinkRequest  true  "product_id, ingredient_id, quantity, unit"
// @Success      201   {object}  dto.RecipeLinkResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/recipes [post]
func (h *RecipeHandler) Link(c *fiber.Ctx) error {
	var in dto.CreateRecipeLinkRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Link(c.Context(), GetCompanyID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Modificar relación de receta
// @Tags         recipes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "Link ID"
// @Param        body  body  dto.UpdateRecipeLinkRequest  true  "solo los campos presentes se actualizan"
// @Success      200   {object}  dto.RecipeLinkResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/recipes/{id} [put]
func (h *RecipeHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateRecipeLinkRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Unlink godoc
// @Summary      Eliminar relación de receta
// @Tags         recipes
// @Security     Bearer
// @Param        id  path  string  true  "Link ID"
// @Success      204  "sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recipes/{id} [delete]
func (h *RecipeHandler) Unlink(c *fiber.Ctx) error {
	if err := h.uc.Unlink(c.Context(), GetCompanyID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// IngredientsForProduct godoc
// @Summary      Receta de un producto
// @Description  Lista los ingredientes vinculados al producto con sus cantidades.
// @Tags         recipes
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Product ID"
// @Success      200  {object}  dto.RecipeLinkListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/recipe [get]
func (h *RecipeHandler) IngredientsForProduct(c *fiber.Ctx) error {
	out, err := h.uc.IngredientsForProduct(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ProductsForIngredient godoc
// @Summary      Productos que usan un ingrediente
// @Tags         recipes
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Ingredient ID"
// @Success      200  {object}  dto.RecipeLinkListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ingredients/{id}/products [get]
func (h *RecipeHandler) ProductsForIngredient(c *fiber.Ctx) error {
	out, err := h.uc.ProductsForIngredient(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
