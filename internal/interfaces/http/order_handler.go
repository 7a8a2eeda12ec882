package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/lachilena/empanaderia-api/internal/application/dto"
	"github.com/lachilena/empanaderia-api/internal/application/orders"
	"github.com/lachilena/empanaderia-api/internal/domain"
)

// OrderHandler maneja el ciclo de vida de pedidos: creación (cualquier usuario
// autenticado), consultas propias o de admin, cambio de estado y boleta PDF.
type OrderHandler struct {
	uc        *orders.UseCase
	receiptUC *orders.ReceiptUseCase
}

// NewOrderHandler construye el handler de pedidos.
func NewOrderHandler(uc *orders.UseCase, receiptUC *orders.ReceiptUseCase) *OrderHandler {
	return &OrderHandler{uc: uc, receiptUC: receiptUC}
}

// Create godoc
// @Summary      Crear pedido
// @Description  Valida existencia de cada ítem, descuenta stock de forma atómica y registra el pedido. El email del pedido es siempre el del token, no el del cuerpo.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "items y total"
// @Success      200   {object}  dto.CreateOrderResponse
// @Failure      404   {object}  dto.ErrorResponse  "algún producto no existe"
// @Failure      409   {object}  dto.ErrorResponse  "stock insuficiente (perdió la carrera)"
// @Router       /orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.PlaceOrder(c.Context(), GetEmail(c), in)
	if err != nil {
		var itemErr *orders.ItemError
		if errors.As(err, &itemErr) {
			if errors.Is(err, domain.ErrNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "ITEM_NOT_FOUND", Message: itemErr.Error()})
			}
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "OUT_OF_STOCK", Message: itemErr.Error()})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrUnauthorized) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "se requiere identidad autenticada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ByCustomer godoc
// @Summary      Pedidos de un cliente
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        email  path  string  true  "email del cliente"
// @Success      200  {array}  dto.OrderResponse
// @Failure      403  {object}  dto.ErrorResponse  "solo el propio cliente o un admin"
// @Router       /orders/user/{email} [get]
func (h *OrderHandler) ByCustomer(c *fiber.Ctx) error {
	email := c.Params("email")
	out, err := h.uc.ByCustomer(c.Context(), GetEmail(c), GetRole(c), email)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "no puedes ver pedidos de otros usuarios"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Recent godoc
// @Summary      Pedidos recientes (admin)
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "máximo de pedidos"  default(100)
// @Success      200  {array}  dto.OrderResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /orders [get]
func (h *OrderHandler) Recent(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 0)
	out, err := h.uc.Recent(c.Context(), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de un pedido (admin)
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del pedido"
// @Param        body  body  dto.UpdateStatusRequest  true  "status: recibido|preparando|listo|entregado"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse  "estado fuera del enum"
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.UpdateStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.UpdateStatus(c.Context(), id, in.Status); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidStatus):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_STATUS", Message: "estado inválido: " + in.Status})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pedido no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.MessageResponse{Message: "estado actualizado"})
}

// Receipt godoc
// @Summary      Boleta PDF de un pedido
// @Tags         orders
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {file}  binary
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /orders/{id}/receipt [get]
func (h *OrderHandler) Receipt(c *fiber.Ctx) error {
	id := c.Params("id")
	pdfBytes, err := h.receiptUC.Generate(c.Context(), GetEmail(c), GetRole(c), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pedido no encontrado"})
		case errors.Is(err, domain.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "no puedes ver boletas de otros usuarios"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="boleta-`+id+`.pdf"`)
	return c.Send(pdfBytes)
}
