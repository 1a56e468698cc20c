package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Backoffice-api/internal/application/dto"
	"github.com/jhoicas/Backoffice-api/internal/application/orders"
)

// OrderHandler órdenes de servicio: creación, consulta, estado y firma.
type OrderHandler struct {
	create    *orders.CreateOrderUseCase
	lifecycle *orders.LifecycleUseCase
	query     *orders.QueryUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(create *orders.CreateOrderUseCase, lifecycle *orders.LifecycleUseCase, query *orders.QueryUseCase) *OrderHandler {
	return &OrderHandler{create: create, lifecycle: lifecycle, query: query}
}

// Create godoc
// @Summary      Crear orden de servicio
// @Description  Numera OS-NNNNNN y descuenta el stock de las líneas con producto en una sola transacción.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "Cliente e ítems"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.create.CreateOrder(c.UserContext(), actorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener orden
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.query.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar órdenes
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Límite"  default(50)
// @Success      200    {object}  dto.OrderListResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	out, err := h.query.List(c.UserContext(), c.QueryInt("limit", 50))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de la orden
// @Description  CANCELLED devuelve el stock; salir de CANCELLED lo vuelve a reservar. Mismo estado no cambia nada.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [patch]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateOrderStatusRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.lifecycle.UpdateStatus(c.UserContext(), actorFrom(c), c.Params("id"), in.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Sign godoc
// @Summary      Firmar orden
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.SignOrderRequest  false  "Quién firma"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/sign [post]
func (h *OrderHandler) Sign(c *fiber.Ctx) error {
	var in dto.SignOrderRequest
	if len(c.Body()) > 0 {
		if ok, err := bindJSON(c, &in); !ok {
			return err
		}
	}
	out, err := h.lifecycle.Sign(c.UserContext(), actorFrom(c), c.Params("id"), in.SignedBy)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
