package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Backoffice-api/internal/application/analytics"
	"github.com/jhoicas/Backoffice-api/internal/application/dto"
	"github.com/jhoicas/Backoffice-api/internal/application/sales"
)

// SaleHandler ventas de mostrador y reporte semanal.
type SaleHandler struct {
	create *sales.CreateSaleUseCase
	query  *sales.QueryUseCase
	weekly *analytics.WeeklySalesUseCase
	now    func() time.Time
}

// NewSaleHandler construye el handler.
func NewSaleHandler(create *sales.CreateSaleUseCase, query *sales.QueryUseCase, weekly *analytics.WeeklySalesUseCase) *SaleHandler {
	return &SaleHandler{create: create, query: query, weekly: weekly, now: time.Now}
}

// Create godoc
// @Summary      Registrar venta
// @Description  Numera V-NNNNNN y descuenta el stock de cada producto en una sola transacción.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "Cliente opcional e ítems"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.create.CreateSale(c.UserContext(), actorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener venta
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.query.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar ventas
// @Description  Más recientes primero, máximo 200. end incluye el día completo.
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        start  query  string  false  "Desde (YYYY-MM-DD)"
// @Param        end    query  string  false  "Hasta (YYYY-MM-DD)"
// @Success      200    {object}  dto.SaleListResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	var in dto.SaleListRequest
	if err := c.QueryParser(&in); err != nil {
		return badRequest(c, "INVALID_PARAMS", "parámetros de consulta inválidos")
	}
	out, err := h.query.List(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ByWeek godoc
// @Summary      Ventas por semana
// @Description  Semanas lunes-domingo; siempre devuelve `weeks` buckets (1-12, default 6), vacías incluidas.
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        weeks            query   int     false  "Cantidad de semanas"  default(6)
// @Param        Accept-Language  header  string  false  "es, pt-BR o en"
// @Success      200  {array}  dto.WeeklySalesBucketDTO
// @Router       /api/sales/by-week [get]
func (h *SaleHandler) ByWeek(c *fiber.Ctx) error {
	weeks := analytics.ParseWeeks(c.Query("weeks"))
	out, err := h.weekly.WeeklySales(c.UserContext(), weeks, h.now(), c.Get(fiber.HeaderAcceptLanguage))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
