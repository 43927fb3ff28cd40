package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/cash_register_app/internal/core/ports/services"
	"github.com/SscSPs/cash_register_app/internal/dto"
	"github.com/SscSPs/cash_register_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// saleHandler handles HTTP requests for sales.
type saleHandler struct {
	saleService portssvc.SaleSvcFacade
}

func newSaleHandler(ss portssvc.SaleSvcFacade) *saleHandler {
	return &saleHandler{saleService: ss}
}

// RegisterSaleRoutes registers the sale routes on rg.
func RegisterSaleRoutes(rg *gin.RouterGroup, saleService portssvc.SaleSvcFacade) {
	h := newSaleHandler(saleService)

	sales := rg.Group("/sales")
	{
		sales.POST("", h.postSale)
		sales.GET("/:saleID", h.getSale)
	}
}

// postSale godoc
// @Summary Post a sale
// @Description Decrements stock, records the sale and adds it to the open register's total in one unit.
// @Tags sales
// @Accept  json
// @Produce  json
// @Param   X-Tenant-ID header string false "Tenant"
// @Param   sale body dto.PostSaleRequest true "Sale details"
// @Success 201 {object} dto.SaleResponse
// @Failure 400 {object} map[string]string "Invalid input, insufficient stock or closed register"
// @Failure 404 {object} map[string]string "Register, product, operator or customer not found"
// @Failure 409 {object} map[string]string "Concurrent modification, retry"
// @Failure 503 {object} map[string]string "Store timeout"
// @Router /sales [post]
func (h *saleHandler) postSale(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	var req dto.PostSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	sale, err := h.saleService.PostSale(c.Request.Context(), tenant, req)
	if err != nil {
		respondError(c, err, "Failed to post sale")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Sale posted",
		slog.Int64("sale_id", sale.SaleID),
		slog.Int64("register_id", sale.RegisterID),
		slog.String("final_amount", sale.FinalAmount.StringFixed(2)))
	c.JSON(http.StatusCreated, dto.ToSaleResponse(sale))
}

// getSale godoc
// @Summary Get a sale
// @Tags sales
// @Produce  json
// @Param   X-Tenant-ID header string false "Tenant"
// @Param   saleID path int true "Sale ID"
// @Success 200 {object} dto.SaleResponse
// @Failure 404 {object} map[string]string "Sale not found"
// @Router /sales/{saleID} [get]
func (h *saleHandler) getSale(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	saleID, err := pathID(c, "saleID")
	if err != nil {
		respondError(c, err, "Invalid sale ID")
		return
	}

	sale, err := h.saleService.GetSaleByID(c.Request.Context(), tenant, saleID)
	if err != nil {
		respondError(c, err, "Failed to get sale")
		return
	}

	c.JSON(http.StatusOK, dto.ToSaleResponse(sale))
}

// listSalesByRegister godoc
// @Summary List a register's sales
// @Tags sales
// @Produce  json
// @Param   X-Tenant-ID header string false "Tenant"
// @Param   registerID path int true "Register ID"
// @Param   limit query int false "Page size" minimum(1) maximum(200) default(50)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListSalesResponse
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Failure 404 {object} map[string]string "Register not found"
// @Router /registers/{registerID}/sales [get]
func (h *saleHandler) listSalesByRegister(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	registerID, err := pathID(c, "registerID")
	if err != nil {
		respondError(c, err, "Invalid register ID")
		return
	}
	var params dto.ListSalesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	page, err := h.saleService.ListSalesByRegister(c.Request.Context(), tenant, registerID, params)
	if err != nil {
		respondError(c, err, "Failed to list sales")
		return
	}

	c.JSON(http.StatusOK, page)
}
