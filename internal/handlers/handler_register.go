package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/cash_register_app/internal/core/ports/services"
	"github.com/SscSPs/cash_register_app/internal/dto"
	"github.com/SscSPs/cash_register_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// registerHandler handles HTTP requests for register sessions.
type registerHandler struct {
	registerService portssvc.RegisterSvcFacade
}

func newRegisterHandler(rs portssvc.RegisterSvcFacade) *registerHandler {
	return &registerHandler{registerService: rs}
}

// RegisterRegisterRoutes registers the register session routes on rg.
func RegisterRegisterRoutes(rg *gin.RouterGroup, registerService portssvc.RegisterSvcFacade, saleService portssvc.SaleSvcFacade) {
	h := newRegisterHandler(registerService)
	sh := newSaleHandler(saleService)

	registers := rg.Group("/registers")
	{
		registers.POST("/open", h.openRegister)
		registers.POST("/close", h.closeRegister)
		registers.GET("/open", h.getOpenRegister)
		registers.GET("/:registerID/summary", h.getRegisterSummary)
		registers.GET("/:registerID/sales", sh.listSalesByRegister)
	}
}

// openRegister godoc
// @Summary Open a register session
// @Description Starts a new session for the tenant. Only one session may be open at a time.
// @Tags registers
// @Accept  json
// @Produce  json
// @Param   X-Tenant-ID header string false "Tenant"
// @Param   register body dto.OpenRegisterRequest true "Opening details"
// @Success 201 {object} dto.RegisterResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "A session is already open"
// @Failure 503 {object} map[string]string "Store timeout"
// @Router /registers/open [post]
func (h *registerHandler) openRegister(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	var req dto.OpenRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	reg, err := h.registerService.OpenRegister(c.Request.Context(), tenant, req)
	if err != nil {
		respondError(c, err, "Failed to open register")
		return
	}

	c.JSON(http.StatusCreated, dto.ToRegisterResponse(reg))
}

// closeRegister godoc
// @Summary Close a register session
// @Description Freezes the session with its closing balance and final sales total.
// @Tags registers
// @Accept  json
// @Produce  json
// @Param   X-Tenant-ID header string false "Tenant"
// @Param   register body dto.CloseRegisterRequest true "Closing details"
// @Success 200 {object} dto.RegisterResponse
// @Failure 400 {object} map[string]string "Invalid input or already closed"
// @Failure 404 {object} map[string]string "Register not found"
// @Failure 409 {object} map[string]string "Concurrent modification, retry"
// @Router /registers/close [post]
func (h *registerHandler) closeRegister(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	var req dto.CloseRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	reg, err := h.registerService.CloseRegister(c.Request.Context(), tenant, req)
	if err != nil {
		respondError(c, err, "Failed to close register")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Register closed", slog.Int64("register_id", reg.RegisterID))
	c.JSON(http.StatusOK, dto.ToRegisterResponse(reg))
}

// getOpenRegister godoc
// @Summary Get the open register session
// @Tags registers
// @Produce  json
// @Param   X-Tenant-ID header string false "Tenant"
// @Success 200 {object} dto.RegisterResponse
// @Failure 404 {object} map[string]string "No open session"
// @Router /registers/open [get]
func (h *registerHandler) getOpenRegister(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}

	reg, err := h.registerService.GetOpenRegister(c.Request.Context(), tenant)
	if err != nil {
		respondError(c, err, "Failed to get open register")
		return
	}

	c.JSON(http.StatusOK, dto.ToRegisterResponse(reg))
}

// getRegisterSummary godoc
// @Summary Get a register summary
// @Description Returns the session with its running sales total recomputed from posted sales.
// @Tags registers
// @Produce  json
// @Param   X-Tenant-ID header string false "Tenant"
// @Param   registerID path int true "Register ID"
// @Success 200 {object} dto.RegisterResponse
// @Failure 400 {object} map[string]string "Invalid ID"
// @Failure 404 {object} map[string]string "Register not found"
// @Router /registers/{registerID}/summary [get]
func (h *registerHandler) getRegisterSummary(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	registerID, err := pathID(c, "registerID")
	if err != nil {
		respondError(c, err, "Invalid register ID")
		return
	}

	reg, err := h.registerService.GetRegisterSummary(c.Request.Context(), tenant, registerID)
	if err != nil {
		respondError(c, err, "Failed to get register summary")
		return
	}

	c.JSON(http.StatusOK, dto.ToRegisterResponse(reg))
}
