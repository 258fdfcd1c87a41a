package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/almazgeobur/etp-api/internal/application/dto"
	"github.com/almazgeobur/etp-api/internal/application/usecase"
)

// AnalyticsHandler handles the staff analytics endpoints.
type AnalyticsHandler struct {
	uc *usecase.AnalyticsUseCase
}

// NewAnalyticsHandler builds the handler.
func NewAnalyticsHandler(uc *usecase.AnalyticsUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// TendersSummary godoc
// @Summary      Global tender and proposal snapshot
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TendersSummaryResponse
// @Router       /api/v1/analytics/tenders-summary [get]
func (h *AnalyticsHandler) TendersSummary(c *fiber.Ctx) error {
	out, err := h.uc.TendersSummary(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SupplierPerformance godoc
// @Summary      Supplier leaderboard
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        sort_by     query  string  false  "proposals_count | avg_price | success_rate"  default(proposals_count)
// @Param        sort_order  query  string  false  "asc | desc"  default(desc)
// @Param        page        query  int     false  "Page"  default(1)
// @Param        size        query  int     false  "Page size"  default(20)
// @Success      200  {object}  dto.SupplierPerformanceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/v1/analytics/supplier-performance [get]
func (h *AnalyticsHandler) SupplierPerformance(c *fiber.Ctx) error {
	page := dto.PageQuery{Page: c.QueryInt("page", 1), Size: c.QueryInt("size", 20)}
	out, err := h.uc.SupplierPerformance(c.Context(), c.Query("sort_by"), c.Query("sort_order"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// TenderProposals godoc
// @Summary      Compare every proposal on a tender
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "Tender ID"
// @Success      200  {object}  dto.TenderProposalsAnalyticsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/analytics/tender/{id}/proposals [get]
func (h *AnalyticsHandler) TenderProposals(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "MISSING_ID", "id must be a positive integer")
	}
	out, err := h.uc.TenderProposals(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ProductPriceAnalysis godoc
// @Summary      Price statistics per product across proposals
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        product_name  query  string  false  "Product name substring"
// @Param        limit         query  int     false  "Maximum products"  default(50)
// @Success      200  {object}  dto.ProductPriceAnalysisResponse
// @Router       /api/v1/analytics/product-price-analysis [get]
func (h *AnalyticsHandler) ProductPriceAnalysis(c *fiber.Ctx) error {
	out, err := h.uc.ProductPriceAnalysis(c.Context(), c.Query("product_name"), c.QueryInt("limit", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SupplierStatistics godoc
// @Summary      Aggregated proposal history of one supplier
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "Supplier user ID"
// @Success      200  {object}  dto.SupplierStatisticsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/analytics/supplier/{id}/statistics [get]
func (h *AnalyticsHandler) SupplierStatistics(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "MISSING_ID", "id must be a positive integer")
	}
	out, err := h.uc.SupplierStatistics(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
