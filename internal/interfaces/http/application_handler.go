package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/almazgeobur/etp-api/internal/application/dto"
	"github.com/almazgeobur/etp-api/internal/application/usecase"
)

// ApplicationHandler handles lot applications.
type ApplicationHandler struct {
	uc *usecase.ApplicationUseCase
}

// NewApplicationHandler builds the handler.
func NewApplicationHandler(uc *usecase.ApplicationUseCase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

// Create godoc
// @Summary      Apply to a lot
// @Tags         applications
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateApplicationRequest  true  "lot_id, proposed_price, comment"
// @Success      201   {object}  dto.ApplicationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/v1/applications [post]
func (h *ApplicationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateApplicationRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "malformed request body")
	}
	if in.LotID <= 0 {
		return badRequest(c, "VALIDATION", "lot_id is required")
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMy godoc
// @Summary      List own applications
// @Tags         applications
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ApplicationListResponse
// @Router       /api/v1/applications/my [get]
func (h *ApplicationHandler) ListMy(c *fiber.Ctx) error {
	out, err := h.uc.ListMy(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListByTender godoc
// @Summary      List applications on a tender
// @Tags         applications
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "Tender ID"
// @Success      200  {object}  dto.ApplicationListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/tenders/{id}/applications [get]
func (h *ApplicationHandler) ListByTender(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "MISSING_ID", "id must be a positive integer")
	}
	out, err := h.uc.ListByTender(c.Context(), id, GetUserID(c), GetRole(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Get an application with supplier and tender context
// @Tags         applications
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "Application ID"
// @Success      200  {object}  dto.ApplicationDetailResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/applications/{id} [get]
func (h *ApplicationHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "MISSING_ID", "id must be a positive integer")
	}
	out, err := h.uc.GetDetail(c.Context(), id, GetUserID(c), GetRole(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Review an application
// @Tags         applications
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "Application ID"
// @Param        body  body  dto.UpdateApplicationRequest  true  "Fields to update"
// @Success      200   {object}  dto.ApplicationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/applications/{id} [put]
func (h *ApplicationHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "MISSING_ID", "id must be a positive integer")
	}
	var in dto.UpdateApplicationRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "malformed request body")
	}
	out, err := h.uc.Update(c.Context(), id, GetUserID(c), GetRole(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
