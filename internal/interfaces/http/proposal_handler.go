package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/almazgeobur/etp-api/internal/application/dto"
	"github.com/almazgeobur/etp-api/internal/application/usecase"
	"github.com/almazgeobur/etp-api/internal/domain/access"
	"github.com/almazgeobur/etp-api/internal/domain/repository"
)

// ProposalHandler handles supplier proposals and the staff review flow.
type ProposalHandler struct {
	uc *usecase.ProposalUseCase
}

// NewProposalHandler builds the handler.
func NewProposalHandler(uc *usecase.ProposalUseCase) *ProposalHandler {
	return &ProposalHandler{uc: uc}
}

// Create godoc
// @Summary      Create a draft proposal on a tender
// @Tags         proposals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProposalRequest  true  "Proposal with items"
// @Success      201   {object}  dto.ProposalResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/v1/proposals [post]
func (h *ProposalHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProposalRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "malformed request body")
	}
	if in.TenderID <= 0 {
		return badRequest(c, "VALIDATION", "tender_id is required")
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      List proposals
// @Tags         proposals
// @Security     Bearer
// @Produce      json
// @Param        tender_id  query  int     false  "Tender filter (staff)"
// @Param        status     query  string  false  "Status filter (staff)"
// @Success      200  {object}  dto.ProposalListResponse
// @Router       /api/v1/proposals [get]
func (h *ProposalHandler) List(c *fiber.Ctx) error {
	if !access.IsStaff(GetRole(c)) {
		out, err := h.uc.ListMy(c.Context(), GetUserID(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
	f := repository.ProposalFilter{Status: c.Query("status")}
	if id := int64(c.QueryInt("tender_id", 0)); id > 0 {
		f.TenderID = &id
	}
	if id := int64(c.QueryInt("supplier_id", 0)); id > 0 {
		f.SupplierID = &id
	}
	out, err := h.uc.ListAll(c.Context(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Get a proposal with its items
// @Tags         proposals
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "Proposal ID"
// @Success      200  {object}  dto.ProposalResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/proposals/{id} [get]
func (h *ProposalHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "MISSING_ID", "id must be a positive integer")
	}
	out, err := h.uc.Get(c.Context(), id, GetUserID(c), GetRole(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Edit a draft proposal
// @Tags         proposals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "Proposal ID"
// @Param        body  body  dto.UpdateProposalRequest  true  "Fields to update; items replace the stored set"
// @Success      200   {object}  dto.ProposalResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/v1/proposals/{id} [put]
func (h *ProposalHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "MISSING_ID", "id must be a positive integer")
	}
	var in dto.UpdateProposalRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "malformed request body")
	}
	out, err := h.uc.Update(c.Context(), id, GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Submit godoc
// @Summary      Submit a draft proposal for review
// @Tags         proposals
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "Proposal ID"
// @Success      200  {object}  dto.ProposalResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/v1/proposals/{id}/submit [post]
func (h *ProposalHandler) Submit(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "MISSING_ID", "id must be a positive integer")
	}
	out, err := h.uc.Submit(c.Context(), id, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Accept or reject a submitted proposal
// @Tags         proposals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "Proposal ID"
// @Param        body  body  dto.UpdateProposalStatusRequest  true  "accepted or rejected"
// @Success      200   {object}  dto.ProposalResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/v1/proposals/{id}/status [put]
func (h *ProposalHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "MISSING_ID", "id must be a positive integer")
	}
	var in dto.UpdateProposalStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "malformed request body")
	}
	out, err := h.uc.UpdateStatus(c.Context(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
