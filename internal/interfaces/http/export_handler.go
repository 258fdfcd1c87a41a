package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/almazgeobur/etp-api/internal/application/usecase"
)

// ExportHandler serves the generated tender and application downloads.
type ExportHandler struct {
	uc *usecase.ExportUseCase
}

// NewExportHandler builds the handler.
func NewExportHandler(uc *usecase.ExportUseCase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

func sendFile(c *fiber.Ctx, f *usecase.ExportFile) error {
	c.Set(fiber.HeaderContentType, f.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+f.FileName+`"`)
	return c.Send(f.Content)
}

// ExportTender godoc
// @Summary      Export one tender as a workbook
// @Tags         export
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id  path  int  true  "Tender ID"
// @Success      200  {file}  file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/export/tender/{id} [get]
func (h *ExportHandler) ExportTender(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "MISSING_ID", "id must be a positive integer")
	}
	out, err := h.uc.ExportTender(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, out)
}

// ExportTenders godoc
// @Summary      Export tenders matching a filter as a listing workbook
// @Tags         export
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        status  query  string  false  "Status filter"
// @Success      200  {file}  file
// @Router       /api/v1/export/tenders [get]
func (h *ExportHandler) ExportTenders(c *fiber.Ctx) error {
	f, err := tenderFilterFromQuery(c)
	if err != nil {
		return badRequest(c, "VALIDATION", "invalid filter value: "+err.Error())
	}
	out, err := h.uc.ExportTenders(c.Context(), f, GetUserID(c), GetRole(c))
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, out)
}

// ExportApplications godoc
// @Summary      Export the applications of a tender
// @Tags         export
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id  path  int  true  "Tender ID"
// @Success      200  {file}  file
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/export/tender/{id}/applications [get]
func (h *ExportHandler) ExportApplications(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "MISSING_ID", "id must be a positive integer")
	}
	out, err := h.uc.ExportApplications(c.Context(), id, GetUserID(c), GetRole(c))
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, out)
}

// ExportTenderPDF godoc
// @Summary      Export the tender card as a PDF
// @Tags         export
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  int  true  "Tender ID"
// @Success      200  {file}  file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/export/tender/{id}/pdf [get]
func (h *ExportHandler) ExportTenderPDF(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "MISSING_ID", "id must be a positive integer")
	}
	out, err := h.uc.ExportTenderPDF(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, out)
}
