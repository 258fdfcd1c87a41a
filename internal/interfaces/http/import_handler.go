package http

import (
	"context"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/almazgeobur/etp-api/internal/application/dto"
	"github.com/almazgeobur/etp-api/internal/application/usecase"
)

// ImportHandler accepts uploaded spreadsheets with tender data.
type ImportHandler struct {
	uc *usecase.ImportUseCase
}

// NewImportHandler builds the handler.
func NewImportHandler(uc *usecase.ImportUseCase) *ImportHandler {
	return &ImportHandler{uc: uc}
}

func (h *ImportHandler) withUploadedFile(c *fiber.Ctx, parse func(ctx context.Context, callerID int64, r io.Reader) (*dto.ImportResultResponse, error)) error {
	header, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "VALIDATION", "multipart field 'file' is required")
	}
	var f multipart.File
	if f, err = header.Open(); err != nil {
		return badRequest(c, "VALIDATION", "cannot read uploaded file")
	}
	defer f.Close()

	out, err := parse(c.Context(), GetUserID(c), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ImportTender godoc
// @Summary      Import one tender from a multi-sheet workbook
// @Tags         import
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Workbook (.xlsx)"
// @Success      201   {object}  dto.ImportResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/v1/import/tender [post]
func (h *ImportHandler) ImportTender(c *fiber.Ctx) error {
	return h.withUploadedFile(c, h.uc.ImportTenderXLSX)
}

// ImportTenders godoc
// @Summary      Import many tenders from a listing workbook
// @Tags         import
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Workbook (.xlsx)"
// @Success      201   {object}  dto.ImportResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/v1/import/tenders [post]
func (h *ImportHandler) ImportTenders(c *fiber.Ctx) error {
	return h.withUploadedFile(c, h.uc.ImportTendersXLSX)
}

// ImportTendersCSV godoc
// @Summary      Import tenders from a CSV file
// @Tags         import
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "CSV file"
// @Success      201   {object}  dto.ImportResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/v1/import/tenders-csv [post]
func (h *ImportHandler) ImportTendersCSV(c *fiber.Ctx) error {
	return h.withUploadedFile(c, h.uc.ImportTendersCSV)
}
