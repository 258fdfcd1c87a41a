package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/almazgeobur/etp-api/internal/application/dto"
	"github.com/almazgeobur/etp-api/internal/application/usecase"
)

// FileHandler handles document uploads and downloads.
type FileHandler struct {
	uc *usecase.FileUseCase
}

// NewFileHandler builds the handler.
func NewFileHandler(uc *usecase.FileUseCase) *FileHandler {
	return &FileHandler{uc: uc}
}

// Upload godoc
// @Summary      Upload a document
// @Tags         files
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Document"
// @Success      201   {object}  dto.FileUploadResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      413   {object}  dto.ErrorResponse
// @Router       /api/v1/files/upload [post]
func (h *FileHandler) Upload(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "VALIDATION", "multipart field 'file' is required")
	}
	f, err := header.Open()
	if err != nil {
		return badRequest(c, "VALIDATION", "cannot read uploaded file")
	}
	defer f.Close()

	out, err := h.uc.Upload(f, header.Filename, header.Size)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Download godoc
// @Summary      Download a stored document
// @Tags         files
// @Security     Bearer
// @Produce      application/octet-stream
// @Param        id  path  string  true  "File ID"
// @Success      200  {file}  file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/files/{id}/download [get]
func (h *FileHandler) Download(c *fiber.Ctx) error {
	fileID := c.Params("id")
	if fileID == "" {
		return badRequest(c, "MISSING_ID", "file id is required")
	}
	f, path, err := h.uc.Get(fileID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Download(path, f.FileName)
}

// List godoc
// @Summary      List stored documents
// @Tags         files
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.FileListResponse
// @Router       /api/v1/files [get]
func (h *FileHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Delete a stored document
// @Tags         files
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "File ID"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/files/{id} [delete]
func (h *FileHandler) Delete(c *fiber.Ctx) error {
	fileID := c.Params("id")
	if fileID == "" {
		return badRequest(c, "MISSING_ID", "file id is required")
	}
	if err := h.uc.Delete(fileID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "file deleted"})
}
