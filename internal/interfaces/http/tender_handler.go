package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/almazgeobur/etp-api/internal/application/dto"
	"github.com/almazgeobur/etp-api/internal/application/usecase"
	"github.com/almazgeobur/etp-api/internal/domain/repository"
)

// TenderHandler handles the tender catalogue and lifecycle.
type TenderHandler struct {
	uc *usecase.TenderUseCase
}

// NewTenderHandler builds the handler.
func NewTenderHandler(uc *usecase.TenderUseCase) *TenderHandler {
	return &TenderHandler{uc: uc}
}

// tenderFilterFromQuery collects the optional listing predicates. Bad
// numeric or date values are reported, not silently dropped.
func tenderFilterFromQuery(c *fiber.Ctx) (repository.TenderFilter, error) {
	page := dto.PageQuery{Page: c.QueryInt("page", 1), Size: c.QueryInt("size", 20)}
	page.Normalize()
	f := repository.TenderFilter{
		Status:            c.Query("status"),
		Region:            c.Query("region"),
		OKPDCode:          c.Query("okpd_code"),
		OKVEDCode:         c.Query("okved_code"),
		Search:            c.Query("search"),
		Currency:          c.Query("currency"),
		ProcurementMethod: c.Query("procurement_method"),
		OrganizerINN:      c.Query("organizer_inn"),
		Sort:              c.Query("sort"),
		Page:              page.Page,
		Size:              page.Size,
	}
	if s := c.Query("min_price"); s != "" {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return f, err
		}
		f.MinPrice = &d
	}
	if s := c.Query("max_price"); s != "" {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return f, err
		}
		f.MaxPrice = &d
	}
	if s := c.Query("start_date"); s != "" {
		t, err := parseQueryDate(s)
		if err != nil {
			return f, err
		}
		f.StartDate = t
	}
	if s := c.Query("end_date"); s != "" {
		t, err := parseQueryDate(s)
		if err != nil {
			return f, err
		}
		f.EndDate = t
	}
	return f, nil
}

func parseQueryDate(s string) (*time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// List godoc
// @Summary      List tenders
// @Tags         tenders
// @Security     Bearer
// @Produce      json
// @Param        status      query  string  false  "Status filter"
// @Param        region      query  string  false  "Region substring"
// @Param        search      query  string  false  "Title, description or product substring"
// @Param        min_price   query  number  false  "Minimum initial price"
// @Param        max_price   query  number  false  "Maximum initial price"
// @Param        sort        query  string  false  "Sort key"  default(by_published_desc)
// @Param        page        query  int     false  "Page"  default(1)
// @Param        size        query  int     false  "Page size"  default(20)
// @Success      200  {object}  dto.TenderListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/v1/tenders [get]
func (h *TenderHandler) List(c *fiber.Ctx) error {
	f, err := tenderFilterFromQuery(c)
	if err != nil {
		return badRequest(c, "VALIDATION", "invalid filter value: "+err.Error())
	}
	out, err := h.uc.List(c.Context(), f, GetRole(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListForSupplier godoc
// @Summary      List tenders open for participation
// @Tags         tenders
// @Security     Bearer
// @Produce      json
// @Param        sort  query  string  false  "Sort key"  default(by_deadline_asc)
// @Param        page  query  int     false  "Page"  default(1)
// @Param        size  query  int     false  "Page size"  default(20)
// @Success      200  {object}  dto.SupplierTenderListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/v1/tenders/available [get]
func (h *TenderHandler) ListForSupplier(c *fiber.Ctx) error {
	f, err := tenderFilterFromQuery(c)
	if err != nil {
		return badRequest(c, "VALIDATION", "invalid filter value: "+err.Error())
	}
	out, err := h.uc.ListForSupplier(c.Context(), f, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Get a tender with all its collections
// @Tags         tenders
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "Tender ID"
// @Success      200  {object}  dto.TenderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/tenders/{id} [get]
func (h *TenderHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "MISSING_ID", "id must be a positive integer")
	}
	out, err := h.uc.Get(c.Context(), id, GetRole(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListProducts godoc
// @Summary      List every product of a tender with lot context
// @Tags         tenders
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "Tender ID"
// @Success      200  {object}  dto.TenderProductListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/tenders/{id}/products [get]
func (h *TenderHandler) ListProducts(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "MISSING_ID", "id must be a positive integer")
	}
	out, err := h.uc.ListProducts(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Create a tender
// @Tags         tenders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTenderRequest  true  "Tender with organizers, lots and documents"
// @Success      201   {object}  dto.TenderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/v1/tenders [post]
func (h *TenderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTenderRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "malformed request body")
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Update a tender
// @Tags         tenders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "Tender ID"
// @Param        body  body  dto.UpdateTenderRequest  true  "Fields and collections to update"
// @Success      200   {object}  dto.TenderResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/tenders/{id} [put]
func (h *TenderHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "MISSING_ID", "id must be a positive integer")
	}
	var in dto.UpdateTenderRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "malformed request body")
	}
	out, err := h.uc.Update(c.Context(), id, GetUserID(c), GetRole(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Publish godoc
// @Summary      Publish a draft tender
// @Tags         tenders
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "Tender ID"
// @Success      200  {object}  dto.TenderResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/v1/tenders/{id}/publish [post]
func (h *TenderHandler) Publish(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "MISSING_ID", "id must be a positive integer")
	}
	out, err := h.uc.Publish(c.Context(), id, GetUserID(c), GetRole(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
