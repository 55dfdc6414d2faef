package handler

import (
	"github.com/labstack/echo/v4"

	"immomarket/internal/usecase"
	"immomarket/pkg/errors"
	"immomarket/pkg/response"
	"immomarket/pkg/utils"
)

type PropertyHandler struct {
	propertyUseCase *usecase.PropertyUseCase
}

func NewPropertyHandler(propertyUseCase *usecase.PropertyUseCase) *PropertyHandler {
	return &PropertyHandler{
		propertyUseCase: propertyUseCase,
	}
}

// List is the public feed of approved listings.
func (h *PropertyHandler) List(c echo.Context) error {
	return response.Success(c, h.propertyUseCase.ListApproved(c.Request().Context()))
}

func (h *PropertyHandler) Search(c echo.Context) error {
	query := c.QueryParam("q")
	return response.Success(c, h.propertyUseCase.Search(c.Request().Context(), query))
}

func (h *PropertyHandler) Get(c echo.Context) error {
	viewerID, _ := c.Get("uid").(string)
	isAdmin, _ := c.Get("isAdmin").(bool)

	property, err := h.propertyUseCase.Get(c.Request().Context(), c.Param("id"), viewerID, isAdmin)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, property)
}

func (h *PropertyHandler) ListMine(c echo.Context) error {
	uid := c.Get("uid").(string)
	return response.Success(c, h.propertyUseCase.ListMine(c.Request().Context(), uid))
}

func (h *PropertyHandler) Create(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req usecase.PropertyInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	property, err := h.propertyUseCase.Create(c.Request().Context(), uid, req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, property)
}

func (h *PropertyHandler) Update(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req usecase.PropertyInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	property, err := h.propertyUseCase.Update(c.Request().Context(), c.Param("id"), uid, req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, property)
}

func (h *PropertyHandler) Delete(c echo.Context) error {
	uid := c.Get("uid").(string)
	isAdmin, _ := c.Get("isAdmin").(bool)

	if err := h.propertyUseCase.Delete(c.Request().Context(), c.Param("id"), uid, isAdmin); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Property deleted",
	})
}

// AdminList returns listings in any status, optionally filtered by ?status=,
// paginated with ?page= and ?limit=.
func (h *PropertyHandler) AdminList(c echo.Context) error {
	properties, err := h.propertyUseCase.ListForAdmin(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return response.Error(c, err)
	}

	params := utils.GetPaginationParams(c)
	total := int64(len(properties))

	start := params.Offset
	if start > len(properties) {
		start = len(properties)
	}
	end := start + params.PageSize
	if end > len(properties) {
		end = len(properties)
	}

	return response.Paginated(c, properties[start:end], total, params.Page, params.PageSize)
}

func (h *PropertyHandler) Approve(c echo.Context) error {
	if err := h.propertyUseCase.Approve(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Property approved",
	})
}

func (h *PropertyHandler) Reject(c echo.Context) error {
	if err := h.propertyUseCase.Reject(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Property rejected",
	})
}
