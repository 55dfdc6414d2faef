package handler

import (
	"github.com/labstack/echo/v4"

	"immomarket/internal/usecase"
	"immomarket/pkg/errors"
	"immomarket/pkg/response"
)

type FavoriteHandler struct {
	favoriteUseCase *usecase.FavoriteUseCase
}

func NewFavoriteHandler(favoriteUseCase *usecase.FavoriteUseCase) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteUseCase: favoriteUseCase,
	}
}

func (h *FavoriteHandler) List(c echo.Context) error {
	uid := c.Get("uid").(string)
	return response.Success(c, h.favoriteUseCase.List(c.Request().Context(), uid))
}

func (h *FavoriteHandler) Add(c echo.Context) error {
	uid := c.Get("uid").(string)
	propertyID := c.Param("propertyId")
	if propertyID == "" {
		return response.Error(c, errors.BadRequest("Property id is required", nil))
	}

	if err := h.favoriteUseCase.Add(c.Request().Context(), uid, propertyID); err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, map[string]string{
		"message": "Added to favorites",
	})
}

func (h *FavoriteHandler) Remove(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.favoriteUseCase.Remove(c.Request().Context(), uid, c.Param("propertyId")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Removed from favorites",
	})
}

func (h *FavoriteHandler) Status(c echo.Context) error {
	uid := c.Get("uid").(string)

	isFavorite, err := h.favoriteUseCase.IsFavorite(c.Request().Context(), uid, c.Param("propertyId"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]bool{
		"is_favorite": isFavorite,
	})
}

func (h *FavoriteHandler) Toggle(c echo.Context) error {
	uid := c.Get("uid").(string)

	isFavorite, err := h.favoriteUseCase.Toggle(c.Request().Context(), uid, c.Param("propertyId"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]bool{
		"is_favorite": isFavorite,
	})
}
