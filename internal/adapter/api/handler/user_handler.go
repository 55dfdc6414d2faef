package handler

import (
	"github.com/labstack/echo/v4"

	"immomarket/internal/usecase"
	"immomarket/pkg/errors"
	"immomarket/pkg/response"
	"immomarket/pkg/utils"
)

type UserHandler struct {
	userUseCase *usecase.UserUseCase
}

func NewUserHandler(userUseCase *usecase.UserUseCase) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
	}
}

func (h *UserHandler) GetMe(c echo.Context) error {
	uid := c.Get("uid").(string)

	user, err := h.userUseCase.GetProfile(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *UserHandler) UpdateMe(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req usecase.UpdateProfileInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.userUseCase.UpdateProfile(c.Request().Context(), uid, req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *UserHandler) List(c echo.Context) error {
	users := h.userUseCase.ListUsers(c.Request().Context())

	params := utils.GetPaginationParams(c)
	total := int64(len(users))

	start := params.Offset
	if start > len(users) {
		start = len(users)
	}
	end := start + params.PageSize
	if end > len(users) {
		end = len(users)
	}

	return response.Paginated(c, users[start:end], total, params.Page, params.PageSize)
}

func (h *UserHandler) Delete(c echo.Context) error {
	uid := c.Param("id")
	if uid == "" {
		return response.Error(c, errors.BadRequest("User id is required", nil))
	}

	if err := h.userUseCase.DeleteUser(c.Request().Context(), uid); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "User deleted",
	})
}
