package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hondana-app/library-service/internal/model"
	"github.com/hondana-app/library-service/pkg/auth"
)

// RegisterUser godoc
//
//	@Summary	Register a user account
//	@Tags		users
//	@Param		request	body	model.RegisterUserRequest	true	"credentials"
//	@Success	201	{string}	string	"ok"
//	@Failure	409	{object}	echo.HTTPError
//	@Router		/api/v1/users/register [post]
func (h *Handler) RegisterUser(c echo.Context) error {
	var req model.RegisterUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	if err := h.userSvc.RegisterUser(c.Request().Context(), req); err != nil {
		return h.httpError(err)
	}
	return c.String(http.StatusCreated, "ok")
}

func (h *Handler) Login(c echo.Context) error {
	var req model.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	resp, err := h.userSvc.Login(c.Request().Context(), req)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) History(c echo.Context) error {
	caller, ok := auth.FromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "no session")
	}

	resp, err := h.rentalSvc.History(c.Request().Context(), caller.UserID)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) ChangeUserName(c echo.Context) error {
	var req model.ChangeNameRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	caller, ok := auth.FromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "no session")
	}

	if err := h.userSvc.ChangeUserName(c.Request().Context(), caller.UserID, req.Name); err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, model.MessageResponse{Message: "updated"})
}
