package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hondana-app/library-service/internal/model"
)

// RegisterAuthor godoc
//
//	@Summary	Register an author
//	@Tags		admin
//	@Param		request	body	model.RegisterNameRequest	true	"author name"
//	@Success	200	{object}	model.NameRef
//	@Failure	409	{object}	echo.HTTPError
//	@Router		/api/v1/admin/author [post]
func (h *Handler) RegisterAuthor(c echo.Context) error {
	var req model.RegisterNameRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	ref, err := h.catalogSvc.RegisterAuthor(c.Request().Context(), req.Name)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, ref)
}

func (h *Handler) UpdateAuthor(c echo.Context) error {
	var req model.UpdateNameRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	ref, err := h.catalogSvc.UpdateAuthor(c.Request().Context(), req.ID, req.Name)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, ref)
}

func (h *Handler) DeleteAuthor(c echo.Context) error {
	var req model.DeleteByIDRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	if err := h.catalogSvc.DeleteAuthor(c.Request().Context(), req.ID); err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, model.MessageResponse{Message: "deleted"})
}

func (h *Handler) RegisterPublisher(c echo.Context) error {
	var req model.RegisterNameRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	ref, err := h.catalogSvc.RegisterPublisher(c.Request().Context(), req.Name)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, ref)
}

func (h *Handler) UpdatePublisher(c echo.Context) error {
	var req model.UpdateNameRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	ref, err := h.catalogSvc.UpdatePublisher(c.Request().Context(), req.ID, req.Name)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, ref)
}

func (h *Handler) DeletePublisher(c echo.Context) error {
	var req model.DeleteByIDRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	if err := h.catalogSvc.DeletePublisher(c.Request().Context(), req.ID); err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, model.MessageResponse{Message: "deleted"})
}

// RegisterBook godoc
//
//	@Summary	Register a book
//	@Tags		admin
//	@Param		request	body	model.BookRequest	true	"book"
//	@Success	200	{object}	model.MessageResponse
//	@Failure	400	{object}	echo.HTTPError
//	@Failure	409	{object}	echo.HTTPError
//	@Router		/api/v1/admin/book [post]
func (h *Handler) RegisterBook(c echo.Context) error {
	var req model.BookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	if err := h.catalogSvc.RegisterBook(c.Request().Context(), req); err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, model.MessageResponse{Message: "registered"})
}

func (h *Handler) UpdateBook(c echo.Context) error {
	var req model.BookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	if err := h.catalogSvc.UpdateBook(c.Request().Context(), req); err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, model.MessageResponse{Message: "updated"})
}

func (h *Handler) DeleteBook(c echo.Context) error {
	var req model.DeleteBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	if err := h.catalogSvc.DeleteBook(c.Request().Context(), req.ISBN); err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, model.MessageResponse{Message: "deleted"})
}

func (h *Handler) Stats(c echo.Context) error {
	stats, err := h.statsSvc.RentalStats(c.Request().Context())
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, stats)
}
