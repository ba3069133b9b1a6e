package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/hondana-app/library-service/internal/model"
)

func (h *Handler) SearchAuthors(c echo.Context) error {
	keyword := c.QueryParam("keyword")
	if keyword == "" {
		return echo.NewHTTPError(http.StatusBadRequest, errors.New("keyword is required"))
	}

	authors, err := h.catalogSvc.SearchAuthors(c.Request().Context(), keyword)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, model.SearchAuthorsResponse{Authors: authors})
}

func (h *Handler) SearchPublishers(c echo.Context) error {
	keyword := c.QueryParam("keyword")
	if keyword == "" {
		return echo.NewHTTPError(http.StatusBadRequest, errors.New("keyword is required"))
	}

	publishers, err := h.catalogSvc.SearchPublishers(c.Request().Context(), keyword)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, model.SearchPublishersResponse{Publishers: publishers})
}
