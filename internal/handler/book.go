package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/hondana-app/library-service/internal/model"
	"github.com/hondana-app/library-service/pkg/auth"
	"github.com/hondana-app/library-service/pkg/kafka"
)

// ListBooks godoc
//
//	@Summary	Page of non-deleted books, newest publication first
//	@Tags		books
//	@Param		page	path	int	true	"1-based page number"
//	@Success	200	{object}	model.ListBooksResponse
//	@Router		/api/v1/books/list/{page} [get]
func (h *Handler) ListBooks(c echo.Context) error {
	page, err := strconv.Atoi(c.Param("page"))
	if err != nil || page < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, errors.New("page is invalid"))
	}

	resp, err := h.catalogSvc.ListBooks(c.Request().Context(), page)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) BookDetail(c echo.Context) error {
	isbn, err := strconv.ParseInt(c.Param("isbn"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.New("isbn is invalid"))
	}

	resp, err := h.catalogSvc.BookDetail(c.Request().Context(), isbn)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, resp)
}

// Rental godoc
//
//	@Summary	Check out a book
//	@Tags		books
//	@Param		request	body	model.RentalRequest	true	"book isbn"
//	@Success	200	{object}	model.RentalResponse
//	@Failure	404	{object}	echo.HTTPError
//	@Failure	409	{object}	echo.HTTPError
//	@Router		/api/v1/books/rental [post]
func (h *Handler) Rental(c echo.Context) error {
	var req model.RentalRequest
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

	resp, err := h.rentalSvc.Checkout(c.Request().Context(), req.BookID, caller.UserID)
	if err != nil {
		return h.httpError(err)
	}

	h.publishRentalEvent(model.RentalEvent{
		EventUID: uuid.NewString(),
		Type:     model.EventCheckout,
		BookISBN: req.BookID,
		UserID:   caller.UserID,
		At:       resp.CheckoutDate,
	})

	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) Return(c echo.Context) error {
	var req model.ReturnRequest
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

	resp, err := h.rentalSvc.Return(c.Request().Context(), req.ID, caller.UserID)
	if err != nil {
		return h.httpError(err)
	}

	h.publishRentalEvent(model.RentalEvent{
		EventUID: uuid.NewString(),
		Type:     model.EventReturn,
		BookISBN: resp.BookISBN,
		UserID:   caller.UserID,
		At:       resp.ReturnedDate,
	})

	return c.JSON(http.StatusOK, resp)
}

// publishRentalEvent is fire-and-forget: the stats stream must never fail a
// rental request.
func (h *Handler) publishRentalEvent(event model.RentalEvent) {
	if err := h.enqueuer.Enqueue(kafka.RentalTopic, event); err != nil {
		h.log.Warn("publish rental event", zap.String("event_uid", event.EventUID), zap.Error(err))
	}
}
