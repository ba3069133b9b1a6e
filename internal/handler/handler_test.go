package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hondana-app/library-service/internal/errs"
	"github.com/hondana-app/library-service/internal/handler"
	"github.com/hondana-app/library-service/internal/model"
	"github.com/hondana-app/library-service/pkg/auth"
	"github.com/hondana-app/library-service/pkg/validate"

	service_mocks "github.com/hondana-app/library-service/internal/handler/mocks"
)

type enqueuerStub struct {
	topics []string
}

func (s *enqueuerStub) Enqueue(topic string, _ any) error {
	s.topics = append(s.topics, topic)
	return nil
}

func withIdentity(id auth.Identity) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.SetRequest(c.Request().WithContext(auth.SetAuthContext(c.Request().Context(), id)))
			return next(c)
		}
	}
}

func newTestHandler(t *testing.T) (*handler.Handler, *service_mocks.MockCatalogService, *service_mocks.MockRentalService, *enqueuerStub) {
	t.Helper()
	c := gomock.NewController(t)
	t.Cleanup(c.Finish)
	catalogSvc := service_mocks.NewMockCatalogService(c)
	rentalSvc := service_mocks.NewMockRentalService(c)
	userSvc := service_mocks.NewMockUserService(c)
	statsSvc := service_mocks.NewMockStatsService(c)
	queue := &enqueuerStub{}
	log := zap.NewExample().Named("test")
	return handler.New(catalogSvc, rentalSvc, userSvc, statsSvc, queue, log), catalogSvc, rentalSvc, queue
}

func TestHandler_RegisterAuthor(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockCatalogService)

	var tests = []struct {
		name         string
		mockBehavior mockBehavior
		body         string
		response     response
	}{
		{
			name: "ok",
			mockBehavior: func(r *service_mocks.MockCatalogService) {
				r.EXPECT().
					RegisterAuthor(context.Background(), "Natsume Soseki").
					Return(model.NameRef{ID: 1, Name: "Natsume Soseki"}, nil)
			},
			body: `{"name":"Natsume Soseki"}`,
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"id":1,"name":"Natsume Soseki"}`,
			},
		},
		{
			name: "err. duplicate name",
			mockBehavior: func(r *service_mocks.MockCatalogService) {
				r.EXPECT().
					RegisterAuthor(context.Background(), "Natsume Soseki").
					Return(model.NameRef{}, errs.ErrAlreadyExists)
			},
			body: `{"name":"Natsume Soseki"}`,
			response: response{
				expectedCode: http.StatusConflict,
				expectedBody: `{"message":"already exists"}`,
			},
		},
		{
			name:         "err. name required",
			mockBehavior: func(r *service_mocks.MockCatalogService) {},
			body:         `{"name":""}`,
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"Key: 'RegisterNameRequest.Name' Error:Field validation for 'Name' failed on the 'required' tag"}`,
			},
		},
		{
			name: "err. internal",
			mockBehavior: func(r *service_mocks.MockCatalogService) {
				r.EXPECT().
					RegisterAuthor(context.Background(), "Natsume Soseki").
					Return(model.NameRef{}, errors.New("db internal"))
			},
			body: `{"name":"Natsume Soseki"}`,
			response: response{
				expectedCode: http.StatusInternalServerError,
				expectedBody: `{"message":"internal error"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, catalogSvc, _, _ := newTestHandler(t)

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.POST("/admin/author", h.RegisterAuthor)

			r := httptest.NewRequest(http.MethodPost, "/admin/author", strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			tt.mockBehavior(catalogSvc)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_DeleteAuthor(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockCatalogService)

	var tests = []struct {
		name         string
		mockBehavior mockBehavior
		body         string
		response     response
	}{
		{
			name: "ok",
			mockBehavior: func(r *service_mocks.MockCatalogService) {
				r.EXPECT().
					DeleteAuthor(context.Background(), 7).
					Return(nil)
			},
			body: `{"id":7}`,
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"message":"deleted"}`,
			},
		},
		{
			name: "err. author has books",
			mockBehavior: func(r *service_mocks.MockCatalogService) {
				r.EXPECT().
					DeleteAuthor(context.Background(), 7).
					Return(errs.ErrInUse)
			},
			body: `{"id":7}`,
			response: response{
				expectedCode: http.StatusConflict,
				expectedBody: `{"message":"in use by existing books"}`,
			},
		},
		{
			name: "err. already deleted",
			mockBehavior: func(r *service_mocks.MockCatalogService) {
				r.EXPECT().
					DeleteAuthor(context.Background(), 7).
					Return(errs.ErrAlreadyDeleted)
			},
			body: `{"id":7}`,
			response: response{
				expectedCode: http.StatusConflict,
				expectedBody: `{"message":"already deleted"}`,
			},
		},
		{
			name: "err. not found",
			mockBehavior: func(r *service_mocks.MockCatalogService) {
				r.EXPECT().
					DeleteAuthor(context.Background(), 7).
					Return(errs.ErrNotFound)
			},
			body: `{"id":7}`,
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"message":"not found"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, catalogSvc, _, _ := newTestHandler(t)

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.DELETE("/admin/author", h.DeleteAuthor)

			r := httptest.NewRequest(http.MethodDelete, "/admin/author", strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			tt.mockBehavior(catalogSvc)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_ListBooks(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockCatalogService)

	var tests = []struct {
		name         string
		mockBehavior mockBehavior
		page         string
		response     response
	}{
		{
			name: "ok",
			mockBehavior: func(r *service_mocks.MockCatalogService) {
				r.EXPECT().
					ListBooks(gomock.Any(), 1).
					Return(model.ListBooksResponse{
						Current:  1,
						LastPage: 3,
						Books: []model.BookListItem{
							{
								ISBN:                 9784101010137,
								Title:                "Kokoro",
								Author:               model.NameOnly{Name: "Natsume Soseki"},
								PublicationYearMonth: "1914-04",
							},
						},
					}, nil)
			},
			page: "1",
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"current":1,"lastPage":3,"books":[{"isbn":9784101010137,"title":"Kokoro","author":{"name":"Natsume Soseki"},"publication_year_month":"1914-04"}]}`,
			},
		},
		{
			name: "ok. page beyond last is empty",
			mockBehavior: func(r *service_mocks.MockCatalogService) {
				r.EXPECT().
					ListBooks(gomock.Any(), 4).
					Return(model.ListBooksResponse{
						Current:  4,
						LastPage: 3,
						Books:    []model.BookListItem{},
					}, nil)
			},
			page: "4",
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"current":4,"lastPage":3,"books":[]}`,
			},
		},
		{
			name:         "err. page is not a number",
			mockBehavior: func(r *service_mocks.MockCatalogService) {},
			page:         "abc",
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"page is invalid"}`,
			},
		},
		{
			name:         "err. page below one",
			mockBehavior: func(r *service_mocks.MockCatalogService) {},
			page:         "0",
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"page is invalid"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, catalogSvc, _, _ := newTestHandler(t)

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.GET("/books/list/:page", h.ListBooks, withIdentity(auth.Identity{UserID: 1, Name: "reader"}))

			r := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/books/list/%s", tt.page), http.NoBody)
			w := httptest.NewRecorder()

			tt.mockBehavior(catalogSvc)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_Rental(t *testing.T) {
	t.Parallel()
	checkout := time.Date(2024, 9, 1, 10, 0, 0, 0, time.UTC)
	due := checkout.Add(7 * 24 * time.Hour)

	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockRentalService)

	var tests = []struct {
		name          string
		mockBehavior  mockBehavior
		body          string
		identity      *auth.Identity
		response      response
		wantPublished int
	}{
		{
			name: "ok",
			mockBehavior: func(r *service_mocks.MockRentalService) {
				r.EXPECT().
					Checkout(gomock.Any(), int64(9784101010137), 1).
					Return(model.RentalResponse{ID: 10, CheckoutDate: checkout, DueDate: due}, nil)
			},
			body:     `{"book_id":9784101010137}`,
			identity: &auth.Identity{UserID: 1, Name: "reader"},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"id":10,"checkoutDate":"2024-09-01T10:00:00Z","dueDate":"2024-09-08T10:00:00Z"}`,
			},
			wantPublished: 1,
		},
		{
			name: "err. unknown book",
			mockBehavior: func(r *service_mocks.MockRentalService) {
				r.EXPECT().
					Checkout(gomock.Any(), int64(1), 1).
					Return(model.RentalResponse{}, errs.ErrNotFound)
			},
			body:     `{"book_id":1}`,
			identity: &auth.Identity{UserID: 1, Name: "reader"},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"message":"not found"}`,
			},
		},
		{
			name: "err. already rented",
			mockBehavior: func(r *service_mocks.MockRentalService) {
				r.EXPECT().
					Checkout(gomock.Any(), int64(9784101010137), 1).
					Return(model.RentalResponse{}, errs.ErrAlreadyRented)
			},
			body:     `{"book_id":9784101010137}`,
			identity: &auth.Identity{UserID: 1, Name: "reader"},
			response: response{
				expectedCode: http.StatusConflict,
				expectedBody: `{"message":"already rented"}`,
			},
		},
		{
			name:         "err. no session",
			mockBehavior: func(r *service_mocks.MockRentalService) {},
			body:         `{"book_id":9784101010137}`,
			identity:     nil,
			response: response{
				expectedCode: http.StatusUnauthorized,
				expectedBody: `{"message":"no session"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, _, rentalSvc, queue := newTestHandler(t)

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			if tt.identity != nil {
				e.POST("/books/rental", h.Rental, withIdentity(*tt.identity))
			} else {
				e.POST("/books/rental", h.Rental)
			}

			r := httptest.NewRequest(http.MethodPost, "/books/rental", strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			tt.mockBehavior(rentalSvc)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
			require.Len(t, queue.topics, tt.wantPublished)
		})
	}
}

func TestHandler_Return(t *testing.T) {
	t.Parallel()
	returned := time.Date(2024, 9, 5, 18, 30, 0, 0, time.UTC)

	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockRentalService)

	var tests = []struct {
		name          string
		mockBehavior  mockBehavior
		body          string
		response      response
		wantPublished int
	}{
		{
			name: "ok",
			mockBehavior: func(r *service_mocks.MockRentalService) {
				r.EXPECT().
					Return(gomock.Any(), 10, 1).
					Return(model.ReturnResponse{ID: 10, ReturnedDate: returned, BookISBN: 9784101010137}, nil)
			},
			body: `{"id":10}`,
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"id":10,"returnedDate":"2024-09-05T18:30:00Z"}`,
			},
			wantPublished: 1,
		},
		{
			name: "err. someone else's rental",
			mockBehavior: func(r *service_mocks.MockRentalService) {
				r.EXPECT().
					Return(gomock.Any(), 10, 1).
					Return(model.ReturnResponse{}, errs.ErrForbidden)
			},
			body: `{"id":10}`,
			response: response{
				expectedCode: http.StatusForbidden,
				expectedBody: `{"message":"forbidden"}`,
			},
		},
		{
			name: "err. already returned",
			mockBehavior: func(r *service_mocks.MockRentalService) {
				r.EXPECT().
					Return(gomock.Any(), 10, 1).
					Return(model.ReturnResponse{}, errs.ErrAlreadyReturned)
			},
			body: `{"id":10}`,
			response: response{
				expectedCode: http.StatusConflict,
				expectedBody: `{"message":"already returned"}`,
			},
		},
		{
			name: "err. unknown rental",
			mockBehavior: func(r *service_mocks.MockRentalService) {
				r.EXPECT().
					Return(gomock.Any(), 10, 1).
					Return(model.ReturnResponse{}, errs.ErrNotFound)
			},
			body: `{"id":10}`,
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"message":"not found"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, _, rentalSvc, queue := newTestHandler(t)

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.PUT("/books/return", h.Return, withIdentity(auth.Identity{UserID: 1, Name: "reader"}))

			r := httptest.NewRequest(http.MethodPut, "/books/return", strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			tt.mockBehavior(rentalSvc)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
			require.Len(t, queue.topics, tt.wantPublished)
		})
	}
}

func TestHandler_History(t *testing.T) {
	t.Parallel()
	checkout := time.Date(2024, 9, 1, 10, 0, 0, 0, time.UTC)
	due := checkout.Add(7 * 24 * time.Hour)

	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockRentalService)

	var tests = []struct {
		name         string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name: "ok",
			mockBehavior: func(r *service_mocks.MockRentalService) {
				r.EXPECT().
					History(gomock.Any(), 1).
					Return(model.HistoryResponse{
						History: []model.HistoryItem{
							{
								ID:           10,
								Book:         model.HistoryBook{ISBN: 9784101010137, Name: "Kokoro"},
								CheckoutDate: checkout,
								DueDate:      due,
							},
						},
					}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"history":[{"id":10,"book":{"isbn":9784101010137,"name":"Kokoro"},"checkout_date":"2024-09-01T10:00:00Z","due_date":"2024-09-08T10:00:00Z","returned_date":null}]}`,
			},
		},
		{
			name: "err. no rentals yet",
			mockBehavior: func(r *service_mocks.MockRentalService) {
				r.EXPECT().
					History(gomock.Any(), 1).
					Return(model.HistoryResponse{}, errs.ErrNotFound)
			},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"message":"not found"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, _, rentalSvc, _ := newTestHandler(t)

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.GET("/users/history", h.History, withIdentity(auth.Identity{UserID: 1, Name: "reader"}))

			r := httptest.NewRequest(http.MethodGet, "/users/history", http.NoBody)
			w := httptest.NewRecorder()

			tt.mockBehavior(rentalSvc)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}
