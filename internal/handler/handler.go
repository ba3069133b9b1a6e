package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"github.com/hondana-app/library-service/internal/errs"
	md "github.com/hondana-app/library-service/pkg/middleware"
	"github.com/hondana-app/library-service/pkg/validate"
	_ "github.com/hondana-app/library-service/swagger"
)

type Handler struct {
	catalogSvc CatalogService
	rentalSvc  RentalService
	userSvc    UserService
	statsSvc   StatsService
	enqueuer   Enqueuer
	log        *zap.Logger
}

func New(catalogSvc CatalogService, rentalSvc RentalService, userSvc UserService, statsSvc StatsService, enqueuer Enqueuer, log *zap.Logger) *Handler {
	return &Handler{
		catalogSvc: catalogSvc,
		rentalSvc:  rentalSvc,
		userSvc:    userSvc,
		statsSvc:   statsSvc,
		enqueuer:   enqueuer,
		log:        log,
	}
}

func (h *Handler) NewRouter(jwtKey []byte) *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)
	base.GET("/swagger/*", echoSwagger.WrapHandler)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig()),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
	)

	api.POST("/users/register", h.RegisterUser)
	api.POST("/users/login", h.Login)

	authed := api.Group("", md.JwtAuthentication(jwtKey))
	authed.GET("/users/history", h.History)
	authed.PUT("/users/change", h.ChangeUserName)

	authed.GET("/books/list/:page", h.ListBooks)
	authed.GET("/books/detail/:isbn", h.BookDetail)
	authed.POST("/books/rental", h.Rental)
	authed.PUT("/books/return", h.Return)

	authed.GET("/search/author", h.SearchAuthors)
	authed.GET("/search/publisher", h.SearchPublishers)

	admin := authed.Group("/admin", md.AdminOnly)
	admin.POST("/author", h.RegisterAuthor)
	admin.PUT("/author", h.UpdateAuthor)
	admin.DELETE("/author", h.DeleteAuthor)
	admin.POST("/publisher", h.RegisterPublisher)
	admin.PUT("/publisher", h.UpdatePublisher)
	admin.DELETE("/publisher", h.DeletePublisher)
	admin.POST("/book", h.RegisterBook)
	admin.PUT("/book", h.UpdateBook)
	admin.DELETE("/book", h.DeleteBook)
	admin.GET("/stats", h.Stats)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// httpError maps business errors to status codes. Unexpected store failures
// surface as a generic 500 and are only logged server-side.
func (h *Handler) httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errs.IsConflict(err):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, errs.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	default:
		h.log.Error("internal", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
