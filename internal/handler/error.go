package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/haatos/simple-shop/internal/access"
	"github.com/haatos/simple-shop/internal/service"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const internalErrorMessage = "something went terribly wrong"

// ErrorHandler renders every error returned by a handler as a JSON body of
// the form {"error": "..."}.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	status, message := errorResponse(err)
	if status >= http.StatusInternalServerError {
		c.Logger().Errorf(
			"handler internal error %s [%d]: %+v\n",
			c.Request().URL.Path, status, err,
		)
	}
	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, map[string]string{"error": message})
	}
	if err != nil {
		log.Printf("err returning json: %+v\n", err)
	}
}

func errorResponse(err error) (int, string) {
	var httpErr *echo.HTTPError
	var validationErr *service.ValidationError
	var authErr *service.AuthError
	var networkErr *service.NetworkError
	var authzErr *access.AuthorizationError

	switch {
	case errors.As(err, &httpErr):
		if httpErr.Internal != nil && httpErr.Code >= http.StatusInternalServerError {
			return httpErr.Code, internalErrorMessage
		}
		return httpErr.Code, fmt.Sprint(httpErr.Message)
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, validationErr.Error()
	case errors.As(err, &authErr):
		if authErr.Banned {
			return http.StatusForbidden, authErr.Message
		}
		return http.StatusUnauthorized, authErr.Message
	case errors.As(err, &networkErr):
		return http.StatusBadGateway, "AI service error"
	case errors.Is(err, access.ErrNotAuthenticated):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, access.ErrBanned):
		return http.StatusForbidden, err.Error()
	case errors.As(err, &authzErr):
		return http.StatusForbidden, authzErr.Error()
	case errors.Is(err, sql.ErrNoRows):
		return http.StatusNotFound, "not found"
	case isUniqueConstraintError(err):
		return http.StatusConflict, "already exists"
	case isForeignKeyConstraintError(err):
		return http.StatusConflict, "referenced record does not exist"
	default:
		return http.StatusInternalServerError, internalErrorMessage
	}
}

func isUniqueConstraintError(err error) bool {
	var sqErr *sqlite.Error
	if errors.As(err, &sqErr) {
		return sqErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			sqErr.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func isForeignKeyConstraintError(err error) bool {
	var sqErr *sqlite.Error
	if errors.As(err, &sqErr) {
		return sqErr.Code() == sqlite3.SQLITE_CONSTRAINT_TRIGGER ||
			sqErr.Code() == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}

func newError(err error, status int, message string) error {
	e := echo.NewHTTPError(status, message)
	if err != nil {
		e = e.WithInternal(err)
	}
	return e
}
