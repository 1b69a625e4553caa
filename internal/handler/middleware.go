package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/haatos/simple-shop/internal"
	"github.com/haatos/simple-shop/internal/access"
	"github.com/haatos/simple-shop/internal/service"
	"github.com/haatos/simple-shop/internal/store"
	"github.com/labstack/echo/v4"
)

type SessionServicer interface {
	GetAccountBySessionID(context.Context, string) (*store.Account, error)
	SignOut(context.Context, int64) error
}

type SessionCookieServicer interface {
	GetSessionID(echo.Context) (string, error)
	RemoveSessionCookie(echo.Context)
}

// SessionMiddleware loads the account behind the session token or cookie.
// The account row is read on every request so role and ban changes apply
// immediately. A banned account is signed out and served as anonymous, as is
// an unknown or expired session. Other lookup errors fail the request.
func SessionMiddleware(
	accountService SessionServicer,
	cookieService SessionCookieServicer,
) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sessionID, fromCookie := sessionIDFromRequest(c, cookieService)
			if sessionID == "" {
				return next(c)
			}

			ctx := c.Request().Context()
			a, err := accountService.GetAccountBySessionID(ctx, sessionID)
			if errors.Is(err, sql.ErrNoRows) || errors.Is(err, service.ErrSessionExpired) {
				if fromCookie {
					cookieService.RemoveSessionCookie(c)
				}
				return next(c)
			}
			if err != nil {
				return err
			}

			session := access.Session{State: access.Authenticated}
			if a.Banned {
				signOut, _ := session.Transition(access.BanEvent, true)
				if signOut {
					if err := accountService.SignOut(ctx, a.AccountID); err != nil {
						c.Logger().Errorf("err signing out banned account %d: %+v\n", a.AccountID, err)
					}
					if fromCookie {
						cookieService.RemoveSessionCookie(c)
					}
					return next(c)
				}
			}

			c.Set(ctxAccountKey, a)
			c.Set(ctxSessionIDKey, sessionID)
			return next(c)
		}
	}
}

func sessionIDFromRequest(c echo.Context, cookieService SessionCookieServicer) (string, bool) {
	if token := strings.TrimSpace(c.Request().Header.Get(internal.AuthTokenHeader)); token != "" {
		return token, false
	}
	if cookieService == nil {
		return "", false
	}
	sessionID, err := cookieService.GetSessionID(c)
	if err != nil {
		return "", false
	}
	return sessionID, true
}

func IsAuthenticated(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if getCtxAccount(c) == nil {
			return access.ErrNotAuthenticated
		}
		return next(c)
	}
}

// Authorize rejects the request unless the current subject may perform
// action.
func Authorize(action access.Action) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := access.Authorize(service.SubjectOf(getCtxAccount(c)), action); err != nil {
				return err
			}
			return next(c)
		}
	}
}

func RoleMiddleware(requiredRole access.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			a := getCtxAccount(c)
			if a == nil || a.Banned || int64(a.RoleID) < int64(requiredRole) {
				return newError(nil, http.StatusForbidden, "invalid permissions")
			}
			return next(c)
		}
	}
}

func noContent(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}
