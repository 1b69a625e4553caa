package handler

import (
	"context"
	"net/http"

	"github.com/haatos/simple-shop/internal/access"
	"github.com/haatos/simple-shop/internal/service"
	"github.com/haatos/simple-shop/internal/store"

	"github.com/labstack/echo/v4"
)

type AuthCookieServicer interface {
	SetSessionCookie(echo.Context, *store.AuthSession) error
	RemoveSessionCookie(echo.Context)
}

type AccountAuthServicer interface {
	Register(context.Context, service.RegisterParams) (*store.Account, error)
	Authenticate(context.Context, service.LoginParams) (*store.Account, error)
	CreateAuthSession(context.Context, int64) (*store.AuthSession, error)
	Logout(context.Context, string) error
	UpdateProfile(context.Context, *store.Account, service.ProfileParams) (*store.Account, error)
	ClaimJuniorAdmin(context.Context, *store.Account, string) (*store.Account, error)
}

func SetupAuthRoutes(
	g *echo.Group,
	accountService AccountAuthServicer,
	cookieService AuthCookieServicer,
	guard *InFlightGuard,
) {
	h := NewAuthHandler(accountService, cookieService)
	g.POST("/auth/register", h.PostRegister, guard.Middleware("register"))
	g.POST("/auth/login", h.PostLogin, guard.Middleware("login"))
	g.POST("/auth/logout", h.PostLogout)
	g.GET("/auth/session", h.GetSession)
	g.PATCH("/profile", h.PatchProfile, IsAuthenticated)
	g.POST("/admin-key", h.PostAdminKey, IsAuthenticated)
}

type AuthHandler struct {
	accountService AccountAuthServicer
	cookieService  AuthCookieServicer
}

func NewAuthHandler(
	accountService AccountAuthServicer,
	cookieService AuthCookieServicer,
) *AuthHandler {
	return &AuthHandler{accountService, cookieService}
}

type LoginResponse struct {
	Token   string         `json:"token"`
	Name    string         `json:"name"`
	Email   string         `json:"email"`
	Role    access.Role    `json:"role"`
	Account *store.Account `json:"account"`
}

type SessionResponse struct {
	Authenticated bool           `json:"authenticated"`
	Account       *store.Account `json:"account,omitempty"`
	Role          *access.Role   `json:"role,omitempty"`
	Banned        bool           `json:"banned"`
	State         access.State   `json:"state"`
	Capabilities  []string       `json:"capabilities"`
}

func (h *AuthHandler) PostRegister(c echo.Context) error {
	p := new(service.RegisterParams)
	if err := c.Bind(p); err != nil {
		return newError(err, http.StatusBadRequest, "invalid registration data")
	}
	if _, err := h.accountService.Register(c.Request().Context(), *p); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]string{"message": "account created"})
}

func (h *AuthHandler) PostLogin(c echo.Context) error {
	p := new(service.LoginParams)
	if err := c.Bind(p); err != nil {
		return newError(err, http.StatusBadRequest, "invalid login data")
	}

	a, err := h.accountService.Authenticate(c.Request().Context(), *p)
	if err != nil {
		return err
	}

	s, err := h.accountService.CreateAuthSession(c.Request().Context(), a.AccountID)
	if err != nil {
		return newError(err, http.StatusInternalServerError, "unable to create session")
	}

	if err := h.cookieService.SetSessionCookie(c, s); err != nil {
		return newError(err, http.StatusInternalServerError, "unable to set session cookie")
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Token:   s.AuthSessionID,
		Name:    a.Name,
		Email:   a.Email,
		Role:    a.RoleID,
		Account: a,
	})
}

func (h *AuthHandler) PostLogout(c echo.Context) error {
	if sessionID := getCtxSessionID(c); sessionID != "" {
		if err := h.accountService.Logout(c.Request().Context(), sessionID); err != nil {
			return err
		}
	}
	h.cookieService.RemoveSessionCookie(c)
	return noContent(c)
}

func (h *AuthHandler) GetSession(c echo.Context) error {
	a := getCtxAccount(c)
	subject := service.SubjectOf(a)
	res := SessionResponse{
		Authenticated: subject.Authenticated,
		Account:       a,
		Banned:        subject.Banned,
		State:         access.StateOf(subject.Authenticated, subject.Banned),
		Capabilities:  access.Capabilities(subject),
	}
	if a != nil {
		res.Role = &a.RoleID
	}
	return c.JSON(http.StatusOK, res)
}

func (h *AuthHandler) PatchProfile(c echo.Context) error {
	p := new(service.ProfileParams)
	if err := c.Bind(p); err != nil {
		return newError(err, http.StatusBadRequest, "invalid profile data")
	}
	a, err := h.accountService.UpdateProfile(c.Request().Context(), getCtxAccount(c), *p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

func (h *AuthHandler) PostAdminKey(c echo.Context) error {
	p := new(AdminKeyParams)
	if err := c.Bind(p); err != nil {
		return newError(err, http.StatusBadRequest, "invalid admin key data")
	}
	a, err := h.accountService.ClaimJuniorAdmin(c.Request().Context(), getCtxAccount(c), p.Key)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}
