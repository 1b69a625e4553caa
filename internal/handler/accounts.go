package handler

import (
	"context"
	"net/http"

	"github.com/haatos/simple-shop/internal/access"
	"github.com/haatos/simple-shop/internal/service"
	"github.com/haatos/simple-shop/internal/store"

	"github.com/labstack/echo/v4"
)

type AccountManager interface {
	ListAccounts(context.Context, *store.Account, string) ([]*store.Account, error)
	ApplyAccountAction(
		ctx context.Context,
		actor *store.Account,
		targetID int64,
		action access.AccountAction,
	) (*store.Account, error)
}

func SetupAccountRoutes(g *echo.Group, accountService AccountManager) {
	h := NewAccountHandler(accountService)
	accountsGroup := g.Group("/accounts", IsAuthenticated)
	accountsGroup.GET("", h.GetAccounts)
	accountsGroup.POST("/:account_id/actions", h.PostAccountAction)
}

type AccountHandler struct {
	accountService AccountManager
}

func NewAccountHandler(accountService AccountManager) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

func (h *AccountHandler) GetAccounts(c echo.Context) error {
	p := new(AccountQueryParams)
	if err := c.Bind(p); err != nil {
		return newError(err, http.StatusBadRequest, "invalid query")
	}
	accounts, err := h.accountService.ListAccounts(
		c.Request().Context(),
		getCtxAccount(c),
		p.Query,
	)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, accounts)
}

func (h *AccountHandler) PostAccountAction(c echo.Context) error {
	p := new(AccountActionParams)
	if err := c.Bind(p); err != nil {
		return newError(err, http.StatusBadRequest, "invalid account action")
	}
	action, err := access.ParseAccountAction(p.Action)
	if err != nil {
		return service.NewValidationError("action", err.Error())
	}
	a, err := h.accountService.ApplyAccountAction(
		c.Request().Context(),
		getCtxAccount(c),
		p.AccountID,
		action,
	)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}
