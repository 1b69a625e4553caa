package handler

import (
	"github.com/haatos/simple-shop/internal/store"
	"github.com/labstack/echo/v4"
)

const (
	ctxAccountKey   = "account"
	ctxSessionIDKey = "session_id"
)

func getCtxAccount(c echo.Context) *store.Account {
	if a, ok := c.Get(ctxAccountKey).(*store.Account); ok {
		return a
	}
	return nil
}

func getCtxSessionID(c echo.Context) string {
	if id, ok := c.Get(ctxSessionIDKey).(string); ok {
		return id
	}
	return ""
}
