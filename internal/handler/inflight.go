package handler

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
)

func NewInFlightGuard() *InFlightGuard {
	return &InFlightGuard{
		keys: make(map[string]struct{}),
	}
}

// InFlightGuard refuses a request while an identical one from the same
// caller is still being served.
type InFlightGuard struct {
	m    sync.Mutex
	keys map[string]struct{}
}

func (g *InFlightGuard) acquire(key string) bool {
	g.m.Lock()
	defer g.m.Unlock()
	if _, ok := g.keys[key]; ok {
		return false
	}
	g.keys[key] = struct{}{}
	return true
}

func (g *InFlightGuard) release(key string) {
	g.m.Lock()
	defer g.m.Unlock()
	delete(g.keys, key)
}

// Middleware keys requests by name and the caller, the account when signed
// in or the client IP otherwise.
func (g *InFlightGuard) Middleware(name string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := fmt.Sprintf("%s:ip:%s", name, c.RealIP())
			if a := getCtxAccount(c); a != nil {
				key = fmt.Sprintf("%s:account:%d", name, a.AccountID)
			}
			if !g.acquire(key) {
				return echo.NewHTTPError(http.StatusConflict, "request already in progress")
			}
			defer g.release(key)
			return next(c)
		}
	}
}
