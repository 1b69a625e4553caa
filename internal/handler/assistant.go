package handler

import (
	"context"
	"net/http"

	"github.com/haatos/simple-shop/internal/service"
	"github.com/haatos/simple-shop/internal/store"

	"github.com/labstack/echo/v4"
)

type AssistantServicer interface {
	Support(context.Context, *store.Account, service.SupportParams) (*service.SupportReply, error)
	SiteManager(
		context.Context,
		*store.Account,
		service.SiteManagerParams,
	) (*service.SiteManagerReply, error)
	ChatHistory(context.Context, *store.Account, store.ChatType) ([]*store.ChatMessage, error)
}

func SetupAssistantRoutes(g *echo.Group, assistantService AssistantServicer, guard *InFlightGuard) {
	h := NewAssistantHandler(assistantService)
	aiGroup := g.Group("/ai")
	aiGroup.POST("/support", h.PostSupport, guard.Middleware("support"))
	aiGroup.POST("/site-manager", h.PostSiteManager, IsAuthenticated, guard.Middleware("site-manager"))
	aiGroup.GET("/history", h.GetHistory, IsAuthenticated)
}

type AssistantHandler struct {
	assistantService AssistantServicer
}

func NewAssistantHandler(assistantService AssistantServicer) *AssistantHandler {
	return &AssistantHandler{assistantService: assistantService}
}

func (h *AssistantHandler) PostSupport(c echo.Context) error {
	p := new(service.SupportParams)
	if err := c.Bind(p); err != nil {
		return newError(err, http.StatusBadRequest, "invalid chat message")
	}
	reply, err := h.assistantService.Support(c.Request().Context(), getCtxAccount(c), *p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reply)
}

func (h *AssistantHandler) PostSiteManager(c echo.Context) error {
	p := new(service.SiteManagerParams)
	if err := c.Bind(p); err != nil {
		return newError(err, http.StatusBadRequest, "invalid site manager request")
	}
	reply, err := h.assistantService.SiteManager(c.Request().Context(), getCtxAccount(c), *p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reply)
}

func (h *AssistantHandler) GetHistory(c echo.Context) error {
	p := new(ChatHistoryParams)
	if err := c.Bind(p); err != nil {
		return newError(err, http.StatusBadRequest, "invalid chat type")
	}
	chatType := store.ChatType(p.ChatType)
	switch chatType {
	case "":
		chatType = store.SupportChat
	case store.SupportChat, store.SiteManagerChat:
	default:
		return service.NewValidationError("type", "must be one of: support site_manager")
	}
	messages, err := h.assistantService.ChatHistory(c.Request().Context(), getCtxAccount(c), chatType)
	if err != nil {
		return err
	}
	if messages == nil {
		messages = make([]*store.ChatMessage, 0)
	}
	return c.JSON(http.StatusOK, messages)
}
