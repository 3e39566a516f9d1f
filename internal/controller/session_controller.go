package controller

import (
	"zeorag-be/internal/pkg/serverutils"
	"zeorag-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type sessionController struct {
	historyService service.IHistoryService
}

func NewSessionController(historyService service.IHistoryService) ISessionController {
	return &sessionController{
		historyService: historyService,
	}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	r.Get("/sessions", c.List)
	r.Get("/sessions/:session_id", c.History)
	r.Delete("/sessions/:session_id", c.Delete)
}

func (c *sessionController) List(ctx *fiber.Ctx) error {
	res, err := c.historyService.ListSessions(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list sessions", res))
}

func (c *sessionController) History(ctx *fiber.Ctx) error {
	sessionKey := ctx.Params("session_id")

	res, err := c.historyService.GetSessionHistory(ctx.Context(), sessionKey)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get session history", res))
}

func (c *sessionController) Delete(ctx *fiber.Ctx) error {
	sessionKey := ctx.Params("session_id")

	res, err := c.historyService.DeleteSession(ctx.Context(), sessionKey)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete session", res))
}
