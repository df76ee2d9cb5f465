package controller

import (
	"cme-be/internal/dto"
	"cme-be/internal/pkg/serverutils"
	"cme-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDataController interface {
	RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler)
	EvaluateSessions(ctx *fiber.Ctx) error
	GetSession(ctx *fiber.Ctx) error
	ListSessions(ctx *fiber.Ctx) error
	GetSessionsByPeriod(ctx *fiber.Ctx) error
	GetFactions(ctx *fiber.Ctx) error
	FindMdbs(ctx *fiber.Ctx) error
}

type dataController struct {
	sessionService   service.ISessionService
	mdbService       service.IMdbService
	factionService   service.IFactionService
	publisherService service.IPublisherService
}

func NewDataController(
	sessionService service.ISessionService,
	mdbService service.IMdbService,
	factionService service.IFactionService,
	publisherService service.IPublisherService,
) IDataController {
	return &dataController{
		sessionService:   sessionService,
		mdbService:       mdbService,
		factionService:   factionService,
		publisherService: publisherService,
	}
}

func (c *dataController) RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler) {
	h := r.Group("/data/v1")

	// Public endpoints
	h.Get("/factions", c.GetFactions)
	h.Get("/mdb", c.FindMdbs)

	// Authenticated endpoints
	h.Post("", jwtMiddleware, c.EvaluateSessions)
	h.Get("/session/:sessionId", jwtMiddleware, c.GetSession)
	h.Get("/sessions", jwtMiddleware, c.ListSessions)
	h.Get("/period/:period", jwtMiddleware, c.GetSessionsByPeriod)
}

// EvaluateSessions queues the ids for background evaluation and returns
// immediately.
func (c *dataController) EvaluateSessions(ctx *fiber.Ctx) error {
	var req dto.EvaluateSessionsRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}

	if err := c.publisherService.QueueEvaluation(ctx.UserContext(), req.Ids); err != nil {
		return err
	}
	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Evaluation queued", dto.EvaluateSessionsResponse{Queued: req.Ids}))
}

func (c *dataController) GetSession(ctx *fiber.Ctx) error {
	res, err := c.sessionService.GetSession(ctx.UserContext(), ctx.Params("sessionId"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Session retrieved", res))
}

func (c *dataController) ListSessions(ctx *fiber.Ctx) error {
	ids, err := c.sessionService.ListSessionIds(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Sessions retrieved", ids))
}

func (c *dataController) GetSessionsByPeriod(ctx *fiber.Ctx) error {
	period, err := ctx.ParamsInt("period")
	if err != nil || period <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid legislative period")
	}

	res, err := c.sessionService.GetSessionsByPeriod(ctx.UserContext(), period)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Sessions retrieved", res))
}

func (c *dataController) GetFactions(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Factions retrieved", c.factionService.Factions()))
}

func (c *dataController) FindMdbs(ctx *fiber.Ctx) error {
	var query dto.MdbQuery
	if err := ctx.QueryParser(&query); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query")
	}
	if err := serverutils.ValidateStruct(&query); err != nil {
		return err
	}

	res, err := c.mdbService.FindMdbs(ctx.UserContext(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Persons retrieved", res))
}
