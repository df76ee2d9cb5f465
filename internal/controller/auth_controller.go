package controller

import (
	"context"

	"cme-be/internal/pkg/serverutils"
	"cme-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
)

// clientNameLocal holds the client name accepted by the basic auth check.
const clientNameLocal = "client_name"

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	Token(ctx *fiber.Ctx) error
}

type authController struct {
	service service.IAuthService
}

func NewAuthController(service service.IAuthService) IAuthController {
	return &authController{service: service}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth/v1")
	h.Post("/token", c.clientCredentials(), c.Token)
}

func (c *authController) clientCredentials() fiber.Handler {
	return basicauth.New(basicauth.Config{
		Realm:           "cme",
		ContextUsername: clientNameLocal,
		Authorizer: func(name, secret string) bool {
			return c.service.Authenticate(context.Background(), name, secret) == nil
		},
		Unauthorized: func(ctx *fiber.Ctx) error {
			ctx.Set(fiber.HeaderWWWAuthenticate, `Basic realm="cme"`)
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid client credentials")
		},
	})
}

// Token exchanges HTTP basic client credentials for a bearer token.
func (c *authController) Token(ctx *fiber.Ctx) error {
	name, _ := ctx.Locals(clientNameLocal).(string)
	res, err := c.service.IssueToken(ctx.UserContext(), name)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Token issued", res))
}
