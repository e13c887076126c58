package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/openbites/cookbook/pkg/internal/http/exts"
	"github.com/openbites/cookbook/pkg/internal/services"
)

func login(c *fiber.Ctx) error {
	var data struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	user, err := services.AuthAccount(data.Username, data.Password)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}

	token, err := services.IssueToken(user)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"auth_token": token,
	})
}
