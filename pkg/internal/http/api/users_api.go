package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/openbites/cookbook/pkg/internal/http/exts"
	"github.com/openbites/cookbook/pkg/internal/models"
	"github.com/openbites/cookbook/pkg/internal/services"
	"github.com/samber/lo"
)

func getMe(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	return c.JSON(user)
}

func deleteMe(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	if err := services.DeleteAccount(user); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func getUser(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("userId", 0)

	account, err := services.GetAccount(uint(id))
	if err != nil {
		return err
	}

	if user, authenticated := c.Locals("user").(models.Account); authenticated {
		if err := services.AttachAccountRelationStatus(&user, &account); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(account)
}

func listUser(c *fiber.Ctx) error {
	take := c.QueryInt("take", 10)
	offset := c.QueryInt("offset", 0)

	count, err := services.CountAccount()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	items, err := services.ListAccount(take, offset)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if user, authenticated := c.Locals("user").(models.Account); authenticated {
		refs := lo.Map(items, func(item models.Account, index int) *models.Account {
			return &items[index]
		})
		if err := services.AttachAccountRelationStatus(&user, refs...); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(fiber.Map{
		"count": count,
		"data":  items,
	})
}

func createUser(c *fiber.Ctx) error {
	var data struct {
		Username  string `json:"username" validate:"required,max=150"`
		Email     string `json:"email" validate:"required,email,max=254"`
		FirstName string `json:"first_name" validate:"required,max=150"`
		LastName  string `json:"last_name" validate:"required,max=150"`
		Password  string `json:"password" validate:"required,min=8"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	account, err := services.NewAccount(data.Username, data.Email, data.FirstName, data.LastName, data.Password)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(account)
}

func listSubscription(c *fiber.Ctx) error {
	take := c.QueryInt("take", 10)
	offset := c.QueryInt("offset", 0)
	recipesLimit := c.QueryInt("recipes_limit", 0)

	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	count, err := services.CountSubscription(user)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	items, err := services.ListSubscription(user, take, offset)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if recipesLimit > 0 {
		for idx := range items {
			if len(items[idx].Recipes) > recipesLimit {
				items[idx].Recipes = items[idx].Recipes[:recipesLimit]
			}
		}
	}

	return c.JSON(fiber.Map{
		"count": count,
		"data":  items,
	})
}

func subscribeToUser(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)
	id, _ := c.ParamsInt("userId", 0)

	target, err := services.GetAccount(uint(id))
	if err != nil {
		return err
	}

	subscription, err := services.SubscribeToAccount(user, target)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(subscription)
}

func unsubscribeFromUser(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)
	id, _ := c.ParamsInt("userId", 0)

	target, err := services.GetAccount(uint(id))
	if err != nil {
		return err
	}

	if err := services.UnsubscribeFromAccount(user, target); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
