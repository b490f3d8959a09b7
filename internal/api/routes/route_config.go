package routes

import (
	"freshreceipt-backend/internal/api/handlers"
	"freshreceipt-backend/internal/middleware"
	"freshreceipt-backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App              *fiber.App
	HouseholdHandler handlers.HouseholdHandler
	FoodHandler      handlers.FoodHandler
	ReceiptHandler   handlers.ReceiptHandler
	Middleware       middleware.Middleware
	JWTService       jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Households()
	c.Receipts()
	c.GuestRoute()
}

func (c *Config) Households() {
	households := c.App.Group("/api/v1/households", c.Middleware.AuthMiddleware(c.JWTService))
	// household routes
	{
		households.Get("", c.HouseholdHandler.GetUserHouseholds)
		households.Post("", c.HouseholdHandler.CreateHousehold)
		households.Get("/primary", c.HouseholdHandler.GetPrimaryHousehold)
		households.Post("/invites/accept", c.HouseholdHandler.AcceptInvite)
		households.Get("/:household_id/members", c.HouseholdHandler.GetHouseholdMembers)
		households.Post("/:household_id/invites", c.HouseholdHandler.InviteMember)
	}

	foodItems := households.Group("/:household_id/food-items")
	{
		foodItems.Post("", c.FoodHandler.AddFoodItem)
		foodItems.Get("", c.FoodHandler.GetFoodItems)
		foodItems.Get("/expiring", c.FoodHandler.GetExpiringItems)
		foodItems.Get("/:id", c.FoodHandler.GetFoodItemDetails)
		foodItems.Put("/:id", c.FoodHandler.UpdateFoodItem)
		foodItems.Delete("/:id", c.FoodHandler.DeleteFoodItem)
		foodItems.Post("/:id/consume", c.FoodHandler.ConsumeFoodItem)
	}

	receipts := households.Group("/:household_id/receipts")
	{
		receipts.Post("", c.ReceiptHandler.UploadReceipt)
		receipts.Get("", c.ReceiptHandler.GetReceipts)
	}
}

func (c *Config) Receipts() {
	receipts := c.App.Group("/api/v1/receipts", c.Middleware.AuthMiddleware(c.JWTService))
	{
		receipts.Get("/:id", c.ReceiptHandler.GetReceiptDetails)
		receipts.Post("/:id/process-ocr", c.ReceiptHandler.ProcessReceipt)
	}
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
