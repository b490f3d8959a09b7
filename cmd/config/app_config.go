package config

import (
	"os"
	"time"

	"freshreceipt-backend/internal/api/handlers"
	"freshreceipt-backend/internal/api/routes"
	"freshreceipt-backend/internal/middleware"
	"freshreceipt-backend/internal/utils"
	"freshreceipt-backend/internal/utils/mailing"
	"freshreceipt-backend/internal/utils/storage"
	"freshreceipt-backend/pkg/food"
	"freshreceipt-backend/pkg/household"
	"freshreceipt-backend/pkg/jwt"
	"freshreceipt-backend/pkg/receipt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	mailer := mailing.NewService()

	// Repository
	householdRepository := household.NewHouseholdRepository(db)
	foodRepository := food.NewFoodRepository(db)
	receiptRepository := receipt.NewReceiptRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	householdService := household.NewHouseholdService(householdRepository, mailer)
	foodService := food.NewFoodService(foodRepository)
	ocrProvider := receipt.NewVeryfiProvider()
	receiptService := receipt.NewReceiptService(
		receiptRepository,
		foodRepository,
		ocrProvider,
		s3,
	)

	// Handler
	householdHandler := handlers.NewHouseholdHandler(householdService, validator)
	foodHandler := handlers.NewFoodHandler(foodService, householdService, validator)
	receiptHandler := handlers.NewReceiptHandler(receiptService, householdService, validator)

	// routes
	routesConfig := routes.Config{
		App:              app,
		HouseholdHandler: householdHandler,
		FoodHandler:      foodHandler,
		ReceiptHandler:   receiptHandler,
		Middleware:       middlewares,
		JWTService:       jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
