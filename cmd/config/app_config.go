package config

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"smartrecipe/domain"
	"smartrecipe/internal/api/handlers"
	"smartrecipe/internal/api/routes"
	"smartrecipe/internal/middleware"
	"smartrecipe/internal/utils"
	"smartrecipe/pkg/dispatch"
	"smartrecipe/pkg/document"
	"smartrecipe/pkg/graph"
	"smartrecipe/pkg/relational"
)

func NewApp(db *gorm.DB, mongoClient *mongo.Client, mongoDB *mongo.Database, driver neo4j.DriverWithContext) (*fiber.App, error) {
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

	app.Use(recover.New())

	app.Use(limiter.New(limiter.Config{
		Max:        50,
		Expiration: 1 * time.Second,
	}))

	// Repository
	repositories := Repositories(db, mongoClient, mongoDB, driver)

	// Service
	dispatchService := dispatch.NewDispatchService(repositories, validator)

	// Handler
	crudHandler := handlers.NewCrudHandler(dispatchService)
	healthHandler := handlers.NewHealthHandler()

	// routes
	routesConfig := routes.Config{
		App:           app,
		CrudHandler:   crudHandler,
		HealthHandler: healthHandler,
		Middleware:    middlewares,
	}
	routesConfig.Setup()
	return app, nil
}

// Repositories builds the per-backend repository table used outside the
// HTTP app, e.g. by the seeder.
func Repositories(db *gorm.DB, mongoClient *mongo.Client, mongoDB *mongo.Database, driver neo4j.DriverWithContext) map[domain.Backend]dispatch.Repository {
	return map[domain.Backend]dispatch.Repository{
		domain.BackendMySQL:   relational.NewRelationalRepository(db),
		domain.BackendMongoDB: document.NewDocumentRepository(mongoClient, mongoDB),
		domain.BackendNeo4j:   graph.NewGraphRepository(driver),
	}
}
