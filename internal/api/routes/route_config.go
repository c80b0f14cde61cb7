package routes

import (
	"github.com/gofiber/fiber/v2"

	"smartrecipe/internal/api/handlers"
	"smartrecipe/internal/middleware"
)

type Config struct {
	App           *fiber.App
	CrudHandler   handlers.CrudHandler
	HealthHandler handlers.HealthHandler
	Middleware    middleware.Middleware
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Health()
	c.Crud()
}

func (c *Config) Health() {
	c.App.Get("/health", c.HealthHandler.Health)
}

// Crud registers the uniform surface: every model of every backend is
// addressed by the same five routes.
func (c *Config) Crud() {
	crud := c.App.Group("/:dbType/:model")
	{
		crud.Get("", c.CrudHandler.GetAll)
		crud.Post("", c.CrudHandler.Create)
		crud.Get("/:id", c.CrudHandler.GetByID)
		crud.Put("/:id", c.CrudHandler.Update)
		crud.Delete("/:id", c.CrudHandler.Delete)
	}
}
