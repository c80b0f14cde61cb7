package main

import (
	"context"
	"log"

	"smartrecipe/cmd/config"
	migration "smartrecipe/cmd/database/migrate"
	"smartrecipe/cmd/database/seed"
	"smartrecipe/internal/utils"
	"smartrecipe/pkg/dispatch"
)

func main() {
	utils.LoadConfig()
	ctx := context.Background()

	db, err := config.ConnectMySQL()
	if err != nil {
		log.Fatalf("MySQL unavailable: %v", err)
	}

	mongoClient, mongoDB, err := config.ConnectMongoDB(ctx)
	if err != nil {
		log.Fatalf("MongoDB unavailable: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(ctx); err != nil {
			log.Printf("MongoDB disconnect: %v", err)
		}
	}()

	driver, err := config.ConnectNeo4j(ctx)
	if err != nil {
		log.Fatalf("Neo4j unavailable: %v", err)
	}
	defer driver.Close(ctx)

	if err := migration.Migrate(ctx, db, mongoDB, driver); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	app, err := config.NewApp(db, mongoClient, mongoDB, driver)
	if err != nil {
		log.Fatalf("Failed to build app: %v", err)
	}

	if utils.GetConfig("SEED_ON_START") == "true" {
		dispatchService := dispatch.NewDispatchService(
			config.Repositories(db, mongoClient, mongoDB, driver),
			utils.Validate,
		)
		if err := seed.Seed(ctx, dispatchService); err != nil {
			log.Printf("Seeding failed: %v", err)
		}
	}

	if err := app.Listen(":" + utils.GetConfig("APP_PORT")); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
