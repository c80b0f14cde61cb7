package config

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"smartrecipe/internal/utils"
)

const (
	connectMaxRetries = 5
	connectRetryDelay = 5 * time.Second
)

// ConnectMySQL opens the relational store. Connection establishment is
// the only place with retries; afterwards failures surface to callers.
func ConnectMySQL() (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		utils.GetConfig("DB_USER"),
		utils.GetConfig("DB_PASSWORD"),
		utils.GetConfig("DB_HOST"),
		utils.GetConfig("DB_PORT"),
		utils.GetConfig("DB_NAME"),
	)

	var db *gorm.DB
	var err error
	for attempt := 1; attempt <= connectMaxRetries; attempt++ {
		db, err = gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
		if err == nil {
			return db, nil
		}
		log.Printf("MySQL connection attempt %d failed. Retrying in %s...", attempt, connectRetryDelay)
		if attempt < connectMaxRetries {
			time.Sleep(connectRetryDelay)
		}
	}
	return nil, fmt.Errorf("failed to connect to MySQL after %d attempts: %w", connectMaxRetries, err)
}

// ConnectMongoDB opens the document store and pings it before use.
func ConnectMongoDB(ctx context.Context) (*mongo.Client, *mongo.Database, error) {
	uri := utils.GetConfig("MONGODB_URI")

	var client *mongo.Client
	var err error
	for attempt := 1; attempt <= connectMaxRetries; attempt++ {
		client, err = mongo.Connect(ctx, options.Client().ApplyURI(uri))
		if err == nil {
			if err = client.Ping(ctx, nil); err == nil {
				return client, client.Database(utils.GetConfig("MONGODB_DB")), nil
			}
		}
		log.Printf("MongoDB connection attempt %d failed. Retrying in %s...", attempt, connectRetryDelay)
		if attempt < connectMaxRetries {
			time.Sleep(connectRetryDelay)
		}
	}
	return nil, nil, fmt.Errorf("failed to connect to MongoDB after %d attempts: %w", connectMaxRetries, err)
}

// ConnectNeo4j opens the graph store and verifies connectivity.
func ConnectNeo4j(ctx context.Context) (neo4j.DriverWithContext, error) {
	driver, err := neo4j.NewDriverWithContext(
		utils.GetConfig("NEO4J_URI"),
		neo4j.BasicAuth(utils.GetConfig("NEO4J_USER"), utils.GetConfig("NEO4J_PASSWORD"), ""),
	)
	if err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= connectMaxRetries; attempt++ {
		if err = driver.VerifyConnectivity(ctx); err == nil {
			return driver, nil
		}
		log.Printf("Neo4j connection attempt %d failed. Retrying in %s...", attempt, connectRetryDelay)
		if attempt < connectMaxRetries {
			time.Sleep(connectRetryDelay)
		}
	}
	return nil, fmt.Errorf("failed to connect to Neo4j after %d attempts: %w", connectMaxRetries, err)
}
