package utils

import (
	"log"
	"os"

	"gopkg.in/yaml.v2"
)

type Config struct {
	// Application
	AppPort     string `yaml:"APP_PORT"`
	AppEnv      string `yaml:"APP_ENV"`
	SeedOnStart bool   `yaml:"SEED_ON_START"`

	// MySQL configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	// MongoDB configuration
	MongoDBURI  string `yaml:"MONGODB_URI"`
	MongoDBName string `yaml:"MONGODB_DB"`

	// Neo4j configuration
	Neo4jURI      string `yaml:"NEO4J_URI"`
	Neo4jUser     string `yaml:"NEO4J_USER"`
	Neo4jPassword string `yaml:"NEO4J_PASSWORD"`
}

var config Config

func LoadConfig() {
	file, err := os.ReadFile("config.yaml")
	if err != nil {
		log.Printf("Error reading YAML file: %s\n", err)
		return
	}

	err = yaml.Unmarshal(file, &config)
	if err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
		return
	}
}

// GetConfig returns a configuration value. Environment variables win
// over the file so container deployments can override without editing
// config.yaml.
func GetConfig(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	switch key {
	case "APP_PORT":
		if config.AppPort == "" {
			return "3000"
		}
		return config.AppPort
	case "APP_ENV":
		if config.AppEnv == "" {
			return "development"
		}
		return config.AppEnv
	case "SEED_ON_START":
		return getBoolString(config.SeedOnStart)
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "MONGODB_URI":
		return config.MongoDBURI
	case "MONGODB_DB":
		return config.MongoDBName
	case "NEO4J_URI":
		return config.Neo4jURI
	case "NEO4J_USER":
		return config.Neo4jUser
	case "NEO4J_PASSWORD":
		return config.Neo4jPassword
	default:
		return ""
	}
}

func getBoolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
