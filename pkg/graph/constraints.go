package graph

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// EnsureConstraints creates the uniqueness constraints and lookup
// indexes the graph backend relies on. The ingredient name constraint is
// what makes the recipe-creation MERGE safe under concurrency.
func EnsureConstraints(ctx context.Context, driver neo4j.DriverWithContext) error {
	statements := []string{
		"CREATE CONSTRAINT IF NOT EXISTS FOR (u:User) REQUIRE u.email IS UNIQUE",
		"CREATE CONSTRAINT IF NOT EXISTS FOR (i:Ingredient) REQUIRE i.name IS UNIQUE",
		"CREATE CONSTRAINT IF NOT EXISTS FOR (r:Recipe) REQUIRE r.id IS UNIQUE",
		"CREATE CONSTRAINT IF NOT EXISTS FOR (up:UserPrompt) REQUIRE up.id IS UNIQUE",
		"CREATE CONSTRAINT IF NOT EXISTS FOR (ar:AIResponse) REQUIRE ar.id IS UNIQUE",
		"CREATE INDEX IF NOT EXISTS FOR (r:Recipe) ON (r.name)",
		"CREATE INDEX IF NOT EXISTS FOR (r:Recipe) ON (r.created_at)",
	}

	session := driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	for _, statement := range statements {
		if _, err := session.Run(ctx, statement, nil); err != nil {
			return err
		}
	}
	return nil
}
