package domain

import (
	"errors"
)

var (
	MessageInvalidDatabaseType = "Invalid database type. Use mongodb, mysql, or neo4j"

	ErrInvalidDatabaseType  = errors.New(MessageInvalidDatabaseType)
	ErrUnknownModel         = errors.New("unknown model")
	ErrUnsupportedOperation = errors.New("operation not supported by this backend")
	ErrInvalidIdentifier    = errors.New("invalid identifier for this backend")
	ErrNotFound             = errors.New("entity not found")
	ErrReferenceNotFound    = errors.New("referenced entity not found")
	ErrDuplicateKey         = errors.New("duplicate value for unique field")
	ErrStoreUnavailable     = errors.New("store unavailable")
)

// Backend identifies one of the three backing stores.
type Backend string

const (
	BackendMySQL   Backend = "mysql"
	BackendMongoDB Backend = "mongodb"
	BackendNeo4j   Backend = "neo4j"
)

// ResolveBackend maps the :dbType path segment to a Backend. Unknown
// segments fail before any store is touched.
func ResolveBackend(segment string) (Backend, error) {
	switch Backend(segment) {
	case BackendMySQL, BackendMongoDB, BackendNeo4j:
		return Backend(segment), nil
	default:
		return "", ErrInvalidDatabaseType
	}
}
