package dispatch

import (
	"strconv"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"smartrecipe/domain"
)

// NormalizeID converts a path-supplied identifier into the form the
// selected backend requires. It runs before any repository call that
// takes an id, and a failure here means the store is never touched.
//
//   - mysql: base-10 unsigned integer
//   - mongodb: 24-hex-character ObjectID
//   - neo4j: opaque non-empty string
func NormalizeID(backend domain.Backend, raw string) (ID, error) {
	switch backend {
	case domain.BackendMySQL:
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return ID{}, domain.ErrInvalidIdentifier
		}
		return ID{Backend: backend, Uint: n}, nil
	case domain.BackendMongoDB:
		oid, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return ID{}, domain.ErrInvalidIdentifier
		}
		return ID{Backend: backend, ObjectID: oid}, nil
	case domain.BackendNeo4j:
		if raw == "" {
			return ID{}, domain.ErrInvalidIdentifier
		}
		return ID{Backend: backend, Key: raw}, nil
	default:
		return ID{}, domain.ErrInvalidDatabaseType
	}
}

func uintToString(n uint64) string {
	return strconv.FormatUint(n, 10)
}
