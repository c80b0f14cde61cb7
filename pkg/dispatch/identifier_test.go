package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartrecipe/domain"
)

func TestNormalizeID_MySQL(t *testing.T) {
	id, err := NormalizeID(domain.BackendMySQL, "42")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), id.Uint)
	assert.Equal(t, "42", id.String())

	for _, raw := range []string{"abc", "", "12.5", "-3", "1e3"} {
		_, err := NormalizeID(domain.BackendMySQL, raw)
		assert.ErrorIs(t, err, domain.ErrInvalidIdentifier, raw)
	}
}

func TestNormalizeID_MongoDB(t *testing.T) {
	id, err := NormalizeID(domain.BackendMongoDB, "65b2f0a1c3d4e5f601234567")
	require.NoError(t, err)
	assert.Equal(t, "65b2f0a1c3d4e5f601234567", id.ObjectID.Hex())

	for _, raw := range []string{"abc", "", "65b2f0a1c3", "zzb2f0a1c3d4e5f601234567"} {
		_, err := NormalizeID(domain.BackendMongoDB, raw)
		assert.ErrorIs(t, err, domain.ErrInvalidIdentifier, raw)
	}
}

func TestNormalizeID_Neo4j(t *testing.T) {
	id, err := NormalizeID(domain.BackendNeo4j, "recipe_1712041523123_9f1c2a4b")
	require.NoError(t, err)
	assert.Equal(t, "recipe_1712041523123_9f1c2a4b", id.Key)

	_, err = NormalizeID(domain.BackendNeo4j, "")
	assert.ErrorIs(t, err, domain.ErrInvalidIdentifier)
}

func TestNormalizeID_UnknownBackend(t *testing.T) {
	_, err := NormalizeID(domain.Backend("postgres"), "1")
	assert.ErrorIs(t, err, domain.ErrInvalidDatabaseType)
}
