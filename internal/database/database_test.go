package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestProductIndexes(t *testing.T) {
	indexes := ProductIndexes()

	var keys []string
	for _, idx := range indexes {
		d, ok := idx.Keys.(bson.D)
		require.True(t, ok)
		keys = append(keys, d[0].Key)
	}
	assert.ElementsMatch(t, []string{"createdAt", "category", "featured", "price"}, keys)
}

func TestEnsureIndexes(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("creates all indexes", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		err := EnsureIndexes(context.Background(), mt.Coll)

		assert.NoError(mt, err)
	})

	mt.Run("surfaces server error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    13,
			Message: "not authorized",
		}))

		err := EnsureIndexes(context.Background(), mt.Coll)

		assert.ErrorContains(mt, err, "create product indexes")
	})
}
