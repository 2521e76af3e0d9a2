// Package mongo wires a MongoDB-backed Store into flowexpr.
package mongo

import (
	"go.mongodb.org/mongo-driver/mongo"

	corestore "github.com/flowexpr-go/flowexpr/internal/store"
	mstore "github.com/flowexpr-go/flowexpr/mongo/internal/store"
)

// NewStore returns a Store that persists run records in dbName.collName.
func NewStore(client *mongo.Client, dbName, collName string) corestore.Store {
	return mstore.New(client, dbName, collName)
}
