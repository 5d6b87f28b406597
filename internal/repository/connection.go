package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

const appName = "vegetable-wholesaler"

// ConnectMongoDB opens a pooled client and returns the storefront database.
// Writes use majority write concern.
func ConnectMongoDB(ctx context.Context, uri, database string) (*mongo.Database, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetAppName(appName).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(50).
		SetMinPoolSize(5).
		SetWriteConcern(writeconcern.Majority())

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB at %s: %w", database, err)
	}
	return client.Database(database), nil
}

type indexer interface {
	CreateIndexes(ctx context.Context) error
}

// EnsureIndexes creates the indexes of every repository that declares them.
func EnsureIndexes(ctx context.Context, repos ...any) error {
	for _, r := range repos {
		if ix, ok := r.(indexer); ok {
			if err := ix.CreateIndexes(ctx); err != nil {
				return err
			}
		}
	}
	return nil
}
