package database

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Connect opens a MongoDB client using the DB connection string from the
// environment and verifies the connection with a ping.
func Connect(ctx context.Context) (*mongo.Client, error) {
	mongoURI := os.Getenv("DB")
	if mongoURI == "" {
		log.Fatal("DB is not set in the environment variables")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, err
	}

	log.Println("Connected to MongoDB")
	return client, nil
}

// OpenDatabase returns the application database, named by DB_NAME.
func OpenDatabase(client *mongo.Client) *mongo.Database {
	name := os.Getenv("DB_NAME")
	if name == "" {
		name = "CakeFarm"
	}
	return client.Database(name)
}

func OpenCollection(db *mongo.Database, collectionName string) *mongo.Collection {
	return db.Collection(collectionName)
}
