package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	RestaurantsCollection *mongo.Collection
	OwnersCollection      *mongo.Collection
	SlotCollection        *mongo.Collection
	BookingsCollection    *mongo.Collection
	Client                *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "tablebook"
	}

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	Client, err = mongo.Connect(context.TODO(), clientOptions)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	RestaurantsCollection = Client.Database(dbName).Collection("restaurants")
	OwnersCollection = Client.Database(dbName).Collection("owners")
	SlotCollection = Client.Database(dbName).Collection("slots")
	BookingsCollection = Client.Database(dbName).Collection("bookings")
}

// EnsureIndexes creates the uniqueness constraints the handlers rely on:
// one owner per email, and at most one slot per (restaurant, date, time).
// The slot index backs up the advisory existence pre-check in the handlers
// so concurrent writers cannot slip in duplicates.
func EnsureIndexes(ctx context.Context) error {
	_, err := OwnersCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = SlotCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "restaurantId", Value: 1},
			{Key: "date", Value: 1},
			{Key: "time", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	return err
}
