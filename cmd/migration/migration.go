package main

import (
	"context"
	"slotplan-service/internal/app/config"
	"slotplan-service/internal/app/drivers/database"
	"slotplan-service/internal/app/drivers/logger"
	"slotplan-service/internal/pkg/constvars"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Ensures the indexes the read paths depend on. Safe to run repeatedly,
// CreateMany is a no-op for indexes that already exist.
func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewLogrusLogger(internalConfig)

	mongoDB := database.NewMongoDB(driverConfig)
	db := mongoDB.Database(driverConfig.MongoDB.DbName)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	collectionIndexes := map[string][]mongo.IndexModel{
		constvars.MongoCollectionDatasets: {
			{
				Keys: bson.D{{Key: "tenant", Value: 1}, {Key: "createdAt", Value: -1}},
			},
			{
				Keys: bson.D{{Key: "status", Value: 1}},
			},
		},
		constvars.MongoCollectionTriageRequests: {
			{
				Keys: bson.D{{Key: "datasetId", Value: 1}},
			},
			{
				Keys: bson.D{{Key: "datasetId", Value: 1}, {Key: "pathway", Value: 1}},
			},
		},
		constvars.MongoCollectionCapacityPlans: {
			{
				Keys: bson.D{{Key: "tenant", Value: 1}, {Key: "name", Value: 1}},
			},
		},
	}

	total := 0
	for collection, indexes := range collectionIndexes {
		names, err := db.Collection(collection).Indexes().CreateMany(ctx, indexes, options.CreateIndexes())
		if err != nil {
			log.Fatalf("Error creating indexes on %s: %v", collection, err)
		}
		log.Infof("Ensured indexes on %s: %v", collection, names)
		total += len(names)
	}

	if err := mongoDB.Disconnect(ctx); err != nil {
		log.Fatalf("Error disconnecting from mongo: %v", err)
	}

	log.Infof("Applied %d indexes!", total)
}
