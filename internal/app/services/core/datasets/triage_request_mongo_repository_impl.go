package datasets

import (
	"context"
	"slotplan-service/internal/app/contracts"
	"slotplan-service/internal/app/models"
	"slotplan-service/internal/pkg/constvars"
	"slotplan-service/internal/pkg/exceptions"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type TriageRequestMongoRepository struct {
	Collection *mongo.Collection
}

func NewTriageRequestMongoRepository(db *mongo.Client, dbName string) contracts.TriageRequestRepository {
	return &TriageRequestMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionTriageRequests),
	}
}

func (repo *TriageRequestMongoRepository) InsertManyRequests(ctx context.Context, requests []models.TriageRequest) (int, error) {
	if len(requests) == 0 {
		return 0, nil
	}

	docs := make([]interface{}, 0, len(requests))
	for i := range requests {
		if requests[i].ID == "" {
			requests[i].ID = uuid.NewString()
		}
		docs = append(docs, requests[i])
	}

	result, err := repo.Collection.InsertMany(ctx, docs)
	if err != nil {
		return 0, exceptions.ErrMongoDBInsertDocument(err)
	}
	return len(result.InsertedIDs), nil
}

func (repo *TriageRequestMongoRepository) FindRequestsByDatasetID(ctx context.Context, datasetID string) ([]models.TriageRequest, error) {
	cursor, err := repo.Collection.Find(ctx, bson.M{"datasetId": datasetID})
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}

	var requests []models.TriageRequest
	if err = cursor.All(ctx, &requests); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return requests, nil
}

func (repo *TriageRequestMongoRepository) DeleteRequestsByDatasetID(ctx context.Context, datasetID string) error {
	_, err := repo.Collection.DeleteMany(ctx, bson.M{"datasetId": datasetID})
	if err != nil {
		return exceptions.ErrMongoDBDeleteDocument(err)
	}
	return nil
}
