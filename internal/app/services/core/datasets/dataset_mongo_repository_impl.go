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
	"go.mongodb.org/mongo-driver/mongo/options"
)

type DatasetMongoRepository struct {
	Collection *mongo.Collection
}

func NewDatasetMongoRepository(db *mongo.Client, dbName string) contracts.DatasetRepository {
	return &DatasetMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionDatasets),
	}
}

func (repo *DatasetMongoRepository) CreateDataset(ctx context.Context, dataset *models.Dataset) (string, error) {
	if dataset.ID == "" {
		dataset.ID = uuid.NewString()
	}
	dataset.SetCreatedAtUpdatedAt()

	_, err := repo.Collection.InsertOne(ctx, dataset)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return dataset.ID, nil
}

func (repo *DatasetMongoRepository) FindDatasetByID(ctx context.Context, tenant, datasetID string) (*models.Dataset, error) {
	var dataset models.Dataset
	err := repo.Collection.FindOne(ctx, bson.M{"_id": datasetID, "tenant": tenant}).Decode(&dataset)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &dataset, nil
}

func (repo *DatasetMongoRepository) FindDatasetsByTenant(ctx context.Context, tenant string, page, pageSize int) ([]models.Dataset, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cursor, err := repo.Collection.Find(ctx, bson.M{"tenant": tenant}, opts)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}

	var datasets []models.Dataset
	if err = cursor.All(ctx, &datasets); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return datasets, nil
}

func (repo *DatasetMongoRepository) UpdateDataset(ctx context.Context, dataset *models.Dataset) error {
	dataset.SetUpdatedAt()
	filter := bson.M{"_id": dataset.ID, "tenant": dataset.Tenant}
	update := bson.M{"$set": dataset.ConvertToBsonM()}

	_, err := repo.Collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(false))
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (repo *DatasetMongoRepository) DeleteDatasetByID(ctx context.Context, tenant, datasetID string) error {
	_, err := repo.Collection.DeleteOne(ctx, bson.M{"_id": datasetID, "tenant": tenant})
	if err != nil {
		return exceptions.ErrMongoDBDeleteDocument(err)
	}
	return nil
}
