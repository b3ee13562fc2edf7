package capacityplans

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

type CapacityPlanMongoRepository struct {
	Collection *mongo.Collection
}

func NewCapacityPlanMongoRepository(db *mongo.Client, dbName string) contracts.CapacityPlanRepository {
	return &CapacityPlanMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionCapacityPlans),
	}
}

func (repo *CapacityPlanMongoRepository) CreateCapacityPlan(ctx context.Context, plan *models.CapacityPlan) (string, error) {
	if plan.ID == "" {
		plan.ID = uuid.NewString()
	}
	plan.SetCreatedAtUpdatedAt()

	_, err := repo.Collection.InsertOne(ctx, plan)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return plan.ID, nil
}

func (repo *CapacityPlanMongoRepository) FindCapacityPlanByID(ctx context.Context, tenant, planID string) (*models.CapacityPlan, error) {
	var plan models.CapacityPlan
	err := repo.Collection.FindOne(ctx, bson.M{"_id": planID, "tenant": tenant}).Decode(&plan)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &plan, nil
}

func (repo *CapacityPlanMongoRepository) FindCapacityPlansByTenant(ctx context.Context, tenant string) ([]models.CapacityPlan, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := repo.Collection.Find(ctx, bson.M{"tenant": tenant}, opts)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}

	var plans []models.CapacityPlan
	if err = cursor.All(ctx, &plans); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return plans, nil
}

func (repo *CapacityPlanMongoRepository) UpdateCapacityPlan(ctx context.Context, plan *models.CapacityPlan) error {
	plan.SetUpdatedAt()
	filter := bson.M{"_id": plan.ID, "tenant": plan.Tenant}
	update := bson.M{"$set": plan.ConvertToBsonM()}

	_, err := repo.Collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(false))
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (repo *CapacityPlanMongoRepository) DeleteCapacityPlanByID(ctx context.Context, tenant, planID string) error {
	_, err := repo.Collection.DeleteOne(ctx, bson.M{"_id": planID, "tenant": tenant})
	if err != nil {
		return exceptions.ErrMongoDBDeleteDocument(err)
	}
	return nil
}
