package contracts

import (
	"context"

	"slotplan-service/internal/app/models"
	"slotplan-service/internal/pkg/dto/requests"
	"slotplan-service/internal/pkg/dto/responses"
)

type DatasetUsecase interface {
	UploadDataset(ctx context.Context, request *requests.UploadDataset) (*responses.Dataset, error)
	FetchDataset(ctx context.Context, request *requests.FetchDataset) (*responses.Dataset, error)
	ListDatasets(ctx context.Context, request *requests.ListDatasets) ([]responses.Dataset, error)
	FindDatasetByID(ctx context.Context, request *requests.FindDatasetByID) (*responses.Dataset, error)
	DeleteDatasetByID(ctx context.Context, request *requests.DeleteDatasetByID) error
}

type DatasetRepository interface {
	CreateDataset(ctx context.Context, dataset *models.Dataset) (string, error)
	FindDatasetByID(ctx context.Context, tenant, datasetID string) (*models.Dataset, error)
	FindDatasetsByTenant(ctx context.Context, tenant string, page, pageSize int) ([]models.Dataset, error)
	UpdateDataset(ctx context.Context, dataset *models.Dataset) error
	DeleteDatasetByID(ctx context.Context, tenant, datasetID string) error
}

type TriageRequestRepository interface {
	InsertManyRequests(ctx context.Context, requests []models.TriageRequest) (int, error)
	FindRequestsByDatasetID(ctx context.Context, datasetID string) ([]models.TriageRequest, error)
	DeleteRequestsByDatasetID(ctx context.Context, datasetID string) error
}
