package datasets

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"
	"sync"

	"slotplan-service/internal/app/contracts"
	"slotplan-service/internal/app/models"
	"slotplan-service/internal/app/services/core/ingest"
	"slotplan-service/internal/app/services/shared/ingestqueue"
	"slotplan-service/internal/pkg/constvars"
	"slotplan-service/internal/pkg/dto/requests"
	"slotplan-service/internal/pkg/dto/responses"
	"slotplan-service/internal/pkg/exceptions"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type datasetUsecase struct {
	DatasetRepo       contracts.DatasetRepository
	TriageRequestRepo contracts.TriageRequestRepository
	Storage           contracts.ObjectStorage
	Queue             *ingestqueue.Service
	Fetcher           *ingest.ExportFetcher
	AnalysisUsecase   contracts.AnalysisUsecase
	Log               *zap.Logger
}

var (
	datasetUsecaseInstance contracts.DatasetUsecase
	onceDatasetUsecase     sync.Once
)

func NewDatasetUsecase(
	datasetRepo contracts.DatasetRepository,
	triageRequestRepo contracts.TriageRequestRepository,
	storage contracts.ObjectStorage,
	queue *ingestqueue.Service,
	fetcher *ingest.ExportFetcher,
	analysisUsecase contracts.AnalysisUsecase,
	logger *zap.Logger,
) contracts.DatasetUsecase {
	onceDatasetUsecase.Do(func() {
		instance := &datasetUsecase{
			DatasetRepo:       datasetRepo,
			TriageRequestRepo: triageRequestRepo,
			Storage:           storage,
			Queue:             queue,
			Fetcher:           fetcher,
			AnalysisUsecase:   analysisUsecase,
			Log:               logger,
		}
		datasetUsecaseInstance = instance
	})
	return datasetUsecaseInstance
}

func (uc *datasetUsecase) UploadDataset(ctx context.Context, request *requests.UploadDataset) (*responses.Dataset, error) {
	if ext := strings.ToLower(path.Ext(request.FileName)); ext != ".xlsx" {
		return nil, exceptions.ErrIngestWrongFileType(fmt.Errorf("file extension %q", ext))
	}
	return uc.admitDataset(ctx, request.Tenant, request.Name, request.FileName, "", request.Content)
}

func (uc *datasetUsecase) FetchDataset(ctx context.Context, request *requests.FetchDataset) (*responses.Dataset, error) {
	content, err := uc.Fetcher.FetchExport(ctx, request.URL)
	if err != nil {
		return nil, err
	}

	fileName := fileNameFromURL(request.URL)
	return uc.admitDataset(ctx, request.Tenant, request.Name, fileName, request.URL, content)
}

// admitDataset is the shared tail of both upload paths: persist the raw
// export, record the dataset and hand the parse work to the queue. The
// caller gets the dataset back in queued state; the worker flips it to
// ready or failed later.
func (uc *datasetUsecase) admitDataset(ctx context.Context, tenant, name, fileName, sourceURL string, content []byte) (*responses.Dataset, error) {
	datasetID := uuid.NewString()
	objectKey := fmt.Sprintf("exports/%s/%s.xlsx", tenant, datasetID)

	if name == "" {
		name = fileName
	}

	dataset := &models.Dataset{
		ID:         datasetID,
		Tenant:     tenant,
		Name:       name,
		SourceFile: fileName,
		SourceURL:  sourceURL,
		ObjectKey:  objectKey,
		Status:     constvars.DatasetStatusUploaded,
	}

	err := uc.Storage.UploadObject(ctx, objectKey, bytes.NewReader(content), int64(len(content)), constvars.MIMEApplicationXLSX)
	if err != nil {
		return nil, err
	}

	if _, err := uc.DatasetRepo.CreateDataset(ctx, dataset); err != nil {
		return nil, err
	}

	_, err = uc.Queue.Enqueue(ctx, &ingestqueue.EnqueueInput{
		Job: ingestqueue.IngestJob{
			JobID:     uuid.NewString(),
			DatasetID: datasetID,
			Tenant:    tenant,
			ObjectKey: objectKey,
		},
	})
	if err != nil {
		return nil, err
	}

	dataset.Status = constvars.DatasetStatusQueued
	if err := uc.DatasetRepo.UpdateDataset(ctx, dataset); err != nil {
		return nil, err
	}

	uc.Log.Info("dataset admitted for ingestion",
		zap.String(constvars.LoggingDatasetIDKey, datasetID),
		zap.String(constvars.LoggingTenantKey, tenant),
		zap.String(constvars.LoggingObjectKeyKey, objectKey),
	)

	response := dataset.ConvertIntoResponse()
	return &response, nil
}

func (uc *datasetUsecase) ListDatasets(ctx context.Context, request *requests.ListDatasets) ([]responses.Dataset, error) {
	datasets, err := uc.DatasetRepo.FindDatasetsByTenant(ctx, request.Tenant, request.Page, request.PageSize)
	if err != nil {
		return nil, err
	}

	out := make([]responses.Dataset, 0, len(datasets))
	for _, dataset := range datasets {
		out = append(out, dataset.ConvertIntoResponse())
	}
	return out, nil
}

func (uc *datasetUsecase) FindDatasetByID(ctx context.Context, request *requests.FindDatasetByID) (*responses.Dataset, error) {
	dataset, err := uc.DatasetRepo.FindDatasetByID(ctx, request.Tenant, request.DatasetID)
	if err != nil {
		return nil, err
	}
	if dataset == nil {
		return nil, exceptions.ErrDatasetNotFound(nil)
	}

	response := dataset.ConvertIntoResponse()
	return &response, nil
}

func (uc *datasetUsecase) DeleteDatasetByID(ctx context.Context, request *requests.DeleteDatasetByID) error {
	dataset, err := uc.DatasetRepo.FindDatasetByID(ctx, request.Tenant, request.DatasetID)
	if err != nil {
		return err
	}
	if dataset == nil {
		return exceptions.ErrDatasetNotFound(nil)
	}

	if err := uc.TriageRequestRepo.DeleteRequestsByDatasetID(ctx, dataset.ID); err != nil {
		return err
	}
	if err := uc.Storage.RemoveObject(ctx, dataset.ObjectKey); err != nil {
		return err
	}
	if err := uc.AnalysisUsecase.InvalidateDataset(ctx, request.Tenant, dataset.ID); err != nil {
		return err
	}
	if err := uc.DatasetRepo.DeleteDatasetByID(ctx, request.Tenant, dataset.ID); err != nil {
		return err
	}

	uc.Log.Info("dataset deleted",
		zap.String(constvars.LoggingDatasetIDKey, dataset.ID),
		zap.String(constvars.LoggingTenantKey, request.Tenant),
	)
	return nil
}

func fileNameFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "export.xlsx"
	}
	name := path.Base(parsed.Path)
	if name == "." || name == "/" || !strings.Contains(name, ".") {
		return "export.xlsx"
	}
	return name
}
