package contracts

import (
	"context"

	"slotplan-service/internal/pkg/dto/requests"
	"slotplan-service/internal/pkg/dto/responses"
)

type AnalysisUsecase interface {
	BuildAnalysis(ctx context.Context, request *requests.BuildAnalysis) (*responses.AnalysisReport, error)
	ExportAnalysisWorkbook(ctx context.Context, request *requests.BuildAnalysis) (*responses.AnalysisWorkbook, error)
	InvalidateDataset(ctx context.Context, tenant, datasetID string) error
}
