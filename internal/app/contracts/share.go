package contracts

import (
	"context"

	"slotplan-service/internal/pkg/dto/requests"
	"slotplan-service/internal/pkg/dto/responses"
)

type ShareUsecase interface {
	CreateShare(ctx context.Context, request *requests.CreateShare) (*responses.ShareLink, error)
	ResolveShare(ctx context.Context, request *requests.ResolveShare) (*responses.SharedReport, error)
}
