package shares

import (
	"context"
	"fmt"
	"sync"
	"time"

	"slotplan-service/internal/app/contracts"
	"slotplan-service/internal/app/models"
	"slotplan-service/internal/app/services/shared/jwtmanager"
	"slotplan-service/internal/app/services/shared/ratelimiter"
	"slotplan-service/internal/pkg/constvars"
	"slotplan-service/internal/pkg/dto/requests"
	"slotplan-service/internal/pkg/dto/responses"
	"slotplan-service/internal/pkg/exceptions"
	"slotplan-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type shareUsecase struct {
	AnalysisUsecase contracts.AnalysisUsecase
	RedisRepository contracts.RedisRepository
	TokenManager    *jwtmanager.ShareTokenManager
	RateLimiter     *ratelimiter.ShareRateLimiter
	Log             *zap.Logger
}

var (
	shareUsecaseInstance contracts.ShareUsecase
	onceShareUsecase     sync.Once
)

func NewShareUsecase(
	analysisUsecase contracts.AnalysisUsecase,
	redisRepository contracts.RedisRepository,
	tokenManager *jwtmanager.ShareTokenManager,
	rateLimiter *ratelimiter.ShareRateLimiter,
	logger *zap.Logger,
) contracts.ShareUsecase {
	onceShareUsecase.Do(func() {
		shareUsecaseInstance = &shareUsecase{
			AnalysisUsecase: analysisUsecase,
			RedisRepository: redisRepository,
			TokenManager:    tokenManager,
			RateLimiter:     rateLimiter,
			Log:             logger,
		}
	})
	return shareUsecaseInstance
}

func (uc *shareUsecase) CreateShare(ctx context.Context, request *requests.CreateShare) (*responses.ShareLink, error) {
	requestID := utils.GetRequestID(ctx)

	verdict, err := uc.RateLimiter.Evaluate(ctx, &ratelimiter.EvaluateInput{
		Tenant: request.Tenant,
		NowUTC: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	if !verdict.Allowed {
		return nil, exceptions.ErrTooManyRequests(fmt.Errorf("share quota exhausted, retry after %d seconds", verdict.RetryAfterSecs))
	}

	// The snapshot is frozen at creation time. Later edits to the dataset or
	// plan never leak into an already-published link.
	report, err := uc.AnalysisUsecase.BuildAnalysis(ctx, &requests.BuildAnalysis{
		DatasetID:             request.DatasetID,
		PlanID:                request.PlanID,
		AcceptWeekendRequests: request.AcceptWeekendRequests,
		Tenant:                request.Tenant,
	})
	if err != nil {
		return nil, err
	}

	shareID := uuid.NewString()
	token, err := uc.TokenManager.CreateToken(&jwtmanager.CreateTokenInput{
		ShareID: shareID,
		TTL:     time.Duration(request.TTLHours) * time.Hour,
	})
	if err != nil {
		return nil, err
	}

	passcodeHash := ""
	if request.Passcode != "" {
		passcodeHash, err = utils.HashPasscode(request.Passcode)
		if err != nil {
			return nil, exceptions.ErrServerInternal(err)
		}
	}

	now := time.Now().UTC()
	share := models.SharedReport{
		ID:           shareID,
		Tenant:       request.Tenant,
		DatasetID:    request.DatasetID,
		PlanID:       request.PlanID,
		Snapshot:     report,
		PasscodeHash: passcodeHash,
		CreatedAt:    now,
		ExpiresAt:    token.ExpiresAt,
	}

	// Snapshot and token expire together; a verified token whose snapshot
	// has been collected maps to gone, not to a rebuilt report.
	err = uc.RedisRepository.Set(ctx, shareRedisKey(shareID), share, time.Until(token.ExpiresAt))
	if err != nil {
		return nil, err
	}

	uc.Log.Info("Share link published",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTenantKey, request.Tenant),
		zap.String(constvars.LoggingShareIDKey, shareID),
		zap.String(constvars.LoggingDatasetIDKey, request.DatasetID),
		zap.Bool("passcode_protected", passcodeHash != ""),
	)

	return &responses.ShareLink{
		ShareID:           shareID,
		Token:             token.Token,
		PasscodeProtected: passcodeHash != "",
		ExpiresAt:         token.ExpiresAt,
	}, nil
}

func (uc *shareUsecase) ResolveShare(ctx context.Context, request *requests.ResolveShare) (*responses.SharedReport, error) {
	verified, err := uc.TokenManager.VerifyToken(&jwtmanager.VerifyTokenInput{Token: request.Token})
	if err != nil {
		return nil, err
	}

	data, err := uc.RedisRepository.Get(ctx, shareRedisKey(verified.ShareID))
	if err != nil {
		return nil, err
	}
	if data == "" {
		return nil, exceptions.ErrShareNotFound(nil)
	}

	var share models.SharedReport
	if err := json.Unmarshal([]byte(data), &share); err != nil {
		return nil, exceptions.ErrRedisGetData(err)
	}

	if share.PasscodeHash != "" && !utils.CheckPasscodeHash(request.Passcode, share.PasscodeHash) {
		return nil, exceptions.ErrSharePasscodeWrong(nil)
	}

	uc.Log.Info("Share link resolved",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingShareIDKey, share.ID),
		zap.String(constvars.LoggingDatasetIDKey, share.DatasetID),
	)

	return &responses.SharedReport{
		ShareID:   share.ID,
		DatasetID: share.DatasetID,
		PlanID:    share.PlanID,
		CreatedAt: share.CreatedAt,
		ExpiresAt: share.ExpiresAt,
		Report:    share.Snapshot,
	}, nil
}

func shareRedisKey(shareID string) string {
	return fmt.Sprintf("%s:%s", constvars.RedisKeySharePrefix, shareID)
}
