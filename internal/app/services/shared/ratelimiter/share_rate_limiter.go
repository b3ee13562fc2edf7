package ratelimiter

import (
	"context"
	"slotplan-service/internal/pkg/constvars"
	"time"

	"go.uber.org/zap"
)

// ShareRateLimiter caps how many share links a tenant can mint per window.
// Share creation is the one write reachable with only an API key, so it gets
// its own quota independent of the transport-level per-IP limit.
type ShareRateLimiter struct {
	limiter      *ResourceLimiter
	log          *zap.Logger
	windowSec    int
	maxPerWindow int
}

func NewShareRateLimiter(limiter *ResourceLimiter, log *zap.Logger, windowSec, maxPerWindow int) *ShareRateLimiter {
	return &ShareRateLimiter{
		limiter:      limiter,
		log:          log,
		windowSec:    windowSec,
		maxPerWindow: maxPerWindow,
	}
}

// EvaluateInput identifies the tenant minting a share link.
type EvaluateInput struct {
	Tenant string
	NowUTC time.Time
}

// EvaluateOutput contains the allow flag and retry-after seconds.
type EvaluateOutput struct {
	Allowed        bool
	RetryAfterSecs int
}

// Evaluate returns allowance; if not allowed, it returns the Retry-After seconds.
func (l *ShareRateLimiter) Evaluate(ctx context.Context, in *EvaluateInput) (*EvaluateOutput, error) {
	out, err := l.limiter.ApplyResourceLimiter(ctx, &ApplyResourceLimiterInput{
		ResourceName:      in.Tenant,
		LimiterGroupName:  constvars.RedisKeyShareRatePrefix,
		WindowDurationSec: l.windowSec,
		MaxQuota:          l.maxPerWindow,
		NowUTC:            in.NowUTC,
	})
	if err != nil {
		return nil, err
	}

	if !out.Allowed {
		l.log.Info("ShareRateLimiter.Evaluate quota exceeded",
			zap.String(constvars.LoggingTenantKey, in.Tenant),
		)
	}
	return &EvaluateOutput{Allowed: out.Allowed, RetryAfterSecs: out.RetryAfterSecs}, nil
}
