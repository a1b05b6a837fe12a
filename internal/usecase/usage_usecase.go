package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"labtracker/internal/domain/entities"
	"labtracker/internal/domain/metering"
	"labtracker/internal/infrastructure/logger"
	"labtracker/internal/infrastructure/metrics"
	"labtracker/internal/usecase/interfaces"

	"go.uber.org/zap"
)

var (
	ErrInvalidUserID           = errors.New("invalid user id")
	ErrInvalidItemsCount       = errors.New("invalid items count")
	ErrSubscriptionNotFound    = errors.New("subscription not found")
	ErrSubscriptionInactive    = errors.New("subscription inactive")
	ErrUsageLimitExceeded      = errors.New("monthly item limit exceeded")
	ErrInvalidSubscriptionTier = errors.New("invalid subscription tier")
)

// IUsageUseCase meters items sent against subscription limits.

type IUsageUseCase interface {
	GetSnapshot(ctx context.Context, userID string) (metering.Snapshot, error)
	GetStatus(ctx context.Context, userID string) (metering.Status, error)
	TrackUsage(ctx context.Context, userID string, n int) (entities.UsageTracking, error)
	CheckAndTrack(ctx context.Context, userID string, n int) (entities.UsageTracking, error)
	ReleaseUsage(ctx context.Context, rec entities.UsageTracking, n int) error
	SetSubscription(ctx context.Context, userID string, tier entities.SubscriptionTier, limit int) (entities.Subscription, error)
}

type UsageUseCase struct {
	subs  interfaces.ISubscriptionRepository
	usage interfaces.IUsageRepository
	log   *zap.Logger
	now   func() time.Time
}

var _ IUsageUseCase = (*UsageUseCase)(nil)

func NewUsageUseCase(subs interfaces.ISubscriptionRepository, usage interfaces.IUsageRepository, log *zap.Logger) *UsageUseCase {
	return &UsageUseCase{
		subs:  subs,
		usage: usage,
		log:   logger.OrNop(log).Named("usage"),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// GetSnapshot loads the subscription and the usage record of the current
// calendar month. Missing records stay nil.
func (u *UsageUseCase) GetSnapshot(ctx context.Context, userID string) (metering.Snapshot, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return metering.Snapshot{}, ErrInvalidUserID
	}

	sub, err := u.subs.GetByUserID(ctx, userID)
	if err != nil {
		return metering.Snapshot{}, err
	}
	start, _ := entities.MonthPeriod(u.now())
	usage, err := u.usage.GetForPeriod(ctx, userID, start)
	if err != nil {
		return metering.Snapshot{}, err
	}
	return metering.Snapshot{Subscription: sub, Usage: usage}, nil
}

func (u *UsageUseCase) GetStatus(ctx context.Context, userID string) (metering.Status, error) {
	snap, err := u.GetSnapshot(ctx, userID)
	if err != nil {
		return metering.Status{}, err
	}
	return snap.StatusAt(u.now()), nil
}

// TrackUsage adds n items to the current month, creating the record when it
// does not exist yet.
func (u *UsageUseCase) TrackUsage(ctx context.Context, userID string, n int) (entities.UsageTracking, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return entities.UsageTracking{}, ErrInvalidUserID
	}
	if n <= 0 {
		return entities.UsageTracking{}, ErrInvalidItemsCount
	}

	start, end := entities.MonthPeriod(u.now())
	rec, err := u.usage.Increment(ctx, userID, start, end, n)
	if err != nil {
		u.log.Error("usage increment failed", zap.String("user_id", userID), zap.Int("items", n), zap.Error(err))
		return entities.UsageTracking{}, err
	}
	metrics.UsageItemsRecorded.Add(float64(n))
	u.log.Info("usage tracked", zap.String("user_id", userID), zap.Int("items", n), zap.Int("total", rec.ItemsSentThisMonth))
	return rec, nil
}

// CheckAndTrack records n items only when they fit in the active limit. The
// limit check and the increment are one conditional write.
func (u *UsageUseCase) CheckAndTrack(ctx context.Context, userID string, n int) (entities.UsageTracking, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return entities.UsageTracking{}, ErrInvalidUserID
	}
	if n <= 0 {
		return entities.UsageTracking{}, ErrInvalidItemsCount
	}

	snap, err := u.GetSnapshot(ctx, userID)
	if err != nil {
		return entities.UsageTracking{}, err
	}
	if snap.Subscription == nil {
		return entities.UsageTracking{}, ErrSubscriptionNotFound
	}
	if !snap.Subscription.IsActive {
		return entities.UsageTracking{}, ErrSubscriptionInactive
	}

	now := u.now()
	snap = snap.WithEmptyUsage(userID, now)
	if !snap.CanSendItems(n) {
		metrics.UsageLimitRejections.Inc()
		return entities.UsageTracking{}, ErrUsageLimitExceeded
	}

	start, end := entities.MonthPeriod(now)
	rec, ok, err := u.usage.IncrementWithinLimit(ctx, userID, start, end, n, snap.Subscription.MonthlyItemLimit)
	if err != nil {
		return entities.UsageTracking{}, err
	}
	if !ok {
		// a concurrent send consumed the remaining quota
		metrics.UsageLimitRejections.Inc()
		return entities.UsageTracking{}, ErrUsageLimitExceeded
	}
	metrics.UsageItemsRecorded.Add(float64(n))
	u.log.Info("usage checked and tracked", zap.String("user_id", userID), zap.Int("items", n), zap.Int("total", rec.ItemsSentThisMonth))
	return rec, nil
}

// ReleaseUsage gives back n items recorded in rec's period, for sends that
// were metered but did not complete.
func (u *UsageUseCase) ReleaseUsage(ctx context.Context, rec entities.UsageTracking, n int) error {
	if strings.TrimSpace(rec.UserID) == "" {
		return ErrInvalidUserID
	}
	if n <= 0 {
		return ErrInvalidItemsCount
	}
	if _, err := u.usage.Increment(ctx, rec.UserID, rec.PeriodStart, rec.PeriodEnd, -n); err != nil {
		return err
	}
	metrics.UsageItemsReleased.Add(float64(n))
	u.log.Info("usage released", zap.String("user_id", rec.UserID), zap.Int("items", n))
	return nil
}

// SetSubscription assigns a tier. A non-positive limit takes the tier default.
// The billing period is the current calendar month.
func (u *UsageUseCase) SetSubscription(ctx context.Context, userID string, tier entities.SubscriptionTier, limit int) (entities.Subscription, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return entities.Subscription{}, ErrInvalidUserID
	}
	if !tier.IsValid() {
		return entities.Subscription{}, ErrInvalidSubscriptionTier
	}
	if limit <= 0 {
		limit = entities.DefaultMonthlyItemLimits[tier]
	}

	now := u.now()
	start, end := entities.MonthPeriod(now)
	return u.subs.Put(ctx, entities.Subscription{
		UserID:             userID,
		Tier:               tier,
		MonthlyItemLimit:   limit,
		IsActive:           true,
		CurrentPeriodStart: start,
		CurrentPeriodEnd:   end,
		UpdatedAt:          now,
	})
}
