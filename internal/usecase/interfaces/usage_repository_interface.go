package interfaces

import (
	"context"
	"labtracker/internal/domain/entities"
	"time"
)

// ISubscriptionRepository abstracts persistence for the per-user subscription.

type ISubscriptionRepository interface {
	GetByUserID(ctx context.Context, userID string) (*entities.Subscription, error)
	Put(ctx context.Context, s entities.Subscription) (entities.Subscription, error)
}

// IUsageRepository abstracts persistence for monthly usage records.
//
// Increment adds n to the record of the period starting at periodStart,
// creating it with the given bounds when absent. It is a single atomic write.
//
// IncrementWithinLimit does the same but only when the stored count plus n
// stays within limit; ok is false when the write was refused.

type IUsageRepository interface {
	GetForPeriod(ctx context.Context, userID string, periodStart time.Time) (*entities.UsageTracking, error)
	Increment(ctx context.Context, userID string, periodStart, periodEnd time.Time, n int) (entities.UsageTracking, error)
	IncrementWithinLimit(ctx context.Context, userID string, periodStart, periodEnd time.Time, n, limit int) (usage entities.UsageTracking, ok bool, err error)
}
