package entities

import "time"

// SubscriptionTier is the billing plan of a user.
type SubscriptionTier string

const (
	SubscriptionTierFree       SubscriptionTier = "free"
	SubscriptionTierPro        SubscriptionTier = "pro"
	SubscriptionTierEnterprise SubscriptionTier = "enterprise"
)

// DefaultMonthlyItemLimits is used when a tier is assigned without an explicit limit.
var DefaultMonthlyItemLimits = map[SubscriptionTier]int{
	SubscriptionTierFree:       10,
	SubscriptionTierPro:        100,
	SubscriptionTierEnterprise: 1000,
}

// IsValid reports whether t is a known tier.
func (t SubscriptionTier) IsValid() bool {
	_, ok := DefaultMonthlyItemLimits[t]
	return ok
}

// Subscription is the single plan record of a user.
//
// Storage model (DynamoDB):
//   - PK: user_id
type Subscription struct {
	UserID             string           `json:"user_id"`
	Tier               SubscriptionTier `json:"tier"`
	MonthlyItemLimit   int              `json:"monthly_item_limit"`
	IsActive           bool             `json:"is_active"`
	CurrentPeriodStart time.Time        `json:"current_period_start"`
	CurrentPeriodEnd   time.Time        `json:"current_period_end"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// UsageTracking counts items sent by a user in one calendar month.
//
// Storage model (DynamoDB):
//   - PK: user_id
//   - SK: period_start (RFC3339, first of month UTC)
type UsageTracking struct {
	UserID             string    `json:"user_id"`
	ItemsSentThisMonth int       `json:"items_sent_this_month"`
	PeriodStart        time.Time `json:"period_start"`
	PeriodEnd          time.Time `json:"period_end"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// MonthPeriod returns [first-of-month, first-of-next-month) in UTC for t.
func MonthPeriod(t time.Time) (start, end time.Time) {
	t = t.UTC()
	start = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, 0)
	return start, end
}
