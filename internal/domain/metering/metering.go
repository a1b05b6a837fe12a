// Package metering answers quota questions for a user's subscription and
// current-period usage.
package metering

import (
	"math"
	"time"

	"labtracker/internal/domain/entities"
)

// Snapshot pairs a subscription with the usage record of the current period.
// Either side may be nil when the record does not exist.
type Snapshot struct {
	Subscription *entities.Subscription  `json:"subscription"`
	Usage        *entities.UsageTracking `json:"usage"`
}

// Remaining returns limit - used, or 0 when either record is missing.
func (s Snapshot) Remaining() int {
	if s.Subscription == nil || s.Usage == nil {
		return 0
	}
	return s.Subscription.MonthlyItemLimit - s.Usage.ItemsSentThisMonth
}

// CanSendItems reports whether n more items fit in the monthly limit.
func (s Snapshot) CanSendItems(n int) bool {
	if s.Subscription == nil || s.Usage == nil {
		return false
	}
	return s.Subscription.MonthlyItemLimit-s.Usage.ItemsSentThisMonth >= n
}

// UsagePercentage returns used/limit*100. It is not capped at 100.
func (s Snapshot) UsagePercentage() float64 {
	if s.Subscription == nil || s.Usage == nil || s.Subscription.MonthlyItemLimit <= 0 {
		return 0
	}
	return float64(s.Usage.ItemsSentThisMonth) / float64(s.Subscription.MonthlyItemLimit) * 100
}

// DaysUntilReset returns the whole days, rounded up, until the subscription
// period ends. It is negative once the period end has passed.
func (s Snapshot) DaysUntilReset(now time.Time) int {
	if s.Subscription == nil {
		return 0
	}
	d := s.Subscription.CurrentPeriodEnd.Sub(now)
	return int(math.Ceil(d.Hours() / 24))
}

// WithEmptyUsage returns a copy whose missing usage is replaced by a zero
// record for the period containing now.
func (s Snapshot) WithEmptyUsage(userID string, now time.Time) Snapshot {
	if s.Usage != nil {
		return s
	}
	start, end := entities.MonthPeriod(now)
	s.Usage = &entities.UsageTracking{UserID: userID, PeriodStart: start, PeriodEnd: end}
	return s
}

// Status is the serialisable view of a snapshot.
type Status struct {
	Snapshot
	Remaining       int     `json:"remaining"`
	UsagePercentage float64 `json:"usage_percentage"`
	DaysUntilReset  int     `json:"days_until_reset"`
}

// StatusAt computes the derived quota figures at now.
func (s Snapshot) StatusAt(now time.Time) Status {
	return Status{
		Snapshot:        s,
		Remaining:       s.Remaining(),
		UsagePercentage: s.UsagePercentage(),
		DaysUntilReset:  s.DaysUntilReset(now),
	}
}
