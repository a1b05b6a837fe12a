package metering

import (
	"testing"
	"time"

	"labtracker/internal/domain/entities"
)

func snapshot(limit, used int, end time.Time) Snapshot {
	return Snapshot{
		Subscription: &entities.Subscription{UserID: "u-1", Tier: entities.SubscriptionTierPro, MonthlyItemLimit: limit, IsActive: true, CurrentPeriodEnd: end},
		Usage:        &entities.UsageTracking{UserID: "u-1", ItemsSentThisMonth: used},
	}
}

func TestSnapshot_CanSendItems(t *testing.T) {
	s := snapshot(100, 95, time.Time{})

	if !s.CanSendItems(5) {
		t.Fatalf("5 items should fit in the remaining quota")
	}
	if s.CanSendItems(6) {
		t.Fatalf("6 items should exceed the remaining quota")
	}
	if s.Remaining() != 5 {
		t.Fatalf("expected remaining=5, got %d", s.Remaining())
	}
	if s.UsagePercentage() != 95 {
		t.Fatalf("expected 95%%, got %v", s.UsagePercentage())
	}

	t.Run("missing records deny", func(t *testing.T) {
		if (Snapshot{}).CanSendItems(1) {
			t.Fatalf("empty snapshot must deny")
		}
		if (Snapshot{Subscription: s.Subscription}).CanSendItems(1) {
			t.Fatalf("missing usage must deny")
		}
		if (Snapshot{}).UsagePercentage() != 0 || (Snapshot{}).Remaining() != 0 {
			t.Fatalf("empty snapshot should report zeros")
		}
	})

	t.Run("zero limit yields zero percentage", func(t *testing.T) {
		z := snapshot(0, 3, time.Time{})
		if z.UsagePercentage() != 0 {
			t.Fatalf("expected 0, got %v", z.UsagePercentage())
		}
	})

	t.Run("over limit is not capped", func(t *testing.T) {
		o := snapshot(10, 15, time.Time{})
		if o.UsagePercentage() != 150 {
			t.Fatalf("expected 150, got %v", o.UsagePercentage())
		}
		if o.Remaining() != -5 {
			t.Fatalf("expected -5, got %d", o.Remaining())
		}
	})
}

func TestSnapshot_DaysUntilReset(t *testing.T) {
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		end  time.Time
		want int
	}{
		{"partial day rounds up", now.Add(36 * time.Hour), 2},
		{"exact days", now.Add(72 * time.Hour), 3},
		{"past end is negative", now.Add(-48 * time.Hour), -2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := snapshot(10, 0, tc.end).DaysUntilReset(now); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}

	if (Snapshot{}).DaysUntilReset(now) != 0 {
		t.Fatalf("no subscription should yield 0")
	}
}

func TestSnapshot_WithEmptyUsage(t *testing.T) {
	now := time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC)
	s := Snapshot{Subscription: &entities.Subscription{MonthlyItemLimit: 10}}

	got := s.WithEmptyUsage("u-1", now)
	if got.Usage == nil || got.Usage.ItemsSentThisMonth != 0 || got.Usage.UserID != "u-1" {
		t.Fatalf("expected zero usage, got %+v", got.Usage)
	}
	if !got.Usage.PeriodStart.Equal(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected period start %v", got.Usage.PeriodStart)
	}
	if !got.CanSendItems(10) {
		t.Fatalf("fresh period should allow the full limit")
	}
	if s.Usage != nil {
		t.Fatalf("original snapshot mutated")
	}

	status := got.StatusAt(now)
	if status.Remaining != 10 || status.UsagePercentage != 0 {
		t.Fatalf("unexpected status %+v", status)
	}
}
