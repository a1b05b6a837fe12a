package response

import (
	"testing"
	"time"

	"labtracker/internal/domain/entities"
	"labtracker/internal/domain/pricing"
)

func TestFromQuote(t *testing.T) {
	now := time.Now().UTC()
	price := "120.50"
	q := entities.Quote{
		ID:          "q-1",
		QuoteNumber: "Q-20250520-ABCDEF",
		Status:      entities.QuoteStatusSentToVendor,
		UserID:      "u-1",
		LabID:       "lab-1",
		CreatedAt:   now,
		UpdatedAt:   now,
		Items:       []entities.QuoteItem{{ID: "it-1", ProductID: "p-1", Price: &price}},
	}

	res := FromQuote(q)
	if res.ID != "q-1" || res.Status != "sent_to_vendor" || res.QuoteNumber != q.QuoteNumber {
		t.Fatalf("unexpected fields: %+v", res)
	}
	if len(res.Items) != 1 || *res.Items[0].Price != "120.50" {
		t.Fatalf("unexpected items: %+v", res.Items)
	}
	if !res.CreatedAt.Equal(now) {
		t.Fatalf("unexpected dates: %+v", res)
	}
}

func TestFromPipelineSummary(t *testing.T) {
	s := entities.SummarizePipeline([]entities.Quote{
		{Status: entities.QuoteStatusDraft},
		{Status: entities.QuoteStatusDraft},
		{Status: entities.QuoteStatusPaid},
		{Status: "unknown_status"},
	})

	res := FromPipelineSummary(s)
	if res.Counts["draft"] != 2 || res.Counts["paid"] != 1 || res.Total != 3 {
		t.Fatalf("unexpected counts: %+v", res)
	}
	if len(res.Counts) != len(entities.KnownQuoteStatuses) || res.Order[0] != "draft" {
		t.Fatalf("every known status must be present in order: %+v", res)
	}
	if _, ok := res.Counts["unknown_status"]; ok {
		t.Fatalf("unknown statuses must be dropped")
	}
}

func TestFromQuoteBreakdown_EmptyItems(t *testing.T) {
	res := FromQuoteBreakdown("q-1", pricing.QuoteBreakdown{})
	if res.Items == nil || len(res.Items) != 0 {
		t.Fatalf("expected empty, non-nil items")
	}
}
