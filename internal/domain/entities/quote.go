package entities

import "time"

// QuoteStatus represents the lifecycle of a testing quote.
//
// Domain notes:
//   - The set of statuses is closed; anything else is rejected at the API boundary.
//   - No transition graph is enforced. Any known status may be written over any other.
//   - rejected and failed are terminal error states.

type QuoteStatus string

const (
	QuoteStatusDraft                  QuoteStatus = "draft"
	QuoteStatusSentToVendor           QuoteStatus = "sent_to_vendor"
	QuoteStatusApprovedPaymentPending QuoteStatus = "approved_payment_pending"
	QuoteStatusPaid                   QuoteStatus = "paid"
	QuoteStatusShipped                QuoteStatus = "shipped"
	QuoteStatusPaidAwaitingShipping   QuoteStatus = "paid_awaiting_shipping"
	QuoteStatusInTransit              QuoteStatus = "in_transit"
	QuoteStatusDelivered              QuoteStatus = "delivered"
	QuoteStatusTestingInProgress      QuoteStatus = "testing_in_progress"
	QuoteStatusCompleted              QuoteStatus = "completed"
	QuoteStatusRejected               QuoteStatus = "rejected"
	QuoteStatusFailed                 QuoteStatus = "failed"
)

// KnownQuoteStatuses lists every status in pipeline order.
var KnownQuoteStatuses = []QuoteStatus{
	QuoteStatusDraft,
	QuoteStatusSentToVendor,
	QuoteStatusApprovedPaymentPending,
	QuoteStatusPaid,
	QuoteStatusShipped,
	QuoteStatusPaidAwaitingShipping,
	QuoteStatusInTransit,
	QuoteStatusDelivered,
	QuoteStatusTestingInProgress,
	QuoteStatusCompleted,
	QuoteStatusRejected,
	QuoteStatusFailed,
}

var knownQuoteStatusSet = func() map[QuoteStatus]struct{} {
	m := make(map[QuoteStatus]struct{}, len(KnownQuoteStatuses))
	for _, s := range KnownQuoteStatuses {
		m[s] = struct{}{}
	}
	return m
}()

// IsKnown reports whether s belongs to the closed status set.
func (s QuoteStatus) IsKnown() bool {
	_, ok := knownQuoteStatusSet[s]
	return ok
}

// IsTerminalError reports whether s is one of the absorbing error states.
func (s QuoteStatus) IsTerminalError() bool {
	return s == QuoteStatusRejected || s == QuoteStatusFailed
}

// Quote is a customer's order request for lab testing.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (user_id-index): user_id
//   - GSI2 (lab_id-index): lab_id
type Quote struct {
	ID             string      `json:"id"`
	QuoteNumber    string      `json:"quote_number"`
	Status         QuoteStatus `json:"status"`
	UserID         string      `json:"user_id"`
	LabID          string      `json:"lab_id"`
	TrackingNumber string      `json:"tracking_number,omitempty"`
	Notes          string      `json:"notes,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
	ShippedDate    *time.Time  `json:"shipped_date,omitempty"`

	Items []QuoteItem `json:"items,omitempty"`
}

// QuoteItem is one product line of a quote.
//
// Override fields hold the raw user-entered strings; nil means "not entered".
type QuoteItem struct {
	ID                      string  `json:"id"`
	QuoteID                 string  `json:"quote_id"`
	ProductID               string  `json:"product_id"`
	AdditionalSamples       *int    `json:"additional_samples,omitempty"`
	AdditionalReportHeaders *int    `json:"additional_report_headers,omitempty"`
	Price                   *string `json:"price,omitempty"`
	AdditionalSamplesPrice  *string `json:"additional_samples_price,omitempty"`
	AdditionalHeadersPrice  *string `json:"additional_headers_price,omitempty"`
}

// QuotePatch is an arbitrary field patch; nil fields are left untouched.
type QuotePatch struct {
	Status         *QuoteStatus `json:"status,omitempty"`
	LabID          *string      `json:"lab_id,omitempty"`
	TrackingNumber *string      `json:"tracking_number,omitempty"`
	Notes          *string      `json:"notes,omitempty"`
	ShippedDate    *time.Time   `json:"shipped_date,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p QuotePatch) IsEmpty() bool {
	return p.Status == nil && p.LabID == nil && p.TrackingNumber == nil && p.Notes == nil && p.ShippedDate == nil
}

// Apply returns a copy of q with the patch applied.
func (p QuotePatch) Apply(q Quote) Quote {
	if p.Status != nil {
		q.Status = *p.Status
	}
	if p.LabID != nil {
		q.LabID = *p.LabID
	}
	if p.TrackingNumber != nil {
		q.TrackingNumber = *p.TrackingNumber
	}
	if p.Notes != nil {
		q.Notes = *p.Notes
	}
	if p.ShippedDate != nil {
		d := *p.ShippedDate
		q.ShippedDate = &d
	}
	return q
}

// QuoteScope selects which quotes a caller may list.
type QuoteScope struct {
	UserID string
	LabID  string
	All    bool
}
