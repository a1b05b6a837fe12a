package request

import (
	"encoding/json"
	"errors"
	"testing"

	"labtracker/internal/domain/entities"
)

func TestUpdateQuoteStatusRequest_ResolveStatus(t *testing.T) {
	s, err := UpdateQuoteStatusRequest{Status: " paid "}.ResolveStatus()
	if err != nil || s != entities.QuoteStatusPaid {
		t.Fatalf("expected paid, got %q err=%v", s, err)
	}
	if _, err := (UpdateQuoteStatusRequest{Status: "unknown_status"}).ResolveStatus(); !errors.Is(err, ErrInvalidQuoteStatus) {
		t.Fatalf("expected ErrInvalidQuoteStatus, got %v", err)
	}
}

func TestUpdateQuoteRequest_ToPatch(t *testing.T) {
	status := "shipped"
	tracking := "TRK-1"
	p, err := UpdateQuoteRequest{Status: &status, TrackingNumber: &tracking}.ToPatch()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *p.Status != entities.QuoteStatusShipped || *p.TrackingNumber != "TRK-1" || p.Notes != nil {
		t.Fatalf("unexpected patch: %+v", p)
	}

	if _, err := (UpdateQuoteRequest{}).ToPatch(); !errors.Is(err, ErrEmptyQuoteUpdate) {
		t.Fatalf("expected ErrEmptyQuoteUpdate, got %v", err)
	}
	bad := "nope"
	if _, err := (UpdateQuoteRequest{Status: &bad}).ToPatch(); !errors.Is(err, ErrInvalidQuoteStatus) {
		t.Fatalf("expected ErrInvalidQuoteStatus, got %v", err)
	}
}

func TestCreateQuoteRequest_ItemEntities(t *testing.T) {
	samples := 2
	r := CreateQuoteRequest{LabID: "lab-1", Items: []QuoteItemRequest{{ProductID: " p-1 ", AdditionalSamples: &samples}}}
	items := r.ItemEntities()
	if len(items) != 1 || items[0].ProductID != "p-1" || *items[0].AdditionalSamples != 2 {
		t.Fatalf("unexpected items: %+v", items)
	}
}

func TestParseProviderPayload(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "empty body", in: "  ", want: "{}"},
		{name: "bare payload", in: `{"payment_method_id":"pix"}`, want: `{"payment_method_id":"pix"}`},
		{name: "wrapped payload", in: `{"provider_payload":{"token":"t"}}`, want: `{"token":"t"}`},
		{name: "legacy envelope", in: `{"mp_payload":{"token":"t"}}`, want: `{"token":"t"}`},
		{name: "null wrapper", in: `{"provider_payload":null}`, wantErr: true},
		{name: "invalid json", in: "{", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseProviderPayload([]byte(tc.in))
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidProviderPayload) {
					t.Fatalf("expected ErrInvalidProviderPayload, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !json.Valid(got) || string(got) != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestUpdateUserRoleRequest_ResolveRole(t *testing.T) {
	if role, ok := (UpdateUserRoleRequest{Role: " Admin "}).ResolveRole(); !ok || role != entities.AppRoleAdmin {
		t.Fatalf("expected admin, got %q", role)
	}
	if _, ok := (UpdateUserRoleRequest{Role: "root"}).ResolveRole(); ok {
		t.Fatalf("expected invalid role")
	}
}
