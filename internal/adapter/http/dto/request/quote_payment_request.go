package request

import (
	"encoding/json"
	"errors"
	"strings"
)

var ErrInvalidProviderPayload = errors.New("invalid provider payload")

// QuotePaymentCreateRequest optionally wraps the provider payload in
// `provider_payload`; a bare provider body is accepted too. The payload is
// kept as raw JSON to support varying Mercado Pago schemas.
type QuotePaymentCreateRequest struct {
	ProviderPayload json.RawMessage `json:"provider_payload"`
}

// ParseProviderPayload unwraps the envelope when present. An empty body
// yields `{}`.
func ParseProviderPayload(raw []byte) (json.RawMessage, error) {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return json.RawMessage("{}"), nil
	}
	if !json.Valid(raw) {
		return nil, ErrInvalidProviderPayload
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err == nil {
		for _, key := range []string{"provider_payload", "mp_payload"} {
			wrapped, ok := envelope[key]
			if !ok {
				continue
			}
			if v := strings.TrimSpace(string(wrapped)); v == "" || v == "null" {
				return nil, ErrInvalidProviderPayload
			}
			return wrapped, nil
		}
	}
	return json.RawMessage(raw), nil
}
