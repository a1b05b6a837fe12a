// Package pricing computes quote item charges.
package pricing

import (
	"strconv"
	"strings"

	"labtracker/internal/domain/entities"
)

const (
	DefaultAdditionalSamplePrice = 60.0
	DefaultAdditionalHeaderPrice = 30.0
)

// PremiumCompounds are priced like every other compound today.
// Differentiated pricing has not been decided.
var PremiumCompounds = map[string]struct{}{
	"retatrutide": {},
	"tirzepatide": {},
	"semaglutide": {},
}

// Calculator holds the unit prices used for add-on charges.
type Calculator struct {
	SamplePrice float64
	HeaderPrice float64
}

func NewCalculator(samplePrice, headerPrice float64) Calculator {
	if samplePrice <= 0 {
		samplePrice = DefaultAdditionalSamplePrice
	}
	if headerPrice <= 0 {
		headerPrice = DefaultAdditionalHeaderPrice
	}
	return Calculator{SamplePrice: samplePrice, HeaderPrice: headerPrice}
}

// IsPremiumCompound reports whether compound is on the premium list.
func IsPremiumCompound(compound string) bool {
	_, ok := PremiumCompounds[strings.ToLower(strings.TrimSpace(compound))]
	return ok
}

// AdditionalSampleCharge returns count x sample price.
func (c Calculator) AdditionalSampleCharge(compound string, count int) float64 {
	if count <= 0 {
		return 0
	}
	if IsPremiumCompound(compound) {
		return float64(count) * c.SamplePrice
	}
	return float64(count) * c.SamplePrice
}

// AdditionalHeaderCharge returns count x header price.
func (c Calculator) AdditionalHeaderCharge(count int) float64 {
	if count <= 0 {
		return 0
	}
	return float64(count) * c.HeaderPrice
}

// EffectivePrice prefers an entered override over the computed default.
// A present override that is blank or not a decimal yields 0.
func EffectivePrice(override *string, computed float64) float64 {
	if override == nil {
		return computed
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(*override), 64)
	if err != nil {
		return 0
	}
	return v
}

// ItemBreakdown is the priced view of one quote item.
type ItemBreakdown struct {
	ItemID        string  `json:"item_id"`
	ProductID     string  `json:"product_id"`
	BasePrice     float64 `json:"base_price"`
	SamplesCharge float64 `json:"samples_charge"`
	HeadersCharge float64 `json:"headers_charge"`
	Total         float64 `json:"total"`
}

// QuoteBreakdown is the priced view of a quote.
type QuoteBreakdown struct {
	Items []ItemBreakdown `json:"items"`
	Total float64         `json:"total"`
}

// PriceItem prices a single item against its product.
func (c Calculator) PriceItem(item entities.QuoteItem, product entities.Product) ItemBreakdown {
	samples := intValue(item.AdditionalSamples)
	headers := intValue(item.AdditionalReportHeaders)

	b := ItemBreakdown{
		ItemID:        item.ID,
		ProductID:     item.ProductID,
		BasePrice:     EffectivePrice(item.Price, product.DefaultPrice),
		SamplesCharge: EffectivePrice(item.AdditionalSamplesPrice, c.AdditionalSampleCharge(product.Compound, samples)),
		HeadersCharge: EffectivePrice(item.AdditionalHeadersPrice, c.AdditionalHeaderCharge(headers)),
	}
	b.Total = b.BasePrice + b.SamplesCharge + b.HeadersCharge
	return b
}

// PriceQuote prices every item; products missing from the map price at zero.
func (c Calculator) PriceQuote(items []entities.QuoteItem, products map[string]entities.Product) QuoteBreakdown {
	out := QuoteBreakdown{Items: make([]ItemBreakdown, 0, len(items))}
	for _, it := range items {
		b := c.PriceItem(it, products[it.ProductID])
		out.Items = append(out.Items, b)
		out.Total += b.Total
	}
	return out
}

func intValue(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
