package routes

import (
	"labtracker/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathQuotes    = "/quotes"
	PathDashboard = "/dashboard"
	PathPayments  = "/payments"
	PathRealtime  = "/realtime"
)

// addQuoteRoutes registers the quote pipeline. Visibility is enforced by the
// caller's scope inside the use cases, so no role gate is applied here.
func addQuoteRoutes(rg *gin.RouterGroup, quoteHandler *handlers.QuoteHandler, paymentHandler *handlers.QuotePaymentHandler, realtimeHandler *handlers.RealtimeHandler) {
	quotes := rg.Group(PathQuotes)
	{
		quotes.POST("", quoteHandler.CreateQuote)
		quotes.GET("", quoteHandler.ListQuotes)
		quotes.GET("/:id", quoteHandler.GetQuote)
		quotes.PATCH("/:id", quoteHandler.UpdateQuote)
		quotes.DELETE("/:id", quoteHandler.DeleteQuote)
		quotes.PATCH("/:id/status", quoteHandler.UpdateQuoteStatus)
		quotes.PATCH("/:id/items/:item_id", quoteHandler.UpdateItemPricing)
		quotes.POST("/:id/send", quoteHandler.SendToVendor)
		quotes.GET("/:id/pricing", quoteHandler.GetQuotePricing)
	}

	rg.GET(PathDashboard+"/pipeline", quoteHandler.GetPipeline)

	payments := rg.Group(PathPayments)
	{
		payments.POST("/:quote_id", paymentHandler.PayQuote)
		payments.GET("/:quote_id", paymentHandler.GetLatestPayment)
	}

	rg.GET(PathRealtime+"/quotes", realtimeHandler.StreamQuotes)
}
