package handlers

import (
	"io"
	"net/http"

	"bcal/utils"

	"github.com/gin-gonic/gin"
)

// maxWebhookBody bounds Stripe webhook payloads.
const maxWebhookBody = 65536

// StripeWebhookHandler verifies and applies billing events. Served outside
// tenant resolution because Stripe calls the bare API host.
func (hb *HandlerBundle) StripeWebhookHandler(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "unreadable payload", err.Error())
		return
	}

	if err := hb.Billing.HandleWebhook(payload, c.GetHeader("Stripe-Signature")); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "webhook rejected", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}
