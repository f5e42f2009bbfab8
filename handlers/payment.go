package handlers

import (
	"net/http"

	payment "voyago/services/payment"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentHandler exposes checkout initiation and confirmation endpoints.
type PaymentHandler struct {
	Payments payment.Service
	Logger   *zap.Logger
}

func NewPaymentHandler(svc payment.Service, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{Payments: svc, Logger: logger}
}

// InitiatePayment opens a checkout session for a booking and returns the
// redirect URL.
func (h *PaymentHandler) InitiatePayment(c *gin.Context) {
	var input struct {
		Method string `json:"method"`
	}
	// Body is optional; an empty method defaults downstream.
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}
	}

	result, err := h.Payments.Initiate(c.Request.Context(), c.Param("id"), input.Method)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ConfirmPayment reconciles a checkout session against the processor. Safe
// to call repeatedly; replays return the settled state without side effects.
func (h *PaymentHandler) ConfirmPayment(c *gin.Context) {
	result, err := h.Payments.Confirm(c.Request.Context(), c.Param("sessionRef"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
