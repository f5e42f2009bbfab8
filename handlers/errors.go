package handlers

import (
	"errors"
	"net/http"

	booking "voyago/services/booking"
	payment "voyago/services/payment"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps service error kinds onto HTTP statuses. Anything outside
// the taxonomy is a 500: persistence failures are fatal to the request.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var (
		validationErr   *booking.ValidationError
		bookingNotFound *booking.NotFoundError
		conflictErr     *booking.ConflictError
		notCancellable  *booking.NotCancellableError
		paymentNotFound *payment.NotFoundError
		alreadyPaidErr  *payment.AlreadyPaidError
		notPaidErr      *payment.NotPaidError
		upstreamErr     *payment.UpstreamError
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message})
	case errors.As(err, &bookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": bookingNotFound.Error()})
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, gin.H{
			"error":     "requested dates are not available",
			"conflicts": conflictErr.Conflicts,
		})
	case errors.As(err, &notCancellable):
		c.JSON(http.StatusConflict, gin.H{"error": notCancellable.Error()})
	case errors.As(err, &paymentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": paymentNotFound.Error()})
	case errors.As(err, &alreadyPaidErr):
		c.JSON(http.StatusConflict, gin.H{"error": alreadyPaidErr.Error()})
	case errors.As(err, &notPaidErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": notPaidErr.Error()})
	case errors.As(err, &upstreamErr):
		logger.Error("payment processor failure", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "payment processor unavailable, please retry"})
	default:
		logger.Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
