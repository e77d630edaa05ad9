package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"zapshift/internal/domain"
	"zapshift/internal/middleware"
	"zapshift/internal/service"
)

// PaymentHandler handles HTTP requests for checkout, payment confirmation and
// payment history.
type PaymentHandler struct {
	checkoutService     *service.CheckoutService
	confirmationService *service.ConfirmationService
	paymentService      *service.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(
	checkoutService *service.CheckoutService,
	confirmationService *service.ConfirmationService,
	paymentService *service.PaymentService,
) *PaymentHandler {
	return &PaymentHandler{
		checkoutService:     checkoutService,
		confirmationService: confirmationService,
		paymentService:      paymentService,
	}
}

// CheckoutRequest is the HTTP request body for starting a checkout.
type CheckoutRequest struct {
	Cost        float64 `json:"cost"`
	ParcelName  string  `json:"parcelName"`
	ParcelID    string  `json:"parcelId"`
	SenderEmail string  `json:"senderEmail"`
}

// CheckoutResponse carries the hosted checkout page URL.
type CheckoutResponse struct {
	URL string `json:"url"`
}

// PaymentRecordResponse is the HTTP representation of a payment record.
type PaymentRecordResponse struct {
	ID            string  `json:"id"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	CustomerEmail string  `json:"customerEmail"`
	ParcelID      string  `json:"parcelId"`
	ParcelName    string  `json:"parcelName,omitempty"`
	TransactionID string  `json:"transactionId"`
	Status        string  `json:"paymentStatus"`
	PaidAt        string  `json:"paidAt"`
	TrackingID    string  `json:"trackingId"`
}

func toPaymentRecordResponse(p *domain.PaymentRecord) PaymentRecordResponse {
	return PaymentRecordResponse{
		ID:            p.ID,
		Amount:        p.Amount,
		Currency:      p.Currency,
		CustomerEmail: p.CustomerEmail,
		ParcelID:      p.ParcelID,
		ParcelName:    p.ParcelName,
		TransactionID: p.TransactionID,
		Status:        p.Status,
		PaidAt:        p.PaidAt.Format(time.RFC3339),
		TrackingID:    p.TrackingID,
	}
}

// CreateCheckout handles POST /payment-checkout-system
func (h *PaymentHandler) CreateCheckout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	url, err := h.checkoutService.CreateCheckout(c.Request.Context(), service.CreateCheckoutRequest{
		Cost:        req.Cost,
		ParcelName:  req.ParcelName,
		ParcelID:    req.ParcelID,
		SenderEmail: req.SenderEmail,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, CheckoutResponse{URL: url})
}

// CreateCheckoutLegacy handles POST /payment-checkout
func (h *PaymentHandler) CreateCheckoutLegacy(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	url, err := h.checkoutService.CreateCheckoutLegacy(c.Request.Context(), service.CreateCheckoutRequest{
		Cost:        req.Cost,
		ParcelName:  req.ParcelName,
		ParcelID:    req.ParcelID,
		SenderEmail: req.SenderEmail,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, CheckoutResponse{URL: url})
}

// ConfirmPayment handles PATCH /payment-success?session_id=
func (h *PaymentHandler) ConfirmPayment(c *gin.Context) {
	sessionID := c.Query("session_id")

	result, err := h.confirmationService.Confirm(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, err)
		return
	}

	if result.AlreadyRecorded {
		respondJSON(c, http.StatusOK, gin.H{
			"message":       "already exist",
			"transactionId": result.TransactionID,
			"trackingId":    result.TrackingID,
		})
		return
	}

	if !result.Success {
		respondJSON(c, http.StatusOK, gin.H{"success": false})
		return
	}

	respondJSON(c, http.StatusOK, gin.H{
		"success":       true,
		"parcelUpdated": result.ParcelUpdated,
		"trackingId":    result.TrackingID,
		"transactionId": result.TransactionID,
		"paymentInfo":   toPaymentRecordResponse(result.Payment),
	})
}

// History handles GET /payments?email=
//
// Runs behind RequireAuth; the requested email must match the verified one.
func (h *PaymentHandler) History(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		// Default to the caller's own history.
		email = middleware.VerifiedEmail(c)
	}

	payments, err := h.paymentService.History(c.Request.Context(), email, middleware.VerifiedEmail(c))
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"message": "forbidden access"})
			return
		}
		respondError(c, err)
		return
	}

	response := make([]PaymentRecordResponse, 0, len(payments))
	for _, p := range payments {
		response = append(response, toPaymentRecordResponse(p))
	}
	respondJSON(c, http.StatusOK, response)
}
