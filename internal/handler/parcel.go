package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"zapshift/internal/domain"
	internalRedis "zapshift/internal/redis"
	"zapshift/internal/repository"
)

// ParcelHandler handles HTTP requests for parcels.
type ParcelHandler struct {
	parcelRepo repository.ParcelRepository
	cache      internalRedis.ParcelCacheInterface
}

// NewParcelHandler creates a new ParcelHandler. cache may be nil.
func NewParcelHandler(parcelRepo repository.ParcelRepository, cache internalRedis.ParcelCacheInterface) *ParcelHandler {
	return &ParcelHandler{
		parcelRepo: parcelRepo,
		cache:      cache,
	}
}

// CreateParcelRequest is the HTTP request body for submitting a parcel.
type CreateParcelRequest struct {
	SenderEmail string  `json:"senderEmail"`
	Name        string  `json:"parcelName"`
	Cost        float64 `json:"cost"`
}

// ParcelResponse is the HTTP response for parcel data.
type ParcelResponse struct {
	ID            string  `json:"id"`
	SenderEmail   string  `json:"senderEmail"`
	Name          string  `json:"parcelName"`
	Cost          float64 `json:"cost"`
	PaymentStatus string  `json:"paymentStatus"`
	TrackingID    string  `json:"trackingId,omitempty"`
	CreatedAt     string  `json:"createdAt"`
}

func toParcelResponse(p *domain.Parcel) ParcelResponse {
	return ParcelResponse{
		ID:            p.ID,
		SenderEmail:   p.SenderEmail,
		Name:          p.Name,
		Cost:          p.Cost,
		PaymentStatus: string(p.PaymentStatus),
		TrackingID:    p.TrackingID,
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
	}
}

// List handles GET /parcels
//
// Optionally filtered by sender email, newest first.
func (h *ParcelHandler) List(c *gin.Context) {
	email := c.Query("email")

	parcels, err := h.parcelRepo.List(c.Request.Context(), email)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]ParcelResponse, 0, len(parcels))
	for _, p := range parcels {
		response = append(response, toParcelResponse(p))
	}
	respondJSON(c, http.StatusOK, response)
}

// Create handles POST /parcels
func (h *ParcelHandler) Create(c *gin.Context) {
	var req CreateParcelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.SenderEmail == "" || req.Name == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "senderEmail and parcelName are required"})
		return
	}
	if req.Cost <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "cost must be positive"})
		return
	}

	parcel := &domain.Parcel{
		ID:            uuid.New().String(),
		SenderEmail:   req.SenderEmail,
		Name:          req.Name,
		Cost:          req.Cost,
		PaymentStatus: domain.ParcelUnpaid,
		CreatedAt:     time.Now().UTC(),
	}

	if err := h.parcelRepo.Create(c.Request.Context(), parcel); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toParcelResponse(parcel))
}

// Get handles GET /parcels/:id
func (h *ParcelHandler) Get(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	if h.cache != nil {
		if cached, err := h.cache.GetParcel(ctx, id); err == nil && cached != nil {
			respondJSON(c, http.StatusOK, ParcelResponse{
				ID:            cached.ID,
				SenderEmail:   cached.SenderEmail,
				Name:          cached.Name,
				Cost:          cached.Cost,
				PaymentStatus: cached.PaymentStatus,
				TrackingID:    cached.TrackingID,
				CreatedAt:     cached.CreatedAt,
			})
			return
		}
	}

	parcel, err := h.parcelRepo.GetByID(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}

	if h.cache != nil {
		_ = h.cache.SetParcel(ctx, &internalRedis.CachedParcel{
			ID:            parcel.ID,
			SenderEmail:   parcel.SenderEmail,
			Name:          parcel.Name,
			Cost:          parcel.Cost,
			PaymentStatus: string(parcel.PaymentStatus),
			TrackingID:    parcel.TrackingID,
			CreatedAt:     parcel.CreatedAt.Format(time.RFC3339),
		})
	}

	respondJSON(c, http.StatusOK, toParcelResponse(parcel))
}

// Delete handles DELETE /parcels/:id
func (h *ParcelHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.parcelRepo.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	if h.cache != nil {
		_ = h.cache.InvalidateParcel(c.Request.Context(), id)
	}

	respondJSON(c, http.StatusOK, gin.H{"deleted": true})
}
