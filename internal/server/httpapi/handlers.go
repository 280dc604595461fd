// Package httpapi exposes the reconciliation layer over HTTP. Handlers are
// thin: binding, auth context and status codes live here, every decision
// about merging and degradation lives in the services.
package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/estately/internal/common"
	"github.com/dmitrijs2005/estately/internal/filter"
	"github.com/dmitrijs2005/estately/internal/logging"
	"github.com/dmitrijs2005/estately/internal/models"
	"github.com/dmitrijs2005/estately/internal/server/services"
	"github.com/gin-gonic/gin"
)

// PropertyService is the listing surface the handlers depend on.
type PropertyService interface {
	ListPublished(ctx context.Context) []models.Property
	Get(ctx context.Context, id string) (*models.Property, error)
	Insert(ctx context.Context, p models.Property, ownerID string) (*models.Property, error)
	Delete(ctx context.Context, id string) services.DeleteResult
	ListByOwner(ctx context.Context, ownerID string) []models.Property
	Search(ctx context.Context, spec filter.Spec) []models.Property
}

// PaymentService is the ledger surface the handlers depend on.
type PaymentService interface {
	RecordPayment(ctx context.Context, userID, propertyID string, amount float64) error
	ListPayments(ctx context.Context, userID string, isAdmin bool) ([]models.Payment, error)
}

// ImageSigner issues presigned upload URLs for listing photos.
type ImageSigner interface {
	PutURL(ctx context.Context) (key string, url string, err error)
}

// Handlers carries the wired services for the HTTP surface.
type Handlers struct {
	properties PropertyService
	payments   PaymentService
	signer     ImageSigner
	logger     logging.Logger
}

// NewHandlers constructs the handler set.
func NewHandlers(properties PropertyService, payments PaymentService, signer ImageSigner, logger logging.Logger) *Handlers {
	return &Handlers{properties: properties, payments: payments, signer: signer, logger: logger}
}

func (h *Handlers) listProperties(c *gin.Context) {
	c.JSON(http.StatusOK, h.properties.ListPublished(c.Request.Context()))
}

func (h *Handlers) getProperty(c *gin.Context) {
	p, err := h.properties.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handlers) searchProperties(c *gin.Context) {
	var spec filter.Spec
	if err := c.ShouldBindQuery(&spec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.properties.Search(c.Request.Context(), spec))
}

func (h *Handlers) createProperty(c *gin.Context) {
	var p models.Property
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.properties.Insert(c.Request.Context(), p, userID(c))
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create property"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handlers) deleteProperty(c *gin.Context) {
	id := c.Param("id")

	p, err := h.properties.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
		return
	}
	if !isAdmin(c) && p.OwnerID != userID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your listing"})
		return
	}

	c.JSON(http.StatusOK, h.properties.Delete(c.Request.Context(), id))
}

func (h *Handlers) myProperties(c *gin.Context) {
	c.JSON(http.StatusOK, h.properties.ListByOwner(c.Request.Context(), userID(c)))
}

type paymentRequest struct {
	PropertyID string  `json:"property_id" binding:"required"`
	Amount     float64 `json:"amount" binding:"required,gt=0"`
}

func (h *Handlers) createPayment(c *gin.Context) {
	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.payments.RecordPayment(c.Request.Context(), userID(c), req.PropertyID, req.Amount); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not record payment"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "recorded"})
}

func (h *Handlers) listPayments(c *gin.Context) {
	rows, err := h.payments.ListPayments(c.Request.Context(), userID(c), isAdmin(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list payments"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *Handlers) imageUploadURL(c *gin.Context) {
	key, url, err := h.signer.PutURL(c.Request.Context())
	if err != nil {
		h.logger.Warn(c.Request.Context(), "presign failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue upload url"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": key, "upload_url": url})
}
