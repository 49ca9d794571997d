package fraud

import (
	"context"
	"errors"
	"net/http"

	"github.com/fundhub/crowdfunding/pkg/common"
	"github.com/fundhub/crowdfunding/pkg/validation"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// CampaignGetter loads the snapshot for an already-submitted campaign. The
// admin review endpoint uses it; raw-snapshot screening does not.
type CampaignGetter interface {
	GetSnapshot(ctx context.Context, id uuid.UUID) (*CampaignSnapshot, error)
}

// Handler exposes the fraud analysis API to the admin workflow. Persistence
// of results is this layer's concern, and it chooses not to persist: it
// caches in redis and returns the structured result for the approval gate to
// act on.
type Handler struct {
	service   *Service
	campaigns CampaignGetter
	cache     *ResultCache
}

// NewHandler creates a fraud handler
func NewHandler(service *Service, campaigns CampaignGetter, cache *ResultCache) *Handler {
	return &Handler{service: service, campaigns: campaigns, cache: cache}
}

// RegisterRoutes attaches the fraud endpoints to an (already authenticated)
// admin route group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/campaigns/:id/analyze", h.AnalyzeCampaignByID)
	rg.POST("/fraud/analyze", h.AnalyzeSnapshot)
}

// AnalyzeCampaignByID loads a pending campaign and runs the fraud analysis
func (h *Handler) AnalyzeCampaignByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid campaign id")
		return
	}

	snapshot, err := h.campaigns.GetSnapshot(c.Request.Context(), id)
	if err != nil {
		common.ErrorResponse(c, http.StatusNotFound, "campaign not found")
		return
	}

	h.respondWithAnalysis(c, snapshot)
}

// AnalyzeSnapshot scores a raw snapshot before it is persisted
func (h *Handler) AnalyzeSnapshot(c *gin.Context) {
	var snapshot CampaignSnapshot
	if err := c.ShouldBindJSON(&snapshot); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			common.ErrorResponse(c, http.StatusBadRequest, validation.NewValidationError(fieldErrs).Error())
			return
		}
		common.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	h.respondWithAnalysis(c, &snapshot)
}

func (h *Handler) respondWithAnalysis(c *gin.Context, snapshot *CampaignSnapshot) {
	ctx := c.Request.Context()

	if cached := h.cache.Get(ctx, snapshot); cached != nil {
		common.SuccessResponse(c, cached)
		return
	}

	result := h.service.AnalyzeCampaign(ctx, snapshot)
	h.cache.Set(ctx, snapshot, result)

	common.SuccessResponse(c, result)
}
