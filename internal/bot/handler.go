package bot

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bellevuewa/chatbot-multilingual/internal/activity"
	"github.com/bellevuewa/chatbot-multilingual/internal/content"
	"github.com/bellevuewa/chatbot-multilingual/internal/translator"
	"github.com/bellevuewa/chatbot-multilingual/pkg/common"
)

// Handler handles HTTP requests for conversation turns
type Handler struct {
	service *Service
}

// NewHandler creates a new bot handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// PostActivity processes one inbound activity and returns the replies
func (h *Handler) PostActivity(c *gin.Context) {
	var act activity.Activity
	if err := c.ShouldBindJSON(&act); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid activity payload")
		return
	}

	replies, err := h.service.ProcessActivity(c.Request.Context(), &act)
	if err != nil {
		h.respondError(c, err)
		return
	}

	common.SuccessResponse(c, replies)
}

// UpdateActivity re-translates an edited activity
func (h *Handler) UpdateActivity(c *gin.Context) {
	var act activity.Activity
	if err := c.ShouldBindJSON(&act); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid activity payload")
		return
	}

	if err := h.service.ProcessUpdateActivity(c.Request.Context(), &act); err != nil {
		h.respondError(c, err)
		return
	}

	common.SuccessResponse(c, &act)
}

func (h *Handler) respondError(c *gin.Context, err error) {
	var serviceErr *translator.ServiceError
	switch {
	case errors.Is(err, content.ErrUnsupportedLocale):
		common.ErrorResponse(c, http.StatusBadRequest, "unsupported locale")
	case errors.As(err, &serviceErr):
		common.ErrorResponse(c, http.StatusBadGateway, "translation service unavailable")
	default:
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to process activity")
	}
}
