// Package catalog exposes the public event browsing endpoints.
package catalog

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gately/internal/application/catalog/usecases"
	"gately/internal/shared/logger"
	"gately/internal/shared/utils"
)

type EventHandler struct {
	listEventsUC ListEventsExecutor
	getEventUC   GetEventExecutor
	logger       logger.Interface
}

func NewEventHandler(listEventsUC ListEventsExecutor, getEventUC GetEventExecutor) *EventHandler {
	return &EventHandler{
		listEventsUC: listEventsUC,
		getEventUC:   getEventUC,
		logger:       logger.NewLogger(),
	}
}

// ListEvents handles GET /events
func (h *EventHandler) ListEvents(c *gin.Context) {
	result, err := h.listEventsUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result.Events)
}

// GetEvent handles GET /events/:slug. Numeric values are treated as IDs so
// both forms of link resolve.
func (h *EventHandler) GetEvent(c *gin.Context) {
	raw := c.Param("slug")

	query := usecases.GetEventQuery{}
	if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
		query.ID = uint(id)
	} else {
		query.Slug = raw
	}

	result, err := h.getEventUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
