package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"model-inference-app/internal/adapters/primary/http/dto"
)

// Index renders the browser page. It always returns 200: a missing model is
// shown as a warning, not an error page.
func (h *Handler) Index(c *gin.Context) {
	acq := h.inferenceSvc.Describe(c.Request.Context())

	c.HTML(http.StatusOK, "index.html", gin.H{
		"Model":   dto.ToModelStatusResponse(acq),
		"Notices": dto.ToListNoticesResponse(h.notices.List()).Items,
	})
}

// Health reports liveness. The app stays up without a model, and a probe
// never starts or waits on acquisition.
func (h *Handler) Health(c *gin.Context) {
	acq := h.inferenceSvc.Status()
	c.JSON(http.StatusOK, gin.H{
		"status":          "ok",
		"model_available":      acq.Available(),
		"acquisition_complete": acq != nil,
	})
}
