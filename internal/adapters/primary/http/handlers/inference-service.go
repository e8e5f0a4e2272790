package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"model-inference-app/internal/adapters/primary/http/dto"
	"model-inference-app/internal/adapters/primary/http/middleware"
)

func (h *Handler) GetModelStatus(c *gin.Context) {
	acq := h.inferenceSvc.Describe(c.Request.Context())
	c.JSON(http.StatusOK, dto.ToModelStatusResponse(acq))
}

func (h *Handler) Predict(c *gin.Context) {
	var req dto.PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pred, err := h.inferenceSvc.Predict(c.Request.Context(), req.Inputs)
	if err != nil {
		log.WithError(err).
			WithField("request_id", middleware.RequestIDFrom(c.Request.Context())).
			Warn("predict failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPredictResponse(pred))
}
