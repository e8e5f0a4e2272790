package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"model-inference-app/internal/adapters/primary/http/dto"
)

func (h *Handler) ListNotices(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToListNoticesResponse(h.notices.List()))
}
