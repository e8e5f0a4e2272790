package handlers

import (
	"embed"
	"html/template"

	"github.com/gin-gonic/gin"

	ports "model-inference-app/internal/core/ports/output"
	"model-inference-app/internal/core/services"
)

//go:embed templates/*.html
var templateFS embed.FS

type Handler struct {
	inferenceSvc *services.InferenceService
	notices      ports.NoticeReader
}

func New(inferenceSvc *services.InferenceService, notices ports.NoticeReader) *Handler {
	return &Handler{
		inferenceSvc: inferenceSvc,
		notices:      notices,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	// Model
	r.GET("/model", h.GetModelStatus)
	r.POST("/predict", h.Predict)

	// Notices
	r.GET("/notices", h.ListNotices)
}

// RegisterUI installs the HTML templates and the browser page on the engine.
func (h *Handler) RegisterUI(router *gin.Engine) {
	tmpl := template.Must(template.ParseFS(templateFS, "templates/*.html"))
	router.SetHTMLTemplate(tmpl)

	router.GET("/", h.Index)
}
