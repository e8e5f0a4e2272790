package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"model-inference-app/internal/adapters/primary/http/dto"
	"model-inference-app/internal/adapters/secondary/noticeboard"
	"model-inference-app/internal/core/domain"
	"model-inference-app/internal/core/services"
	"model-inference-app/internal/testutil"
)

func setupRouter(acq *domain.Acquisition) (*noticeboard.Board, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	models := new(testutil.MockModelProvider)
	models.On("Acquire", mock.Anything).Return(acq)
	models.On("Status").Return(acq)

	board := noticeboard.New()
	h := New(services.NewInferenceService(models, board), board)

	r := gin.New()
	h.RegisterUI(r)
	r.GET("/healthz", h.Health)
	api := r.Group("/api/v1")
	h.RegisterRoutes(api)

	return board, r
}

func availableAcquisition() *domain.Acquisition {
	return &domain.Acquisition{
		Model: &domain.LinearModel{
			Name:         "price",
			FeatureNames: []string{"rooms", "area"},
			Coefficients: []float64{10, 2},
			Intercept:    5,
		},
		Source: domain.ModelSourceLocal,
	}
}

func absentAcquisition() *domain.Acquisition {
	return &domain.Acquisition{
		Source: domain.ModelSourceNone,
		Reason: services.UnavailableMessage("model.pkl"),
		Path:   "model.pkl",
	}
}

func postJSON(r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req, _ := http.NewRequest("POST", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetModelStatus(t *testing.T) {
	_, r := setupRouter(availableAcquisition())

	req, _ := http.NewRequest("GET", "/api/v1/model", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp dto.ModelStatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Available)
	assert.Equal(t, []string{"rooms", "area"}, resp.Features)
	assert.Equal(t, "price", resp.Name)
}

func TestPredict(t *testing.T) {
	_, r := setupRouter(availableAcquisition())

	w := postJSON(r, "/api/v1/predict", map[string]interface{}{
		"inputs": map[string]float64{"rooms": 3, "area": 50},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	var resp dto.PredictResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, 135.0, resp.Prediction, 1e-9)
	assert.Equal(t, "linear-regression", resp.ModelKind)
}

func TestPredict_MissingFeature(t *testing.T) {
	_, r := setupRouter(availableAcquisition())

	w := postJSON(r, "/api/v1/predict", map[string]interface{}{
		"inputs": map[string]float64{"rooms": 3},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "area")
}

func TestPredict_EmptyInputs(t *testing.T) {
	_, r := setupRouter(availableAcquisition())

	w := postJSON(r, "/api/v1/predict", map[string]interface{}{"inputs": map[string]float64{}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPredict_InvalidBody(t *testing.T) {
	_, r := setupRouter(availableAcquisition())

	req, _ := http.NewRequest("POST", "/api/v1/predict", bytes.NewReader([]byte("{")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPredict_ModelUnavailable(t *testing.T) {
	board, r := setupRouter(absentAcquisition())

	w := postJSON(r, "/api/v1/predict", map[string]interface{}{
		"inputs": map[string]float64{"rooms": 3},
	})

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	notices := board.List()
	require.Len(t, notices, 1)
	assert.Equal(t, domain.NoticeModelUnavailable, notices[0].Kind)
}

func TestListNotices(t *testing.T) {
	board, r := setupRouter(availableAcquisition())
	_ = board.Notify(context.Background(), domain.NewNotice(domain.NoticeDownloadFailed, domain.SeverityError, "Failed to download model from URL: 404"))

	req, _ := http.NewRequest("GET", "/api/v1/notices", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp dto.ListNoticesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "download_failed", resp.Items[0].Kind)
	assert.Equal(t, "error", resp.Items[0].Severity)
}

func TestIndex_Available(t *testing.T) {
	_, r := setupRouter(availableAcquisition())

	req, _ := http.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `name="rooms"`)
	assert.Contains(t, w.Body.String(), "linear-regression")
}

func TestIndex_Unavailable(t *testing.T) {
	_, r := setupRouter(absentAcquisition())

	req, _ := http.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Model not available")
	assert.Contains(t, w.Body.String(), `data-kind="model_unavailable"`)
	assert.NotContains(t, w.Body.String(), `id="predict"`)
}

func TestHealth(t *testing.T) {
	_, r := setupRouter(absentAcquisition())

	req, _ := http.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","model_available":false,"acquisition_complete":true}`, w.Body.String())
}

func TestHealth_DoesNotTriggerAcquisition(t *testing.T) {
	gin.SetMode(gin.TestMode)
	models := new(testutil.MockModelProvider)
	models.On("Status").Return(nil)
	h := New(services.NewInferenceService(models, noticeboard.New()), noticeboard.New())
	r := gin.New()
	r.GET("/healthz", h.Health)

	req, _ := http.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","model_available":false,"acquisition_complete":false}`, w.Body.String())
	models.AssertNotCalled(t, "Acquire", mock.Anything)
}

func TestIndex_UnavailableAfterErrorKeepsGuidance(t *testing.T) {
	board, r := setupRouter(&domain.Acquisition{
		Source: domain.ModelSourceRemote,
		Err:    domain.ErrDownload,
		Reason: "Failed to download model from URL: 404",
		Path:   "model.pkl",
	})
	_ = board.Notify(context.Background(), domain.NewNotice(domain.NoticeDownloadFailed, domain.SeverityError, "Failed to download model from URL: 404"))

	req, _ := http.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	notices := board.List()
	require.Len(t, notices, 2)
	assert.Equal(t, domain.NoticeDownloadFailed, notices[0].Kind)
	assert.Equal(t, domain.NoticeModelUnavailable, notices[1].Kind)
	assert.Equal(t, services.UnavailableMessage("model.pkl"), notices[1].Message)
	assert.Equal(t, 1, strings.Count(w.Body.String(), "Failed to download model from URL: 404"))
}
