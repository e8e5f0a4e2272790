package dto

import (
	"time"

	"model-inference-app/internal/core/domain"
)

type ModelStatusResponse struct {
	Available   bool     `json:"available"`
	Source      string   `json:"source"`
	Kind        string   `json:"kind,omitempty"`
	Name        string   `json:"name,omitempty"`
	Features    []string `json:"features"`
	Reason      string   `json:"reason,omitempty"`
	Bytes       int64    `json:"bytes"`
	CompletedAt string   `json:"completed_at,omitempty"`
}

func ToModelStatusResponse(acq *domain.Acquisition) ModelStatusResponse {
	resp := ModelStatusResponse{
		Source:   string(domain.ModelSourceNone),
		Features: []string{},
	}
	if acq == nil {
		return resp
	}

	resp.Source = string(acq.Source)
	resp.Reason = acq.Reason
	resp.Bytes = acq.Bytes
	if !acq.CompletedAt.IsZero() {
		resp.CompletedAt = acq.CompletedAt.Format(time.RFC3339)
	}

	if acq.Available() {
		resp.Available = true
		resp.Kind = acq.Model.Kind()
		resp.Features = acq.Model.Features()
		if lm, ok := acq.Model.(*domain.LinearModel); ok {
			resp.Name = lm.Name
		}
	}
	return resp
}

type PredictRequest struct {
	Inputs map[string]float64 `json:"inputs" binding:"required"`
}

type PredictResponse struct {
	Prediction float64 `json:"prediction"`
	ModelKind  string  `json:"model_kind"`
	ModelName  string  `json:"model_name,omitempty"`
}

func ToPredictResponse(p *domain.Prediction) PredictResponse {
	return PredictResponse{
		Prediction: p.Value,
		ModelKind:  p.ModelKind,
		ModelName:  p.ModelName,
	}
}
