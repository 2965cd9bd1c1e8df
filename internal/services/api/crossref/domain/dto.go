// Package domain holds DTOs for the crossref http and service contracts
package domain

import (
	"context"

	"telejoin/internal/core/memo"
	pipe "telejoin/internal/services/pipeline/domain"
)

// RunInput is the form half of a run request; the visits workbook travels
// as the multipart file part named "file"
type RunInput struct {
	Date  *string `form:"date,trim" validate:"omitempty,dmy"     example:"05/01/2024"`
	Owner *string `form:"owner"     validate:"omitempty,max=200" example:"Ana"`
}

// RunOutput is one run as returned over http
type RunOutput struct {
	pipe.Result
	Source string `json:"source" example:"visitas.xlsx"`
}

// CacheOutput reports each pipeline cache
type CacheOutput struct {
	Caches map[string]memo.Stats `json:"caches"`
}

// ServicePort is what the handlers call
type ServicePort interface {
	Run(ctx context.Context, payload []byte, source string, in RunInput) (RunOutput, error)
	Telemetry(ctx context.Context) (pipe.TelemetrySummary, error)
	Cache() CacheOutput
	Purge()
}
