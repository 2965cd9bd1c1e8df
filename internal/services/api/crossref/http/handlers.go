// Package http provides http transport for crossref runs
package http

import (
	stdhttp "net/http"

	"telejoin/internal/modkit/httpkit"
	"telejoin/internal/services/api/crossref/domain"
)

// FileField is the multipart part carrying the visits workbook
const FileField = "file"

// Register mounts crossref endpoints on the given router
// maxUpload caps the visits workbook; zero disables the cap
func Register(r httpkit.Router, s domain.ServicePort, maxUpload int64) {
	h := &handlers{svc: s, maxUpload: maxUpload}
	httpkit.PostForm(r, "/run", h.run)
	httpkit.Get(r, "/telemetry", h.telemetry)
	httpkit.Get(r, "/cache", h.cache)
	httpkit.Post(r, "/cache/purge", h.purge)
}

type handlers struct {
	svc       domain.ServicePort
	maxUpload int64
}

// swagger:route POST /crossref/run Crossref crossrefRun
// @Summary Join an uploaded visits workbook with telemetry
// @Tags Crossref
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Visits workbook (.xlsx)"
// @Param date formData string false "DD/MM/YYYY"
// @Param owner formData string false "Owner"
// @Success 200 {object} domain.RunOutput "ok, warning set when nothing matched"
// @Router /crossref/run [post]
func (h *handlers) run(r *stdhttp.Request, in domain.RunInput) (any, error) {
	payload, name, err := httpkit.File(r, FileField, h.maxUpload)
	if err != nil {
		return nil, err
	}
	return h.svc.Run(r.Context(), payload, name, in)
}

// swagger:route GET /crossref/telemetry Crossref crossrefTelemetry
// @Summary Telemetry sources summary
// @Tags Crossref
// @Produce json
// @Router /crossref/telemetry [get]
func (h *handlers) telemetry(r *stdhttp.Request) (any, error) {
	return h.svc.Telemetry(r.Context())
}

func (h *handlers) cache(_ *stdhttp.Request) (any, error) {
	return h.svc.Cache(), nil
}

func (h *handlers) purge(_ *stdhttp.Request) (any, error) {
	h.svc.Purge()
	return httpkit.NoContent(), nil
}
