package http

import (
	"net/http"

	"github.com/MKhiriev/go-project-tracker/internal/app"
	"github.com/MKhiriev/go-project-tracker/internal/logger"
	"github.com/MKhiriev/go-project-tracker/internal/utils"
)

// notFound answers unknown paths and unsupported methods alike with a 404
// envelope, so a wrong method does not reveal that the path exists.
func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	if _, err := utils.WriteFailure(w, app.MsgNotFound, nil, http.StatusNotFound); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.notFound").Msg("error writing response")
	}
}
