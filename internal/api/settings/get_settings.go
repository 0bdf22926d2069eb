package settings

import (
	"errors"
	"net/http"
	"strconv"

	"linguaapi/internal/api"
)

// GetSettings returns the active settings document, creating defaults
// exactly once on first access. Secrets are masked unless
// includeSecrets=true. A version query param returns 404 unless it names
// the current version; old versions are not retained.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {

	ctx := r.Context()
	resParams := &api.ResParams{W: w, R: r}

	settings, err := h.GetActiveSettings(ctx)
	if err != nil {
		resParams.Code = http.StatusInternalServerError
		resParams.Err = err
		h.Res(resParams)
		return
	}

	if versionStr := r.URL.Query().Get("version"); versionStr != "" {
		version, err := strconv.Atoi(versionStr)
		if err != nil {
			resParams.Err = err
			resParams.Code = http.StatusBadRequest
			h.Res(resParams)
			return
		}
		if version != settings.Version {
			resParams.Err = errors.New("settings version not found")
			resParams.Code = http.StatusNotFound
			h.Res(resParams)
			return
		}
	}

	if r.URL.Query().Get("includeSecrets") != "true" {
		settings = maskSecrets(*settings)
	}

	resParams.ResData = settings
	resParams.Code = http.StatusOK
	h.Res(resParams)

}
