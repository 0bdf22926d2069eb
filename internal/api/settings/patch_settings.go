package settings

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"linguaapi/internal/api"
	"linguaapi/pkg/schemas"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// PatchSettings merges named sections into the existing active document.
// Unlike PUT it never creates: a missing document is a 404 and nothing is
// written.
func (h *Handler) PatchSettings(w http.ResponseWriter, r *http.Request) {

	defer r.Body.Close()
	ctx := r.Context()
	resParams := &api.ResParams{W: w, R: r}

	var sections map[string]json.RawMessage
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(&sections); err != nil {
		resParams.Code = http.StatusBadRequest
		resParams.Err = err
		h.Res(resParams)
		return
	}
	resParams.ReqData = sections

	if len(sections) == 0 {
		resParams.Err = errors.New("no sections to patch")
		resParams.Code = http.StatusBadRequest
		h.Res(resParams)
		return
	}

	settingsColl := h.MongoDB.Collection("payment_settings")

	var existing schemas.PaymentSettings
	err := settingsColl.FindOne(ctx, bson.M{"isActive": true}).Decode(&existing)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			resParams.Code = http.StatusNotFound
		} else {
			resParams.Code = http.StatusInternalServerError
		}
		resParams.Err = err
		h.Res(resParams)
		return
	}

	merged := existing
	if err := applySections(&merged, sections); err != nil {
		resParams.Code = http.StatusBadRequest
		resParams.Err = err
		h.Res(resParams)
		return
	}
	merged.Version = existing.Version + 1
	merged.Mtime = time.Now().UTC()

	res, err := settingsColl.ReplaceOne(ctx, bson.M{
		"_id":     existing.Id,
		"version": existing.Version,
	}, &merged)
	if err != nil {
		resParams.Code = http.StatusInternalServerError
		resParams.Err = err
		h.Res(resParams)
		return
	}
	if res.MatchedCount == 0 {
		resParams.ResData = &struct {
			StaleVersion bool `json:"staleVersion"`
		}{StaleVersion: true}
		resParams.Code = http.StatusConflict
		h.Res(resParams)
		return
	}

	resParams.ResData = maskSecrets(merged)
	resParams.Code = http.StatusOK
	h.Res(resParams)

}
