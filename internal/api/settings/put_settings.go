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

// PutSettings replaces the active document: creates from defaults when
// absent, otherwise merges the supplied sections one level deep and saves
// with a version compare-and-swap so concurrent writers cannot silently
// overwrite each other.
func (h *Handler) PutSettings(w http.ResponseWriter, r *http.Request) {

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

	settingsColl := h.MongoDB.Collection("payment_settings")
	now := time.Now().UTC()

	var existing schemas.PaymentSettings
	err := settingsColl.FindOne(ctx, bson.M{"isActive": true}).Decode(&existing)
	if errors.Is(err, mongo.ErrNoDocuments) {

		created := api.DefaultPaymentSettings(now)
		if err := applySections(created, sections); err != nil {
			resParams.Code = http.StatusBadRequest
			resParams.Err = err
			h.Res(resParams)
			return
		}
		if _, err := settingsColl.InsertOne(ctx, created); err != nil {
			resParams.Code = http.StatusInternalServerError
			resParams.Err = err
			h.Res(resParams)
			return
		}
		resParams.ResData = maskSecrets(*created)
		resParams.Code = http.StatusCreated
		h.Res(resParams)
		return

	} else if err != nil {
		resParams.Code = http.StatusInternalServerError
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
	merged.Mtime = now

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
		// another writer bumped the version first
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
