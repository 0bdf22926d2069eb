package settings

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"linguaapi/internal/api"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// PostSettings creates the active settings document from a single tab's
// payload. Conflicts when an active document already exists.
func (h *Handler) PostSettings(w http.ResponseWriter, r *http.Request) {

	defer r.Body.Close()
	ctx := r.Context()
	resParams := &api.ResParams{W: w, R: r}

	var reqData struct {
		Tab      string          `json:"tab" validate:"required,oneof=general providers currencies regional webhooks security notifications"`
		Settings json.RawMessage `json:"settings" validate:"required"`
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&reqData); err != nil {
		resParams.Code = http.StatusBadRequest
		resParams.Err = err
		h.Res(resParams)
		return
	}
	resParams.ReqData = reqData
	if err := h.Validate.Struct(&reqData); err != nil {
		resParams.Code = http.StatusBadRequest
		resParams.Err = err
		h.Res(resParams)
		return
	}

	settingsColl := h.MongoDB.Collection("payment_settings")

	// reject when an active document already exists
	err := settingsColl.FindOne(ctx, bson.M{"isActive": true}).Err()
	if err == nil {
		resParams.ResData = &struct {
			AlreadyExists bool `json:"alreadyExists"`
		}{AlreadyExists: true}
		resParams.Code = http.StatusConflict
		h.Res(resParams)
		return
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		resParams.Code = http.StatusInternalServerError
		resParams.Err = err
		h.Res(resParams)
		return
	}

	created := api.DefaultPaymentSettings(time.Now().UTC())
	if err := applySections(created, map[string]json.RawMessage{reqData.Tab: reqData.Settings}); err != nil {
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

}
