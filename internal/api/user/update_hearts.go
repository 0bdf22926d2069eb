package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"linguaapi/internal/api"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// UpdateHearts adjusts the caller's heart balance. Increments clamp to
// maxHearts inside a pipeline update, decrements are guarded in the
// filter. Either way the stored value stays in [0, maxHearts].
func (h *Handler) UpdateHearts(w http.ResponseWriter, r *http.Request) {

	defer r.Body.Close()
	ctx := r.Context()
	uid := ctx.Value("uid").(bson.ObjectID)
	resParams := &api.ResParams{W: w, R: r}

	if chi.URLParam(r, "userId") != uid.Hex() {
		resParams.Err = errors.New("user id mismatch")
		resParams.Code = http.StatusForbidden
		h.Res(resParams)
		return
	}

	action := r.URL.Query().Get("action")
	if action != "inc" && action != "dec" {
		resParams.Err = errors.New("invalid action")
		resParams.Code = http.StatusBadRequest
		h.Res(resParams)
		return
	}

	var reqData struct {
		Amount int `json:"amount" validate:"required,gt=0"`
	}

	// validate request body
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

	filter := bson.M{"_id": uid}
	var update any
	if action == "dec" {
		filter["hearts"] = bson.M{"$gte": reqData.Amount}
		update = bson.M{"$inc": bson.M{"hearts": -reqData.Amount}}
	} else {
		// pipeline update so hearts never exceeds maxHearts
		update = mongo.Pipeline{
			{{Key: "$set", Value: bson.M{
				"hearts": bson.M{"$min": bson.A{
					bson.M{"$add": bson.A{"$hearts", reqData.Amount}},
					"$maxHearts",
				}},
			}}},
		}
	}

	var updated struct {
		Hearts    int `bson:"hearts"`
		MaxHearts int `bson:"maxHearts"`
	}
	err := h.MongoDB.Collection("users").FindOneAndUpdate(ctx,
		filter,
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			resParams.ResData = &struct {
				InsufficientBalance bool `json:"insufficientBalance"`
			}{InsufficientBalance: true}
			resParams.Code = http.StatusConflict
		} else {
			resParams.Code = http.StatusInternalServerError
		}
		resParams.Err = err
		h.Res(resParams)
		return
	}

	resParams.ResData = &struct {
		Hearts    int `json:"hearts"`
		MaxHearts int `json:"maxHearts"`
	}{Hearts: updated.Hearts, MaxHearts: updated.MaxHearts}
	resParams.Code = http.StatusOK
	h.Res(resParams)

}
