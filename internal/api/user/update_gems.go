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

// UpdateGems adjusts the caller's gem balance by a signed amount. Decrements
// are guarded in the filter so the balance can never go negative and a
// request with insufficient funds matches nothing.
func (h *Handler) UpdateGems(w http.ResponseWriter, r *http.Request) {

	defer r.Body.Close()
	ctx := r.Context()
	uid := ctx.Value("uid").(bson.ObjectID)
	resParams := &api.ResParams{W: w, R: r}

	// callers may only mutate their own balance
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
		filter["gems"] = bson.M{"$gte": reqData.Amount}
		update = bson.M{"$inc": bson.M{"gems": -reqData.Amount}}
	} else {
		// pipeline update so the balance never exceeds the configured cap
		settings, err := h.GetActiveSettings(ctx)
		if err != nil {
			resParams.Code = http.StatusInternalServerError
			resParams.Err = err
			h.Res(resParams)
			return
		}
		update = mongo.Pipeline{
			{{Key: "$set", Value: bson.M{
				"gems": bson.M{"$min": bson.A{
					bson.M{"$add": bson.A{"$gems", reqData.Amount}},
					settings.Currencies.Gems.MaxBalance,
				}},
			}}},
		}
	}

	var updated struct {
		Gems int `bson:"gems"`
	}
	err := h.MongoDB.Collection("users").FindOneAndUpdate(ctx,
		filter,
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// user exists (authenticated), so the guard failed
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
		Gems int `json:"gems"`
	}{Gems: updated.Gems}
	resParams.Code = http.StatusOK
	h.Res(resParams)

}
