package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"linguaapi/internal/api"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {

	defer r.Body.Close()
	ctx := r.Context()
	uid := ctx.Value("uid").(bson.ObjectID)
	resParams := &api.ResParams{W: w, R: r}

	var reqData struct {
		Username string `json:"username" validate:"omitempty,username"`
		Locale   string `json:"locale" validate:"omitempty,bcp47_language_tag"`
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

	// normalize
	reqData.Username = strings.TrimSpace(reqData.Username)

	if err := h.Validate.Struct(&reqData); err != nil {
		resParams.Code = http.StatusBadRequest
		resParams.Err = err
		h.Res(resParams)
		return
	}

	if reqData.Username == "" && reqData.Locale == "" {
		resParams.Code = http.StatusBadRequest
		resParams.Err = errors.New("no fields to update")
		h.Res(resParams)
		return
	}

	usersColl := h.MongoDB.Collection("users")

	if reqData.Username != "" {

		// check that username doesn't exist
		err := usersColl.FindOne(ctx, bson.M{
			"username": reqData.Username,
			"_id":      bson.M{"$ne": uid},
		}).Err()
		if err == nil {
			resParams.ResData = &struct {
				UsernameConflict bool `json:"usernameConflict"`
			}{UsernameConflict: true}
			resParams.Code = http.StatusConflict
			h.Res(resParams)
			return
		} else if !errors.Is(err, mongo.ErrNoDocuments) {
			resParams.Code = http.StatusInternalServerError
			resParams.Err = err
			h.Res(resParams)
			return
		}

		// only allow username change every 14 days
		cutoff := time.Now().UTC().Add(-14 * 24 * time.Hour)
		res, err := usersColl.UpdateOne(ctx,
			bson.M{
				"_id":            uid,
				"unameChangedAt": bson.M{"$lt": cutoff},
			},
			bson.M{
				"$set":         bson.M{"username": reqData.Username},
				"$currentDate": bson.M{"unameChangedAt": true},
			},
		)
		if err != nil {
			resParams.Code = http.StatusInternalServerError
			resParams.Err = err
			h.Res(resParams)
			return
		}
		if res.MatchedCount == 0 {
			resParams.ResData = &struct {
				RateLimited bool `json:"rateLimited"`
			}{RateLimited: true}
			resParams.Code = http.StatusTooManyRequests
			h.Res(resParams)
			return
		}

	}

	if reqData.Locale != "" {
		if _, err := usersColl.UpdateOne(ctx,
			bson.M{"_id": uid},
			bson.M{"$set": bson.M{"locale": reqData.Locale}},
		); err != nil {
			resParams.Code = http.StatusInternalServerError
			resParams.Err = err
			h.Res(resParams)
			return
		}
	}

	resParams.Code = http.StatusOK
	h.Res(resParams)

}
