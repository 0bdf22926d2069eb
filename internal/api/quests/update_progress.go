package quests

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"linguaapi/internal/api"
	"linguaapi/pkg/schemas"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readconcern"
	"go.mongodb.org/mongo-driver/v2/mongo/writeconcern"
)

// UpdateProgress advances the caller's progress on a quest. When the
// target is reached the gem reward is granted in the same transaction and
// exactly once.
func (h *Handler) UpdateProgress(w http.ResponseWriter, r *http.Request) {

	defer r.Body.Close()
	ctx := r.Context()
	uid := ctx.Value("uid").(bson.ObjectID)
	resParams := &api.ResParams{W: w, R: r}

	questId := chi.URLParam(r, "questId")

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

	var quest schemas.Quest
	err := h.MongoDB.Collection("quests").FindOne(ctx, bson.M{
		"questId":  questId,
		"isActive": true,
	}).Decode(&quest)
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

	// create transaction session
	txSession, err := h.MongoDB.Client().StartSession()
	if err != nil {
		resParams.Code = http.StatusInternalServerError
		resParams.Err = err
		h.Res(resParams)
		return
	}
	defer txSession.EndSession(ctx)
	txOpts := options.Transaction().SetReadConcern(readconcern.Snapshot()).SetWriteConcern(writeconcern.Majority())

	var progress int
	var rewardGranted bool

	usersColl := h.MongoDB.Collection("users")

	_, err = txSession.WithTransaction(ctx, func(txCtx context.Context) (interface{}, error) {

		// make sure a progress entry exists
		if _, err := usersColl.UpdateOne(txCtx,
			bson.M{
				"_id":                   uid,
				"questProgress.questId": bson.M{"$ne": questId},
			},
			bson.M{"$push": bson.M{"questProgress": schemas.QuestProgress{QuestId: questId}}},
		); err != nil {
			return nil, err
		}

		// advance progress
		var updated schemas.User
		if err := usersColl.FindOneAndUpdate(txCtx,
			bson.M{"_id": uid},
			bson.M{"$inc": bson.M{"questProgress.$[q].progress": reqData.Amount}},
			options.FindOneAndUpdate().
				SetArrayFilters([]interface{}{bson.M{"q.questId": questId}}).
				SetReturnDocument(options.After),
		).Decode(&updated); err != nil {
			return nil, err
		}
		for _, p := range updated.QuestProgress {
			if p.QuestId == questId {
				progress = p.Progress
			}
		}

		// grant the reward once when the target is reached
		if progress >= quest.Target {
			now := time.Now().UTC()
			res, err := usersColl.UpdateOne(txCtx,
				bson.M{
					"_id": uid,
					"questProgress": bson.M{"$elemMatch": bson.M{
						"questId":       questId,
						"progress":      bson.M{"$gte": quest.Target},
						"rewardClaimed": false,
					}},
				},
				bson.M{
					"$set": bson.M{
						"questProgress.$.completedAt":   now,
						"questProgress.$.rewardClaimed": true,
					},
					"$inc": bson.M{"gems": quest.RewardGems},
				},
			)
			if err != nil {
				return nil, err
			}
			rewardGranted = res.ModifiedCount > 0
		}

		return nil, nil

	}, txOpts)

	if err != nil {
		resParams.Code = http.StatusInternalServerError
		resParams.Err = err
		h.Res(resParams)
		return
	}

	resParams.ResData = &struct {
		QuestId       string `json:"questId"`
		Progress      int    `json:"progress"`
		Target        int    `json:"target"`
		RewardGranted bool   `json:"rewardGranted"`
		RewardGems    int    `json:"rewardGems"`
	}{
		QuestId:       questId,
		Progress:      progress,
		Target:        quest.Target,
		RewardGranted: rewardGranted,
		RewardGems:    quest.RewardGems,
	}
	resParams.Code = http.StatusOK
	h.Res(resParams)

}
