package quests

import (
	"errors"
	"net/http"

	"linguaapi/internal/api"
	"linguaapi/pkg/schemas"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// GetQuests joins active quest definitions with the caller's progress.
func (h *Handler) GetQuests(w http.ResponseWriter, r *http.Request) {

	ctx := r.Context()
	uid := ctx.Value("uid").(bson.ObjectID)
	resParams := &api.ResParams{W: w, R: r}

	var user struct {
		QuestProgress []schemas.QuestProgress `bson:"questProgress"`
	}
	err := h.MongoDB.Collection("users").FindOne(ctx, bson.M{"_id": uid}).Decode(&user)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		resParams.Code = http.StatusInternalServerError
		resParams.Err = err
		h.Res(resParams)
		return
	}

	progress := make(map[string]*schemas.QuestProgress, len(user.QuestProgress))
	for i := range user.QuestProgress {
		progress[user.QuestProgress[i].QuestId] = &user.QuestProgress[i]
	}

	cursor, err := h.MongoDB.Collection("quests").Find(ctx, bson.M{"isActive": true})
	if err != nil {
		resParams.Code = http.StatusInternalServerError
		resParams.Err = err
		h.Res(resParams)
		return
	}
	defer cursor.Close(ctx)

	var definitions []schemas.Quest
	if err := cursor.All(ctx, &definitions); err != nil {
		resParams.Code = http.StatusInternalServerError
		resParams.Err = err
		h.Res(resParams)
		return
	}

	type questView struct {
		schemas.Quest
		Progress      int  `json:"progress"`
		Completed     bool `json:"completed"`
		RewardClaimed bool `json:"rewardClaimed"`
	}
	views := make([]questView, len(definitions))
	for i, quest := range definitions {
		views[i] = questView{Quest: quest}
		if p, ok := progress[quest.QuestId]; ok {
			views[i].Progress = p.Progress
			views[i].Completed = p.CompletedAt != nil
			views[i].RewardClaimed = p.RewardClaimed
		}
	}

	resParams.ResData = &struct {
		Quests []questView `json:"quests"`
	}{Quests: views}
	resParams.Code = http.StatusOK
	h.Res(resParams)

}
