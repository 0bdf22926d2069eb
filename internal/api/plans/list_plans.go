package plans

import (
	"net/http"
	"time"

	"linguaapi/internal/api"
	"linguaapi/pkg/schemas"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func (h *Handler) ListPlans(w http.ResponseWriter, r *http.Request) {

	ctx := r.Context()
	resParams := &api.ResParams{W: w, R: r}

	cursor, err := h.MongoDB.Collection("plans").Find(ctx,
		bson.M{"isActive": true},
		options.Find().SetSort(bson.M{"priceUSD": 1}),
	)
	if err != nil {
		resParams.Code = http.StatusInternalServerError
		resParams.Err = err
		h.Res(resParams)
		return
	}
	defer cursor.Close(ctx)

	var records []schemas.Plan
	if err := cursor.All(ctx, &records); err != nil {
		resParams.Code = http.StatusInternalServerError
		resParams.Err = err
		h.Res(resParams)
		return
	}

	now := time.Now().UTC()
	views := make([]*planView, len(records))
	for i := range records {
		views[i] = toPlanView(&records[i], now)
	}

	resParams.ResData = &struct {
		Plans []*planView `json:"plans"`
	}{Plans: views}
	resParams.Code = http.StatusOK
	h.Res(resParams)

}
