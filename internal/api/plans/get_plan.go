package plans

import (
	"errors"
	"net/http"
	"time"

	"linguaapi/internal/api"
	"linguaapi/pkg/schemas"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type planView struct {
	PlanId       string   `json:"planId"`
	Name         string   `json:"name"`
	Tier         string   `json:"tier"`
	PriceUSD     int64    `json:"priceUSD"`
	ListPriceUSD int64    `json:"listPriceUSD"`
	PromoActive  bool     `json:"promoActive"`
	Features     []string `json:"features"`
}

func toPlanView(plan *schemas.Plan, now time.Time) *planView {
	effective := plan.EffectivePriceUSD(now)
	return &planView{
		PlanId:       plan.PlanId,
		Name:         plan.Name,
		Tier:         plan.Tier,
		PriceUSD:     effective,
		ListPriceUSD: plan.PriceUSD,
		PromoActive:  effective != plan.PriceUSD,
		Features:     plan.Features,
	}
}

func (h *Handler) GetPlan(w http.ResponseWriter, r *http.Request) {

	ctx := r.Context()
	resParams := &api.ResParams{W: w, R: r}

	planId := chi.URLParam(r, "planId")

	var plan schemas.Plan
	err := h.MongoDB.Collection("plans").FindOne(ctx, bson.M{
		"planId":   planId,
		"isActive": true,
	}).Decode(&plan)
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

	resParams.ResData = toPlanView(&plan, time.Now().UTC())
	resParams.Code = http.StatusOK
	h.Res(resParams)

}
