package schemas

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type PromoPrice struct {
	PriceUSD int64     `bson:"priceUSD"` // cents
	StartsAt time.Time `bson:"startsAt"`
	EndsAt   time.Time `bson:"endsAt"`
}

type Plan struct {
	Id            bson.ObjectID `bson:"_id,omitempty"`
	PlanId        string        `bson:"planId"`
	Name          string        `bson:"name"`
	Tier          string        `bson:"tier"`
	PriceUSD      int64         `bson:"priceUSD"` // cents
	Promo         *PromoPrice   `bson:"promo,omitempty"`
	StripePriceId string        `bson:"stripePriceId"`
	Features      []string      `bson:"features"`
	IsActive      bool          `bson:"isActive"`
}

// EffectivePriceUSD resolves the promotional price when now falls inside
// the promo window [StartsAt, EndsAt).
func (p *Plan) EffectivePriceUSD(now time.Time) int64 {
	if p.Promo != nil && !now.Before(p.Promo.StartsAt) && now.Before(p.Promo.EndsAt) {
		return p.Promo.PriceUSD
	}
	return p.PriceUSD
}
