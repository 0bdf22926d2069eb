package shop

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"linguaapi/internal/api"
	"linguaapi/pkg/schemas"
	"linguaapi/pkg/shop"
	"linguaapi/pkg/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readconcern"
	"go.mongodb.org/mongo-driver/v2/mongo/writeconcern"
	"go.uber.org/zap"
)

// Purchase commits a gem-priced purchase in one server-side transaction:
// guarded gems decrement, entitlement increment and purchase record land
// together or not at all. The idempotency key makes network retries safe;
// it is only released when the commit fails.
func (h *Handler) Purchase(w http.ResponseWriter, r *http.Request) {

	defer r.Body.Close()
	ctx := r.Context()
	uid := ctx.Value("uid").(bson.ObjectID)
	resParams := &api.ResParams{W: w, R: r}

	var reqData struct {
		ItemId         string `json:"itemId" validate:"required,itemid"`
		Quantity       int    `json:"quantity" validate:"omitempty,gt=0,lte=100"`
		IdempotencyKey string `json:"idempotencyKey" validate:"required,uuid4"`
		Platform       string `json:"platform" validate:"required,oneof=web ios android"`
		DeviceType     string `json:"deviceType" validate:"required,oneof=desktop mobile tablet"`
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
	if reqData.Quantity == 0 {
		reqData.Quantity = 1
	}

	// claim the idempotency key before touching any balance; the owner token
	// is per attempt so a release can never drop another attempt's claim
	claimOwner := uuid.New().String()
	claimed, err := utils.ClaimIdempotencyKey(h.RedisCli, ctx, reqData.IdempotencyKey, claimOwner)
	if err != nil {
		resParams.Code = http.StatusInternalServerError
		resParams.Err = err
		h.Res(resParams)
		return
	}
	if !claimed {
		resParams.ResData = &struct {
			Duplicate bool `json:"duplicate"`
		}{Duplicate: true}
		resParams.Code = http.StatusOK
		h.Res(resParams)
		return
	}
	releaseKey := func() {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := utils.ReleaseIdempotencyKey(h.RedisCli, cleanupCtx, reqData.IdempotencyKey, claimOwner); err != nil {
			h.Logger.Warn("idempotency key release failed", zap.Error(err))
		}
	}

	// resolve item and cost
	settings, err := h.GetActiveSettings(ctx)
	if err != nil {
		releaseKey()
		resParams.Code = http.StatusInternalServerError
		resParams.Err = err
		h.Res(resParams)
		return
	}
	item, err := shop.FindItem(shop.Catalog(settings), reqData.ItemId)
	if err != nil {
		releaseKey()
		resParams.Code = http.StatusNotFound
		resParams.Err = err
		h.Res(resParams)
		return
	}
	cost, err := shop.TotalCost(item, reqData.Quantity)
	if err != nil {
		// USD items go through the checkout session flow
		releaseKey()
		resParams.ResData = &struct {
			RequiresCheckout bool `json:"requiresCheckout"`
		}{RequiresCheckout: true}
		resParams.Code = http.StatusBadRequest
		resParams.Err = err
		h.Res(resParams)
		return
	}

	// pre-commit affordability and cap checks so obvious rejections never
	// open a transaction
	var user schemas.User
	usersColl := h.MongoDB.Collection("users")
	if err := usersColl.FindOne(ctx, bson.M{"_id": uid}).Decode(&user); err != nil {
		releaseKey()
		resParams.Code = http.StatusInternalServerError
		resParams.Err = err
		h.Res(resParams)
		return
	}
	if err := shop.CheckAffordable(user.Gems, cost); err != nil {
		releaseKey()
		resParams.ResData = &struct {
			InsufficientBalance bool  `json:"insufficientBalance"`
			Gems                int   `json:"gems"`
			Cost                int64 `json:"cost"`
		}{InsufficientBalance: true, Gems: user.Gems, Cost: cost}
		resParams.Code = http.StatusConflict
		resParams.Err = err
		h.Res(resParams)
		return
	}
	if item.Category == shop.CategoryHearts {
		allowance := shop.HeartAllowance(user.Hearts, user.MaxHearts)
		if reqData.Quantity > allowance {
			// reject rather than clamp; the client decides what to do
			// with the remaining allowance
			releaseKey()
			resParams.ResData = &struct {
				HeartsAtCap bool `json:"heartsAtCap"`
				Allowance   int  `json:"allowance"`
			}{HeartsAtCap: true, Allowance: allowance}
			resParams.Code = http.StatusConflict
			resParams.Err = shop.ErrHeartsAtCap
			h.Res(resParams)
			return
		}
	}

	// build the guarded balance update; the filter re-checks both bounds
	// so a concurrent spend between the precheck and the commit cannot
	// overdraw or overfill
	filter := bson.M{
		"_id":  uid,
		"gems": bson.M{"$gte": cost},
	}
	update := bson.M{"gems": -cost}
	if field, ok := shop.EntitlementField(item); ok {
		update[field] = reqData.Quantity
	}
	if item.Category == shop.CategoryHearts {
		filter["$expr"] = bson.M{"$lte": bson.A{
			bson.M{"$add": bson.A{"$hearts", reqData.Quantity}},
			"$maxHearts",
		}}
	}

	// create transaction session
	txSession, err := h.MongoDB.Client().StartSession()
	if err != nil {
		releaseKey()
		resParams.Code = http.StatusInternalServerError
		resParams.Err = err
		h.Res(resParams)
		return
	}
	defer txSession.EndSession(ctx)
	txOpts := options.Transaction().SetReadConcern(readconcern.Snapshot()).SetWriteConcern(writeconcern.Majority())

	var updatedUser schemas.User
	var purchaseId bson.ObjectID

	_, err = txSession.WithTransaction(ctx, func(txCtx context.Context) (interface{}, error) {

		err := usersColl.FindOneAndUpdate(txCtx,
			filter,
			bson.M{"$inc": update},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updatedUser)
		if err != nil {
			return nil, err
		}

		record := schemas.Purchase{
			UserId:         uid,
			ItemId:         item.Id,
			Quantity:       reqData.Quantity,
			PaymentMethod:  "gems",
			Platform:       reqData.Platform,
			DeviceType:     reqData.DeviceType,
			GemsSpent:      int(cost),
			IdempotencyKey: reqData.IdempotencyKey,
			Ctime:          time.Now().UTC(),
		}
		res, err := h.MongoDB.Collection("purchases").InsertOne(txCtx, &record)
		if err != nil {
			return nil, err
		}
		purchaseId = res.InsertedID.(bson.ObjectID)

		return nil, nil

	}, txOpts)

	if err != nil {
		releaseKey()
		if errors.Is(err, mongo.ErrNoDocuments) {
			resParams.ResData = &struct {
				Conflict bool `json:"conflict"`
			}{Conflict: true}
			resParams.Code = http.StatusConflict
		} else {
			resParams.Code = http.StatusInternalServerError
		}
		resParams.Err = err
		h.Res(resParams)
		return
	}

	resParams.ResData = &struct {
		PurchaseId string         `json:"purchaseId"`
		Gems       int            `json:"gems"`
		Hearts     int            `json:"hearts"`
		MaxHearts  int            `json:"maxHearts"`
		Boosts     map[string]int `json:"boosts,omitempty"`
	}{
		PurchaseId: purchaseId.Hex(),
		Gems:       updatedUser.Gems,
		Hearts:     updatedUser.Hearts,
		MaxHearts:  updatedUser.MaxHearts,
		Boosts:     updatedUser.Boosts,
	}
	resParams.Code = http.StatusCreated
	h.Res(resParams)

}
