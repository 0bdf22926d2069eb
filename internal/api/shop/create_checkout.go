package shop

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"linguaapi/internal/api"
	"linguaapi/pkg/config"
	"linguaapi/pkg/schemas"
	"linguaapi/pkg/shop"

	"github.com/redis/go-redis/v9"
	"github.com/stripe/stripe-go/v82"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

type checkoutSession struct {
	StripeSessionId string `json:"i"`
}

// CreateCheckoutSession starts a stripe checkout for a USD-priced gem
// pack. One live session per user; creating a new one expires the old.
// Fulfillment on payment completion is handled out of band.
func (h *Handler) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {

	defer r.Body.Close()
	ctx := r.Context()
	uid := ctx.Value("uid").(bson.ObjectID)
	uidStr := uid.Hex()
	resParams := &api.ResParams{W: w, R: r}

	var reqData struct {
		ItemId string `json:"itemId" validate:"required,itemid"`
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

	// resolve item; only USD items are checkout-eligible
	settings, err := h.GetActiveSettings(ctx)
	if err != nil {
		resParams.Code = http.StatusInternalServerError
		resParams.Err = err
		h.Res(resParams)
		return
	}
	item, err := shop.FindItem(shop.Catalog(settings), reqData.ItemId)
	if err != nil {
		resParams.Code = http.StatusNotFound
		resParams.Err = err
		h.Res(resParams)
		return
	}
	if item.Currency != shop.CurrencyUSD {
		resParams.Err = errors.New("item is not checkout-eligible")
		resParams.Code = http.StatusBadRequest
		h.Res(resParams)
		return
	}

	// set mutex to prevent session creation race condition
	mutexKey := "checkoutmutex:" + uidStr
	mutex, err := h.RedisCli.SetNX(ctx, mutexKey, 1, time.Minute).Result()
	if err != nil {
		resParams.Code = http.StatusInternalServerError
		resParams.Err = err
		h.Res(resParams)
		return
	}
	if !mutex { // another session currently being created
		resParams.Code = http.StatusTooManyRequests
		h.Res(resParams)
		return
	}
	defer func() {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := h.RedisCli.Del(cleanupCtx, mutexKey).Err(); err != nil {
			h.Logger.Warn("checkout mutex release failed", zap.Error(err))
		}
	}()

	// get user data
	var user schemas.User
	usersColl := h.MongoDB.Collection("users")
	if err := usersColl.FindOne(ctx, bson.M{"_id": uid}).Decode(&user); err != nil {
		resParams.Code = http.StatusInternalServerError
		resParams.Err = err
		h.Res(resParams)
		return
	}

	// expire any existing session for this user
	sessionKey := "checkout:" + uidStr
	prevSessionStr, err := h.RedisCli.Get(ctx, sessionKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		resParams.Code = http.StatusInternalServerError
		resParams.Err = err
		h.Res(resParams)
		return
	} else if err == nil {

		var prevSession checkoutSession
		if err := json.Unmarshal([]byte(prevSessionStr), &prevSession); err != nil {
			resParams.Code = http.StatusInternalServerError
			resParams.Err = err
			h.Res(resParams)
			return
		}

		// a stripe error here means the session is already invalid
		if _, err := h.StripeCli.V1CheckoutSessions.Expire(ctx, prevSession.StripeSessionId, nil); err != nil {
			if _, ok := err.(*stripe.Error); !ok {
				resParams.Code = http.StatusInternalServerError
				resParams.Err = err
				h.Res(resParams)
				return
			}
		}

	}

	// create stripe customer for user if needed
	stripeCustomerId := user.StripeCustomer
	if stripeCustomerId == "" {
		cus, err := h.StripeCli.V1Customers.Create(ctx, &stripe.CustomerCreateParams{
			Email: stripe.String(user.Email),
		})
		if err != nil {
			resParams.Code = http.StatusInternalServerError
			resParams.Err = err
			h.Res(resParams)
			return
		}
		stripeCustomerId = cus.ID

		if _, err := usersColl.UpdateOne(ctx,
			bson.M{"_id": uid},
			bson.M{"$set": bson.M{"stripeCustomer": cus.ID}},
		); err != nil {
			resParams.Code = http.StatusInternalServerError
			resParams.Err = err
			h.Res(resParams)
			return
		}
	}

	// create stripe checkout session
	checkoutParams := &stripe.CheckoutSessionCreateParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(config.ORIGIN + "/shop/checkout/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:         stripe.String(config.ORIGIN + "/shop/checkout/cancel"),
		Customer:          stripe.String(stripeCustomerId),
		ClientReferenceID: stripe.String(uidStr),
		ExpiresAt:         stripe.Int64(time.Now().Add(config.CHECKOUT_SESSION_TTL).Unix()),
		LineItems: []*stripe.CheckoutSessionCreateLineItemParams{
			{
				Price:    stripe.String(item.StripePriceId),
				Quantity: stripe.Int64(1),
			},
		},
		Metadata: map[string]string{
			"uid":    uidStr,
			"itemId": item.Id,
		},
	}
	session, err := h.StripeCli.V1CheckoutSessions.Create(ctx, checkoutParams)
	if err != nil {
		resParams.Code = http.StatusInternalServerError
		resParams.Err = err
		h.Res(resParams)
		return
	}

	// keep track of this checkout session
	sessionData, _ := json.Marshal(checkoutSession{StripeSessionId: session.ID})
	if err := h.RedisCli.Set(ctx, sessionKey, string(sessionData), config.CHECKOUT_SESSION_TTL*2).Err(); err != nil {
		resParams.Code = http.StatusInternalServerError
		resParams.Err = err
		h.Res(resParams)
		return
	}

	resParams.ResData = &struct {
		CheckoutUrl string `json:"checkoutUrl"`
	}{CheckoutUrl: session.URL}
	resParams.Code = http.StatusOK
	h.Res(resParams)

}
