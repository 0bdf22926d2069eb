package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"linguaapi/internal/api"
	"linguaapi/pkg/config"
	"linguaapi/pkg/schemas"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// CreatePurchase appends a purchase record. Every purchase path records
// through this shape, including heart refills.
func (h *Handler) CreatePurchase(w http.ResponseWriter, r *http.Request) {

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

	var reqData struct {
		ItemId        string `json:"itemId" validate:"required,itemid"`
		Quantity      int    `json:"quantity" validate:"omitempty,gt=0"`
		PaymentMethod string `json:"paymentMethod" validate:"required,oneof=gems coins card"`
		Platform      string `json:"platform" validate:"required,oneof=web ios android"`
		DeviceType    string `json:"deviceType" validate:"required,oneof=desktop mobile tablet"`
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

	record := schemas.Purchase{
		UserId:        uid,
		ItemId:        reqData.ItemId,
		Quantity:      reqData.Quantity,
		PaymentMethod: reqData.PaymentMethod,
		Platform:      reqData.Platform,
		DeviceType:    reqData.DeviceType,
		Ctime:         time.Now().UTC(),
	}
	res, err := h.MongoDB.Collection("purchases").InsertOne(ctx, &record)
	if err != nil {
		resParams.Code = http.StatusInternalServerError
		resParams.Err = err
		h.Res(resParams)
		return
	}

	resParams.ResData = &struct {
		PurchaseId string `json:"purchaseId"`
	}{PurchaseId: res.InsertedID.(bson.ObjectID).Hex()}
	resParams.Code = http.StatusCreated
	h.Res(resParams)

}

func (h *Handler) ListPurchases(w http.ResponseWriter, r *http.Request) {

	ctx := r.Context()
	uid := ctx.Value("uid").(bson.ObjectID)
	resParams := &api.ResParams{W: w, R: r}

	if chi.URLParam(r, "userId") != uid.Hex() {
		resParams.Err = errors.New("user id mismatch")
		resParams.Code = http.StatusForbidden
		h.Res(resParams)
		return
	}

	cursor, err := h.MongoDB.Collection("purchases").Find(ctx,
		bson.M{"userId": uid},
		options.Find().
			SetSort(bson.M{"ctime": -1}).
			SetLimit(config.USER_PURCHASE_HISTORY),
	)
	if err != nil {
		resParams.Code = http.StatusInternalServerError
		resParams.Err = err
		h.Res(resParams)
		return
	}
	defer cursor.Close(ctx)

	var records []schemas.Purchase
	if err := cursor.All(ctx, &records); err != nil {
		resParams.Code = http.StatusInternalServerError
		resParams.Err = err
		h.Res(resParams)
		return
	}

	purchases := make([]map[string]any, len(records))
	for i, rec := range records {
		purchases[i] = map[string]any{
			"purchaseId":    rec.Id.Hex(),
			"itemId":        rec.ItemId,
			"quantity":      rec.Quantity,
			"paymentMethod": rec.PaymentMethod,
			"platform":      rec.Platform,
			"deviceType":    rec.DeviceType,
			"gemsSpent":     rec.GemsSpent,
			"ctime":         rec.Ctime,
		}
	}

	resParams.ResData = &struct {
		Purchases []map[string]any `json:"purchases"`
	}{Purchases: purchases}
	resParams.Code = http.StatusOK
	h.Res(resParams)

}
