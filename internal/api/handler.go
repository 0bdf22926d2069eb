package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"linguaapi/pkg/config"
	"linguaapi/pkg/schemas"
	"linguaapi/pkg/utils"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/stripe/stripe-go/v82"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"
)

type Handler struct {
	Logger    *zap.Logger
	Validate  *validator.Validate
	HttpCli   *http.Client
	MongoDB   *mongo.Database
	RedisCli  *redis.Client
	AWSSESCli *ses.Client
	S3Cli     *s3.Client
	StripeCli *stripe.Client
}

type ResParams struct {
	W       http.ResponseWriter
	R       *http.Request
	Code    int
	Err     error
	ReqData any // for logs
	ResData any
}

// Envelope is the response shape shared by every endpoint.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (h *Handler) AuthMiddleware(f http.HandlerFunc) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {
		resParams := &ResParams{W: w, R: r}
		authToken, err := utils.ValidateAuthToken(r)
		if err != nil {
			resParams.Err = err
			resParams.Code = http.StatusUnauthorized
			h.Res(resParams)
			return
		}
		uid, err := authToken.GetUidObjectId()
		if err != nil {
			resParams.Err = err
			resParams.Code = http.StatusInternalServerError
			h.Res(resParams)
			return
		}
		ctx := context.WithValue(r.Context(), "uid", uid)
		f(w, r.WithContext(ctx))
	}

}

// AdminMiddleware gates admin-only endpoints. Runs inside AuthMiddleware so
// the uid is already in context.
func (h *Handler) AdminMiddleware(f http.HandlerFunc) http.HandlerFunc {

	return h.AuthMiddleware(func(w http.ResponseWriter, r *http.Request) {
		resParams := &ResParams{W: w, R: r}
		ctx := r.Context()
		uid := ctx.Value("uid").(bson.ObjectID)

		var user struct {
			Role string `bson:"role"`
		}
		err := h.MongoDB.Collection("users").FindOne(ctx, bson.M{"_id": uid}).Decode(&user)
		if err != nil {
			resParams.Err = err
			resParams.Code = http.StatusInternalServerError
			h.Res(resParams)
			return
		}
		if user.Role != "admin" {
			resParams.Err = errors.New("admin role required")
			resParams.Code = http.StatusForbidden
			h.Res(resParams)
			return
		}
		f(w, r)
	})

}

func (h *Handler) Res(params *ResParams) {

	if params.Err != nil && errors.Is(params.Err, context.Canceled) {
		return
	}

	pc, file, line, ok := runtime.Caller(1)
	var caller string
	if !ok {
		caller = "unknown"
	}
	fn := runtime.FuncForPC(pc)
	caller = fmt.Sprintf("%s:%d (%s)", file, line, fn.Name())

	// handle logging
	if params.Code >= 500 {
		h.Logger.Error("Error at "+caller,
			zap.Error(params.Err),
			zap.Any("request_data", params.ReqData),
		)
	} else if params.Code >= 400 {
		h.Logger.Warn("Warning at "+caller,
			zap.Error(params.Err),
			zap.Any("request_data", params.ReqData),
		)
	}

	envelope := &Envelope{Success: params.Code < 400}
	if envelope.Success {
		envelope.Data = params.ResData
	} else if params.ResData != nil {
		envelope.Data = params.ResData
		envelope.Error = http.StatusText(params.Code)
	} else {
		envelope.Error = http.StatusText(params.Code)
	}

	render.Status(params.R, params.Code)
	render.JSON(params.W, params.R, envelope)

}

// GetActiveSettings returns the isActive payment settings document,
// creating defaults exactly once on first access ($setOnInsert upsert so
// two concurrent first reads cannot create two actives).
func (h *Handler) GetActiveSettings(ctx context.Context) (*schemas.PaymentSettings, error) {

	now := time.Now().UTC()
	defaults := DefaultPaymentSettings(now)

	// isActive comes from the filter on insert; setting it again in
	// $setOnInsert is a path conflict
	var settings schemas.PaymentSettings
	err := h.MongoDB.Collection("payment_settings").FindOneAndUpdate(ctx,
		bson.M{"isActive": true},
		bson.M{"$setOnInsert": bson.M{
			"version":       defaults.Version,
			"general":       defaults.General,
			"providers":     defaults.Providers,
			"currencies":    defaults.Currencies,
			"regional":      defaults.Regional,
			"webhooks":      defaults.Webhooks,
			"security":      defaults.Security,
			"notifications": defaults.Notifications,
			"ctime":         defaults.Ctime,
			"mtime":         defaults.Mtime,
		}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&settings)
	if err != nil {
		return nil, fmt.Errorf("in GetActiveSettings:\n%w", err)
	}

	return &settings, nil

}

// DefaultPaymentSettings is the document created on first settings access.
func DefaultPaymentSettings(now time.Time) *schemas.PaymentSettings {
	return &schemas.PaymentSettings{
		Version:  1,
		IsActive: true,
		General: schemas.GeneralSettings{
			StoreName:    "Lingua Shop",
			SupportEmail: "support@lingua.app",
			TestMode:     true,
		},
		Providers: schemas.ProviderSettings{
			StripeEnabled: true,
		},
		Currencies: schemas.CurrencySettings{
			Gems: schemas.GemSettings{
				Enabled:        true,
				StarterBalance: config.DEFAULT_GEMS_ON_JOIN,
				MaxBalance:     1_000_000,
			},
			Hearts: schemas.HeartSettings{
				Enabled:           true,
				MaxHearts:         config.DEFAULT_MAX_HEARTS,
				CostInGems:        config.DEFAULT_HEART_COST,
				RefillIntervalMin: 240,
			},
		},
		Regional: schemas.RegionalSettings{
			DefaultCurrency: "USD",
			AllowedRegions:  []string{},
			TaxInclusive:    false,
		},
		Security: schemas.SecuritySettings{
			RequireAuthForCheckout: true,
			MaxPurchasesPerDay:     50,
		},
		Ctime: now,
		Mtime: now,
	}
}
