package main

import (
	"context"
	"net/http"
	"regexp"
	"time"

	"linguaapi/internal/api"
	"linguaapi/internal/api/lessons"
	"linguaapi/internal/api/plans"
	"linguaapi/internal/api/quests"
	"linguaapi/internal/api/reports"
	"linguaapi/internal/api/settings"
	"linguaapi/internal/api/shop"
	"linguaapi/internal/api/user"
	"linguaapi/pkg/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/stripe/stripe-go/v82"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {

	ctx := context.Background()
	h := &api.Handler{}

	// init logger
	logger, err := zap.NewDevelopment(
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)

	if err != nil {
		panic(err)
	}
	logger.Info("Server starting...")
	defer logger.Sync()
	h.Logger = logger

	// init validator
	h.Validate = validator.New()
	h.Validate.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		username := fl.Field().String()
		re := regexp.MustCompile(`^[a-zA-Z0-9._-]{3,32}$`)
		return re.MatchString(username)
	})

	h.Validate.RegisterValidation("itemid", func(fl validator.FieldLevel) bool {
		itemId := fl.Field().String()
		re := regexp.MustCompile(`^[a-z0-9_]{1,64}$`)
		return re.MatchString(itemId)
	})

	h.HttpCli = &http.Client{
		Timeout: 30 * time.Second,
	}

	// init mongo
	mongoServerAPI := options.ServerAPI(options.ServerAPIVersion1)
	mongoOpts := options.Client().ApplyURI("mongodb+srv://lingua:" + config.ENV.MONGO_PASSWORD + "@lingua.cluster0.mongodb.net/?retryWrites=true&w=majority&appName=Lingua").SetServerAPIOptions(mongoServerAPI)
	mongoCli, err := mongo.Connect(mongoOpts)
	if err != nil {
		panic(err)
	}
	defer func() {
		if err = mongoCli.Disconnect(ctx); err != nil {
			panic(err)
		}
	}()
	if err := mongoCli.Ping(ctx, readpref.Primary()); err != nil {
		panic(err)
	}
	h.MongoDB = mongoCli.Database(config.MONGO_DB)

	// init redis
	h.RedisCli = redis.NewClient(&redis.Options{
		Addr:     "redis-12816.c256.us-east-1-2.ec2.redns.redis-cloud.com:12816",
		Username: "default",
		Password: config.ENV.REDIS_PASSWORD,
		DB:       0,
	})

	// init aws ses
	sesCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(config.ENV.SES_REGION))
	if err != nil {
		panic(err)
	}
	h.AWSSESCli = ses.NewFromConfig(sesCfg)

	// init s3
	cred := credentials.NewStaticCredentialsProvider(
		config.ENV.S3_ACCESS_KEY,
		config.ENV.S3_SECRET_KEY,
		"",
	)
	h.S3Cli = s3.New(s3.Options{
		Credentials:  cred,
		BaseEndpoint: aws.String(config.ENV.S3_API_ENDPOINT),
		UsePathStyle: true,
		Region:       "auto",
	})

	// init stripe
	h.StripeCli = stripe.NewClient(config.ENV.STRIPE_SECRET_KEY)

	router := chi.NewRouter()

	// Middleware
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{config.ORIGIN},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}))
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestSize(1 << 21))

	userH := &user.Handler{Handler: h}
	shopH := &shop.Handler{Handler: h}
	reportsH := &reports.Handler{Handler: h}
	plansH := &plans.Handler{Handler: h}
	settingsH := &settings.Handler{Handler: h}
	lessonsH := &lessons.Handler{Handler: h}
	questsH := &quests.Handler{Handler: h}

	// user endpoints
	router.Get("/user", userH.GetUserData)
	router.Put("/user/profile", h.AuthMiddleware(userH.UpdateProfile))
	router.Delete("/user/profile", h.AuthMiddleware(userH.DeleteAccount))
	router.Post("/user/avatar", h.AuthMiddleware(userH.UploadAvatar))

	// currency + purchase record endpoints
	router.Put("/users/{userId}/gems", h.AuthMiddleware(userH.UpdateGems))
	router.Put("/users/{userId}/hearts", h.AuthMiddleware(userH.UpdateHearts))
	router.Post("/users/{userId}/purchases", h.AuthMiddleware(userH.CreatePurchase))
	router.Get("/users/{userId}/purchases", h.AuthMiddleware(userH.ListPurchases))

	// shop endpoints
	router.Get("/shop/catalog", shopH.GetCatalog)
	router.Post("/shop/purchase", h.AuthMiddleware(shopH.Purchase))
	router.Post("/shop/checkout-session", h.AuthMiddleware(shopH.CreateCheckoutSession))

	// report endpoints
	router.Post("/reports", h.AuthMiddleware(reportsH.CreateReport))
	router.Get("/reports", h.AuthMiddleware(reportsH.ListReports))
	router.Get("/reports/stats", h.AdminMiddleware(reportsH.ReportStats))

	// subscription plan endpoints
	router.Get("/subscriptions/plans", plansH.ListPlans)
	router.Get("/subscriptions/plans/{planId}", plansH.GetPlan)

	// lesson endpoints
	router.Get("/lessons", h.AuthMiddleware(lessonsH.GetLessons))

	// quest endpoints
	router.Get("/quests", h.AuthMiddleware(questsH.GetQuests))
	router.Post("/quests/{questId}/progress", h.AuthMiddleware(questsH.UpdateProgress))

	// admin payment settings endpoints
	router.Get("/admin/payments/settings", h.AdminMiddleware(settingsH.GetSettings))
	router.Put("/admin/payments/settings", h.AdminMiddleware(settingsH.PutSettings))
	router.Patch("/admin/payments/settings", h.AdminMiddleware(settingsH.PatchSettings))
	router.Post("/admin/payments/settings", h.AdminMiddleware(settingsH.PostSettings))

	logger.Info("Server running on port 8080")
	http.ListenAndServe(":8080", router)

}
