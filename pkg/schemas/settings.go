package schemas

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type GeneralSettings struct {
	StoreName      string `bson:"storeName" json:"storeName"`
	SupportEmail   string `bson:"supportEmail" json:"supportEmail"`
	TestMode       bool   `bson:"testMode" json:"testMode"`
	MaintenanceMsg string `bson:"maintenanceMsg" json:"maintenanceMsg"`
}

type ProviderSettings struct {
	StripeEnabled      bool   `bson:"stripeEnabled" json:"stripeEnabled"`
	StripePublicKey    string `bson:"stripePublicKey" json:"stripePublicKey"`
	StripeSecretKey    string `bson:"stripeSecretKey" json:"stripeSecretKey"`
	PaypalEnabled      bool   `bson:"paypalEnabled" json:"paypalEnabled"`
	PaypalClientId     string `bson:"paypalClientId" json:"paypalClientId"`
	PaypalClientSecret string `bson:"paypalClientSecret" json:"paypalClientSecret"`
}

type GemSettings struct {
	Enabled        bool `bson:"enabled" json:"enabled"`
	StarterBalance int  `bson:"starterBalance" json:"starterBalance"`
	MaxBalance     int  `bson:"maxBalance" json:"maxBalance"`
}

type HeartSettings struct {
	Enabled           bool `bson:"enabled" json:"enabled"`
	MaxHearts         int  `bson:"maxHearts" json:"maxHearts"`
	CostInGems        int  `bson:"costInGems" json:"costInGems"`
	RefillIntervalMin int  `bson:"refillIntervalMin" json:"refillIntervalMin"`
}

type CurrencySettings struct {
	Gems   GemSettings   `bson:"gems" json:"gems"`
	Hearts HeartSettings `bson:"hearts" json:"hearts"`
}

type RegionalSettings struct {
	DefaultCurrency string   `bson:"defaultCurrency" json:"defaultCurrency"`
	AllowedRegions  []string `bson:"allowedRegions" json:"allowedRegions"`
	TaxInclusive    bool     `bson:"taxInclusive" json:"taxInclusive"`
}

type WebhookSettings struct {
	Endpoint      string `bson:"endpoint" json:"endpoint"`
	SigningSecret string `bson:"signingSecret" json:"signingSecret"`
	Enabled       bool   `bson:"enabled" json:"enabled"`
}

type SecuritySettings struct {
	RequireAuthForCheckout bool `bson:"requireAuthForCheckout" json:"requireAuthForCheckout"`
	MaxPurchasesPerDay     int  `bson:"maxPurchasesPerDay" json:"maxPurchasesPerDay"`
}

type NotificationSettings struct {
	EmailOnPurchase bool `bson:"emailOnPurchase" json:"emailOnPurchase"`
	EmailOnRefund   bool `bson:"emailOnRefund" json:"emailOnRefund"`
}

type PaymentSettings struct {
	Id            bson.ObjectID        `bson:"_id,omitempty" json:"id"`
	Version       int                  `bson:"version" json:"version"`
	IsActive      bool                 `bson:"isActive" json:"isActive"`
	General       GeneralSettings      `bson:"general" json:"general"`
	Providers     ProviderSettings     `bson:"providers" json:"providers"`
	Currencies    CurrencySettings     `bson:"currencies" json:"currencies"`
	Regional      RegionalSettings     `bson:"regional" json:"regional"`
	Webhooks      WebhookSettings      `bson:"webhooks" json:"webhooks"`
	Security      SecuritySettings     `bson:"security" json:"security"`
	Notifications NotificationSettings `bson:"notifications" json:"notifications"`
	Ctime         time.Time            `bson:"ctime" json:"ctime"`
	Mtime         time.Time            `bson:"mtime" json:"mtime"`
}
