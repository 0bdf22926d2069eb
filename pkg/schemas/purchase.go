package schemas

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Purchase struct {
	Id             bson.ObjectID `bson:"_id,omitempty"`
	UserId         bson.ObjectID `bson:"userId"`
	ItemId         string        `bson:"itemId"`
	Quantity       int           `bson:"quantity"`
	PaymentMethod  string        `bson:"paymentMethod"`
	Platform       string        `bson:"platform"`
	DeviceType     string        `bson:"deviceType"`
	GemsSpent      int           `bson:"gemsSpent"`
	IdempotencyKey string        `bson:"idempotencyKey,omitempty"`
	Ctime          time.Time     `bson:"ctime"`
}
