package schemas

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Subscription struct {
	ProductId      string `bson:"productId"`
	SubscriptionId string `bson:"subscriptionId"`
	IsActive       bool   `bson:"isActive"`
	IsCanceled     bool   `bson:"isCanceled"`
	RecurredCount  int    `bson:"recurredCount"`
}

type QuestProgress struct {
	QuestId       string     `bson:"questId"`
	Progress      int        `bson:"progress"`
	CompletedAt   *time.Time `bson:"completedAt"`
	RewardClaimed bool       `bson:"rewardClaimed"`
}

type User struct {
	Id               bson.ObjectID   `bson:"_id,omitempty"`
	Ctime            time.Time       `bson:"ctime"`
	Email            string          `bson:"email"`
	Username         string          `bson:"username"`
	UnameChangedAt   time.Time       `bson:"unameChangedAt"`
	Locale           string          `bson:"locale"`
	Role             string          `bson:"role"` // "user" | "admin"
	AvatarKey        string          `bson:"avatarKey"`
	Gems             int             `bson:"gems"`
	Hearts           int             `bson:"hearts"`
	MaxHearts        int             `bson:"maxHearts"`
	Boosts           map[string]int  `bson:"boosts,omitempty"` // itemId -> owned count
	Xp               int             `bson:"xp"`
	Streak           int             `bson:"streak"`
	CompletedLessons []string        `bson:"completedLessons"`
	QuestProgress    []QuestProgress `bson:"questProgress"`
	StripeCustomer   string          `bson:"stripeCustomer"`
	Subscription     Subscription    `bson:"subscription"`
}
