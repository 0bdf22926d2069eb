package schemas

import "go.mongodb.org/mongo-driver/v2/bson"

type Quest struct {
	Id         bson.ObjectID `bson:"_id,omitempty" json:"-"`
	QuestId    string        `bson:"questId" json:"questId"`
	Title      string        `bson:"title" json:"title"`
	Metric     string        `bson:"metric" json:"metric"` // "lessons" | "xp" | "streak"
	Target     int           `bson:"target" json:"target"`
	RewardGems int           `bson:"rewardGems" json:"rewardGems"`
	IsActive   bool          `bson:"isActive" json:"isActive"`
}
