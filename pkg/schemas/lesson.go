package schemas

import "go.mongodb.org/mongo-driver/v2/bson"

type Exercise struct {
	ExerciseId string `bson:"exerciseId" json:"exerciseId"`
	Kind       string `bson:"kind" json:"kind"` // "translate" | "listen" | "speak" | "match"
	Prompt     string `bson:"prompt" json:"prompt"`
}

type Lesson struct {
	Id        bson.ObjectID `bson:"_id,omitempty" json:"-"`
	LessonId  string        `bson:"lessonId" json:"lessonId"`
	Unit      string        `bson:"unit" json:"unit"`
	Order     int           `bson:"order" json:"order"`
	Title     string        `bson:"title" json:"title"`
	Exercises []Exercise    `bson:"exercises" json:"exercises"`
	XpReward  int           `bson:"xpReward" json:"xpReward"`
}
