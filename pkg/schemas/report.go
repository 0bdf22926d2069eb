package schemas

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	ReportStatusOpen       = "open"
	ReportStatusInProgress = "in_progress"
	ReportStatusResolved   = "resolved"
	ReportStatusClosed     = "closed"
)

type Report struct {
	Id          bson.ObjectID `bson:"_id,omitempty"`
	UserId      bson.ObjectID `bson:"userId"`
	LessonId    string        `bson:"lessonId,omitempty"`
	ExerciseId  string        `bson:"exerciseId,omitempty"`
	Reasons     []string      `bson:"reasons"`
	Type        string        `bson:"type"`
	Priority    string        `bson:"priority"`
	Status      string        `bson:"status"`
	Title       string        `bson:"title"`
	Description string        `bson:"description"`
	Ctime       time.Time     `bson:"ctime"`
	Mtime       time.Time     `bson:"mtime"`
}
