package lessons

import (
	"errors"
	"net/http"

	"linguaapi/internal/api"
	"linguaapi/pkg/schemas"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// GetLessons aggregates lesson content with the caller's completion
// progress. Only action=learn is supported.
func (h *Handler) GetLessons(w http.ResponseWriter, r *http.Request) {

	ctx := r.Context()
	uid := ctx.Value("uid").(bson.ObjectID)
	resParams := &api.ResParams{W: w, R: r}

	if r.URL.Query().Get("action") != "learn" {
		resParams.Err = errors.New("invalid action")
		resParams.Code = http.StatusBadRequest
		h.Res(resParams)
		return
	}

	var user struct {
		CompletedLessons []string `bson:"completedLessons"`
	}
	err := h.MongoDB.Collection("users").FindOne(ctx, bson.M{"_id": uid}).Decode(&user)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		resParams.Code = http.StatusInternalServerError
		resParams.Err = err
		h.Res(resParams)
		return
	}

	completed := make(map[string]bool, len(user.CompletedLessons))
	for _, id := range user.CompletedLessons {
		completed[id] = true
	}

	cursor, err := h.MongoDB.Collection("lessons").Find(ctx,
		bson.M{},
		options.Find().SetSort(bson.D{{Key: "unit", Value: 1}, {Key: "order", Value: 1}}),
	)
	if err != nil {
		resParams.Code = http.StatusInternalServerError
		resParams.Err = err
		h.Res(resParams)
		return
	}
	defer cursor.Close(ctx)

	var records []schemas.Lesson
	if err := cursor.All(ctx, &records); err != nil {
		resParams.Code = http.StatusInternalServerError
		resParams.Err = err
		h.Res(resParams)
		return
	}

	type lessonWithProgress struct {
		schemas.Lesson
		Completed bool `json:"completed"`
	}
	lessonViews := make([]lessonWithProgress, len(records))
	completedCount := 0
	for i, lesson := range records {
		done := completed[lesson.LessonId]
		lessonViews[i] = lessonWithProgress{Lesson: lesson, Completed: done}
		if done {
			completedCount++
		}
	}

	resParams.ResData = &struct {
		Lessons        []lessonWithProgress `json:"lessons"`
		CompletedCount int                  `json:"completedCount"`
		TotalCount     int                  `json:"totalCount"`
	}{Lessons: lessonViews, CompletedCount: completedCount, TotalCount: len(lessonViews)}
	resParams.Code = http.StatusOK
	h.Res(resParams)

}
