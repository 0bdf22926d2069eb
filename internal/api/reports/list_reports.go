package reports

import (
	"errors"
	"net/http"

	"linguaapi/internal/api"
	"linguaapi/pkg/schemas"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

var validStatuses = map[string]bool{
	schemas.ReportStatusOpen:       true,
	schemas.ReportStatusInProgress: true,
	schemas.ReportStatusResolved:   true,
	schemas.ReportStatusClosed:     true,
}

// ListReports returns the caller's reports. Admins see everyone's and may
// filter by status.
func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {

	ctx := r.Context()
	uid := ctx.Value("uid").(bson.ObjectID)
	resParams := &api.ResParams{W: w, R: r}

	var caller struct {
		Role string `bson:"role"`
	}
	err := h.MongoDB.Collection("users").FindOne(ctx, bson.M{"_id": uid}).Decode(&caller)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		resParams.Code = http.StatusInternalServerError
		resParams.Err = err
		h.Res(resParams)
		return
	}

	filter := bson.M{"userId": uid}
	if caller.Role == "admin" {
		filter = bson.M{}
		if status := r.URL.Query().Get("status"); status != "" {
			if !validStatuses[status] {
				resParams.Err = errors.New("invalid status filter")
				resParams.Code = http.StatusBadRequest
				h.Res(resParams)
				return
			}
			filter["status"] = status
		}
	}

	cursor, err := h.MongoDB.Collection("reports").Find(ctx, filter,
		options.Find().SetSort(bson.M{"ctime": -1}).SetLimit(200),
	)
	if err != nil {
		resParams.Code = http.StatusInternalServerError
		resParams.Err = err
		h.Res(resParams)
		return
	}
	defer cursor.Close(ctx)

	var records []schemas.Report
	if err := cursor.All(ctx, &records); err != nil {
		resParams.Code = http.StatusInternalServerError
		resParams.Err = err
		h.Res(resParams)
		return
	}

	reports := make([]map[string]any, len(records))
	for i, rec := range records {
		reports[i] = map[string]any{
			"reportId":   rec.Id.Hex(),
			"lessonId":   rec.LessonId,
			"exerciseId": rec.ExerciseId,
			"reasons":    rec.Reasons,
			"type":       rec.Type,
			"priority":   rec.Priority,
			"status":     rec.Status,
			"title":      rec.Title,
			"ctime":      rec.Ctime,
		}
	}

	resParams.ResData = &struct {
		Reports []map[string]any `json:"reports"`
	}{Reports: reports}
	resParams.Code = http.StatusOK
	h.Res(resParams)

}
