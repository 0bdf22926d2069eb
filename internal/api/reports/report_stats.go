package reports

import (
	"net/http"

	"linguaapi/internal/api"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ReportStats aggregates report counts by status, type and priority.
// Admin only (routed behind AdminMiddleware).
func (h *Handler) ReportStats(w http.ResponseWriter, r *http.Request) {

	ctx := r.Context()
	resParams := &api.ResParams{W: w, R: r}

	type bucket struct {
		Id    string `bson:"_id"`
		Count int    `bson:"count"`
	}

	countBy := func(field string) (map[string]int, error) {
		cursor, err := h.MongoDB.Collection("reports").Aggregate(ctx, bson.A{
			bson.M{"$group": bson.M{
				"_id":   "$" + field,
				"count": bson.M{"$sum": 1},
			}},
		})
		if err != nil {
			return nil, err
		}
		defer cursor.Close(ctx)

		var buckets []bucket
		if err := cursor.All(ctx, &buckets); err != nil {
			return nil, err
		}
		counts := make(map[string]int, len(buckets))
		for _, b := range buckets {
			counts[b.Id] = b.Count
		}
		return counts, nil
	}

	byStatus, err := countBy("status")
	if err != nil {
		resParams.Code = http.StatusInternalServerError
		resParams.Err = err
		h.Res(resParams)
		return
	}
	byType, err := countBy("type")
	if err != nil {
		resParams.Code = http.StatusInternalServerError
		resParams.Err = err
		h.Res(resParams)
		return
	}
	byPriority, err := countBy("priority")
	if err != nil {
		resParams.Code = http.StatusInternalServerError
		resParams.Err = err
		h.Res(resParams)
		return
	}

	resParams.ResData = &struct {
		ByStatus   map[string]int `json:"byStatus"`
		ByType     map[string]int `json:"byType"`
		ByPriority map[string]int `json:"byPriority"`
	}{ByStatus: byStatus, ByType: byType, ByPriority: byPriority}
	resParams.Code = http.StatusOK
	h.Res(resParams)

}
