package reports

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"linguaapi/internal/api"
	reportutils "linguaapi/pkg/report_utils"
	"linguaapi/pkg/schemas"
	"linguaapi/pkg/utils"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/zap"
)

// CreateReport files an exercise/lesson report. Deduplicated per
// (user, exercise) while a report is still open; type and priority are
// derived from the report text by keyword lookup.
func (h *Handler) CreateReport(w http.ResponseWriter, r *http.Request) {

	defer r.Body.Close()
	ctx := r.Context()
	uid := ctx.Value("uid").(bson.ObjectID)
	resParams := &api.ResParams{W: w, R: r}

	var reqData struct {
		LessonId    string   `json:"lessonId" validate:"omitempty,min=1,max=64"`
		ExerciseId  string   `json:"exerciseId" validate:"omitempty,min=1,max=64"`
		Reasons     []string `json:"reasons" validate:"required,min=1,max=10,dive,min=1,max=200"`
		Title       string   `json:"title" validate:"required,min=1,max=120"`
		Description string   `json:"description" validate:"omitempty,max=2000"`
	}

	// validate request body
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&reqData); err != nil {
		resParams.Code = http.StatusBadRequest
		resParams.Err = err
		h.Res(resParams)
		return
	}
	resParams.ReqData = reqData
	if err := h.Validate.Struct(&reqData); err != nil {
		resParams.Code = http.StatusBadRequest
		resParams.Err = err
		h.Res(resParams)
		return
	}

	// mail config is part of this endpoint's contract; reject before any
	// write so a retry after the 500 cannot duplicate the record
	if !utils.MailConfigured() {
		resParams.Code = http.StatusInternalServerError
		resParams.Err = utils.ErrMailNotConfigured
		h.Res(resParams)
		return
	}

	reportsColl := h.MongoDB.Collection("reports")

	// at most one open report per user+exercise
	if reqData.ExerciseId != "" {
		var existing schemas.Report
		err := reportsColl.FindOne(ctx, bson.M{
			"userId":     uid,
			"exerciseId": reqData.ExerciseId,
			"status":     bson.M{"$in": bson.A{schemas.ReportStatusOpen, schemas.ReportStatusInProgress}},
		}).Decode(&existing)
		if err == nil {
			resParams.ResData = &struct {
				DuplicateReport  bool   `json:"duplicateReport"`
				ExistingReportId string `json:"existingReportId"`
			}{DuplicateReport: true, ExistingReportId: existing.Id.Hex()}
			resParams.Code = http.StatusConflict
			h.Res(resParams)
			return
		} else if !errors.Is(err, mongo.ErrNoDocuments) {
			resParams.Code = http.StatusInternalServerError
			resParams.Err = err
			h.Res(resParams)
			return
		}
	}

	// derive type/priority from the report text
	text := reportutils.Normalize(reqData.Reasons, reqData.Description)
	now := time.Now().UTC()
	report := schemas.Report{
		UserId:      uid,
		LessonId:    reqData.LessonId,
		ExerciseId:  reqData.ExerciseId,
		Reasons:     reqData.Reasons,
		Type:        reportutils.DetermineType(text),
		Priority:    reportutils.DeterminePriority(text),
		Status:      schemas.ReportStatusOpen,
		Title:       reqData.Title,
		Description: reqData.Description,
		Ctime:       now,
		Mtime:       now,
	}

	res, err := reportsColl.InsertOne(ctx, &report)
	if err != nil {
		resParams.Code = http.StatusInternalServerError
		resParams.Err = err
		h.Res(resParams)
		return
	}
	report.Id = res.InsertedID.(bson.ObjectID)

	// notify the moderation inbox. The record is already committed, so a
	// send failure degrades the email status instead of failing the request
	var reporter struct {
		Email string `bson:"email"`
	}
	if err := h.MongoDB.Collection("users").FindOne(ctx, bson.M{"_id": uid}).Decode(&reporter); err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		h.Logger.Warn("reporter lookup failed", zap.Error(err))
	}
	emailStatus, err := utils.SendReportNotification(h.AWSSESCli, h.RedisCli, ctx, &report, reporter.Email)
	if err != nil {
		h.Logger.Warn("report notification failed", zap.Error(err))
		emailStatus = &utils.EmailStatus{Sent: false}
	}

	resParams.ResData = &struct {
		ReportId string             `json:"reportId"`
		Type     string             `json:"type"`
		Priority string             `json:"priority"`
		Email    *utils.EmailStatus `json:"email"`
	}{
		ReportId: report.Id.Hex(),
		Type:     report.Type,
		Priority: report.Priority,
		Email:    emailStatus,
	}
	resParams.Code = http.StatusCreated
	h.Res(resParams)

}
