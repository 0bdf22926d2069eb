package user

import (
	"errors"
	"net/http"

	"linguaapi/internal/api"
	"linguaapi/pkg/config"
	"linguaapi/pkg/schemas"
	"linguaapi/pkg/utils"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/zap"
)

// DeleteAccount removes the user document and their avatar object.
// Purchase records are retained for audit.
func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {

	ctx := r.Context()
	uid := ctx.Value("uid").(bson.ObjectID)
	resParams := &api.ResParams{W: w, R: r}

	var user schemas.User
	err := h.MongoDB.Collection("users").FindOneAndDelete(ctx, bson.M{"_id": uid}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			resParams.Code = http.StatusNotFound
		} else {
			resParams.Code = http.StatusInternalServerError
		}
		resParams.Err = err
		h.Res(resParams)
		return
	}

	if user.AvatarKey != "" {
		if err := utils.DeleteObjectS3(h.S3Cli, ctx, config.AVATAR_BUCKET, user.AvatarKey); err != nil {
			// account is already gone; log and report success anyway
			h.Logger.Warn("avatar cleanup failed", zap.Error(err))
		}
	}

	resParams.Code = http.StatusNoContent
	h.Res(resParams)

}
