package user

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"linguaapi/internal/api"
	"linguaapi/pkg/config"
	"linguaapi/pkg/utils"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// UploadAvatar stores the raw image body under a per-user key and records
// the key on the user document.
func (h *Handler) UploadAvatar(w http.ResponseWriter, r *http.Request) {

	defer r.Body.Close()
	ctx := r.Context()
	uid := ctx.Value("uid").(bson.ObjectID)
	resParams := &api.ResParams{W: w, R: r}

	body, err := io.ReadAll(io.LimitReader(r.Body, config.MAX_AVATAR_BYTES+1))
	if err != nil {
		resParams.Code = http.StatusInternalServerError
		resParams.Err = err
		h.Res(resParams)
		return
	}
	if len(body) > config.MAX_AVATAR_BYTES {
		resParams.Err = errors.New("avatar exceeds size limit")
		resParams.Code = http.StatusBadRequest
		h.Res(resParams)
		return
	}

	contentType := http.DetectContentType(body)
	if contentType != "image/png" && contentType != "image/jpeg" && contentType != "image/webp" {
		resParams.Err = errors.New("unsupported avatar content type: " + contentType)
		resParams.Code = http.StatusBadRequest
		h.Res(resParams)
		return
	}

	key := uid.Hex() + ".img"
	if err := utils.PutObjectS3(h.S3Cli, ctx, config.AVATAR_BUCKET, key, bytes.NewReader(body), contentType); err != nil {
		resParams.Code = http.StatusInternalServerError
		resParams.Err = err
		h.Res(resParams)
		return
	}

	if _, err := h.MongoDB.Collection("users").UpdateOne(ctx,
		bson.M{"_id": uid},
		bson.M{"$set": bson.M{"avatarKey": key}},
	); err != nil {
		resParams.Code = http.StatusInternalServerError
		resParams.Err = err
		h.Res(resParams)
		return
	}

	resParams.ResData = &struct {
		AvatarKey string `json:"avatarKey"`
	}{AvatarKey: key}
	resParams.Code = http.StatusOK
	h.Res(resParams)

}
